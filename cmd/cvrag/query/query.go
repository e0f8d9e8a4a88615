// Package querycmder provides the query command for one-off questions.
package querycmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/config"
	embeddingutils "github.com/recruitkit/cvrag/pkg/embeddings/utils"
	generateutils "github.com/recruitkit/cvrag/pkg/generate/utils"
	"github.com/recruitkit/cvrag/pkg/logger"
	"github.com/recruitkit/cvrag/pkg/rag"
	vectorutils "github.com/recruitkit/cvrag/pkg/vector/utils"
)

type QueryCommander struct {
	topK          int
	embeddingProv string
	embeddingTgt  string
	embeddingMdl  string
	embeddingDims uint
	vectorProv    string
	vectorTgt     string
	genProv       string
	genTgt        string
	genModel      string

	debug  bool
	cfg    *config.Config
	logger *zap.Logger
}

var queryFlags = []string{
	config.FlagQueryTopK,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagEmbeddingDims,
	config.FlagVectorStoreProv,
	config.FlagVectorStoreTgt,
	config.FlagGenerationProv,
	config.FlagGenerationTgt,
	config.FlagGenerationModel,
}

const queryLongDesc string = `Ask a question about the indexed CVs.

The question is embedded, the most similar CV chunks are retrieved from
the vector store, and an LLM answers grounded strictly on those excerpts.

Example:
  cvrag query "Which candidates have Kubernetes experience?"
  cvrag query --top-k 8 "Who has led a team before?"`

const queryShortDesc string = "Ask a question about the indexed CVs"

func NewQueryCmd() *cobra.Command {
	cmder := &QueryCommander{}

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: queryShortDesc,
		Long:  queryLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(strings.Join(args, " "))
		},
	}

	config.AddIntFlag(cmd, config.Flags, config.FlagQueryTopK, &cmder.topK)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embeddingProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embeddingTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embeddingMdl)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbeddingDims, &cmder.embeddingDims)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreProv, &cmder.vectorProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreTgt, &cmder.vectorTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationProv, &cmder.genProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationTgt, &cmder.genTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationModel, &cmder.genModel)

	return cmd
}

func (c *QueryCommander) loadConfig(cmd *cobra.Command) error {
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("could not get config-dir flag: %v", err)
	}

	v, err := config.InitViper(configDir)
	if err != nil {
		return err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, queryFlags)

	c.cfg, err = config.Load(v)
	return err
}

func (c *QueryCommander) run(question string) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	ctx := context.Background()

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: c.cfg.Embedding.Provider,
		TargetURL:    c.cfg.Embedding.Target,
		Model:        c.cfg.Embedding.Model,
		APIKey:       c.cfg.Embedding.APIKey,
		Dimensions:   c.cfg.Embedding.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	driver, err := vectorutils.NewDriver(ctx, &vectorutils.NewDriverOpts{
		ProviderType: c.cfg.VectorStore.Provider,
		Target:       c.cfg.VectorStore.Target,
		APIKey:       c.cfg.VectorStore.APIKey,
		Collection:   c.cfg.VectorStore.Collection,
		Dimensions:   c.cfg.VectorStore.Dimensions,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer driver.Close()

	generator, err := generateutils.NewGenerator(&generateutils.NewGeneratorOpts{
		ProviderType: c.cfg.Generation.Provider,
		TargetURL:    c.cfg.Generation.Target,
		Model:        c.cfg.Generation.Model,
		APIKey:       c.cfg.Generation.APIKey,
	})
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}
	defer generator.Close()

	querier, err := rag.NewQuerier(rag.QuerierConfig{
		Embedder:     embedder,
		VectorDriver: driver,
		Generator:    generator,
		TopK:         c.cfg.Query.TopK,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating querier: %w", err)
	}

	answer, err := querier.Answer(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
