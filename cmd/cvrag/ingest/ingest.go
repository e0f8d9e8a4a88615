// Package ingestcmder provides the ingest command for one-shot indexing.
package ingestcmder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/blob/fs"
	"github.com/recruitkit/cvrag/pkg/config"
	embeddingutils "github.com/recruitkit/cvrag/pkg/embeddings/utils"
	"github.com/recruitkit/cvrag/pkg/eventstream"
	"github.com/recruitkit/cvrag/pkg/extract/pdf"
	"github.com/recruitkit/cvrag/pkg/logger"
	"github.com/recruitkit/cvrag/pkg/rag"
	vectorutils "github.com/recruitkit/cvrag/pkg/vector/utils"
)

type IngestCommander struct {
	bucket        string
	blobRoot      string
	embeddingProv string
	embeddingTgt  string
	embeddingMdl  string
	embeddingDims uint
	vectorProv    string
	vectorTgt     string

	debug  bool
	cfg    *config.Config
	logger *zap.Logger
}

var ingestFlags = []string{
	config.FlagIngestBucket,
	config.FlagBlobRoot,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagEmbeddingDims,
	config.FlagVectorStoreProv,
	config.FlagVectorStoreTgt,
}

const ingestLongDesc string = `Index objects from blob storage without going through the API.

Each argument names an object in the configured bucket. Objects are
fetched, chunked, embedded, and indexed in the vector store. Objects
without the supported suffix are skipped.

Example:
  cvrag ingest jane-doe.pdf john-smith.pdf
  cvrag ingest --bucket archive 2024/jane-doe.pdf`

const ingestShortDesc string = "Index objects from blob storage"

func NewIngestCmd() *cobra.Command {
	cmder := &IngestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest <object> [object...]",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
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
			return cmder.run(args)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagIngestBucket, &cmder.bucket)
	config.AddStringFlag(cmd, config.Flags, config.FlagBlobRoot, &cmder.blobRoot)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embeddingProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embeddingTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embeddingMdl)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbeddingDims, &cmder.embeddingDims)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreProv, &cmder.vectorProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreTgt, &cmder.vectorTgt)

	return cmd
}

func (c *IngestCommander) loadConfig(cmd *cobra.Command) error {
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("could not get config-dir flag: %v", err)
	}

	v, err := config.InitViper(configDir)
	if err != nil {
		return err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, ingestFlags)

	c.cfg, err = config.Load(v)
	return err
}

func (c *IngestCommander) run(names []string) error {
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

	ingestor, err := rag.NewIngestor(rag.IngestorConfig{
		Fetcher:      fs.NewFetcher(c.cfg.Blob.Root),
		Extractor:    pdf.NewExtractor(),
		Embedder:     embedder,
		VectorDriver: driver,
		Suffix:       c.cfg.Ingest.Suffix,
		Concurrency:  c.cfg.Ingest.Concurrency,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating ingestor: %w", err)
	}

	bucket := c.cfg.Ingest.Bucket
	failed := 0
	for _, name := range names {
		result, err := ingestor.Ingest(ctx, &eventstream.ObjectFinalizedEvent{
			SchemaVersion: eventstream.SchemaVersionV1,
			EventType:     eventstream.EventTypeObjectFinalized,
			EventID:       uuid.NewString(),
			EmittedAt:     time.Now().UTC(),
			Bucket:        bucket,
			Name:          name,
		})
		if err != nil {
			failed++
			fmt.Printf("%s: %s (%v)\n", name, result.Status, err)
			continue
		}
		fmt.Printf("%s: %s (%d chunks)\n", name, result.Status, result.Chunks)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d objects failed", failed, len(names))
	}
	return nil
}
