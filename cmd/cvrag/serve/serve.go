// Package servecmder provides the serve command for running the cvrag services.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/api"
	"github.com/recruitkit/cvrag/pkg/blob/fs"
	"github.com/recruitkit/cvrag/pkg/config"
	embeddingutils "github.com/recruitkit/cvrag/pkg/embeddings/utils"
	"github.com/recruitkit/cvrag/pkg/eventstream/kafka"
	"github.com/recruitkit/cvrag/pkg/extract/pdf"
	generateutils "github.com/recruitkit/cvrag/pkg/generate/utils"
	"github.com/recruitkit/cvrag/pkg/logger"
	"github.com/recruitkit/cvrag/pkg/rag"
	vectorutils "github.com/recruitkit/cvrag/pkg/vector/utils"
)

type ServeCommander struct {
	listen          string
	blobRoot        string
	embeddingProv   string
	embeddingTgt    string
	embeddingModel  string
	embeddingDims   uint
	vectorProv      string
	vectorTgt       string
	generationProv  string
	generationTgt   string
	generationModel string

	debug  bool
	cfg    *config.Config
	logger *zap.Logger
}

var serveFlags = []string{
	config.FlagAPIListen,
	config.FlagBlobRoot,
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

const serveLongDesc string = `Run the cvrag HTTP API server.

The server exposes:
  POST /query     Answer a question grounded on the indexed CVs
  POST /ingest    Index a named object from blob storage
  GET  /ping      Health check

With events.enabled set, a Kafka consumer also ingests objects as
storage finalization events arrive.`

const serveShortDesc string = "Run the cvrag API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagBlobRoot, &cmder.blobRoot)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embeddingProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embeddingTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embeddingModel)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbeddingDims, &cmder.embeddingDims)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreProv, &cmder.vectorProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreTgt, &cmder.vectorTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationProv, &cmder.generationProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationTgt, &cmder.generationTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationModel, &cmder.generationModel)

	return cmd
}

// loadConfig resolves the full config through the viper precedence chain:
// flag > environment > config.toml > default.
func (c *ServeCommander) loadConfig(cmd *cobra.Command) error {
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("could not get config-dir flag: %v", err)
	}

	v, err := config.InitViper(configDir)
	if err != nil {
		return err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, serveFlags)

	c.cfg, err = config.Load(v)
	return err
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	apiServer := api.NewServer(api.Config{
		ListenAddr: c.cfg.API.Listen,
		AuthToken:  c.cfg.API.AuthToken,
	}, querier, ingestor, c.logger)

	// Channel to capture errors from goroutines
	errChan := make(chan error, 2)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	if c.cfg.Events.Enabled {
		consumer, err := kafka.NewConsumer(kafka.Config{
			Brokers: c.cfg.Events.Brokers,
			Topic:   c.cfg.Events.Topic,
			GroupID: c.cfg.Events.Group,
		}, c.logger)
		if err != nil {
			return fmt.Errorf("creating event consumer: %w", err)
		}
		defer consumer.Close()

		c.logger.Info("starting event consumer",
			zap.Strings("brokers", c.cfg.Events.Brokers),
			zap.String("topic", c.cfg.Events.Topic),
			zap.String("group", c.cfg.Events.Group),
		)

		go func() {
			if err := consumer.Run(ctx, ingestor.Handler()); err != nil {
				errChan <- fmt.Errorf("event consumer error: %w", err)
			}
		}()
	}

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
		return apiServer.Shutdown()
	}
}
