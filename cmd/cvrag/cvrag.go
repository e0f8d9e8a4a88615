// Package cvragcmder
package cvragcmder

import (
	"github.com/spf13/cobra"

	ingestcmder "github.com/recruitkit/cvrag/cmd/cvrag/ingest"
	querycmder "github.com/recruitkit/cvrag/cmd/cvrag/query"
	servecmder "github.com/recruitkit/cvrag/cmd/cvrag/serve"
	versioncmder "github.com/recruitkit/cvrag/cmd/version"
)

const cvragLongDesc string = `cvrag answers questions about CVs using retrieval-augmented generation.

Uploaded CVs are chunked, embedded, and indexed in a vector store. Questions
are answered by an LLM grounded strictly on the retrieved CV excerpts.

  cvrag serve     Run the HTTP API (and optionally the storage event consumer)
  cvrag ingest    Index objects from blob storage
  cvrag query     Ask a one-off question from the command line`

const cvragShortDesc string = "cvrag - CV question answering"

func NewCvragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cvrag",
		Short: cvragShortDesc,
		Long:  cvragLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config-dir", "c", "", "Directory to read config.toml from (default: working directory)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(querycmder.NewQueryCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
