package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ingestRunTimeout bounds a CLI ingest run, matching the HTTP handler.
const ingestRunTimeout = 5 * time.Minute

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest the knowledge base into the vector store",
	Long: `Fetches documents from the configured source, chunks them,
generates embeddings and stores the vectors.

The source defaults to the built-in studio documents; set source.type to
"file" and source.dir to ingest a local knowledge directory.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingestion not configured: set embedding.provider and vectorstore.provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestRunTimeout)
	defer cancel()

	cmd.Printf("Ingesting from source %q...\n", docSource.Name())

	report, err := ingestService.Ingest(ctx)
	if err != nil {
		if report != nil && report.FailedStage != "" {
			return fmt.Errorf("ingest failed at stage %s: %w", report.FailedStage, err)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Documents: %d\n", report.Documents)
	cmd.Printf("Chunks:    %d\n", report.Chunks)
	cmd.Printf("Stored:    %d\n", report.Stored)
	if report.EmbeddingFailures > 0 {
		cmd.Printf("Warning: %d chunk(s) stored with zero vectors after embedding failures\n", report.EmbeddingFailures)
	}
	return nil
}
