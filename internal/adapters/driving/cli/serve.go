package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackink-studio/inkwell/internal/adapters/driving/httpapi"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP server exposing the chat and ingest endpoints.

With --watch and a file document source, content changes under the source
directory trigger automatic re-ingestion.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :3000 or server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "re-ingest when the document source changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if chatService == nil && ingestService == nil {
		return errors.New("nothing to serve: configure llm, embedding and vectorstore providers")
	}

	addr := serveAddr
	if addr == "" {
		addr = configStore.GetString("server.addr")
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr:         addr,
		IngestSecret: secret("server.ingest_secret", "INKWELL_INGEST_SECRET"),
	}, chatService, ingestService)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		if err := startSourceWatch(ctx); err != nil {
			return err
		}
	}

	return server.Run(ctx)
}

// startSourceWatch re-ingests whenever the document source reports a
// change. Only watchable sources (the file source) support this.
func startSourceWatch(ctx context.Context) error {
	if ingestService == nil {
		return errors.New("--watch requires ingestion to be configured")
	}
	watchable, ok := docSource.(driven.WatchableSource)
	if !ok {
		return errors.New("--watch requires a file document source (source.type = \"file\")")
	}

	changes, err := watchable.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for range changes {
			logger.Info("source %s changed, re-ingesting", docSource.Name())
			runCtx, cancel := context.WithTimeout(ctx, ingestRunTimeout)
			report, err := ingestService.Ingest(runCtx)
			cancel()
			if err != nil {
				logger.Warn("re-ingest failed: %v", err)
				continue
			}
			logger.Info("re-ingest complete: %d documents, %d chunks stored", report.Documents, report.Stored)
		}
	}()

	return nil
}
