package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
	"github.com/blackink-studio/inkwell/internal/logger"
)

const (
	defaultAddr = ":3000"

	// chatTimeout bounds a single streamed chat turn.
	chatTimeout = 60 * time.Second

	// ingestTimeout bounds a full ingestion run.
	ingestTimeout = 5 * time.Minute
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address. Defaults to ":3000".
	Addr string

	// IngestSecret, when non-empty, is required as a bearer token on the
	// ingest endpoint. An empty secret leaves ingestion open, intended for
	// local development only.
	IngestSecret string
}

// Server wires the driving services into gin routes.
type Server struct {
	cfg    Config
	chat   driving.ChatService
	ingest driving.Ingestor
	engine *gin.Engine
	http   *http.Server
}

// NewServer builds the server and registers all routes. chat and ingestor
// may be nil; the corresponding endpoints then answer 503.
func NewServer(cfg Config, chat driving.ChatService, ingestor driving.Ingestor) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		chat:   chat,
		ingest: ingestor,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/chat", s.handleChat)
	api.POST("/ingest", s.handleIngest)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler returns the underlying http.Handler, used by tests and by callers
// that manage their own listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
