package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"isingmc/app"
	"isingmc/domain/run"
	"isingmc/ports"

	"github.com/gin-gonic/gin"
)

// Config holds what the HTTP server needs
type Config struct {
	Simulation *app.SimulationService
	Summary    *app.SummaryService
	// Ledger must be the ledger Simulation records to
	Ledger    ports.RunLedgerReader
	NewSink   app.SinkFactory
	NewSource SourceFactory
	RNGMode   string
	Defaults  run.Parameters
	DataDir   string
	Logger    *slog.Logger
}

// Server exposes the run ledger over HTTP
type Server struct {
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the router and registers all routes
func NewServer(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		logger: cfg.Logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())

	h := &RunHandler{
		simulation: cfg.Simulation,
		summary:    cfg.Summary,
		ledger:     cfg.Ledger,
		newSink:    cfg.NewSink,
		newSource:  cfg.NewSource,
		rngMode:    cfg.RNGMode,
		defaults:   cfg.Defaults,
		dataDir:    cfg.DataDir,
		logger:     cfg.Logger,
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	runs := s.router.Group("/api/runs")
	runs.GET("", h.ListRuns)
	runs.POST("", h.StartRun)
	runs.GET("/:id", h.GetRun)
	runs.GET("/:id/summary", h.GetRunSummary)
	runs.GET("/:id/report", h.GetRunReport)

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
