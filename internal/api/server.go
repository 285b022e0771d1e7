package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	api "tempwatch-v0/internal/api/application"
	"tempwatch-v0/internal/api/handlers"
	"tempwatch-v0/internal/infrastructure/logger"
	reportdomain "tempwatch-v0/internal/report/domain"
)

// Server is the local viewer: read-only access to the run log and the last
// rendered chart while the process waits for shutdown.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer creates a new viewer server
func NewServer(appLogger *logger.Logger, addr string, repo reportdomain.Repository, plotPath string) *Server {
	reportService := api.NewReportService(repo)
	reportHandler := handlers.NewReportHandler(reportService, plotPath)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httplog.RequestLogger(appLogger.SLog(), &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", reportHandler.ListRuns)
		r.Get("/runs/latest", reportHandler.LatestRun)
	})
	r.Get("/chart.png", reportHandler.Chart)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		logger:     appLogger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting viewer server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down viewer server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	}
	return err
}
