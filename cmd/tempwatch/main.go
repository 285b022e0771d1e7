package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "modernc.org/sqlite"

	analysisapp "tempwatch-v0/internal/analysis/application"
	apiserver "tempwatch-v0/internal/api"
	configapp "tempwatch-v0/internal/config/application"
	"tempwatch-v0/internal/infrastructure/database"
	"tempwatch-v0/internal/infrastructure/logger"
	ingestapp "tempwatch-v0/internal/ingest/application"
	ingestinfra "tempwatch-v0/internal/ingest/infrastructure"
	"tempwatch-v0/internal/pipeline"
	reportapp "tempwatch-v0/internal/report/application"
	reportinfra "tempwatch-v0/internal/report/infrastructure"
	"tempwatch-v0/internal/schema"
)

func run() error {
	// Initialize logger first
	appLogger := logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting Tempwatch", "version", "1.0")

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	configapp.LoadEnvFile(appLogger, "")
	cfg := configapp.LoadRuntimeConfig()
	if err := cfg.Validate(sigCtx); err != nil {
		appLogger.Error("Invalid configuration", "err", err)
		return err
	}

	// The env-derived logger config may differ from process env defaults
	// once the .env file is loaded
	appLogger = logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	// Initialize database connections
	appLogger.Debug("Connecting to database", "file", cfg.DBPath)
	dbRead, err := database.ConnectSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to connect to read database", "err", err)
		return fmt.Errorf("failed to connect to read database: %w", err)
	}
	defer dbRead.Close()

	dbWrite, err := database.ConnectSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to connect to write database", "err", err)
		return fmt.Errorf("failed to connect to write database: %w", err)
	}
	defer dbWrite.Close()
	dbWrite.SetMaxOpenConns(1)

	// Initialize schema
	appLogger.Debug("Initializing database schema")
	_, err = dbWrite.ExecContext(sigCtx, schema.DDL)
	if err != nil {
		appLogger.Error("Failed to initialize schema", "err", err)
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Wire the pipeline
	retriever := ingestinfra.NewSFTPRetriever(cfg.Addr(), cfg.SSHUser, cfg.SSHKeyPath, cfg.RemotePath)
	ingestService := ingestapp.NewService(appLogger, retriever)
	analysisService := analysisapp.NewService(appLogger)

	runRepo := reportinfra.NewRepository(dbRead, dbWrite)
	chartWriter := reportinfra.NewChartWriter(cfg.PlotPath)
	reportService := reportapp.NewService(appLogger, runRepo, chartWriter, os.Stdout, cfg.SavePlot, cfg.PlotPath)

	runner := pipeline.NewRunner(appLogger, ingestService, analysisService, reportService,
		cfg.SSHHost, cfg.RemotePath, cfg.Window)

	record, err := runner.Run(sigCtx)
	if err != nil {
		appLogger.Error("Run failed", "err", err)
		return err
	}

	if cfg.ServeAddr == "" {
		return nil
	}

	// Viewer mode: keep serving the results until interrupted
	viewer := apiserver.NewServer(appLogger, cfg.ServeAddr, runRepo, record.PlotPath)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := viewer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("viewer server error: %w", err)
		}
	}()

	appLogger.Info("Viewer started, waiting for shutdown signal", "addr", cfg.ServeAddr)

	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return viewer.Shutdown(shutdownCtx)
	case err := <-serverErrChan:
		appLogger.Error("Server error received", "err", err)
		return err
	}
}

func main() {
	if err := run(); err != nil {
		// Use default logger for final error message if run() failed early
		logger := logger.DefaultLogger()
		logger.Error("Application error", "err", err)
		os.Exit(1)
	}
}
