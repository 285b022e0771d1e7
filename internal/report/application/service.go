package application

import (
	"context"
	"fmt"
	"io"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
	"tempwatch-v0/internal/infrastructure/logger"
	ingestdomain "tempwatch-v0/internal/ingest/domain"
	"tempwatch-v0/internal/report/domain"
)

// ChartWriter renders the chart for a filtered series with fitted curves.
type ChartWriter interface {
	Write(series ingestdomain.Series, trend analysisdomain.TrendResult) error
}

// Service emits the run's outputs: console summary, run log row, optional
// chart. Output failures degrade the run but never invalidate the computed
// results.
type Service struct {
	logger   *logger.Logger
	repo     domain.Repository
	chart    ChartWriter
	console  io.Writer
	savePlot bool
	plotPath string
}

// NewService creates a new report service
func NewService(logger *logger.Logger, repo domain.Repository, chart ChartWriter, console io.Writer, savePlot bool, plotPath string) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		chart:    chart,
		console:  console,
		savePlot: savePlot,
		plotPath: plotPath,
	}
}

// Publish writes the chart (when enabled and there is data), the console
// summary and the run log row, in that order, marking the record degraded
// for each output that failed.
func (s *Service) Publish(ctx context.Context, record *domain.RunRecord, filtered ingestdomain.Series) {
	if s.savePlot && s.chart != nil {
		if len(filtered) == 0 {
			s.logger.Info("Skipping chart, no samples in window")
		} else if err := s.chart.Write(filtered, record.Trend); err != nil {
			s.logger.Error("Failed to write chart", "path", s.plotPath, "err", err)
			record.MarkDegraded("chart")
		} else {
			record.PlotPath = s.plotPath
			s.logger.Info("Chart written", "path", s.plotPath)
		}
	}

	fmt.Fprint(s.console, record.SummaryText())

	if err := s.repo.InsertRun(ctx, *record); err != nil {
		s.logger.Error("Failed to append run record", "err", err)
		record.MarkDegraded("run_log")
	} else {
		s.logger.Info("Run record appended", "run_id", record.ID, "status", record.Status)
	}
}
