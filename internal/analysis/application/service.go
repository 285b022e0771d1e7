package application

import (
	"context"

	"tempwatch-v0/internal/analysis/domain"
	"tempwatch-v0/internal/infrastructure/logger"
	ingestdomain "tempwatch-v0/internal/ingest/domain"
)

// Result bundles the filtered series with everything derived from it.
type Result struct {
	Filtered ingestdomain.Series
	Summary  domain.Summary
	Trend    domain.TrendResult
}

// Service applies the time window and derives statistics and trend fits
type Service struct {
	logger *logger.Logger
}

// NewService creates a new analysis service
func NewService(logger *logger.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Analyze filters the series by the window and computes the summary and both
// trend fits. Never returns an error: an empty or too-small filtered series
// degrades to the no-data / insufficient-data sentinels in the result.
func (s *Service) Analyze(ctx context.Context, series ingestdomain.Series, window ingestdomain.TimeWindow) Result {
	filtered := window.Filter(series)
	if len(filtered) < len(series) {
		s.logger.Info("Applied time window", "before", len(series), "after", len(filtered))
	}
	if len(filtered) == 0 {
		s.logger.Warn("No samples inside time window")
	}

	summary := domain.Summarize(filtered)
	trend := domain.FitTrends(filtered)

	if trend.Linear.Status != domain.FitOK {
		s.logger.Warn("Linear fit unavailable", "status", trend.Linear.Status, "reason", trend.Linear.Reason)
	}
	if trend.Exponential.Status != domain.FitOK {
		s.logger.Warn("Exponential fit unavailable", "status", trend.Exponential.Status, "reason", trend.Exponential.Reason)
	}

	return Result{
		Filtered: filtered,
		Summary:  summary,
		Trend:    trend,
	}
}
