package application

import (
	"context"
	"math"
	"testing"
	"time"

	"tempwatch-v0/internal/analysis/domain"
	"tempwatch-v0/internal/infrastructure/logger"
	ingestdomain "tempwatch-v0/internal/ingest/domain"
)

func TestService_Analyze(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(ingestdomain.Series, 6)
	for i := range series {
		series[i] = ingestdomain.NewSample(start.Add(time.Duration(i)*10*time.Second), 40.0+float64(i))
	}

	from := start.Add(10 * time.Second)
	to := start.Add(40 * time.Second)
	window := ingestdomain.TimeWindow{Start: &from, End: &to}

	service := NewService(logger.DefaultLogger())
	result := service.Analyze(context.Background(), series, window)

	if len(result.Filtered) != 4 {
		t.Fatalf("expected 4 filtered samples, got %d", len(result.Filtered))
	}
	// Samples carry 41, 42, 43, 44
	if math.Abs(result.Summary.Mean-42.5) > 1e-9 {
		t.Errorf("expected mean 42.5, got %v", result.Summary.Mean)
	}
	if result.Trend.Linear.Status != domain.FitOK {
		t.Errorf("expected linear fit ok, got %s", result.Trend.Linear.Status)
	}
}

func TestService_AnalyzeEmptyWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := ingestdomain.Series{
		ingestdomain.NewSample(start, 45.0),
	}

	from := start.Add(time.Hour)
	window := ingestdomain.TimeWindow{Start: &from}

	service := NewService(logger.DefaultLogger())
	result := service.Analyze(context.Background(), series, window)

	if len(result.Filtered) != 0 {
		t.Fatalf("expected empty filtered series, got %d samples", len(result.Filtered))
	}
	if result.Summary.HasData() {
		t.Error("expected no-data summary")
	}
	if result.Trend.Linear.Status != domain.FitInsufficientData {
		t.Errorf("expected insufficient data, got %s", result.Trend.Linear.Status)
	}
}
