package domain

import (
	"math"
	"testing"
	"time"

	ingestdomain "tempwatch-v0/internal/ingest/domain"
)

func makeSeries(temps ...float64) ingestdomain.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(ingestdomain.Series, len(temps))
	for i, temp := range temps {
		series[i] = ingestdomain.NewSample(start.Add(time.Duration(i)*10*time.Second), temp)
	}
	return series
}

func TestSummarize(t *testing.T) {
	series := makeSeries(20.0, 22.0, 24.0)
	summary := Summarize(series)

	if summary.Count != 3 {
		t.Errorf("expected count 3, got %d", summary.Count)
	}
	if summary.Mean != 22.0 {
		t.Errorf("expected mean 22.0, got %v", summary.Mean)
	}
	// Sample variance, n-1 denominator
	if math.Abs(summary.Variance-4.0) > 1e-9 {
		t.Errorf("expected variance 4.0, got %v", summary.Variance)
	}
	if !summary.VarianceDefined {
		t.Error("expected variance to be defined for n=3")
	}
	if summary.Min != 20.0 || summary.Max != 24.0 {
		t.Errorf("expected min 20.0 max 24.0, got %v and %v", summary.Min, summary.Max)
	}
	if math.Abs(summary.StdDev-2.0) > 1e-9 {
		t.Errorf("expected stddev 2.0, got %v", summary.StdDev)
	}
}

func TestSummarize_EmptySeries(t *testing.T) {
	summary := Summarize(nil)

	if summary.HasData() {
		t.Error("expected no-data sentinel for empty series")
	}
	if summary.Count != 0 {
		t.Errorf("expected count 0, got %d", summary.Count)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	summary := Summarize(makeSeries(42.5))

	if !summary.HasData() {
		t.Fatal("expected data for single sample")
	}
	if summary.Mean != 42.5 {
		t.Errorf("expected mean 42.5, got %v", summary.Mean)
	}
	if summary.VarianceDefined {
		t.Error("expected variance undefined for n=1")
	}
	if !math.IsNaN(summary.Variance) {
		t.Errorf("expected NaN variance for n=1, got %v", summary.Variance)
	}
}
