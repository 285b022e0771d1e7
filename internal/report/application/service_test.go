package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
	"tempwatch-v0/internal/infrastructure/logger"
	ingestdomain "tempwatch-v0/internal/ingest/domain"
	"tempwatch-v0/internal/report/domain"
)

type mockRepository struct {
	inserted []domain.RunRecord
	err      error
}

func (m *mockRepository) InsertRun(ctx context.Context, record domain.RunRecord) error {
	if m.err != nil {
		return &domain.OutputError{Target: "run log", Err: m.err}
	}
	m.inserted = append(m.inserted, record)
	return nil
}

func (m *mockRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	return m.inserted, nil
}

func (m *mockRepository) LatestRun(ctx context.Context) (*domain.RunRecord, error) {
	if len(m.inserted) == 0 {
		return nil, nil
	}
	return &m.inserted[len(m.inserted)-1], nil
}

type mockChartWriter struct {
	calls int
	err   error
}

func (m *mockChartWriter) Write(series ingestdomain.Series, trend analysisdomain.TrendResult) error {
	m.calls++
	return m.err
}

func testSeries() ingestdomain.Series {
	result, err := ingestdomain.ParseLog("2024-01-01 00:00:00, 45.0\n2024-01-01 00:00:10, 45.5\n")
	if err != nil {
		panic(err)
	}
	return result.Series
}

func TestService_PublishWritesAllOutputs(t *testing.T) {
	repo := &mockRepository{}
	chart := &mockChartWriter{}
	var console bytes.Buffer

	service := NewService(logger.DefaultLogger(), repo, chart, &console, true, "images/test.png")

	record := &domain.RunRecord{ID: "run-1", Status: domain.RunCompleted, Host: "pi.local"}
	service.Publish(context.Background(), record, testSeries())

	if chart.calls != 1 {
		t.Errorf("expected 1 chart write, got %d", chart.calls)
	}
	if record.PlotPath != "images/test.png" {
		t.Errorf("expected plot path on record, got %q", record.PlotPath)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 run record inserted, got %d", len(repo.inserted))
	}
	if !strings.Contains(console.String(), "pi.local") {
		t.Errorf("expected console summary, got %q", console.String())
	}
	if record.Status != domain.RunCompleted {
		t.Errorf("expected completed status, got %s", record.Status)
	}
}

func TestService_ChartFailureDegradesOnly(t *testing.T) {
	repo := &mockRepository{}
	chart := &mockChartWriter{err: fmt.Errorf("disk full")}

	service := NewService(logger.DefaultLogger(), repo, chart, &bytes.Buffer{}, true, "images/test.png")

	record := &domain.RunRecord{ID: "run-1", Status: domain.RunCompleted}
	service.Publish(context.Background(), record, testSeries())

	if record.Status != domain.RunDegraded {
		t.Errorf("expected degraded status, got %s", record.Status)
	}
	if !strings.Contains(record.DegradedList(), "chart") {
		t.Errorf("expected chart in degraded stages, got %s", record.DegradedList())
	}
	// The run log row still lands
	if len(repo.inserted) != 1 {
		t.Errorf("expected run record inserted despite chart failure, got %d", len(repo.inserted))
	}
}

func TestService_ChartSkippedWithoutData(t *testing.T) {
	repo := &mockRepository{}
	chart := &mockChartWriter{}

	service := NewService(logger.DefaultLogger(), repo, chart, &bytes.Buffer{}, true, "images/test.png")

	record := &domain.RunRecord{ID: "run-1", Status: domain.RunCompleted}
	service.Publish(context.Background(), record, nil)

	if chart.calls != 0 {
		t.Errorf("expected no chart write for empty series, got %d", chart.calls)
	}
	if record.PlotPath != "" {
		t.Errorf("expected no plot path, got %q", record.PlotPath)
	}
	// Skipping the chart on empty data is not a degradation
	if record.Status != domain.RunCompleted {
		t.Errorf("expected completed status, got %s", record.Status)
	}
}

func TestService_RunLogFailureDegrades(t *testing.T) {
	repo := &mockRepository{err: fmt.Errorf("database is locked")}

	service := NewService(logger.DefaultLogger(), repo, nil, &bytes.Buffer{}, false, "")

	record := &domain.RunRecord{ID: "run-1", Status: domain.RunCompleted}
	service.Publish(context.Background(), record, testSeries())

	if record.Status != domain.RunDegraded {
		t.Errorf("expected degraded status, got %s", record.Status)
	}
	if !strings.Contains(record.DegradedList(), "run_log") {
		t.Errorf("expected run_log in degraded stages, got %s", record.DegradedList())
	}
}
