package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tempwatch-v0/internal/infrastructure/logger"
	"tempwatch-v0/internal/ingest/domain"
)

type fakeRetriever struct {
	raw string
	err error
}

func (f *fakeRetriever) Fetch(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.raw, nil
}

func TestService_FetchSeries(t *testing.T) {
	raw := "Date, CPU Temp\n" +
		"2024-01-01 00:00:00, Core 0:  +45.0°C\n" +
		"broken line\n" +
		"2024-01-01 00:00:10, Core 0:  +45.5°C\n"

	service := NewService(logger.DefaultLogger(), &fakeRetriever{raw: raw})

	result, err := service.FetchSeries(context.Background())
	if err != nil {
		t.Fatalf("FetchSeries failed: %v", err)
	}
	if len(result.Series) != 2 {
		t.Errorf("expected 2 samples, got %d", len(result.Series))
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", result.Skipped)
	}
}

func TestService_FetchSeriesPropagatesRetrieverError(t *testing.T) {
	connErr := &domain.ConnectionError{Host: "pi.local:22", Err: fmt.Errorf("auth failed")}
	service := NewService(logger.DefaultLogger(), &fakeRetriever{err: connErr})

	_, err := service.FetchSeries(context.Background())

	var gotErr *domain.ConnectionError
	if !errors.As(err, &gotErr) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}

func TestService_FetchSeriesEmptyDataset(t *testing.T) {
	service := NewService(logger.DefaultLogger(), &fakeRetriever{raw: "Date, CPU Temp\n"})

	_, err := service.FetchSeries(context.Background())

	var emptyErr *domain.EmptyDatasetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
}
