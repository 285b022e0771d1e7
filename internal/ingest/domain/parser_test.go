package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseLog(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expectError   bool
		expectSamples int
		expectSkipped int
	}{
		{
			name:          "header plus valid lines",
			raw:           "Date, CPU Temp\n2024-01-01 00:00:00, Core 0:  +45.0°C\n2024-01-01 00:00:10, Core 0:  +45.5°C\n",
			expectSamples: 2,
			expectSkipped: 0,
		},
		{
			name:          "no header",
			raw:           "2024-01-01 00:00:00, 45.0\n2024-01-01 00:00:10, 45.5\n",
			expectSamples: 2,
			expectSkipped: 0,
		},
		{
			name:          "malformed line skipped and counted",
			raw:           "2024-01-01 00:00:00, 45.0\nnot a record at all\n2024-01-01 00:00:20, 46.0\n",
			expectSamples: 2,
			expectSkipped: 1,
		},
		{
			name:          "missing numeric field skipped",
			raw:           "2024-01-01 00:00:00, 45.0\n2024-01-01 00:00:10, sensor offline\n",
			expectSamples: 1,
			expectSkipped: 1,
		},
		{
			name:          "truncated trailing line tolerated",
			raw:           "2024-01-01 00:00:00, 45.0\n2024-01-01 00:00:10, 45.5\n2024-01-01 00:00:2",
			expectSamples: 2,
			expectSkipped: 1,
		},
		{
			name:        "header only",
			raw:         "Date, CPU Temp\n",
			expectError: true,
		},
		{
			name:        "empty input",
			raw:         "",
			expectError: true,
		},
		{
			name:        "nothing parseable",
			raw:         "Date, CPU Temp\ngarbage\nmore garbage\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseLog(tt.raw)

			if tt.expectError {
				var emptyErr *EmptyDatasetError
				if !errors.As(err, &emptyErr) {
					t.Fatalf("expected EmptyDatasetError, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Series) != tt.expectSamples {
				t.Errorf("expected %d samples, got %d", tt.expectSamples, len(result.Series))
			}
			if result.Skipped != tt.expectSkipped {
				t.Errorf("expected %d skipped, got %d", tt.expectSkipped, result.Skipped)
			}
		})
	}
}

func TestParseLog_ExtractsLabelledTemperature(t *testing.T) {
	result, err := ParseLog("2024-01-01 00:00:00, Core 0:  +45.0°C\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Series) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(result.Series))
	}

	sample := result.Series[0]
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !sample.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, sample.Timestamp)
	}
	if sample.Temperature != 45.0 {
		t.Errorf("expected temperature 45.0, got %v", sample.Temperature)
	}
}

func TestParseLog_NegativeTemperature(t *testing.T) {
	result, err := ParseLog("2024-01-01 00:00:00, Sensor:  -12.5°C\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Series[0].Temperature; got != -12.5 {
		t.Errorf("expected temperature -12.5, got %v", got)
	}
}

func TestParseLog_PreservesOrder(t *testing.T) {
	// Append order is trusted even when timestamps are not monotonic
	raw := "2024-01-01 00:00:10, 46.0\n2024-01-01 00:00:00, 45.0\n"
	result, err := ParseLog(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Series) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(result.Series))
	}
	if !result.Series[0].Timestamp.After(result.Series[1].Timestamp) {
		t.Error("expected source order to be preserved, series was reordered")
	}
}

func TestParseLog_EmptyDatasetErrorCounts(t *testing.T) {
	_, err := ParseLog("Date, CPU Temp\nbroken line one\nbroken line two\n")

	var emptyErr *EmptyDatasetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
	if emptyErr.Skipped != 2 {
		t.Errorf("expected 2 skipped lines in error, got %d", emptyErr.Skipped)
	}
}

func TestParseLog_OutOfRangeValuePassedThrough(t *testing.T) {
	result, err := ParseLog("2024-01-01 00:00:00, 900.0\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Series[0].Temperature; math.Abs(got-900.0) > 1e-9 {
		t.Errorf("expected out-of-range value passed through, got %v", got)
	}
}
