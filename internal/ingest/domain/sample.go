package domain

import (
	"time"
)

// Sample represents a single temperature observation value object
type Sample struct {
	Timestamp   time.Time
	Temperature float64
}

// NewSample creates a new temperature sample
func NewSample(timestamp time.Time, temperature float64) Sample {
	return Sample{
		Timestamp:   timestamp,
		Temperature: temperature,
	}
}

// Series is an ordered sequence of samples in source append order. It is
// never re-sorted; the remote log's append order is trusted. A Series may
// be empty and every consumer must handle that case.
type Series []Sample

// Temperatures returns the temperature values in series order.
func (s Series) Temperatures() []float64 {
	values := make([]float64, len(s))
	for i, sample := range s {
		values[i] = sample.Temperature
	}
	return values
}

// ElapsedSeconds returns, for each sample, the seconds elapsed since the
// first sample of the series. Empty for an empty series.
func (s Series) ElapsedSeconds() []float64 {
	if len(s) == 0 {
		return nil
	}
	first := s[0].Timestamp
	elapsed := make([]float64, len(s))
	for i, sample := range s {
		elapsed[i] = sample.Timestamp.Sub(first).Seconds()
	}
	return elapsed
}

// TimeWindow is an optional inclusive [Start, End] filter bound. A nil bound
// leaves that side open.
type TimeWindow struct {
	Start *time.Time
	End   *time.Time
}

// IsOpen reports whether the window has no bounds at all.
func (w TimeWindow) IsOpen() bool {
	return w.Start == nil && w.End == nil
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w TimeWindow) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Filter returns the sub-sequence of the series whose timestamps fall within
// the window. Pure: the input series is never mutated and order is preserved.
// An empty result is not an error here; downstream stages report
// "insufficient data" instead.
func (w TimeWindow) Filter(series Series) Series {
	if w.IsOpen() {
		return series
	}

	filtered := make(Series, 0, len(series))
	for _, sample := range series {
		if w.Contains(sample.Timestamp) {
			filtered = append(filtered, sample)
		}
	}
	return filtered
}
