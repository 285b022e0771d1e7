package domain

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	ingestdomain "tempwatch-v0/internal/ingest/domain"
)

// Summary is a read-only snapshot of descriptive statistics over one series.
// Count == 0 is the "no data" sentinel: nothing else is computed.
// Variance is the sample variance (n-1 denominator); for fewer than two
// samples it is NaN and VarianceDefined is false.
type Summary struct {
	Count           int
	Mean            float64
	Variance        float64
	StdDev          float64
	Min             float64
	Max             float64
	VarianceDefined bool
}

// HasData reports whether the summary was computed from at least one sample.
func (s Summary) HasData() bool {
	return s.Count > 0
}

// Summarize computes descriptive statistics over the series. Safe on any
// input size; never divides by zero.
func Summarize(series ingestdomain.Series) Summary {
	n := len(series)
	if n == 0 {
		return Summary{}
	}

	temps := series.Temperatures()

	summary := Summary{
		Count:    n,
		Mean:     stat.Mean(temps, nil),
		Min:      floats.Min(temps),
		Max:      floats.Max(temps),
		Variance: math.NaN(),
		StdDev:   math.NaN(),
	}

	if n >= 2 {
		summary.Variance = stat.Variance(temps, nil)
		summary.StdDev = math.Sqrt(summary.Variance)
		summary.VarianceDefined = true
	}

	return summary
}
