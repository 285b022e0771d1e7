package domain

import (
	"math"

	"gonum.org/v1/gonum/stat"

	ingestdomain "tempwatch-v0/internal/ingest/domain"
)

// FitStatus tags the outcome of one trend model fit. Callers must check it
// before touching the coefficients.
type FitStatus string

const (
	FitOK               FitStatus = "ok"
	FitInsufficientData FitStatus = "insufficient_data"
	FitNotApplicable    FitStatus = "not_applicable"
	FitFailed           FitStatus = "failed"
)

// LinearFit is the result of an ordinary least squares fit of temperature
// against elapsed seconds since the first sample.
type LinearFit struct {
	Status    FitStatus
	Slope     float64
	Intercept float64
	RSquared  float64
	Reason    string
}

// ExponentialFit is the result of fitting temperature = A * exp(B * t),
// t in elapsed seconds. Fitted by log-linearization, so it requires every
// temperature to be strictly positive.
type ExponentialFit struct {
	Status   FitStatus
	A        float64
	B        float64
	RSquared float64
	Reason   string
}

// TrendResult carries both model fits. A failure in one model never affects
// the other.
type TrendResult struct {
	Linear      LinearFit
	Exponential ExponentialFit
}

// FitTrends fits the linear and exponential trend models to the series.
// Fewer than two samples short-circuits both models to insufficient_data
// without invoking any solver. Degenerate input (zero spread in elapsed
// time) or non-finite coefficients downgrade only the affected model.
func FitTrends(series ingestdomain.Series) TrendResult {
	if len(series) < 2 {
		reason := "need at least 2 samples"
		return TrendResult{
			Linear:      LinearFit{Status: FitInsufficientData, Reason: reason},
			Exponential: ExponentialFit{Status: FitInsufficientData, Reason: reason},
		}
	}

	elapsed := series.ElapsedSeconds()
	temps := series.Temperatures()

	return TrendResult{
		Linear:      fitLinear(elapsed, temps),
		Exponential: fitExponential(elapsed, temps),
	}
}

func fitLinear(elapsed, temps []float64) LinearFit {
	if allEqual(elapsed) {
		return LinearFit{Status: FitFailed, Reason: "all samples share one timestamp"}
	}

	intercept, slope := stat.LinearRegression(elapsed, temps, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return LinearFit{Status: FitFailed, Reason: "regression produced non-finite coefficients"}
	}

	return LinearFit{
		Status:    FitOK,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  stat.RSquared(elapsed, temps, nil, intercept, slope),
	}
}

func fitExponential(elapsed, temps []float64) ExponentialFit {
	for _, t := range temps {
		if t <= 0 {
			return ExponentialFit{
				Status: FitNotApplicable,
				Reason: "non-positive temperature in series, log-linearization undefined",
			}
		}
	}

	if allEqual(elapsed) {
		return ExponentialFit{Status: FitFailed, Reason: "all samples share one timestamp"}
	}

	logTemps := make([]float64, len(temps))
	for i, t := range temps {
		logTemps[i] = math.Log(t)
	}

	logA, b := stat.LinearRegression(elapsed, logTemps, nil, false)
	a := math.Exp(logA)
	if !isFinite(a) || !isFinite(b) {
		return ExponentialFit{Status: FitFailed, Reason: "regression produced non-finite coefficients"}
	}

	return ExponentialFit{
		Status:   FitOK,
		A:        a,
		B:        b,
		RSquared: rSquaredOriginalScale(elapsed, temps, a, b),
	}
}

// Predict evaluates the fitted line at elapsed seconds t.
func (f LinearFit) Predict(t float64) float64 {
	return f.Slope*t + f.Intercept
}

// Predict evaluates the fitted curve at elapsed seconds t.
func (f ExponentialFit) Predict(t float64) float64 {
	return f.A * math.Exp(f.B*t)
}

// rSquaredOriginalScale computes R² of the exponential model against the
// raw temperatures, not the log-transformed ones the regression saw.
func rSquaredOriginalScale(elapsed, temps []float64, a, b float64) float64 {
	mean := stat.Mean(temps, nil)
	var rss, tss float64
	for i, t := range temps {
		predicted := a * math.Exp(b*elapsed[i])
		rss += (t - predicted) * (t - predicted)
		tss += (t - mean) * (t - mean)
	}
	if tss == 0 {
		if rss == 0 {
			return 1
		}
		return 0
	}
	return 1 - rss/tss
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
