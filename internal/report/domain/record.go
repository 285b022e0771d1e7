package domain

import (
	"fmt"
	"strings"
	"time"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
)

// RunStatus is the overall outcome of one pipeline invocation.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunDegraded  RunStatus = "degraded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is the durable record of one pipeline run: what was fetched,
// what survived the window, what was computed and which stages degraded.
// One row per run is appended to the run log, success or not, so an operator
// can tell "no data in window" from "host unreachable" without re-running.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Host       string
	RemotePath string
	Status     RunStatus

	ParsedSamples int
	SkippedLines  int
	WindowSamples int

	Summary analysisdomain.Summary
	Trend   analysisdomain.TrendResult

	PlotPath string
	Degraded []string
	Message  string
}

// MarkDegraded records a degraded stage and downgrades a completed run.
func (r *RunRecord) MarkDegraded(stage string) {
	r.Degraded = append(r.Degraded, stage)
	if r.Status == RunCompleted {
		r.Status = RunDegraded
	}
}

// DegradedList joins the degraded stage names for storage and display.
func (r *RunRecord) DegradedList() string {
	return strings.Join(r.Degraded, ",")
}

// SummaryText renders the operator-facing report.
func (r *RunRecord) SummaryText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CPU temperature report for %s:%s\n", r.Host, r.RemotePath)
	fmt.Fprintf(&b, "  samples: %d parsed, %d skipped, %d in window\n",
		r.ParsedSamples, r.SkippedLines, r.WindowSamples)

	if !r.Summary.HasData() {
		b.WriteString("  statistics: no data in window\n")
	} else {
		fmt.Fprintf(&b, "  mean: %.2f°C  min: %.2f°C  max: %.2f°C\n",
			r.Summary.Mean, r.Summary.Min, r.Summary.Max)
		if r.Summary.VarianceDefined {
			fmt.Fprintf(&b, "  variance: %.2f  stddev: %.2f\n", r.Summary.Variance, r.Summary.StdDev)
		} else {
			b.WriteString("  variance: undefined (fewer than 2 samples)\n")
		}
	}

	lin := r.Trend.Linear
	if lin.Status == analysisdomain.FitOK {
		fmt.Fprintf(&b, "  linear trend: %.4f°C/s (%.2f°C/h), intercept %.2f°C, R²=%.3f\n",
			lin.Slope, lin.Slope*3600, lin.Intercept, lin.RSquared)
	} else {
		fmt.Fprintf(&b, "  linear trend: %s (%s)\n", lin.Status, lin.Reason)
	}

	exp := r.Trend.Exponential
	if exp.Status == analysisdomain.FitOK {
		fmt.Fprintf(&b, "  exponential trend: %.2f * exp(%.6f * t), R²=%.3f\n",
			exp.A, exp.B, exp.RSquared)
	} else {
		fmt.Fprintf(&b, "  exponential trend: %s (%s)\n", exp.Status, exp.Reason)
	}

	if r.Message != "" {
		fmt.Fprintf(&b, "  error: %s\n", r.Message)
	}
	if r.PlotPath != "" {
		fmt.Fprintf(&b, "  chart: %s\n", r.PlotPath)
	}
	if len(r.Degraded) > 0 {
		fmt.Fprintf(&b, "  degraded stages: %s\n", r.DegradedList())
	}

	return b.String()
}
