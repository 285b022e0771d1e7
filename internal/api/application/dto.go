package application

import (
	"time"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
	reportdomain "tempwatch-v0/internal/report/domain"
)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// FitResponse is the JSON view of one trend model fit
type FitResponse struct {
	Status    string   `json:"status"`
	Slope     *float64 `json:"slope,omitempty"`
	Intercept *float64 `json:"intercept,omitempty"`
	A         *float64 `json:"a,omitempty"`
	B         *float64 `json:"b,omitempty"`
	RSquared  *float64 `json:"r_squared,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// RunResponse is the JSON view of one run record
type RunResponse struct {
	ID            string      `json:"id"`
	StartedAt     time.Time   `json:"started_at"`
	FinishedAt    time.Time   `json:"finished_at"`
	Host          string      `json:"host"`
	RemotePath    string      `json:"remote_path"`
	Status        string      `json:"status"`
	ParsedSamples int         `json:"parsed_samples"`
	SkippedLines  int         `json:"skipped_lines"`
	WindowSamples int         `json:"window_samples"`
	Mean          *float64    `json:"mean,omitempty"`
	Variance      *float64    `json:"variance,omitempty"`
	Linear        FitResponse `json:"linear"`
	Exponential   FitResponse `json:"exponential"`
	PlotPath      string      `json:"plot_path,omitempty"`
	Degraded      []string    `json:"degraded,omitempty"`
	Message       string      `json:"message,omitempty"`
}

// FromRecord converts a run record to its JSON view
func FromRecord(record reportdomain.RunRecord) RunResponse {
	resp := RunResponse{
		ID:            record.ID,
		StartedAt:     record.StartedAt,
		FinishedAt:    record.FinishedAt,
		Host:          record.Host,
		RemotePath:    record.RemotePath,
		Status:        string(record.Status),
		ParsedSamples: record.ParsedSamples,
		SkippedLines:  record.SkippedLines,
		WindowSamples: record.WindowSamples,
		Linear:        linearResponse(record.Trend.Linear),
		Exponential:   exponentialResponse(record.Trend.Exponential),
		PlotPath:      record.PlotPath,
		Degraded:      record.Degraded,
		Message:       record.Message,
	}

	if record.Summary.HasData() {
		mean := record.Summary.Mean
		resp.Mean = &mean
		if record.Summary.VarianceDefined {
			variance := record.Summary.Variance
			resp.Variance = &variance
		}
	}

	return resp
}

func linearResponse(fit analysisdomain.LinearFit) FitResponse {
	resp := FitResponse{
		Status: string(fit.Status),
		Reason: fit.Reason,
	}
	if fit.Status == analysisdomain.FitOK {
		slope, intercept, r2 := fit.Slope, fit.Intercept, fit.RSquared
		resp.Slope = &slope
		resp.Intercept = &intercept
		resp.RSquared = &r2
	}
	return resp
}

func exponentialResponse(fit analysisdomain.ExponentialFit) FitResponse {
	resp := FitResponse{
		Status: string(fit.Status),
		Reason: fit.Reason,
	}
	if fit.Status == analysisdomain.FitOK {
		a, b, r2 := fit.A, fit.B, fit.RSquared
		resp.A = &a
		resp.B = &b
		resp.RSquared = &r2
	}
	return resp
}
