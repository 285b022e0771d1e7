package infrastructure

import (
	"context"
	"database/sql"
	"math"
	"strings"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
	"tempwatch-v0/internal/report/domain"
)

// Repository implements the run log repository interface using SQLite
type Repository struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// NewRepository creates a new SQLite run log repository
func NewRepository(readDB, writeDB *sql.DB) *Repository {
	return &Repository{
		readDB:  readDB,
		writeDB: writeDB,
	}
}

const insertRunQuery = `insert into runs (
	id, started_at, finished_at, host, remote_path, status,
	parsed_samples, skipped_lines, window_samples,
	mean_temp, variance,
	linear_status, slope, intercept, linear_r2,
	exp_status, exp_a, exp_b, exp_r2,
	plot_path, degraded, message
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertRun appends one run record to the run log.
func (r *Repository) InsertRun(ctx context.Context, record domain.RunRecord) error {
	var mean, variance sql.NullFloat64
	if record.Summary.HasData() {
		mean = nullable(record.Summary.Mean)
		if record.Summary.VarianceDefined {
			variance = nullable(record.Summary.Variance)
		}
	}

	var slope, intercept, linearR2 sql.NullFloat64
	if record.Trend.Linear.Status == analysisdomain.FitOK {
		slope = nullable(record.Trend.Linear.Slope)
		intercept = nullable(record.Trend.Linear.Intercept)
		linearR2 = nullable(record.Trend.Linear.RSquared)
	}

	var expA, expB, expR2 sql.NullFloat64
	if record.Trend.Exponential.Status == analysisdomain.FitOK {
		expA = nullable(record.Trend.Exponential.A)
		expB = nullable(record.Trend.Exponential.B)
		expR2 = nullable(record.Trend.Exponential.RSquared)
	}

	_, err := r.writeDB.ExecContext(ctx, insertRunQuery,
		record.ID, record.StartedAt, record.FinishedAt,
		record.Host, record.RemotePath, string(record.Status),
		record.ParsedSamples, record.SkippedLines, record.WindowSamples,
		mean, variance,
		string(record.Trend.Linear.Status), slope, intercept, linearR2,
		string(record.Trend.Exponential.Status), expA, expB, expR2,
		record.PlotPath, record.DegradedList(), record.Message,
	)
	if err != nil {
		return &domain.OutputError{Target: "run log", Err: err}
	}

	return nil
}

const listRunsQuery = `select
	id, started_at, finished_at, host, remote_path, status,
	parsed_samples, skipped_lines, window_samples,
	mean_temp, variance,
	linear_status, slope, intercept, linear_r2,
	exp_status, exp_a, exp_b, exp_r2,
	plot_path, degraded, message
from runs
order by started_at desc
limit ?`

// ListRuns returns the most recent run records, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.readDB.QueryContext(ctx, listRunsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// LatestRun returns the most recent run record, or nil when the log is empty.
func (r *Repository) LatestRun(ctx context.Context) (*domain.RunRecord, error) {
	records, err := r.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (domain.RunRecord, error) {
	var record domain.RunRecord
	var status, linearStatus, expStatus, degraded string
	var mean, variance, slope, intercept, linearR2, expA, expB, expR2 sql.NullFloat64

	err := row.Scan(
		&record.ID, &record.StartedAt, &record.FinishedAt,
		&record.Host, &record.RemotePath, &status,
		&record.ParsedSamples, &record.SkippedLines, &record.WindowSamples,
		&mean, &variance,
		&linearStatus, &slope, &intercept, &linearR2,
		&expStatus, &expA, &expB, &expR2,
		&record.PlotPath, &degraded, &record.Message,
	)
	if err != nil {
		return record, err
	}

	record.Status = domain.RunStatus(status)
	if degraded != "" {
		record.Degraded = strings.Split(degraded, ",")
	}

	record.Summary.Count = record.WindowSamples
	record.Summary.Variance = math.NaN()
	record.Summary.StdDev = math.NaN()
	if mean.Valid {
		record.Summary.Mean = mean.Float64
	}
	if variance.Valid {
		record.Summary.Variance = variance.Float64
		record.Summary.StdDev = math.Sqrt(variance.Float64)
		record.Summary.VarianceDefined = true
	}

	record.Trend.Linear.Status = analysisdomain.FitStatus(linearStatus)
	if slope.Valid {
		record.Trend.Linear.Slope = slope.Float64
	}
	if intercept.Valid {
		record.Trend.Linear.Intercept = intercept.Float64
	}
	if linearR2.Valid {
		record.Trend.Linear.RSquared = linearR2.Float64
	}

	record.Trend.Exponential.Status = analysisdomain.FitStatus(expStatus)
	if expA.Valid {
		record.Trend.Exponential.A = expA.Float64
	}
	if expB.Valid {
		record.Trend.Exponential.B = expB.Float64
	}
	if expR2.Valid {
		record.Trend.Exponential.RSquared = expR2.Float64
	}

	return record, nil
}

// nullable wraps a float for storage, mapping non-finite values to NULL so
// the driver never sees NaN.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
