package domain

import (
	"context"
)

// Repository is the append-only run log.
type Repository interface {
	InsertRun(ctx context.Context, record RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	LatestRun(ctx context.Context) (*RunRecord, error)
}
