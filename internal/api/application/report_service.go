package application

import (
	"context"

	reportdomain "tempwatch-v0/internal/report/domain"
)

// ReportService provides run record queries for the viewer API
type ReportService struct {
	repo reportdomain.Repository
}

// NewReportService creates a new report query service
func NewReportService(repo reportdomain.Repository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// ListRuns returns the most recent runs, newest first
func (s *ReportService) ListRuns(ctx context.Context, limit int) ([]RunResponse, error) {
	records, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]RunResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromRecord(record))
	}
	return responses, nil
}

// LatestRun returns the most recent run, or nil when the log is empty
func (s *ReportService) LatestRun(ctx context.Context) (*RunResponse, error) {
	record, err := s.repo.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := FromRecord(*record)
	return &resp, nil
}
