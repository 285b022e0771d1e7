package application

import (
	"context"

	"tempwatch-v0/internal/infrastructure/logger"
	"tempwatch-v0/internal/ingest/domain"
)

// Service fetches the remote log and parses it into a series
type Service struct {
	logger    *logger.Logger
	retriever domain.Retriever
}

// NewService creates a new ingest service
func NewService(logger *logger.Logger, retriever domain.Retriever) *Service {
	return &Service{
		logger:    logger,
		retriever: retriever,
	}
}

// FetchSeries retrieves the remote log snapshot and parses it. Errors from
// either step are fatal to the run: ConnectionError / RemoteFileError from
// the retriever, EmptyDatasetError when nothing in the file parsed.
func (s *Service) FetchSeries(ctx context.Context) (domain.ParseResult, error) {
	s.logger.Debug("Fetching remote log")
	raw, err := s.retriever.Fetch(ctx)
	if err != nil {
		return domain.ParseResult{}, err
	}
	s.logger.Debug("Fetched remote log", "bytes", len(raw))

	result, err := domain.ParseLog(raw)
	if err != nil {
		return result, err
	}

	if result.Skipped > 0 {
		s.logger.Warn("Skipped malformed log lines", "skipped", result.Skipped, "lines", result.Lines)
	}
	s.logger.Info("Parsed remote log", "samples", len(result.Series), "lines", result.Lines, "skipped", result.Skipped)

	return result, nil
}
