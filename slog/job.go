package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
)

// Ensure LoggingJobStore implements jobsift.JobStore.
var _ jobsift.JobStore = (*LoggingJobStore)(nil)

// LoggingJobStore wraps a JobStore with debug logging.
type LoggingJobStore struct {
	next   jobsift.JobStore
	logger *slog.Logger
}

// NewLoggingJobStore creates a new LoggingJobStore.
func NewLoggingJobStore(next jobsift.JobStore, logger *slog.Logger) *LoggingJobStore {
	return &LoggingJobStore{next: next, logger: logger}
}

// UpsertJobs delegates to the wrapped store and logs the operation.
func (s *LoggingJobStore) UpsertJobs(ctx context.Context, rows []jobsift.JobRow) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("job upsert",
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertJobs(ctx, rows)
}

// FindJobs delegates to the wrapped store and logs the operation.
func (s *LoggingJobStore) FindJobs(ctx context.Context, filter jobsift.JobFilter) (rows []*jobsift.JobRow, err error) {
	defer func(begin time.Time) {
		s.logger.Info("job query",
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindJobs(ctx, filter)
}
