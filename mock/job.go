package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.JobStore = (*JobStore)(nil)

// JobStore is a mock implementation of jobsift.JobStore.
type JobStore struct {
	UpsertJobsFn func(ctx context.Context, rows []jobsift.JobRow) error
	FindJobsFn   func(ctx context.Context, filter jobsift.JobFilter) ([]*jobsift.JobRow, error)
}

func (s *JobStore) UpsertJobs(ctx context.Context, rows []jobsift.JobRow) error {
	return s.UpsertJobsFn(ctx, rows)
}

func (s *JobStore) FindJobs(ctx context.Context, filter jobsift.JobFilter) ([]*jobsift.JobRow, error) {
	return s.FindJobsFn(ctx, filter)
}
