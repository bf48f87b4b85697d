package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var (
	_ jobsift.SnapshotStore      = (*SnapshotStore)(nil)
	_ jobsift.CapturedPageSource = (*CapturedPageSource)(nil)
	_ jobsift.Reducer            = (*Reducer)(nil)
)

// SnapshotStore is a mock implementation of jobsift.SnapshotStore.
type SnapshotStore struct {
	SaveSnapshotFn  func(ctx context.Context, domain string, snap *jobsift.Snapshot) (map[string]string, error)
	WriteManifestFn func(ctx context.Context, domain string, m *jobsift.Manifest) error
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, domain string, snap *jobsift.Snapshot) (map[string]string, error) {
	return s.SaveSnapshotFn(ctx, domain, snap)
}

func (s *SnapshotStore) WriteManifest(ctx context.Context, domain string, m *jobsift.Manifest) error {
	return s.WriteManifestFn(ctx, domain, m)
}

// CapturedPageSource is a mock implementation of jobsift.CapturedPageSource.
type CapturedPageSource struct {
	ListCapturedPagesFn func(ctx context.Context, domain string) ([]jobsift.CapturedPage, error)
	HasExtractionFn     func(domain, base string) bool
	WriteExtractionFn   func(ctx context.Context, domain, base string, ex *jobsift.Extraction) (string, error)
}

func (s *CapturedPageSource) ListCapturedPages(ctx context.Context, domain string) ([]jobsift.CapturedPage, error) {
	return s.ListCapturedPagesFn(ctx, domain)
}

func (s *CapturedPageSource) HasExtraction(domain, base string) bool {
	if s.HasExtractionFn == nil {
		return false
	}
	return s.HasExtractionFn(domain, base)
}

func (s *CapturedPageSource) WriteExtraction(ctx context.Context, domain, base string, ex *jobsift.Extraction) (string, error) {
	return s.WriteExtractionFn(ctx, domain, base, ex)
}

// Reducer is a mock implementation of jobsift.Reducer.
type Reducer struct {
	FocusFn func(html string) (*jobsift.ReduceResult, error)
	LiteFn  func(html string) (string, error)
}

func (r *Reducer) Focus(html string) (*jobsift.ReduceResult, error) {
	return r.FocusFn(html)
}

func (r *Reducer) Lite(html string) (string, error) {
	return r.LiteFn(html)
}
