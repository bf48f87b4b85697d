package extract_test

import (
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	t.Parallel()

	t.Run("collapses jobs sharing a URL case-insensitively", func(t *testing.T) {
		t.Parallel()

		jobs := []jobsift.Job{
			{Title: "SWE", JobURL: "https://example.com/jobs/1"},
			{Title: "Software Engineer", JobURL: "https://EXAMPLE.com/jobs/1"},
		}
		out, stats := extract.Dedupe(jobs)
		require.Len(t, out, 1)
		assert.Equal(t, 2, stats.InputJobs)
		assert.Equal(t, 1, stats.DedupedOut)
		assert.Equal(t, 1, stats.DuplicatesRemoved)
	})

	t.Run("falls back to requisition id then title and location", func(t *testing.T) {
		t.Parallel()

		jobs := []jobsift.Job{
			{Title: "SWE", RequisitionID: "R-100"},
			{Title: "Software Engineer", RequisitionID: "r-100"},
			{Title: "Designer", Location: "NYC"},
			{Title: "designer", Location: "nyc"},
			{Title: "Designer", Location: "London"},
		}
		out, stats := extract.Dedupe(jobs)
		assert.Len(t, out, 3)
		assert.Equal(t, 2, stats.DuplicatesRemoved)
	})

	t.Run("keeps the richer duplicate", func(t *testing.T) {
		t.Parallel()

		sparse := jobsift.Job{Title: "SWE", JobURL: "https://example.com/jobs/1"}
		rich := jobsift.Job{
			Title: "SWE", JobURL: "https://example.com/jobs/1",
			Location: "Remote", EmploymentType: "Full-time",
			Extra: map[string]any{"job_family": "Engineering"},
		}

		out, _ := extract.Dedupe([]jobsift.Job{sparse, rich})
		require.Len(t, out, 1)
		assert.Equal(t, "Remote", out[0].Location)
	})

	t.Run("on a richness tie the first occurrence wins", func(t *testing.T) {
		t.Parallel()

		first := jobsift.Job{Title: "SWE", JobURL: "https://example.com/jobs/1", Location: "NYC"}
		second := jobsift.Job{Title: "SWE", JobURL: "https://example.com/jobs/1", Company: "Acme"}

		out, _ := extract.Dedupe([]jobsift.Job{first, second})
		require.Len(t, out, 1)
		assert.Equal(t, "NYC", out[0].Location)
		assert.Empty(t, out[0].Company)
	})

	t.Run("preserves first-occurrence order", func(t *testing.T) {
		t.Parallel()

		jobs := []jobsift.Job{
			{Title: "A", JobURL: "https://example.com/a"},
			{Title: "B", JobURL: "https://example.com/b"},
			{Title: "A richer", JobURL: "https://example.com/a", Location: "Remote"},
			{Title: "C", JobURL: "https://example.com/c"},
		}
		out, _ := extract.Dedupe(jobs)
		require.Len(t, out, 3)
		assert.Equal(t, "https://example.com/a", out[0].JobURL)
		assert.Equal(t, "https://example.com/b", out[1].JobURL)
		assert.Equal(t, "https://example.com/c", out[2].JobURL)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		jobs := []jobsift.Job{
			{Title: "A", JobURL: "https://example.com/a"},
			{Title: "A", JobURL: "https://example.com/a"},
			{Title: "B", JobURL: "https://example.com/b"},
		}
		once, _ := extract.Dedupe(jobs)
		twice, stats := extract.Dedupe(once)
		assert.Equal(t, once, twice)
		assert.Zero(t, stats.DuplicatesRemoved)
	})
}

func TestNormalizeAndDedupe(t *testing.T) {
	t.Parallel()

	t.Run("builds the envelope from parsed output", func(t *testing.T) {
		t.Parallel()

		parsed := map[string]any{
			"source_url": " https://example.com/careers ",
			"page_title": "Careers  at  Acme",
			"jobs": []any{
				map[string]any{"title": "SWE", "job_url": "/jobs/1"},
				map[string]any{"title": "SWE", "job_url": "/jobs/1"},
				"not a job",
			},
		}

		ex, stats := extract.NormalizeAndDedupe(parsed)
		assert.Equal(t, "https://example.com/careers", ex.SourceURL)
		assert.Equal(t, "Careers at Acme", ex.PageTitle)
		require.Len(t, ex.Jobs, 1)
		assert.Equal(t, 3, stats.InputJobs)
		assert.Equal(t, 1, stats.DedupedOut)
		assert.Equal(t, 1, stats.DuplicatesRemoved)
	})

	t.Run("tolerates a missing jobs list", func(t *testing.T) {
		t.Parallel()

		ex, stats := extract.NormalizeAndDedupe(map[string]any{"jobs": "oops"})
		assert.Empty(t, ex.Jobs)
		assert.Zero(t, stats.InputJobs)
	})
}
