package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jobsift/jobsift"
	main "github.com/jobsift/jobsift/cmd/jobsift"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("summarizes the batch", func(t *testing.T) {
		t.Parallel()

		pages := &mock.CapturedPageSource{
			ListCapturedPagesFn: func(_ context.Context, domain string) ([]jobsift.CapturedPage, error) {
				assert.Equal(t, "example.com", domain)
				return []jobsift.CapturedPage{
					{Base: "careers__aa.p001", HTML: "<html></html>", SourceURL: "https://example.com/careers"},
				}, nil
			},
			HasExtractionFn: func(_, _ string) bool { return false },
			WriteExtractionFn: func(_ context.Context, _, _ string, _ *jobsift.Extraction) (string, error) {
				return "", nil
			},
		}
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, _ string, _ jobsift.CompleteOptions) (string, error) {
				return `{"jobs": [{"title": "SWE", "job_url": "/jobs/1"}]}`, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Extractor: &extract.Extractor{
				Completer:   completer,
				Pages:       pages,
				RetryDelays: []time.Duration{},
			},
		}

		err := (&main.ExtractCmd{Domain: "example.com"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "careers__aa.p001: 1 jobs")
		assert.Contains(t, stdout.String(), "Extracted 1 jobs from 1 pages")
	})

	t.Run("reports per-page failures without failing the command", func(t *testing.T) {
		t.Parallel()

		pages := &mock.CapturedPageSource{
			ListCapturedPagesFn: func(_ context.Context, _ string) ([]jobsift.CapturedPage, error) {
				return []jobsift.CapturedPage{{Base: "careers__aa.p001", HTML: "<html></html>"}}, nil
			},
			HasExtractionFn: func(_, _ string) bool { return false },
			WriteExtractionFn: func(_ context.Context, _, _ string, _ *jobsift.Extraction) (string, error) {
				return "", jobsift.Errorf(jobsift.EINTERNAL, "disk full")
			},
		}
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, _ string, _ jobsift.CompleteOptions) (string, error) {
				return `{"jobs": []}`, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Extractor: &extract.Extractor{
				Completer:   completer,
				Pages:       pages,
				RetryDelays: []time.Duration{},
			},
		}

		err := (&main.ExtractCmd{Domain: "example.com"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "disk full")
		assert.Contains(t, stdout.String(), "1 failed")
	})
}
