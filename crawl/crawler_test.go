package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/bloom"
	"github.com/jobsift/jobsift/crawl"
	"github.com/jobsift/jobsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns the default tuning with all waits shrunk so tests run
// fast.
func testConfig() crawl.Config {
	cfg := crawl.DefaultConfig()
	cfg.TimeBudget = 5 * time.Second
	cfg.NavTimeout = time.Second
	cfg.SettleTimeout = time.Millisecond
	cfg.ReadyTimeout = time.Millisecond
	cfg.ScrollReadyTimeout = time.Millisecond
	cfg.SeedDelayMin = time.Millisecond
	cfg.SeedDelayMax = 2 * time.Millisecond
	return cfg
}

// fakeSite simulates a career page: a mutable pool of job links that grows
// on "load more" clicks and rotates on "next" clicks.
type fakeSite struct {
	mu         sync.Mutex
	url        string
	jobs       int // job links currently visible
	offset     int // first visible job id, advances on pagination
	growthLeft int // remaining load-more clicks that add jobs
	nextLeft   int // remaining next clicks that advance the page
	pageNum    int
}

func (s *fakeSite) page() *mock.Page {
	return &mock.Page{
		NavigateFn: func(ctx context.Context, url string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.url = url
			return nil
		},
		URLFn: func() string {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.url
		},
		TitleFn: func() string { return "Careers" },
		HTMLFn: func(ctx context.Context) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return fmt.Sprintf("<html><body>page %d with %d jobs</body></html>", s.pageNum, s.jobs), nil
		},
		AnchorsFn: func(ctx context.Context) ([]jobsift.Anchor, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			anchors := make([]jobsift.Anchor, 0, s.jobs)
			for i := range s.jobs {
				anchors = append(anchors, jobsift.Anchor{
					Href: fmt.Sprintf("/jobs/%d", s.offset+i),
					Text: fmt.Sprintf("Role %d", s.offset+i),
				})
			}
			return anchors, nil
		},
		ListingCountFn: func(ctx context.Context) (int, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.jobs, nil
		},
		ListingTextFn: func(ctx context.Context, cap int) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return fmt.Sprintf("page %d listing %d jobs from %d", s.pageNum, s.jobs, s.offset), nil
		},
		ScrollHeightFn:   func(ctx context.Context) (int, error) { return 3000, nil },
		ScrollToBottomFn: func(ctx context.Context) error { return nil },
		ClickFn: func(ctx context.Context, selectors ...string) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if strings.Contains(selectors[0], "Load more") {
				if s.growthLeft <= 0 {
					return false, nil
				}
				s.growthLeft--
				s.jobs += 10
				return true, nil
			}
			return s.clickNextLocked(), nil
		},
		ClickByRoleFn: func(ctx context.Context, role, namePattern string) (bool, error) {
			return false, nil
		},
	}
}

// clickNextLocked advances to the next results page if one remains. Callers
// must hold the mutex.
func (s *fakeSite) clickNextLocked() bool {
	if s.nextLeft <= 0 {
		return false
	}
	s.nextLeft--
	s.pageNum++
	s.offset += s.jobs
	s.url = fmt.Sprintf("https://example.com/careers?page=%d", s.pageNum)
	return true
}

// recordingStore collects snapshots and manifests in memory.
type recordingStore struct {
	mu        sync.Mutex
	snaps     []*jobsift.Snapshot
	manifests []*jobsift.Manifest
}

func (r *recordingStore) store() *mock.SnapshotStore {
	return &mock.SnapshotStore{
		SaveSnapshotFn: func(ctx context.Context, domain string, snap *jobsift.Snapshot) (map[string]string, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.snaps = append(r.snaps, snap)
			name := snap.SeedBase + "." + snap.PageID
			return map[string]string{
				"full":  domain + "/full/" + name + ".html",
				"focus": domain + "/reduced_focus/" + name + ".html",
			}, nil
		},
		WriteManifestFn: func(ctx context.Context, domain string, m *jobsift.Manifest) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.manifests = append(r.manifests, m)
			return nil
		},
	}
}

func (r *recordingStore) pageIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.snaps))
	for i, s := range r.snaps {
		ids[i] = s.PageID
	}
	return ids
}

func newCrawler(site *fakeSite, rec *recordingStore, cfg crawl.Config) *crawl.Crawler {
	return &crawl.Crawler{
		Browser: &mock.Browser{
			NewPageFn: func(ctx context.Context) (jobsift.Page, error) {
				return site.page(), nil
			},
		},
		Snapshots: rec.store(),
		Config:    cfg,
	}
}

func TestCrawlSeed(t *testing.T) {
	t.Parallel()

	t.Run("load more grows the page then stabilizes", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10, growthLeft: 2}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.NoError(t, err)

		assert.Equal(t, 2, pages)
		assert.Equal(t, crawl.StopNoNext, stop)
		assert.Equal(t, []string{"p001", "expanded"}, rec.pageIDs())

		// Landing snapshot holds the pre-expansion state, the expanded one the
		// grown state.
		assert.Equal(t, 30, site.jobs)

		require.Len(t, rec.manifests, 2)
		exp, pag := rec.manifests[0], rec.manifests[1]
		assert.Equal(t, jobsift.ModeExpansion, exp.Mode)
		assert.Equal(t, string(crawl.StopStable), exp.StopReason)
		assert.Equal(t, jobsift.ModePagination, pag.Mode)
		assert.Equal(t, string(crawl.StopNoNext), pag.StopReason)
		assert.Len(t, pag.Pages, 2)
		assert.Equal(t, "run1", pag.RunID)
		assert.Equal(t, 10, exp.Pages[0].Counts.UniqueJobs)
		assert.Equal(t, 30, exp.Pages[1].Counts.UniqueJobs)
	})

	t.Run("stops expansion at the jobs cap", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 120, growthLeft: 5}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		_, _, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.NoError(t, err)

		// No clicks happen, so nothing grew and no expanded snapshot exists.
		assert.Equal(t, []string{"p001"}, rec.pageIDs())
		assert.Equal(t, 5, site.growthLeft)
		assert.Equal(t, string(crawl.StopJobsCap), rec.manifests[0].StopReason)
	})

	t.Run("paginates until the pages cap", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10, nextLeft: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.NoError(t, err)

		assert.Equal(t, 3, pages)
		assert.Equal(t, crawl.StopPagesCap, stop)
		assert.Equal(t, []string{"p001", "p002", "p003"}, rec.pageIDs())
	})

	t.Run("stops pagination when next is exhausted", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10, nextLeft: 1}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.NoError(t, err)

		assert.Equal(t, 2, pages)
		assert.Equal(t, crawl.StopNoNext, stop)
	})

	t.Run("stops pagination on a dead next button", func(t *testing.T) {
		t.Parallel()

		// Next clicks register but nothing changes on the page.
		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())
		c.Browser = &mock.Browser{
			NewPageFn: func(ctx context.Context) (jobsift.Page, error) {
				p := site.page()
				p.ClickFn = func(ctx context.Context, selectors ...string) (bool, error) {
					return strings.Contains(selectors[0], "Next"), nil
				}
				return p, nil
			},
		}

		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.NoError(t, err)

		assert.Equal(t, 1, pages)
		assert.Equal(t, crawl.StopNoChange, stop)
	})

	t.Run("generic seed path takes its base name from the page title", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		_, _, err := c.CrawlSeed(context.Background(), "https://example.com/", "run1", nil)
		require.NoError(t, err)

		require.NotEmpty(t, rec.snaps)
		assert.True(t, strings.HasPrefix(rec.snaps[0].SeedBase, "careers__"),
			"base %q should come from the page title", rec.snaps[0].SeedBase)
	})

	t.Run("reports a failed mid-phase capture and keeps paginating", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10, nextLeft: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())
		inner := rec.store()
		c.Snapshots = &mock.SnapshotStore{
			SaveSnapshotFn: func(ctx context.Context, domain string, snap *jobsift.Snapshot) (map[string]string, error) {
				if snap.PageID == "p002" {
					return nil, jobsift.Errorf(jobsift.EINTERNAL, "disk full")
				}
				return inner.SaveSnapshotFn(ctx, domain, snap)
			},
			WriteManifestFn: inner.WriteManifestFn,
		}

		var events []crawl.ProgressEvent
		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1",
			func(e crawl.ProgressEvent) { events = append(events, e) })
		require.NoError(t, err)

		assert.Equal(t, 2, pages)
		assert.Equal(t, crawl.StopPagesCap, stop)
		assert.Equal(t, []string{"p001", "p003"}, rec.pageIDs())

		failures := 0
		for _, e := range events {
			if e.Type == crawl.ProgressCaptureFailed {
				failures++
				assert.Equal(t, "https://example.com/careers", e.Seed)
				assert.ErrorContains(t, e.Error, "p002")
				assert.ErrorContains(t, e.Error, "disk full")
			}
		}
		assert.Equal(t, 1, failures)
	})

	t.Run("navigation failure writes a nav_failed manifest", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		cfg := testConfig()
		cfg.NavAttempts = 2
		c := newCrawler(site, rec, cfg)

		attempts := 0
		c.Browser = &mock.Browser{
			NewPageFn: func(ctx context.Context) (jobsift.Page, error) {
				p := site.page()
				p.NavigateFn = func(ctx context.Context, url string) error {
					attempts++
					return jobsift.Errorf(jobsift.EINTERNAL, "net::ERR_CONNECTION_REFUSED")
				}
				return p, nil
			},
		}

		pages, stop, err := c.CrawlSeed(context.Background(), "https://example.com/careers", "run1", nil)
		require.Error(t, err)
		assert.Equal(t, jobsift.EINTERNAL, jobsift.ErrorCode(err))

		assert.Zero(t, pages)
		assert.Equal(t, crawl.StopNavFail, stop)
		assert.Equal(t, 2, attempts)

		require.Len(t, rec.manifests, 1)
		assert.Equal(t, string(crawl.StopNavFail), rec.manifests[0].StopReason)
		assert.Empty(t, rec.manifests[0].Pages)
	})
}

func TestCrawlAll(t *testing.T) {
	t.Parallel()

	t.Run("crawls seeds and reports progress", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		var events []crawl.ProgressEvent
		result, err := c.CrawlAll(context.Background(), []string{
			"https://example.com/careers",
			"https://example.com/jobs",
		}, func(e crawl.ProgressEvent) { events = append(events, e) })
		require.NoError(t, err)

		assert.Equal(t, 2, result.Seeds)
		assert.Zero(t, result.Failed)
		assert.Zero(t, result.Skipped)

		require.NotEmpty(t, events)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)
	})

	t.Run("skips seeds already in the seen set", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())
		c.Seen = bloom.NewSeenSet(1000, 0.01)

		seeds := []string{
			"https://example.com/careers",
			"https://example.com/careers#greenhouse",
		}
		result, err := c.CrawlAll(context.Background(), seeds, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("counts unparseable seeds as failed", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		result, err := c.CrawlAll(context.Background(), []string{"http://[::1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("all manifests of a run share its run id", func(t *testing.T) {
		t.Parallel()

		site := &fakeSite{jobs: 10}
		rec := &recordingStore{}
		c := newCrawler(site, rec, testConfig())

		_, err := c.CrawlAll(context.Background(), []string{
			"https://example.com/careers",
			"https://other.com/jobs",
		}, nil)
		require.NoError(t, err)

		require.NotEmpty(t, rec.manifests)
		runID := rec.manifests[0].RunID
		require.NotEmpty(t, runID)
		for _, m := range rec.manifests {
			assert.Equal(t, runID, m.RunID)
		}
	})
}
