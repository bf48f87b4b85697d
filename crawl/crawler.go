// Package crawl orchestrates career-page crawling. It drives a browser page
// through an expansion phase (load-more clicks and scrolling) and a
// pagination phase (next-page clicks), capturing reduced snapshots of every
// distinct result state along the way.
package crawl

import (
	"context"
	"crypto/sha1"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/bloom"
)

// Crawler orchestrates crawling of career-site seed URLs.
type Crawler struct {
	Browser     jobsift.Browser
	Reducer     jobsift.Reducer
	Snapshots   jobsift.SnapshotStore
	Seen        *bloom.SeenSet
	RateLimiter *DomainLimiter
	Config      Config
}

// Result holds the outcome of a crawl run.
type Result struct {
	Seeds    int
	Captured int
	Failed   int
	Skipped  int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type  ProgressType
	Seed  string
	Pages int
	Stop  StopReason
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSeedDone
	ProgressSeedFailed
	ProgressSeedSkipped
	ProgressFinished
	ProgressCaptureFailed
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// CrawlAll crawls every seed URL, grouped by domain so that one domain's
// seeds run sequentially with politeness delays while the run identifier
// ties all manifests together. Already-seen seeds are skipped via the Seen
// set when one is configured.
func (c *Crawler) CrawlAll(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	runID := uuid.NewString()
	result := &Result{Seeds: len(seeds)}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	byDomain := make(map[string][]string)
	var order []string
	for _, seed := range seeds {
		domain := Domain(seed)
		if domain == "" {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSeedFailed, Seed: seed, Error: fmt.Errorf("unparseable seed URL %q", seed)})
			}
			continue
		}
		if _, ok := byDomain[domain]; !ok {
			order = append(order, domain)
		}
		byDomain[domain] = append(byDomain[domain], seed)
	}

	for _, domain := range order {
		for i, seed := range byDomain[domain] {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			if c.Seen != nil && !c.Seen.Add(seed) {
				result.Skipped++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressSeedSkipped, Seed: seed})
				}
				continue
			}
			if i > 0 {
				if err := c.seedDelay(ctx); err != nil {
					return result, err
				}
			}
			if c.RateLimiter != nil {
				if err := c.RateLimiter.Wait(ctx, domain); err != nil {
					return result, err
				}
			}

			pages, stop, err := c.CrawlSeed(ctx, seed, runID, progress)
			if err != nil {
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressSeedFailed, Seed: seed, Stop: stop, Error: err})
				}
				continue
			}
			result.Captured += pages
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSeedDone, Seed: seed, Pages: pages, Stop: stop})
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return result, nil
}

// CrawlSeed crawls a single seed URL: navigate, capture the landing state,
// expand, then paginate. It returns the number of snapshots captured and the
// stop reason of the last phase. A manifest is written after each phase, the
// pagination one superseding the expansion one, so a crash mid-phase leaves
// the previous phase's manifest intact. A snapshot that cannot be saved
// mid-phase is reported through progress and the crawl moves on.
func (c *Crawler) CrawlSeed(ctx context.Context, seedURL, runID string, progress ProgressFunc) (int, StopReason, error) {
	domain := Domain(seedURL)
	seedBase := SeedBase(seedURL)

	page, err := c.Browser.NewPage(ctx)
	if err != nil {
		return 0, StopNavFail, jobsift.Errorf(jobsift.EINTERNAL, "open page for %s: %v", seedURL, err)
	}
	defer page.Close()

	if err := c.navigateWithRetry(ctx, page, seedURL); err != nil {
		m := c.manifest(seedBase, jobsift.ModeExpansion, StopNavFail, nil, runID)
		_ = c.Snapshots.WriteManifest(ctx, domain, m)
		return 0, StopNavFail, err
	}
	c.waitForJobs(ctx, page, seedURL, c.Config.ReadyTimeout)
	seedBase = BaseName(seedURL, page.Title())

	var entries []jobsift.ManifestEntry
	if entry, err := c.capture(ctx, page, domain, seedBase, seedURL, "p001"); err == nil {
		entries = append(entries, *entry)
	} else {
		return 0, StopNavFail, err
	}

	exp := c.expand(ctx, page, seedURL)
	if exp.grew {
		if entry, err := c.capture(ctx, page, domain, seedBase, seedURL, "expanded"); err == nil {
			entries = append(entries, *entry)
		} else if progress != nil {
			progress(ProgressEvent{Type: ProgressCaptureFailed, Seed: seedURL, Error: fmt.Errorf("capture expanded: %w", err)})
		}
	}
	if err := c.Snapshots.WriteManifest(ctx, domain, c.manifest(seedBase, jobsift.ModeExpansion, exp.stop, entries, runID)); err != nil {
		return len(entries), exp.stop, err
	}

	pag := c.paginate(ctx, page, seedURL, seedBase, domain, exp.final, progress)
	entries = append(entries, pag.entries...)
	if err := c.Snapshots.WriteManifest(ctx, domain, c.manifest(seedBase, jobsift.ModePagination, pag.stop, entries, runID)); err != nil {
		return len(entries), pag.stop, err
	}

	return len(entries), pag.stop, nil
}

// navigateWithRetry attempts navigation up to Config.NavAttempts times, each
// attempt bounded by Config.NavTimeout.
func (c *Crawler) navigateWithRetry(ctx context.Context, page jobsift.Page, seedURL string) error {
	attempts := c.Config.NavAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		navCtx, cancel := context.WithTimeout(ctx, c.Config.NavTimeout)
		err := page.Navigate(navCtx, seedURL)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return jobsift.Errorf(jobsift.EINTERNAL, "navigate %s: %v", seedURL, lastErr)
}

// capture renders all snapshot variants of the current page state and saves
// them, returning the manifest entry describing the saved files.
func (c *Crawler) capture(ctx context.Context, page jobsift.Page, domain, seedBase, seedURL, pageID string) (*jobsift.ManifestEntry, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, jobsift.Errorf(jobsift.EINTERNAL, "read page HTML for %s %s: %v", seedBase, pageID, err)
	}

	snap := &jobsift.Snapshot{
		SeedBase:   seedBase,
		PageID:     pageID,
		URL:        NormalizeURL(page.URL()),
		Title:      page.Title(),
		FullHTML:   html,
		SHA1:       fmt.Sprintf("%x", sha1.Sum([]byte(html))),
		CapturedAt: time.Now(),
	}

	if c.Reducer != nil {
		if focus, err := c.Reducer.Focus(html); err == nil {
			snap.FocusHTML = focus.HTML
			snap.Signals = focus.Signals
			if snap.Title == "" {
				snap.Title = focus.Title
			}
		}
		if lite, err := c.Reducer.Lite(html); err == nil {
			snap.LiteHTML = lite
		}
	}

	files, err := c.Snapshots.SaveSnapshot(ctx, domain, snap)
	if err != nil {
		return nil, err
	}

	counts := jobsift.PageCounts{
		UniqueJobs: len(JobLinks(ctx, page, seedURL, jobCountCap)),
	}
	if n, err := page.ListingCount(ctx); err == nil {
		counts.ListItems = n
	}

	return &jobsift.ManifestEntry{
		PageID:    pageID,
		Files:     files,
		Counts:    counts,
		Timestamp: time.Now().Unix(),
	}, nil
}

func (c *Crawler) manifest(seedBase, mode string, stop StopReason, entries []jobsift.ManifestEntry, runID string) *jobsift.Manifest {
	return &jobsift.Manifest{
		SeedBase:   seedBase,
		Mode:       mode,
		StopReason: string(stop),
		Pages:      entries,
		Config:     c.Config.asMap(mode),
		RunID:      runID,
		Timestamp:  time.Now().Unix(),
	}
}

// seedDelay sleeps a randomized politeness interval between seeds on the
// same domain.
func (c *Crawler) seedDelay(ctx context.Context) error {
	lo, hi := c.Config.SeedDelayMin, c.Config.SeedDelayMax
	if hi <= lo {
		hi = lo + time.Second
	}
	delay := lo + rand.N(hi-lo)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
