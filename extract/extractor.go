// Package extract turns captured career-page snapshots into normalized job
// records: model completion, JSON repair, field normalization,
// deduplication, and persistence.
package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jobsift/jobsift"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxHTMLChars bounds how much page HTML goes into one model prompt.
const DefaultMaxHTMLChars = 250_000

// DefaultRetryDelays returns the backoff delays for completion retries:
// 2s, 4s, 8s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
}

// Extractor orchestrates job extraction from captured pages.
type Extractor struct {
	Completer jobsift.Completer
	Pages     jobsift.CapturedPageSource

	// Converter, when set, shrinks oversized HTML to Markdown before
	// prompting instead of hard-truncating it.
	Converter jobsift.Converter

	// Jobs, when set, receives the extracted rows. Persistence failures are
	// reported per page but never abort the batch.
	Jobs jobsift.JobStore

	// RetryDelays overrides the completion backoff schedule. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// MaxHTMLChars overrides the prompt HTML budget. Zero means
	// DefaultMaxHTMLChars.
	MaxHTMLChars int

	// Concurrency bounds parallel page extractions. Zero means 2.
	Concurrency int

	// Overwrite recomputes extractions that already exist on disk.
	Overwrite bool
}

// Result holds the outcome of a batch extraction.
type Result struct {
	Pages     int
	Extracted int
	Skipped   int
	Failed    int
	Jobs      int
}

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type  ProgressType
	Base  string
	Jobs  int
	Stats jobsift.DedupStats
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPageDone
	ProgressPageSkipped
	ProgressPageFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting extraction progress.
type ProgressFunc func(event ProgressEvent)

// ExtractDomain extracts jobs from every captured focus page of a domain.
// Pages run concurrently up to Concurrency; a failing page is counted and
// the rest continue.
func (e *Extractor) ExtractDomain(ctx context.Context, domain string, progress ProgressFunc) (*Result, error) {
	pages, err := e.Pages.ListCapturedPages(ctx, domain)
	if err != nil {
		return nil, err
	}

	result := &Result{Pages: len(pages)}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, page := range pages {
		g.Go(func() error {
			ex, stats, err := e.ExtractPage(gctx, domain, page)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressPageFailed, Base: page.Base, Error: err})
				}
			case ex == nil:
				result.Skipped++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressPageSkipped, Base: page.Base})
				}
			default:
				result.Extracted++
				result.Jobs += len(ex.Jobs)
				if progress != nil {
					progress(ProgressEvent{Type: ProgressPageDone, Base: page.Base, Jobs: len(ex.Jobs), Stats: stats})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return result, nil
}

// ExtractPage extracts jobs from one captured page and writes the result
// envelope. It returns nil without error when the page already has an
// extraction and Overwrite is off.
func (e *Extractor) ExtractPage(ctx context.Context, domain string, page jobsift.CapturedPage) (*jobsift.Extraction, jobsift.DedupStats, error) {
	var stats jobsift.DedupStats

	if !e.Overwrite && e.Pages.HasExtraction(domain, page.Base) {
		return nil, stats, nil
	}

	ex, stats := e.ExtractHTML(ctx, page.HTML, page.SourceURL, page.PageTitle)
	absolutizeJobURLs(ex, page.SourceURL, domain)

	if _, err := e.Pages.WriteExtraction(ctx, domain, page.Base, ex); err != nil {
		return nil, stats, err
	}

	if e.Jobs != nil && len(ex.Jobs) > 0 {
		rows := rowsFor(ex, domain, page.SourceURL, page.PageTitle)
		if len(rows) > 0 {
			if err := e.Jobs.UpsertJobs(ctx, rows); err != nil {
				return ex, stats, jobsift.Errorf(jobsift.EINTERNAL, "upsert jobs for %s: %v", page.Base, err)
			}
		}
	}

	return ex, stats, nil
}

// ExtractHTML runs the model over page HTML and returns a normalized,
// deduplicated extraction envelope. Failures never escape as errors: the
// envelope always exists, with Error set when nothing could be parsed.
func (e *Extractor) ExtractHTML(ctx context.Context, html, sourceURL, pageTitle string) (*jobsift.Extraction, jobsift.DedupStats) {
	var stats jobsift.DedupStats
	content := e.fitToBudget(html)

	prompt := fmt.Sprintf("%s\n\nReturn compact JSON on a single line if possible.\n\n=== HTML START ===\n%s\n=== HTML END ===\n", extractionPrompt, content)

	text, err := e.complete(ctx, prompt)
	if err != nil {
		return &jobsift.Extraction{
			SourceURL: sourceURL,
			PageTitle: pageTitle,
			Jobs:      []jobsift.Job{},
			Error:     err.Error(),
		}, stats
	}

	parsed, err := ParseRobust(text)
	if err != nil {
		parsed, err = e.fixJSON(ctx, text)
		if err != nil {
			return &jobsift.Extraction{
				SourceURL: sourceURL,
				PageTitle: pageTitle,
				Jobs:      []jobsift.Job{},
				Error:     "model returned non-JSON output; all repair attempts failed",
			}, stats
		}
	}

	if s, ok := parsed["source_url"].(string); !ok || s == "" {
		parsed["source_url"] = sourceURL
	}
	if s, ok := parsed["page_title"].(string); !ok || s == "" {
		parsed["page_title"] = pageTitle
	}

	ex, stats := NormalizeAndDedupe(parsed)
	if ex.Jobs == nil {
		ex.Jobs = []jobsift.Job{}
	}
	return ex, stats
}

// fitToBudget keeps prompt HTML within the character budget, preferring a
// Markdown conversion over a hard truncation when a converter is wired.
func (e *Extractor) fitToBudget(html string) string {
	budget := e.MaxHTMLChars
	if budget <= 0 {
		budget = DefaultMaxHTMLChars
	}
	if len(html) <= budget {
		return html
	}
	if e.Converter != nil {
		if md, err := e.Converter.Convert(html); err == nil && len(md) < len(html) {
			html = md
		}
	}
	if len(html) > budget {
		html = html[:budget]
	}
	return html
}

// complete calls the model with exponential backoff retries.
func (e *Extractor) complete(ctx context.Context, prompt string) (string, error) {
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	opts := jobsift.CompleteOptions{Temperature: 0, JSONResponse: true}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		text, err := e.Completer.Complete(ctx, prompt, opts)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err

		if attempt >= len(delays) {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}

// fixJSON asks the model to repair its own malformed output.
func (e *Extractor) fixJSON(ctx context.Context, bad string) (map[string]any, error) {
	text, err := e.complete(ctx, fixerPrompt+bad)
	if err != nil {
		return nil, err
	}
	return ParseRobust(text)
}

// absolutizeJobURLs resolves relative job URLs against the source page,
// falling back to the domain when no source URL was recorded.
func absolutizeJobURLs(ex *jobsift.Extraction, sourceURL, domain string) {
	for i := range ex.Jobs {
		ex.Jobs[i].JobURL = absolutizeURL(ex.Jobs[i].JobURL, sourceURL, domain)
	}
}

func absolutizeURL(jobURL, sourceURL, domain string) string {
	jobURL = strings.TrimSpace(jobURL)
	if jobURL == "" || strings.HasPrefix(jobURL, "http://") || strings.HasPrefix(jobURL, "https://") {
		return jobURL
	}

	base := sourceURL
	if base == "" && domain != "" {
		base = "https://" + domain
	}
	if base == "" {
		return jobURL
	}

	bu, err := url.Parse(base)
	if err != nil {
		return jobURL
	}
	ref, err := url.Parse(jobURL)
	if err != nil {
		return jobURL
	}
	return bu.ResolveReference(ref).String()
}

// rowsFor converts an extraction's jobs into persistable rows, dropping the
// ones that fail validation (no URL or no title).
func rowsFor(ex *jobsift.Extraction, domain, sourceURL, pageTitle string) []jobsift.JobRow {
	rows := make([]jobsift.JobRow, 0, len(ex.Jobs))
	for _, j := range ex.Jobs {
		row := jobsift.JobRow{
			JobURL:          j.JobURL,
			Title:           j.Title,
			Company:         j.Company,
			Location:        j.Location,
			TeamOrCategory:  j.TeamOrCategory,
			EmploymentType:  j.EmploymentType,
			DatePostedRaw:   j.DatePosted,
			RequisitionID:   j.RequisitionID,
			OfficeOrRemote:  j.OfficeOrRemote,
			SeniorityLevel:  j.SeniorityLevel,
			SeniorityBucket: j.SeniorityBucket,
			SourceDomain:    domain,
			SourcePageURL:   sourceURL,
			SourcePageTitle: pageTitle,
			Extra:           j.Extra,
		}
		if row.SourcePageURL == "" {
			row.SourcePageURL = ex.SourceURL
		}
		if row.SourcePageTitle == "" {
			row.SourcePageTitle = ex.PageTitle
		}
		if err := row.Validate(); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
