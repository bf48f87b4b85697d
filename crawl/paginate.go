package crawl

import (
	"context"
	"fmt"

	"github.com/jobsift/jobsift"
)

// paginateResult summarizes one pagination phase.
type paginateResult struct {
	entries []jobsift.ManifestEntry
	stop    StopReason
}

// paginate walks numbered pagination by clicking "next" until it runs out.
// The first page is assumed already captured, so the walk starts at page
// index 2. Pagination is strict about progress: the first "next" click that
// leaves the fingerprint unchanged ends the phase rather than retrying,
// since a dead next button on page N is dead on page N+1 too. A page state
// whose snapshot fails to save is reported through progress but does not
// stop the walk.
func (c *Crawler) paginate(ctx context.Context, page jobsift.Page, seedURL, seedBase, domain string, start jobsift.Fingerprint, progress ProgressFunc) paginateResult {
	res := paginateResult{stop: StopPagesCap}
	fp := start
	pagesSeen := 1

	for pagesSeen < c.Config.PagesMax {
		if ctx.Err() != nil {
			res.stop = StopNoNext
			break
		}
		if !c.tryClickNext(ctx, page) {
			res.stop = StopNoNext
			break
		}

		page.WaitSettled(ctx, c.Config.SettleTimeout)
		c.waitForJobs(ctx, page, seedURL, c.Config.ReadyTimeout)

		after := Fingerprint(ctx, page, seedURL)
		ok, _ := jobsift.Progressed(fp, after)
		if !ok {
			res.stop = StopNoChange
			break
		}

		pagesSeen++
		pageID := fmt.Sprintf("p%03d", pagesSeen)
		entry, err := c.capture(ctx, page, domain, seedBase, seedURL, pageID)
		if err == nil {
			res.entries = append(res.entries, *entry)
		} else if progress != nil {
			progress(ProgressEvent{Type: ProgressCaptureFailed, Seed: seedURL, Error: fmt.Errorf("capture %s: %w", pageID, err)})
		}
		fp = after
	}

	return res
}
