package crawl

import (
	"context"
	"time"

	"github.com/jobsift/jobsift"
)

// expandResult summarizes one expansion phase.
type expandResult struct {
	// grew reports whether any click or scroll produced new content, which
	// decides whether an "expanded" snapshot is worth capturing.
	grew bool

	stop    StopReason
	clicks  int
	scrolls int
	final   jobsift.Fingerprint
}

// expand grows the page in place until a stop condition fires: enough job
// links, time budget spent, or the page stops responding to clicks and
// scrolls. Each round tries a "load more" click first and falls back to a
// scroll; a round where neither moves the fingerprint counts against the
// no-change cap.
func (c *Crawler) expand(ctx context.Context, page jobsift.Page, seedURL string) expandResult {
	res := expandResult{stop: StopStable}
	deadline := time.Now().Add(c.Config.TimeBudget)
	fp := Fingerprint(ctx, page, seedURL)
	noChange := 0

	for {
		if len(JobLinks(ctx, page, seedURL, jobCountCap)) >= c.Config.JobsMax {
			res.stop = StopJobsCap
			break
		}
		if time.Now().After(deadline) {
			res.stop = StopTime
			break
		}
		if ctx.Err() != nil {
			res.stop = StopTime
			break
		}
		if res.clicks >= c.Config.LoadMoreMax && res.scrolls >= c.Config.ScrollMax {
			res.stop = StopStable
			break
		}

		progressed := false

		if res.clicks < c.Config.LoadMoreMax && c.tryClickLoadMore(ctx, page) {
			res.clicks++
			after := Fingerprint(ctx, page, seedURL)
			if ok, _ := jobsift.Progressed(fp, after); ok {
				fp = after
				res.grew = true
				progressed = true
			}
		}

		if !progressed && res.scrolls < c.Config.ScrollMax {
			if err := page.ScrollToBottom(ctx); err == nil {
				res.scrolls++
				c.waitForJobs(ctx, page, seedURL, c.Config.ScrollReadyTimeout)
				after := Fingerprint(ctx, page, seedURL)
				if ok, _ := jobsift.Progressed(fp, after); ok {
					fp = after
					res.grew = true
					progressed = true
				}
			}
		}

		if progressed {
			noChange = 0
			continue
		}
		noChange++
		if noChange >= c.Config.NoChangeCap {
			res.stop = StopStable
			break
		}
	}

	res.final = fp
	return res
}
