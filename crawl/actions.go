package crawl

import (
	"context"
	"time"

	"github.com/jobsift/jobsift"
)

// loadMoreSelectors are the common shapes of "load more" controls, most
// deterministic first.
var loadMoreSelectors = []string{
	`button:has-text("Load more")`,
	`button:has-text("Show more")`,
	`button:has-text("Load More")`,
	`button:has-text("Show More")`,
	`button:has-text("See more")`,
	`button:has-text("View more")`,
	`a:has-text("Load more")`,
	`a:has-text("Show more")`,
	`[role="button"]:has-text("Load more")`,
	`[role="button"]:has-text("Show more")`,
	`button[aria-label*="Load more"]`,
	`button[aria-label*="Show more"]`,
}

// nextSelectors are CSS fallbacks for non-semantic pagination markup, used
// only when accessible-role lookup finds nothing.
var nextSelectors = []string{
	`button[aria-label*="Next"]`,
	`a[aria-label*="Next"]`,
	`[role="button"][aria-label*="Next"]`,
	`a[rel="next"]`,
	`button[aria-label*="Next page"]`,
	`a[aria-label*="Next page"]`,
	`button[aria-label*="Next results"]`,
	`a[aria-label*="Next results"]`,
	`nav button:has-text(">")`,
	`nav a:has-text(">")`,
	`nav button:has-text("›")`,
	`nav a:has-text("›")`,
	`nav button:has-text("»")`,
	`nav a:has-text("»")`,
}

// jobReadySelectors indicate job listings have rendered.
var jobReadySelectors = []string{
	`[role="listitem"]`,
	`article[class*="job"]`,
	`div[class*="job-card"]`,
	`li[class*="position"]`,
	`a[href*="/jobs/"]`,
}

// paginationSelectors indicate a pagination control exists, which implies
// listings exist even when none of the listing selectors matched.
var paginationSelectors = []string{
	`nav button:has-text("Next")`,
	`a[rel="next"]`,
	`button[aria-label*="Next"]`,
}

// tryClickLoadMore attempts to click a "load more" control. It reports
// whether a click landed in the DOM sense; whether content actually grew is
// decided by fingerprint comparison afterwards.
func (c *Crawler) tryClickLoadMore(ctx context.Context, page jobsift.Page) bool {
	clicked, err := page.Click(ctx, loadMoreSelectors...)
	if err != nil || !clicked {
		return false
	}
	page.WaitSettled(ctx, c.Config.SettleTimeout)
	return true
}

// tryClickNext attempts to activate a "next" pagination control, preferring
// accessible-role lookup and falling back to CSS heuristics.
func (c *Crawler) tryClickNext(ctx context.Context, page jobsift.Page) bool {
	for _, role := range []string{"link", "button"} {
		clicked, err := page.ClickByRole(ctx, role, "next")
		if err == nil && clicked {
			return true
		}
	}

	clicked, err := page.Click(ctx, nextSelectors...)
	return err == nil && clicked
}

// waitForJobs waits for job listings to appear, trying the listing
// selectors, then a direct link probe, then pagination controls. Timeouts
// degrade to "assume no progress, proceed anyway".
func (c *Crawler) waitForJobs(ctx context.Context, page jobsift.Page, seedURL string, timeout time.Duration) bool {
	if page.WaitVisible(ctx, timeout, jobReadySelectors...) {
		return true
	}
	if len(JobLinks(ctx, page, seedURL, 5)) > 0 {
		return true
	}
	return page.WaitVisible(ctx, timeout/4, paginationSelectors...)
}
