package jobsift

import (
	"context"
	"time"
)

// Anchor is a link found on a live page: its raw href attribute and its
// visible text.
type Anchor struct {
	Href string
	Text string
}

// Page is a live, navigable browser page. Implementations hide the browser
// automation library; the crawl loop only depends on these capabilities.
//
// Methods that read page state (Anchors, ListingCount, ListingText,
// ScrollHeight) are queries and must not mutate the page. Failures are
// returned as errors; the fingerprint engine degrades them to safe defaults
// rather than aborting the crawl.
type Page interface {
	// Navigate loads the URL and waits for the DOM to be ready.
	Navigate(ctx context.Context, url string) error

	// URL returns the current page URL.
	URL() string

	// Title returns the current page title, or "" if it cannot be read.
	Title() string

	// HTML returns the rendered HTML of the whole document.
	HTML(ctx context.Context) (string, error)

	// Anchors returns the anchors inside likely content containers
	// (main/article/section/div), in document order.
	Anchors(ctx context.Context) ([]Anchor, error)

	// ListingCount estimates the number of listing-like elements on the
	// page: role=listitem when at least five match, otherwise
	// article/li/card-like divs.
	ListingCount(ctx context.Context) (int, error)

	// ListingText returns the concatenated visible text of the first cap
	// listing items.
	ListingText(ctx context.Context, cap int) (string, error)

	// ScrollHeight returns the total scrollable height of the document.
	ScrollHeight(ctx context.Context) (int, error)

	// ScrollToBottom scrolls the window to the bottom of the document.
	ScrollToBottom(ctx context.Context) error

	// Click clicks the first visible, enabled element matching any of the
	// selectors. It returns false if none matched.
	Click(ctx context.Context, selectors ...string) (bool, error)

	// ClickByRole clicks the first visible, enabled element with the given
	// accessible role ("link" or "button") whose accessible name matches
	// the pattern, case-insensitively. It returns false if none matched.
	ClickByRole(ctx context.Context, role, namePattern string) (bool, error)

	// WaitVisible waits up to timeout for any of the selectors to become
	// visible. It returns false on timeout; it never fails.
	WaitVisible(ctx context.Context, timeout time.Duration, selectors ...string) bool

	// WaitSettled waits for in-flight network activity to quiet down, up to
	// timeout. Best effort; it never fails.
	WaitSettled(ctx context.Context, timeout time.Duration)

	// Close releases the page.
	Close() error
}

// Browser creates pages. One browser session is shared by all seeds of a
// domain and owned by the crawl orchestrator for the domain's entire seed
// list.
type Browser interface {
	// NewPage opens a fresh page.
	NewPage(ctx context.Context) (Page, error)

	// Close releases browser resources. Must be called when the Browser is
	// no longer needed.
	Close() error
}
