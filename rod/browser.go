// Package rod implements browser automation using go-rod and headless
// Chrome.
package rod

import (
	"context"

	"github.com/go-rod/rod/lib/proto"
	"github.com/jobsift/jobsift"
)

// Ensure Browser implements jobsift.Browser at compile time.
var _ jobsift.Browser = (*Browser)(nil)

// Browser opens pages on a managed headless Chrome instance. The underlying
// browser process is recycled periodically; see BrowserManager.
//
// Browser is safe for concurrent use by multiple goroutines.
type Browser struct {
	manager *BrowserManager
}

// NewBrowser creates a new Browser backed by a fresh headless Chrome.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...ManagerOption) (*Browser, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Browser{manager: manager}, nil
}

// NewPage opens a fresh page.
func (b *Browser) NewPage(ctx context.Context) (jobsift.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pg, err := b.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	b.manager.IncrementPageCount()

	return &Page{page: pg}, nil
}

// Close releases browser resources.
func (b *Browser) Close() error {
	return b.manager.Close()
}
