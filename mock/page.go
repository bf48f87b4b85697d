package mock

import (
	"context"
	"time"

	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var (
	_ jobsift.Page    = (*Page)(nil)
	_ jobsift.Browser = (*Browser)(nil)
)

// Page is a mock implementation of jobsift.Page.
type Page struct {
	NavigateFn       func(ctx context.Context, url string) error
	URLFn            func() string
	TitleFn          func() string
	HTMLFn           func(ctx context.Context) (string, error)
	AnchorsFn        func(ctx context.Context) ([]jobsift.Anchor, error)
	ListingCountFn   func(ctx context.Context) (int, error)
	ListingTextFn    func(ctx context.Context, cap int) (string, error)
	ScrollHeightFn   func(ctx context.Context) (int, error)
	ScrollToBottomFn func(ctx context.Context) error
	ClickFn          func(ctx context.Context, selectors ...string) (bool, error)
	ClickByRoleFn    func(ctx context.Context, role, namePattern string) (bool, error)
	WaitVisibleFn    func(ctx context.Context, timeout time.Duration, selectors ...string) bool
	WaitSettledFn    func(ctx context.Context, timeout time.Duration)
	CloseFn          func() error
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *Page) URL() string {
	return p.URLFn()
}

func (p *Page) Title() string {
	if p.TitleFn == nil {
		return ""
	}
	return p.TitleFn()
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.HTMLFn(ctx)
}

func (p *Page) Anchors(ctx context.Context) ([]jobsift.Anchor, error) {
	return p.AnchorsFn(ctx)
}

func (p *Page) ListingCount(ctx context.Context) (int, error) {
	return p.ListingCountFn(ctx)
}

func (p *Page) ListingText(ctx context.Context, cap int) (string, error) {
	return p.ListingTextFn(ctx, cap)
}

func (p *Page) ScrollHeight(ctx context.Context) (int, error) {
	return p.ScrollHeightFn(ctx)
}

func (p *Page) ScrollToBottom(ctx context.Context) error {
	return p.ScrollToBottomFn(ctx)
}

func (p *Page) Click(ctx context.Context, selectors ...string) (bool, error) {
	return p.ClickFn(ctx, selectors...)
}

func (p *Page) ClickByRole(ctx context.Context, role, namePattern string) (bool, error) {
	return p.ClickByRoleFn(ctx, role, namePattern)
}

func (p *Page) WaitVisible(ctx context.Context, timeout time.Duration, selectors ...string) bool {
	if p.WaitVisibleFn == nil {
		return false
	}
	return p.WaitVisibleFn(ctx, timeout, selectors...)
}

func (p *Page) WaitSettled(ctx context.Context, timeout time.Duration) {
	if p.WaitSettledFn != nil {
		p.WaitSettledFn(ctx, timeout)
	}
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

// Browser is a mock implementation of jobsift.Browser.
type Browser struct {
	NewPageFn func(ctx context.Context) (jobsift.Page, error)
	CloseFn   func() error
}

func (b *Browser) NewPage(ctx context.Context) (jobsift.Page, error) {
	return b.NewPageFn(ctx)
}

func (b *Browser) Close() error {
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}
