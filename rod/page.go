package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/jobsift/jobsift"
)

// Ensure Page implements jobsift.Page at compile time.
var _ jobsift.Page = (*Page)(nil)

// Page wraps a rod page. State queries and interactions run as injected
// JavaScript so that the same selector dialect (CSS plus a :has-text()
// extension for text matching) works everywhere.
type Page struct {
	page *rod.Page
}

// jsHelpers defines matchAll, isVisible and isEnabled for the interaction
// evals. matchAll understands `base:has-text("...")` selectors.
const jsHelpers = `
	const matchAll = (sel) => {
		const m = sel.match(/^(.*?):has-text\("(.*)"\)$/);
		if (!m) return Array.from(document.querySelectorAll(sel));
		return Array.from(document.querySelectorAll(m[1]))
			.filter((el) => (el.innerText || el.textContent || "").includes(m[2]));
	};
	const isVisible = (el) => {
		const r = el.getBoundingClientRect();
		const s = window.getComputedStyle(el);
		return r.width > 0 && r.height > 0 && s.display !== "none" && s.visibility !== "hidden";
	};
	const isEnabled = (el) => !el.disabled && el.getAttribute("aria-disabled") !== "true";
`

const clickJS = `(sels) => {` + jsHelpers + `
	for (const sel of sels) {
		for (const el of matchAll(sel)) {
			if (!isVisible(el) || !isEnabled(el)) continue;
			el.scrollIntoView({block: "center"});
			el.click();
			return true;
		}
	}
	return false;
}`

const clickByRoleJS = `(role, pattern) => {` + jsHelpers + `
	const re = new RegExp(pattern, "i");
	const sel = role === "link"
		? 'a[href], [role="link"]'
		: 'button, [role="button"], input[type="submit"], input[type="button"]';
	for (const el of matchAll(sel)) {
		const name = (el.getAttribute("aria-label") || el.innerText || el.textContent || "").trim();
		if (!re.test(name)) continue;
		if (!isVisible(el) || !isEnabled(el)) continue;
		el.scrollIntoView({block: "center"});
		el.click();
		return true;
	}
	return false;
}`

const anyVisibleJS = `(sels) => {` + jsHelpers + `
	return sels.some((sel) => matchAll(sel).some(isVisible));
}`

const anchorsJS = `() => {
	const out = [];
	for (const a of document.querySelectorAll("main a[href], article a[href], section a[href], div a[href]")) {
		out.push({href: a.getAttribute("href") || "", text: (a.innerText || a.textContent || "").trim()});
	}
	return out;
}`

const listingCountJS = `() => {
	const roleItems = document.querySelectorAll('[role="listitem"]').length;
	if (roleItems >= 5) return roleItems;
	let n = document.querySelectorAll("article, li").length;
	for (const div of document.querySelectorAll("div[class]")) {
		const cls = String(div.className).toLowerCase();
		if (cls.includes("card") || cls.includes("job") || cls.includes("position") || cls.includes("opening")) n++;
	}
	return n;
}`

const listingTextJS = `(cap) => {
	let items = Array.from(document.querySelectorAll('[role="listitem"]'));
	if (items.length < 5) items = Array.from(document.querySelectorAll("article, li"));
	return items.slice(0, cap).map((el) => (el.innerText || el.textContent || "").trim()).join("\n");
}`

// Navigate loads the URL and waits for the DOM to be ready.
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return err
	}
	return pg.WaitLoad()
}

// URL returns the current page URL.
func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Title returns the current page title, or "" if it cannot be read.
func (p *Page) Title() string {
	res, err := p.page.Eval(`() => document.title`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// HTML returns the rendered HTML of the whole document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Anchors returns the anchors inside likely content containers, in document
// order.
func (p *Page) Anchors(ctx context.Context) ([]jobsift.Anchor, error) {
	res, err := p.page.Context(ctx).Eval(anchorsJS)
	if err != nil {
		return nil, err
	}

	items := res.Value.Arr()
	anchors := make([]jobsift.Anchor, 0, len(items))
	for _, item := range items {
		anchors = append(anchors, jobsift.Anchor{
			Href: item.Get("href").Str(),
			Text: item.Get("text").Str(),
		})
	}
	return anchors, nil
}

// ListingCount estimates the number of listing-like elements on the page.
func (p *Page) ListingCount(ctx context.Context) (int, error) {
	res, err := p.page.Context(ctx).Eval(listingCountJS)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// ListingText returns the concatenated visible text of the first cap listing
// items.
func (p *Page) ListingText(ctx context.Context, cap int) (string, error) {
	res, err := p.page.Context(ctx).Eval(listingTextJS, cap)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// ScrollHeight returns the total scrollable height of the document.
func (p *Page) ScrollHeight(ctx context.Context) (int, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.documentElement.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// ScrollToBottom scrolls the window to the bottom of the document.
func (p *Page) ScrollToBottom(ctx context.Context) error {
	_, err := p.page.Context(ctx).Eval(`() => window.scrollTo(0, document.documentElement.scrollHeight)`)
	return err
}

// Click clicks the first visible, enabled element matching any of the
// selectors.
func (p *Page) Click(ctx context.Context, selectors ...string) (bool, error) {
	res, err := p.page.Context(ctx).Eval(clickJS, selectors)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// ClickByRole clicks the first visible, enabled element with the given
// accessible role whose accessible name matches the pattern.
func (p *Page) ClickByRole(ctx context.Context, role, namePattern string) (bool, error) {
	res, err := p.page.Context(ctx).Eval(clickByRoleJS, role, namePattern)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// WaitVisible polls until any of the selectors is visible or the timeout
// elapses. It returns false on timeout; it never fails.
func (p *Page) WaitVisible(ctx context.Context, timeout time.Duration, selectors ...string) bool {
	deadline := time.Now().Add(timeout)
	for {
		res, err := p.page.Context(ctx).Eval(anyVisibleJS, selectors)
		if err == nil && res.Value.Bool() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// WaitSettled waits for in-flight network activity to quiet down, up to
// timeout. Best effort.
func (p *Page) WaitSettled(ctx context.Context, timeout time.Duration) {
	pg := p.page.Context(ctx).Timeout(timeout)
	defer pg.CancelTimeout()
	pg.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)()
}

// Close releases the page.
func (p *Page) Close() error {
	return p.page.Close()
}
