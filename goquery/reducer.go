// Package goquery implements HTML reduction using CSS selectors. The focus
// reducer keeps the containers most likely to hold job listings; the lite
// reducer strips noise but keeps all content.
package goquery

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var _ jobsift.Reducer = (*Reducer)(nil)

const (
	// minCandidateText filters containers too small to hold a job list.
	minCandidateText = 200

	// topN bounds how many containers the focus reduction keeps. Generous
	// enough that a job section split across containers survives whole.
	topN = 10

	// jobLinksBoost dominates every other signal: a container with job
	// links beats any container without them.
	jobLinksBoost = 25
)

var (
	noiseTags = "script, style, noscript, template"

	bannerishRE = regexp.MustCompile(`cookie|consent|newsletter|subscribe|sign-?up|login|advert|promo|overlay|modal|toast|social|gdpr`)

	multiSpaceRE   = regexp.MustCompile(`\s{2,}`)
	interTagRE     = regexp.MustCompile(`>\s+<`)
	jobVendorHosts = []string{
		"greenhouse.io",
		"myworkdayjobs.com",
		"ashbyhq.com",
		"lever.co",
		"smartrecruiters.com",
		"jobvite.com",
	}
	jobPathHints = []string{
		"/jobs/", "/job/", "/careers/", "/career/", "/positions/", "/position/",
		"gh_jid=", "gh_src=",
	}
)

// Reducer reduces full page HTML to job-relevant fragments.
type Reducer struct{}

// NewReducer creates a Reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Focus keeps the highest-scoring containers of the page. Containers are
// scored on text volume, repetitive child structure, headings, and above all
// the presence of job-like links; navigation chrome and link-dense blocks
// score down.
func (r *Reducer) Focus(html string) (*jobsift.ReduceResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, jobsift.Errorf(jobsift.EINVALID, "parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(noiseTags).Remove()
	removeBannerish(doc)

	type candidate struct {
		sel    *goquery.Selection
		order  int
		signal jobsift.Signal
	}

	var candidates []candidate
	doc.Find("main, #content, article, section, div").Each(func(i int, sel *goquery.Selection) {
		if len(strings.TrimSpace(sel.Text())) <= minCandidateText {
			return
		}
		candidates = append(candidates, candidate{sel: sel, order: i, signal: score(sel)})
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].signal.Score > candidates[j].signal.Score
	})

	kept := candidates
	if len(kept) > topN {
		kept = kept[:topN]
	}

	var sb strings.Builder
	sb.WriteString(`<!doctype html><meta charset="utf-8"><title>`)
	sb.WriteString(title)
	sb.WriteString("</title>")

	signals := make([]jobsift.Signal, 0, len(kept))
	for _, c := range kept {
		fragment, err := goquery.OuterHtml(c.sel)
		if err != nil {
			continue
		}
		sb.WriteString(compactHTML(fragment))
		sb.WriteString("\n")
		signals = append(signals, c.signal)
	}

	return &jobsift.ReduceResult{
		HTML:            strings.TrimRight(sb.String(), "\n"),
		Title:           title,
		Signals:         signals,
		KeptCount:       len(kept),
		TotalCandidates: len(candidates),
	}, nil
}

// Lite strips scripts, styles and templates but keeps all content.
func (r *Reducer) Lite(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", jobsift.Errorf(jobsift.EINVALID, "parse HTML: %v", err)
	}

	doc.Find(noiseTags).Remove()

	out, err := goquery.OuterHtml(doc.Find("html").First())
	if err != nil {
		return "", jobsift.Errorf(jobsift.EINTERNAL, "render HTML: %v", err)
	}
	return `<!doctype html><meta charset="utf-8">` + compactHTML(out), nil
}

// score computes the focus signal for one container.
func score(sel *goquery.Selection) jobsift.Signal {
	text := strings.TrimSpace(sel.Text())
	textLen := len(text)

	linkTextLen := 0
	hasJobLinks := false
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkTextLen += len(a.Text())
		if !hasJobLinks && looksLikeJobHref(a.AttrOr("href", "")) {
			hasJobLinks = true
		}
	})

	linkDensity := 0.0
	if textLen > 0 {
		linkDensity = float64(linkTextLen) / float64(textLen)
	}

	headings := sel.Find("h1, h2, h3").Length()

	tag := goquery.NodeName(sel)
	role := strings.ToLower(sel.AttrOr("role", ""))
	isMain := tag == "main" || tag == "article" || role == "main"
	looksNav := tag == "nav" || tag == "header" || tag == "footer" ||
		role == "navigation" || role == "banner" || role == "contentinfo"

	// Repetitive same-tag children are the shape of a rendered list.
	repetition := 0.0
	children := sel.Children()
	if n := children.Length(); n > 3 {
		firstTag := goquery.NodeName(children.First())
		same := 0
		children.Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == firstTag {
				same++
			}
		})
		repetition = float64(same) / float64(n)
	}

	s := math.Log2(float64(1 + textLen))
	if isMain {
		s += 3
	}
	if headings > 0 {
		s += 1.5
	}
	s += repetition * 2
	s -= linkDensity * 2
	if looksNav {
		s -= 2
	}
	if hasJobLinks {
		s += jobLinksBoost
	}

	return jobsift.Signal{
		Score:       s,
		TextLen:     textLen,
		LinkDensity: linkDensity,
		Headings:    headings,
		IsMain:      isMain,
		LooksNav:    looksNav,
		HasJobLinks: hasJobLinks,
	}
}

// looksLikeJobHref reports whether a href points at a job posting, by ATS
// vendor host or by joby path segment.
func looksLikeJobHref(href string) bool {
	if href == "" {
		return false
	}
	href = strings.ToLower(href)
	for _, host := range jobVendorHosts {
		if strings.Contains(href, host) {
			return true
		}
	}
	for _, hint := range jobPathHints {
		if strings.Contains(href, hint) {
			return true
		}
	}
	return false
}

// removeBannerish drops fixed-chrome suspects: elements whose id or class
// names cookie walls, newsletter prompts, overlays and similar. Rendered
// visibility is unavailable without a browser, so naming is the heuristic.
func removeBannerish(doc *goquery.Document) {
	doc.Find("div, aside, section").Each(func(_ int, sel *goquery.Selection) {
		idcl := strings.ToLower(sel.AttrOr("id", "") + " " + sel.AttrOr("class", ""))
		if idcl != " " && bannerishRE.MatchString(idcl) {
			sel.Remove()
		}
	})
}

// compactHTML collapses runs of whitespace and inter-tag gaps.
func compactHTML(html string) string {
	html = multiSpaceRE.ReplaceAllString(html, " ")
	return interTagRE.ReplaceAllString(html, "><")
}
