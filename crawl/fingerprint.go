package crawl

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jobsift/jobsift"
)

// jobKeywordRE matches job-related tokens in link hrefs and text.
var jobKeywordRE = regexp.MustCompile(`(?i)(job|jobs|career|opening|openings|position|positions|role|roles|req|requisition|opportunit)`)

// Link and text caps. The fingerprint caps are tight because links beyond
// them don't change the verdict and only add hashing cost; the count cap is
// looser because the jobs-cap stop condition and manifest counts need the
// real tally.
const (
	jobLinksCap    = 60
	listingTextCap = 50
	jobCountCap    = 200
)

// JobLinks extracts job-related links from the page in document order,
// canonicalized and deduplicated, capped at cap entries. Query failures
// degrade to an empty list.
func JobLinks(ctx context.Context, page jobsift.Page, seedURL string, cap int) []string {
	anchors, err := page.Anchors(ctx)
	if err != nil {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, a := range anchors {
		href := strings.TrimSpace(a.Href)
		if href == "" {
			continue
		}
		if !jobKeywordRE.MatchString(href) && !jobKeywordRE.MatchString(a.Text) {
			continue
		}
		cu := CanonicalURL(seedURL, href)
		if cu == "" || seen[cu] {
			continue
		}
		seen[cu] = true
		out = append(out, cu)
		if len(out) >= cap {
			break
		}
	}
	return out
}

// Fingerprint computes a comparable snapshot of the page's result-state.
// Every sub-computation degrades to a safe zero value on failure;
// fingerprinting never aborts the crawl.
func Fingerprint(ctx context.Context, page jobsift.Page, seedURL string) jobsift.Fingerprint {
	links := JobLinks(ctx, page, seedURL, jobLinksCap)

	text, err := page.ListingText(ctx, listingTextCap)
	if err != nil {
		text = ""
	}

	height, err := page.ScrollHeight(ctx)
	if err != nil {
		height = 0
	}

	return jobsift.Fingerprint{
		URL:          NormalizeURL(page.URL()),
		LinksHash:    hashStrings(links),
		TextHash:     hashString(text),
		JobCount:     len(links),
		ScrollHeight: height,
	}
}

func hashString(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

func hashStrings(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return hashString(strings.Join(ss, "\n"))
}
