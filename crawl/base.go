package crawl

import (
	"crypto/sha1"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const slugMaxLen = 40

var (
	slugCharRE    = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRunRE   = regexp.MustCompile(`-{2,}`)
	leadingNumRE  = regexp.MustCompile(`^[0-9]+[-_]*`)
	trailingNumRE = regexp.MustCompile(`[-_]*[0-9]+$`)
)

// BaseName derives the stable file-name base for a seed: a slug from the
// last URL path segment joined with the first 8 hex chars of the SHA-1 of
// the canonical URL. Numeric affixes are stripped from the segment, so
// "123-software-456" names its files "software__<hash>" and listing ids do
// not leak into file names. A generic segment ("index", "page") defers to
// the page title when one is known.
func BaseName(seedURL, title string) string {
	canonical := NormalizeURL(seedURL)
	slug := lastSegmentSlug(canonical)
	if (slug == "index" || slug == "page") && title != "" {
		if t := slugify(title); t != "" {
			slug = t
		}
	}
	sum := sha1.Sum([]byte(canonical))
	return fmt.Sprintf("%s__%x", slug, sum[:4])
}

// SeedBase is BaseName without a title, for call sites that have not loaded
// the page yet.
func SeedBase(seedURL string) string {
	return BaseName(seedURL, "")
}

// lastSegmentSlug slugifies the last path segment, falling back to "index"
// for bare domains and segments that were nothing but numbers.
func lastSegmentSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "index"
	}
	seg := ""
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			seg = part
		}
	}
	seg = leadingNumRE.ReplaceAllString(seg, "")
	seg = trailingNumRE.ReplaceAllString(seg, "")
	slug := slugify(seg)
	if slug == "" {
		return "index"
	}
	return slug
}

// slugify lowercases text and reduces it to hyphen-separated [a-z0-9] runs.
func slugify(s string) string {
	s = slugCharRE.ReplaceAllString(strings.ToLower(s), "-")
	s = hyphenRunRE.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	return s
}
