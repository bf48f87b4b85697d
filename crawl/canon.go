package crawl

import (
	"net/url"
	"strings"
)

// trackingParams are stripped during URL canonicalization.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"gclid":        true,
	"fbclid":       true,
}

// Domain extracts the lowercase host from a URL, or "" if it cannot be
// parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// CanonicalURL resolves href against seed and canonicalizes the result:
// tracking parameters removed, fragment stripped, scheme and host
// lowercased. It returns "" if either URL cannot be parsed.
func CanonicalURL(seed, href string) string {
	base, err := url.Parse(seed)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return canonicalize(base.ResolveReference(ref))
}

// NormalizeURL canonicalizes an absolute URL in place: tracking parameters
// removed, fragment stripped, scheme and host lowercased. Unparseable URLs
// are returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return canonicalize(u)
}

func canonicalize(u *url.URL) string {
	q := u.Query()
	for k := range q {
		if trackingParams[strings.ToLower(k)] {
			q.Del(k)
		}
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}
