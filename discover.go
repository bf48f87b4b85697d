package jobsift

import "context"

// DefaultSeedKeywords are the URL substrings that mark a sitemap entry as a
// likely job-listing page.
var DefaultSeedKeywords = []string{
	"career", "job", "position", "opening", "vacanc", "hiring", "join-us",
}

// SeedDiscoverer finds candidate job-listing seed URLs for a site.
type SeedDiscoverer interface {
	// DiscoverSeeds returns the site's sitemap URLs whose text matches any
	// of the keywords, in sitemap order without duplicates. A nil or empty
	// keywords list uses DefaultSeedKeywords. Returns an empty slice, not
	// nil, when the site has no sitemap.
	DiscoverSeeds(ctx context.Context, siteURL string, keywords []string) ([]string, error)
}
