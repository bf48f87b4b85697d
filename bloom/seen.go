// Package bloom provides probabilistic seen-URL tracking for crawl
// deduplication.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenSet tracks URLs the crawler has already visited. False positives are
// possible (a never-visited URL may be reported seen); false negatives are
// not. That trade-off is acceptable for skipping duplicate seeds: the worst
// case is skipping a page we would have re-captured anyway.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a SeenSet sized for n expected URLs with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// key strips the fragment so URLs differing only by fragment collapse.
func key(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// Add marks a URL as visited. It returns false if the URL was already
// marked.
func (s *SeenSet) Add(url string) bool {
	k := key(url)
	if s.f.TestString(k) {
		return false
	}
	s.f.AddString(k)
	return true
}

// Seen reports whether the URL might already have been visited.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(key(url))
}

// EstimatedCount returns the approximate number of URLs tracked.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
