package jobsift

// Fingerprint is a compact, comparable summary of the current result-state
// of a listing page. It is recomputed before and after every crawl action
// (load-more click, scroll, next-page click) to decide whether the action
// produced new content.
type Fingerprint struct {
	// URL is the current page URL with tracking parameters stripped.
	URL string

	// LinksHash is a hash of the ordered, canonicalized job-link hrefs.
	LinksHash string

	// TextHash is a hash of the visible text of the first listing items.
	TextHash string

	// JobCount is the number of distinct job links found on the page.
	JobCount int

	// ScrollHeight is the total scrollable height of the document in pixels.
	ScrollHeight int
}

// Progress reasons reported by Progressed.
const (
	ReasonURLChanged   = "url_changed"
	ReasonLinksChanged = "links_changed"
	ReasonTextChanged  = "text_changed"
	ReasonMoreJobs     = "more_jobs"
	ReasonScrollGrew   = "scroll_grew"
)

// MinScrollDelta is the minimum scroll-height increase, in pixels, that
// counts as progress. Smaller deltas are layout jitter.
const MinScrollDelta = 500

// Progressed reports whether page state meaningfully changed between two
// fingerprints, and which dimensions changed. It is a pure, total function:
// it never fails and treats zero-value fingerprints like any other.
//
// A job-count decrease is not progress; only an increase counts. Scroll
// height must grow by more than MinScrollDelta to count.
func Progressed(before, after Fingerprint) (bool, []string) {
	var reasons []string

	if before.URL != after.URL {
		reasons = append(reasons, ReasonURLChanged)
	}
	if before.LinksHash != after.LinksHash {
		reasons = append(reasons, ReasonLinksChanged)
	}
	if before.TextHash != after.TextHash {
		reasons = append(reasons, ReasonTextChanged)
	}
	if after.JobCount > before.JobCount {
		reasons = append(reasons, ReasonMoreJobs)
	}
	if after.ScrollHeight > before.ScrollHeight+MinScrollDelta {
		reasons = append(reasons, ReasonScrollGrew)
	}

	return len(reasons) > 0, reasons
}

// Equal reports whether two fingerprints match on every compared field.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.URL == other.URL &&
		f.LinksHash == other.LinksHash &&
		f.TextHash == other.TextHash &&
		f.JobCount == other.JobCount &&
		f.ScrollHeight == other.ScrollHeight
}
