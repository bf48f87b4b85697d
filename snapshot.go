package jobsift

import (
	"context"
	"time"
)

// Signal describes why the focus reducer kept one container.
type Signal struct {
	Score       float64 `json:"score"`
	TextLen     int     `json:"textLen"`
	LinkDensity float64 `json:"linkDensity"`
	Headings    int     `json:"headings"`
	IsMain      bool    `json:"isMain"`
	LooksNav    bool    `json:"looksNav"`
	HasJobLinks bool    `json:"hasJobLinks"`
}

// ReduceResult holds the focused reduction of a page: the job-heavy
// containers and the scoring signals that selected them.
type ReduceResult struct {
	HTML            string
	Title           string
	Signals         []Signal
	KeptCount       int
	TotalCandidates int
}

// Reducer reduces full page HTML to job-relevant fragments.
type Reducer interface {
	// Focus keeps only the highest-scoring job-heavy containers.
	Focus(html string) (*ReduceResult, error)

	// Lite strips scripts, styles and templates but keeps all content.
	Lite(html string) (string, error)
}

// Snapshot is a captured copy of page state at one point in a crawl. It is
// immutable after write and owned by the crawl orchestrator for the
// duration of one seed-crawl.
type Snapshot struct {
	// SeedBase is the stable file-name base derived from the seed URL,
	// e.g. "careers__1a2b3c4d". All snapshots of one seed share it.
	SeedBase string

	// PageID is "p001".."pNNN" for pagination states, or "expanded" for the
	// final post-expansion state.
	PageID string

	URL        string
	Title      string
	FullHTML   string
	FocusHTML  string
	LiteHTML   string
	Signals    []Signal
	SHA1       string
	CapturedAt time.Time
}

// PageCounts records how many job links and listing items a snapshot held.
type PageCounts struct {
	UniqueJobs int `json:"unique_jobs"`
	ListItems  int `json:"list_len"`
}

// ManifestEntry references one captured snapshot from a manifest.
type ManifestEntry struct {
	PageID    string            `json:"page_id"`
	Files     map[string]string `json:"files"`
	Counts    PageCounts        `json:"counts"`
	Timestamp int64             `json:"ts"`
}

// Crawl phase modes recorded in manifests.
const (
	ModeExpansion  = "expansion"
	ModePagination = "pagination"
)

// Manifest summarizes one crawl phase for a seed URL: every captured page
// state, the stop reason, and the configuration in effect. One manifest is
// written per phase; the pagination write extends the expansion one.
type Manifest struct {
	SeedBase   string          `json:"seed_base"`
	Mode       string          `json:"mode"`
	StopReason string          `json:"stop_reason"`
	Pages      []ManifestEntry `json:"pages"`
	Config     map[string]any  `json:"config"`
	RunID      string          `json:"run_id,omitempty"`
	Timestamp  int64           `json:"ts"`
}

// SnapshotStore persists snapshots and manifests. A manifest is written only
// after its phase completes, so it never references a snapshot that does not
// yet exist.
type SnapshotStore interface {
	// SaveSnapshot writes all file variants of a snapshot for a domain and
	// returns the relative paths written, keyed by variant
	// (full/focus/lite/meta/signals).
	SaveSnapshot(ctx context.Context, domain string, snap *Snapshot) (map[string]string, error)

	// WriteManifest writes or overwrites the per-seed manifest.
	WriteManifest(ctx context.Context, domain string, m *Manifest) error
}

// CapturedPage is a stored focus-reduced page handed to the extraction
// pipeline, with the metadata recorded at capture time.
type CapturedPage struct {
	// Base is the snapshot base name including the page id, e.g.
	// "careers__1a2b3c4d.p001".
	Base      string
	HTML      string
	SourceURL string
	PageTitle string
}

// CapturedPageSource lists stored focus pages for extraction.
type CapturedPageSource interface {
	// ListCapturedPages returns every focus-reduced page stored for the
	// domain, in name order.
	ListCapturedPages(ctx context.Context, domain string) ([]CapturedPage, error)

	// HasExtraction reports whether a jobs.json already exists for the base.
	HasExtraction(domain, base string) bool

	// WriteExtraction writes the jobs.json for a base and returns its path.
	WriteExtraction(ctx context.Context, domain, base string, ex *Extraction) (string, error)
}
