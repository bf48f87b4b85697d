// Package fs provides file-based storage for crawl snapshots, manifests and
// extraction results, laid out per domain:
//
//	<base>/<domain>/full/           complete page HTML
//	<base>/<domain>/reduced_focus/  job-heavy containers only
//	<base>/<domain>/reduced_lite/   scripts and styles stripped
//	<base>/<domain>/meta/           per-snapshot metadata JSON
//	<base>/<domain>/signals/        reducer scoring signals JSON
//	<base>/<domain>/llm/            extraction result JSON
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var (
	_ jobsift.SnapshotStore      = (*Store)(nil)
	_ jobsift.CapturedPageSource = (*Store)(nil)
)

// Subdirectory names per output variant.
var typeDirs = map[string]string{
	"full":    "full",
	"focus":   "reduced_focus",
	"lite":    "reduced_lite",
	"meta":    "meta",
	"signals": "signals",
}

// Store persists crawl outputs under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// pageMeta is the sidecar metadata written next to each snapshot. The
// extraction phase reads url and title back from it.
type pageMeta struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	SHA1   string `json:"sha1"`
	PageID string `json:"page_id"`
	TS     int64  `json:"ts"`
}

// SaveSnapshot writes all file variants of a snapshot and returns the
// written paths relative to the store root, keyed by variant.
func (s *Store) SaveSnapshot(ctx context.Context, domain string, snap *jobsift.Snapshot) (map[string]string, error) {
	if domain == "" {
		return nil, jobsift.Errorf(jobsift.EINVALID, "domain required")
	}
	if snap.SeedBase == "" || snap.PageID == "" {
		return nil, jobsift.Errorf(jobsift.EINVALID, "snapshot seed base and page id required")
	}

	if err := s.ensureDirs(domain); err != nil {
		return nil, err
	}

	name := snap.SeedBase + "." + snap.PageID
	files := map[string]string{
		"full":  filepath.Join(domain, typeDirs["full"], name+".html"),
		"focus": filepath.Join(domain, typeDirs["focus"], name+".html"),
		"lite":  filepath.Join(domain, typeDirs["lite"], name+".html"),
		"meta":  filepath.Join(domain, typeDirs["meta"], name+".json"),
	}

	meta := pageMeta{
		URL:    snap.URL,
		Title:  snap.Title,
		SHA1:   snap.SHA1,
		PageID: snap.PageID,
		TS:     snap.CapturedAt.Unix(),
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, jobsift.Errorf(jobsift.EINTERNAL, "marshal snapshot meta: %v", err)
	}

	writes := map[string][]byte{
		files["full"]:  []byte(snap.FullHTML),
		files["focus"]: []byte(snap.FocusHTML),
		files["lite"]:  []byte(snap.LiteHTML),
		files["meta"]:  metaJSON,
	}

	if len(snap.Signals) > 0 {
		sigJSON, err := json.MarshalIndent(snap.Signals, "", "  ")
		if err != nil {
			return nil, jobsift.Errorf(jobsift.EINTERNAL, "marshal snapshot signals: %v", err)
		}
		files["signals"] = filepath.Join(domain, typeDirs["signals"], name+".json")
		writes[files["signals"]] = sigJSON
	}

	for rel, data := range writes {
		if err := os.WriteFile(filepath.Join(s.baseDir, rel), data, 0644); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// WriteManifest writes or overwrites the per-seed manifest at
// <domain>/<seed_base>.manifest.json.
func (s *Store) WriteManifest(ctx context.Context, domain string, m *jobsift.Manifest) error {
	if m.SeedBase == "" {
		return jobsift.Errorf(jobsift.EINVALID, "manifest seed base required")
	}
	if err := os.MkdirAll(filepath.Join(s.baseDir, domain), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return jobsift.Errorf(jobsift.EINTERNAL, "marshal manifest: %v", err)
	}
	return os.WriteFile(filepath.Join(s.baseDir, domain, m.SeedBase+".manifest.json"), data, 0644)
}

// ListCapturedPages returns every stored focus page for the domain in name
// order, with source URL and title recovered from the meta sidecar.
func (s *Store) ListCapturedPages(ctx context.Context, domain string) ([]jobsift.CapturedPage, error) {
	focusDir := filepath.Join(s.baseDir, domain, typeDirs["focus"])
	entries, err := os.ReadDir(focusDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pages []jobsift.CapturedPage
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".html")

		html, err := os.ReadFile(filepath.Join(focusDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		page := jobsift.CapturedPage{Base: base, HTML: string(html)}
		if meta, err := s.readMeta(domain, base); err == nil {
			page.SourceURL = meta.URL
			page.PageTitle = meta.Title
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Base < pages[j].Base })
	return pages, nil
}

// HasExtraction reports whether a jobs.json already exists for the base.
func (s *Store) HasExtraction(domain, base string) bool {
	_, err := os.Stat(s.extractionPath(domain, base))
	return err == nil
}

// WriteExtraction writes the extraction envelope for a base and returns the
// written path relative to the store root.
func (s *Store) WriteExtraction(ctx context.Context, domain, base string, ex *jobsift.Extraction) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.baseDir, domain, "llm"), 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", jobsift.Errorf(jobsift.EINTERNAL, "marshal extraction: %v", err)
	}

	rel := filepath.Join(domain, "llm", base+".jobs.json")
	if err := os.WriteFile(filepath.Join(s.baseDir, rel), data, 0644); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *Store) readMeta(domain, base string) (*pageMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, domain, typeDirs["meta"], base+".json"))
	if err != nil {
		return nil, err
	}
	var meta pageMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) extractionPath(domain, base string) string {
	return filepath.Join(s.baseDir, domain, "llm", base+".jobs.json")
}

func (s *Store) ensureDirs(domain string) error {
	for _, sub := range typeDirs {
		if err := os.MkdirAll(filepath.Join(s.baseDir, domain, sub), 0755); err != nil {
			return err
		}
	}
	return os.MkdirAll(filepath.Join(s.baseDir, domain, "llm"), 0755)
}
