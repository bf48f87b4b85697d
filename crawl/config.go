package crawl

import "time"

// StopReason records why a crawl phase ended.
type StopReason string

// Stop reasons recorded in manifests.
const (
	StopNone     StopReason = "none"
	StopJobsCap  StopReason = "jobs_cap"
	StopTime     StopReason = "time"
	StopStable   StopReason = "stable"
	StopNoNext   StopReason = "no_next"
	StopNoChange StopReason = "no_change"
	StopPagesCap StopReason = "pages_cap"
	StopNavFail  StopReason = "nav_failed"
)

// Config holds the knobs for one crawl run.
type Config struct {
	// JobsMax stops expansion once this many distinct job links are found.
	JobsMax int

	// TimeBudget bounds the expansion phase wall-clock time.
	TimeBudget time.Duration

	// PagesMax bounds the number of pagination pages captured per seed.
	PagesMax int

	// LoadMoreMax bounds "load more" click attempts per seed.
	LoadMoreMax int

	// ScrollMax bounds scroll-to-bottom attempts per seed.
	ScrollMax int

	// NoChangeCap stops expansion after this many consecutive rounds where
	// neither a click nor a scroll produced progress.
	NoChangeCap int

	// NavTimeout bounds a single navigation attempt.
	NavTimeout time.Duration

	// NavAttempts is the total number of navigation attempts per seed.
	NavAttempts int

	// SettleTimeout bounds the post-action network-settle wait.
	SettleTimeout time.Duration

	// ReadyTimeout bounds the wait for job listings after a next-page click.
	ReadyTimeout time.Duration

	// ScrollReadyTimeout bounds the wait for job listings after a scroll.
	ScrollReadyTimeout time.Duration

	// SeedDelayMin/Max bound the randomized politeness pause between seeds
	// on the same domain.
	SeedDelayMin time.Duration
	SeedDelayMax time.Duration
}

// DefaultConfig returns the tuning that works across the career sites this
// crawler targets.
func DefaultConfig() Config {
	return Config{
		JobsMax:            100,
		TimeBudget:         75 * time.Second,
		PagesMax:           3,
		LoadMoreMax:        5,
		ScrollMax:          20,
		NoChangeCap:        2,
		NavTimeout:         45 * time.Second,
		NavAttempts:        3,
		SettleTimeout:      8 * time.Second,
		ReadyTimeout:       10 * time.Second,
		ScrollReadyTimeout: 3 * time.Second,
		SeedDelayMin:       8 * time.Second,
		SeedDelayMax:       15 * time.Second,
	}
}

// asMap renders the knobs relevant to a phase for the manifest record.
func (c Config) asMap(mode string) map[string]any {
	if mode == "pagination" {
		return map[string]any{"pages_max": c.PagesMax}
	}
	return map[string]any{
		"jobs_max":     c.JobsMax,
		"time_budget":  c.TimeBudget.Seconds(),
		"loadmore_max": c.LoadMoreMax,
		"scroll_max":   c.ScrollMax,
	}
}
