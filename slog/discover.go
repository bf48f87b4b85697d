package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
)

// Ensure LoggingSeedDiscoverer implements jobsift.SeedDiscoverer.
var _ jobsift.SeedDiscoverer = (*LoggingSeedDiscoverer)(nil)

// LoggingSeedDiscoverer wraps a SeedDiscoverer with debug logging.
type LoggingSeedDiscoverer struct {
	next   jobsift.SeedDiscoverer
	logger *slog.Logger
}

// NewLoggingSeedDiscoverer creates a new LoggingSeedDiscoverer.
func NewLoggingSeedDiscoverer(next jobsift.SeedDiscoverer, logger *slog.Logger) *LoggingSeedDiscoverer {
	return &LoggingSeedDiscoverer{next: next, logger: logger}
}

// DiscoverSeeds delegates to the wrapped discoverer and logs the operation.
func (d *LoggingSeedDiscoverer) DiscoverSeeds(ctx context.Context, siteURL string, keywords []string) (seeds []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("seed discovery",
			"site", siteURL,
			"seeds", len(seeds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverSeeds(ctx, siteURL, keywords)
}
