package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of jobsift.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverSeedsFn func(ctx context.Context, siteURL string, keywords []string) ([]string, error)
}

func (d *SeedDiscoverer) DiscoverSeeds(ctx context.Context, siteURL string, keywords []string) ([]string, error) {
	return d.DiscoverSeedsFn(ctx, siteURL, keywords)
}
