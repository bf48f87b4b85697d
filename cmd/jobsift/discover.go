package main

import (
	"fmt"

	"github.com/jobsift/jobsift"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	seeds, err := deps.Discoverer.DiscoverSeeds(deps.Ctx, c.URL, c.Keyword)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobsift.ErrorMessage(err))
		return err
	}

	if len(seeds) == 0 {
		fmt.Fprintln(deps.Stdout, "No career-page candidates found in the sitemap.")
		return nil
	}

	for _, s := range seeds {
		fmt.Fprintln(deps.Stdout, s)
	}

	return nil
}
