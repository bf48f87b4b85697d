package main

import (
	"fmt"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seeds := c.Seeds
	if c.SeedFile != "" {
		fromFile, err := crawl.ReadSeedFile(c.SeedFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: reading seed file: %v\n", err)
			return err
		}
		seeds = append(seeds, fromFile...)
	}
	if len(seeds) == 0 {
		return jobsift.Errorf(jobsift.EINVALID, "no seeds given; pass URLs or --seed-file")
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %d seeds\n", len(seeds))
		case crawl.ProgressSeedDone:
			fmt.Fprintf(deps.Stdout, "  %s: %d pages (%s)\n", event.Seed, event.Pages, event.Stop)
		case crawl.ProgressSeedSkipped:
			fmt.Fprintf(deps.Stdout, "  %s: already seen, skipped\n", event.Seed)
		case crawl.ProgressSeedFailed:
			fmt.Fprintf(deps.Stderr, "  %s: %v\n", event.Seed, event.Error)
		case crawl.ProgressCaptureFailed:
			fmt.Fprintf(deps.Stderr, "  %s: snapshot not saved: %v\n", event.Seed, event.Error)
		}
	}

	result, err := deps.Crawler.CrawlAll(deps.Ctx, seeds, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Captured %d pages from %d seeds (%d failed, %d skipped)\n",
		result.Captured, result.Seeds, result.Failed, result.Skipped)
	return nil
}
