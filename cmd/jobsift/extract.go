package main

import (
	"fmt"

	"github.com/jobsift/jobsift/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressPageDone:
			fmt.Fprintf(deps.Stdout, "  %s: %d jobs (%d duplicates removed)\n",
				event.Base, event.Jobs, event.Stats.DuplicatesRemoved)
		case extract.ProgressPageSkipped:
			fmt.Fprintf(deps.Stdout, "  %s: already extracted, skipped\n", event.Base)
		case extract.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  %s: %v\n", event.Base, event.Error)
		}
	}

	result, err := deps.Extractor.ExtractDomain(deps.Ctx, c.Domain, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error extracting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d jobs from %d pages (%d skipped, %d failed)\n",
		result.Jobs, result.Pages, result.Skipped, result.Failed)
	return nil
}
