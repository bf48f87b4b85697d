package main

import (
	"fmt"

	"github.com/jobsift/jobsift"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	filter := jobsift.JobFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Domain != "" {
		filter.SourceDomain = &c.Domain
	}

	rows, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobsift.ErrorMessage(err))
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'jobsift crawl' and 'jobsift extract' first.")
		return nil
	}

	for _, r := range rows {
		location := r.Location
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  first %s  last %s\n",
			r.SourceDomain, r.Title, location, r.SeniorityBucket,
			r.FirstSeenAt.Format("2006-01-02"), r.LastSeenAt.Format("2006-01-02"))
		fmt.Fprintf(deps.Stdout, "    %s\n", r.JobURL)
	}

	return nil
}
