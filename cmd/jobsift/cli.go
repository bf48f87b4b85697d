package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/crawl"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Jobs       jobsift.JobStore
	Discoverer jobsift.SeedDiscoverer
	Crawler    *crawl.Crawler
	Extractor  *extract.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl career-page seed URLs and capture snapshots"`
	Extract  ExtractCmd  `cmd:"" help:"Extract job records from captured snapshots"`
	Jobs     JobsCmd     `cmd:"" help:"List persisted jobs"`
	Discover DiscoverCmd `cmd:"" help:"Discover career-page seeds from a site's sitemap"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds    []string `arg:"" optional:"" help:"Seed URLs to crawl"`
	SeedFile string   `short:"s" help:"File with one seed URL per line (# comments)"`
	Out      string   `short:"o" default:"out" help:"Output directory for snapshots"`
	JobsMax  int      `default:"100" help:"Stop expanding once this many job links are found"`
	PagesMax int      `default:"3" help:"Maximum pagination pages per seed"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Domain      string `arg:"" help:"Domain whose captured pages to extract"`
	Out         string `short:"o" default:"out" help:"Directory holding crawl output"`
	Overwrite   bool   `help:"Recompute extractions that already exist"`
	Concurrency int    `short:"c" default:"2" help:"Concurrent page extractions"`
	NoStore     bool   `help:"Skip upserting rows into the jobs database"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	Domain string `help:"Filter by source domain"`
	Limit  int    `default:"50" help:"Maximum rows to print"`
	Offset int    `help:"Rows to skip"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL     string   `arg:"" help:"Site URL to inspect"`
	Keyword []string `short:"k" help:"URL keyword to match (repeatable; default job keywords)"`
}
