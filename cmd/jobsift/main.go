package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jobsift/jobsift"
	"github.com/jobsift/jobsift/bloom"
	"github.com/jobsift/jobsift/crawl"
	"github.com/jobsift/jobsift/extract"
	"github.com/jobsift/jobsift/fs"
	"github.com/jobsift/jobsift/gemini"
	"github.com/jobsift/jobsift/goquery"
	"github.com/jobsift/jobsift/htmltomarkdown"
	jshttp "github.com/jobsift/jobsift/http"
	"github.com/jobsift/jobsift/rod"
	jsslog "github.com/jobsift/jobsift/slog"
	"github.com/jobsift/jobsift/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// JobStore for end-to-end testing.
	JobStore jobsift.JobStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobsift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobsift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JOBSIFT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.JobStore = jsslog.NewLoggingJobStore(sqlite.NewJobStore(m.DB), logger)
	deps.DB = m.DB
	deps.Jobs = m.JobStore
	deps.Discoverer = jsslog.NewLoggingSeedDiscoverer(jshttp.NewSitemapDiscoverer(nil), logger)

	// Wire command-specific dependencies based on command
	if cmd == "crawl" {
		browser, err := rod.NewBrowser()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		cfg := crawl.DefaultConfig()
		if cli.Crawl.JobsMax > 0 {
			cfg.JobsMax = cli.Crawl.JobsMax
		}
		if cli.Crawl.PagesMax > 0 {
			cfg.PagesMax = cli.Crawl.PagesMax
		}

		deps.Crawler = &crawl.Crawler{
			Browser:     browser,
			Reducer:     goquery.NewReducer(),
			Snapshots:   fs.NewStore(cli.Crawl.Out),
			Seen:        bloom.NewSeenSet(100_000, 0.01),
			RateLimiter: crawl.NewDomainLimiter(1.0),
			Config:      cfg,
		}
	}

	if cmd == "extract" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		store := fs.NewStore(cli.Extract.Out)
		deps.Extractor = &extract.Extractor{
			Completer:   jsslog.NewLoggingCompleter(gemini.NewCompleter(client), logger),
			Pages:       store,
			Converter:   htmltomarkdown.NewConverter(),
			Jobs:        m.JobStore,
			Concurrency: cli.Extract.Concurrency,
			Overwrite:   cli.Extract.Overwrite,
		}
		if cli.Extract.NoStore {
			deps.Extractor.Jobs = nil
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("JOBSIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobsift.db"
	}
	dir := filepath.Join(home, ".jobsift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jobsift.db")
}
