package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sjsage522/meetupworker/config"
	"sjsage522/meetupworker/internal/browser"
	"sjsage522/meetupworker/internal/robots"
	"sjsage522/meetupworker/internal/scraper"
	"sjsage522/meetupworker/logger"
	"sjsage522/meetupworker/services/cache"
	"sjsage522/meetupworker/services/sink"
	"sjsage522/meetupworker/services/worker"
)

var version = "dev"

var (
	maxPages   int
	outputFile string
	exhaustive bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "meetupworker [URL...]",
		Short:   "Scrape events from infinite-scroll Meetup listing pages",
		Version: version,
		Long: `meetupworker drives a headless Chromium through one or more Meetup-style
event listing pages, scrolling until the feed is exhausted or the round
budget is reached, and writes the collected events to a JSON file or a
Redis stream.

The target host's robots.txt is checked before any navigation; a denied
or unreadable policy aborts the run for that URL.`,
		Example: `  # Scrape up to 3 scroll rounds (the default)
  meetupworker "https://www.meetup.com/find/?events&location=us--ca--san-francisco"

  # Scrape everything the feed will yield
  meetupworker -e -o sf-events.json "https://www.meetup.com/find/?events&location=us--ca--san-francisco"

  # Two cities, five rounds each
  meetupworker -m 5 "https://www.meetup.com/find/?location=us--ny--new-york" "https://www.meetup.com/find/?location=us--wa--seattle"`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().IntVarP(&maxPages, "max-pages", "m", 3, "Maximum number of scroll rounds per URL")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "events.json", "Output filename (file sink)")
	rootCmd.Flags().BoolVarP(&exhaustive, "exhaustive", "e", false, "Ignore the round budget and scrape the whole feed")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("urls", len(args)).
		Int("max_pages", maxPages).
		Bool("exhaustive", exhaustive).
		Msg("Starting meetup worker")

	// Cancel the run on SIGINT/SIGTERM; the loop returns whatever was
	// collected so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheSvc := cache.NewMemcacheService(cfg.MemcacheAddr)
	gate := robots.NewGate(&cfg, cacheSvc)

	snk, err := buildSink(ctx, &cfg)
	if err != nil {
		return err
	}
	defer snk.Close()

	sessions := func() (browser.Session, error) {
		return browser.NewRodSession(&cfg)
	}

	w := worker.NewWorker(&cfg, gate, snk, sessions, scraper.MeetupSelectors(), maxPages, exhaustive)

	if err := w.Run(ctx, buildJobs(args)); err != nil {
		return err
	}

	log.Info().Msg("All jobs completed")
	return nil
}

// buildSink selects the configured event sink
func buildSink(ctx context.Context, cfg *config.Config) (sink.Sink, error) {
	switch cfg.SinkType {
	case "redis":
		return sink.NewRedisSink(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMax), nil
	case "file":
		return sink.NewFileSink(), nil
	default:
		return nil, fmt.Errorf("unknown sink type %q", cfg.SinkType)
	}
}

// buildJobs pairs each URL with an output path. A single URL writes to the
// configured output file; multiple URLs get numbered variants of it.
func buildJobs(urls []string) []worker.Job {
	jobs := make([]worker.Job, 0, len(urls))
	for i, target := range urls {
		output := outputFile
		if len(urls) > 1 {
			ext := filepath.Ext(outputFile)
			base := strings.TrimSuffix(outputFile, ext)
			output = fmt.Sprintf("%s-%d%s", base, i+1, ext)
		}
		jobs = append(jobs, worker.Job{URL: target, Output: output})
	}
	return jobs
}
