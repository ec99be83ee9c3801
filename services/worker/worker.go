package worker

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"sjsage522/meetupworker/config"
	"sjsage522/meetupworker/internal/browser"
	"sjsage522/meetupworker/internal/robots"
	"sjsage522/meetupworker/internal/scraper"
	"sjsage522/meetupworker/logger"
	"sjsage522/meetupworker/pkg/errors"
	"sjsage522/meetupworker/services/sink"
)

// Job is one target URL with its output destination
type Job struct {
	URL    string
	Output string
}

// PolicyGate authorizes a target URL before any navigation happens
type PolicyGate interface {
	Check(ctx context.Context, rawURL string) robots.Result
}

// SessionFactory creates an independent browser session. Each job gets its
// own session and its own dedup ledger; nothing browser-side is shared.
type SessionFactory func() (browser.Session, error)

// Worker runs scrape jobs with bounded concurrency and hands each job's
// collected events to the sink
type Worker struct {
	cfg        *config.Config
	gate       PolicyGate
	sink       sink.Sink
	newSession SessionFactory
	selectors  scraper.Selectors
	maxRounds  int
	exhaustive bool
	log        *logger.Logger
}

// NewWorker creates a worker
func NewWorker(
	cfg *config.Config,
	gate PolicyGate,
	snk sink.Sink,
	newSession SessionFactory,
	selectors scraper.Selectors,
	maxRounds int,
	exhaustive bool,
) *Worker {
	return &Worker{
		cfg:        cfg,
		gate:       gate,
		sink:       snk,
		newSession: newSession,
		selectors:  selectors,
		maxRounds:  maxRounds,
		exhaustive: exhaustive,
		log:        logger.ForWorker(),
	}
}

// Run executes all jobs, at most MaxConcurrency at a time. Job failures are
// isolated from each other; the first error is returned after every job has
// finished.
func (w *Worker) Run(ctx context.Context, jobs []Job) error {
	g := new(errgroup.Group)
	g.SetLimit(w.cfg.MaxConcurrency)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := w.runJob(ctx, job); err != nil {
				w.log.Error().Err(err).Str("url", job.URL).Msg("Job failed")
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// runJob scrapes one URL end to end: policy check, crawl delay, scroll
// loop, sink delivery.
func (w *Worker) runJob(ctx context.Context, job Job) error {
	verdict := w.gate.Check(ctx, job.URL)
	if !verdict.Allowed {
		return errors.NewRobots(job.URL, "scraping not allowed by robots.txt", nil)
	}

	if verdict.CrawlDelay > 0 {
		w.log.Info().
			Dur("crawl_delay", verdict.CrawlDelay).
			Str("url", job.URL).
			Msg("Respecting crawl delay")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(verdict.CrawlDelay):
		}
	}

	session, err := w.newSession()
	if err != nil {
		return fmt.Errorf("failed to create browser session: %w", err)
	}
	defer session.Close()

	result := scraper.New(w.scraperConfig(job.URL), session).Run(ctx)

	w.log.Info().
		Str("url", job.URL).
		Str("state", string(result.State)).
		Int("rounds", result.Rounds).
		Int("events", len(result.Events)).
		Msg("Scrape finished")

	// Partial results are still delivered; an error-terminated run only
	// fails the job after whatever was collected has been written.
	if err := w.sink.Write(job.Output, result.Events); err != nil {
		return errors.NewSink(job.URL, "failed to write events", err)
	}

	if result.State == scraper.StateError {
		return result.Err
	}
	return nil
}

func (w *Worker) scraperConfig(target string) scraper.ScraperConfig {
	return scraper.ScraperConfig{
		URL:        target,
		BaseURL:    baseOf(target),
		Selectors:  w.selectors,
		MaxRounds:  w.maxRounds,
		Exhaustive: w.exhaustive,
		SettleMin:  w.cfg.SettleMin,
		SettleMax:  w.cfg.SettleMax,
		Retry: scraper.RetryPolicy{
			Attempts:  w.cfg.RetryAttempts,
			BaseDelay: w.cfg.RetryBaseDelay,
			MaxDelay:  w.cfg.RetryMaxDelay,
		},
	}
}

// baseOf reduces a URL to scheme://host for relative link resolution
func baseOf(target string) string {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return target
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}
