package scraper

import (
	"context"
	"math/rand"
	"time"

	"sjsage522/meetupworker/internal/browser"
	"sjsage522/meetupworker/logger"
)

// Scraper drives one browser session through an infinite-scroll event feed,
// extracting and de-duplicating events round by round until the feed is
// exhausted, the round budget is hit, or a browser operation fails for good.
type Scraper struct {
	cfg       ScraperConfig
	session   browser.Session
	extractor *Extractor
	log       *logger.Logger
	rng       *rand.Rand
}

// New creates a scraper for one URL. The session is exclusively owned by
// this scraper until Run returns.
func New(cfg ScraperConfig, session browser.Session) *Scraper {
	log := logger.ForScraper(cfg.URL)
	return &Scraper{
		cfg:       cfg,
		session:   session,
		extractor: NewExtractor(cfg.BaseURL, cfg.Selectors, log),
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run navigates to the configured URL and executes scroll rounds until a
// terminal state is reached. Whatever was collected up to that point is
// always returned; an error-terminated run is a partial result, not a
// failure of the call.
func (s *Scraper) Run(ctx context.Context) *Result {
	ledger := NewLedger()
	events := []Event{}
	lastHeight := -1
	round := 0

	fail := func(err error) *Result {
		return &Result{Events: events, State: StateError, Rounds: round, Err: err}
	}

	err := s.cfg.Retry.Do(ctx, s.log, "navigate", func() error {
		return s.session.Navigate(ctx, s.cfg.URL)
	})
	if err != nil {
		return fail(err)
	}

	// Let the initial content render before the first snapshot
	if err := s.settle(ctx); err != nil {
		return fail(err)
	}

	for {
		// Cancellation short-circuits to returning what was collected
		select {
		case <-ctx.Done():
			s.log.Warn().Int("events", len(events)).Msg("Run cancelled")
			return fail(ctx.Err())
		default:
		}

		if !s.cfg.Exhaustive && round >= s.cfg.MaxRounds {
			s.log.Info().Int("events", len(events)).Msg("Round budget reached")
			return &Result{Events: events, State: StateBudget, Rounds: round}
		}

		s.log.Debug().Int("round", round+1).Msg("Scrolling")

		err := s.cfg.Retry.Do(ctx, s.log, "scroll", s.session.ScrollToBottom)
		if err != nil {
			return fail(err)
		}

		if err := s.settle(ctx); err != nil {
			return fail(err)
		}

		var elements []browser.Element
		err = s.cfg.Retry.Do(ctx, s.log, "snapshot", func() error {
			var snapErr error
			elements, snapErr = s.session.Elements(s.cfg.Selectors.EventList)
			return snapErr
		})
		if err != nil {
			return fail(err)
		}
		s.log.Debug().Int("elements", len(elements)).Msg("Snapshot taken")

		newEvents := 0
		for _, el := range elements {
			id, ok, attrErr := el.Attribute(s.cfg.Selectors.IdAttr)
			if attrErr != nil || !ok || id == "" {
				continue
			}
			if ledger.Has(id) {
				continue
			}

			event := s.extractor.Extract(el)
			if event == nil {
				continue
			}

			events = append(events, *event)
			ledger.Add(event.Id)
			newEvents++
			s.log.Debug().Str("title", event.Title).Msg("Added event")
		}
		s.log.Info().
			Int("round", round+1).
			Int("new", newEvents).
			Int("total", len(events)).
			Msg("Round complete")

		var height int
		err = s.cfg.Retry.Do(ctx, s.log, "height", func() error {
			var heightErr error
			height, heightErr = s.session.Height()
			return heightErr
		})
		if err != nil {
			return fail(err)
		}

		// No-new-content is the primary stop signal: a feed can stop
		// yielding distinct items before its height stabilizes.
		if newEvents == 0 {
			s.log.Info().Int("events", len(events)).Msg("No new events, feed exhausted")
			return &Result{Events: events, State: StateNoNewContent, Rounds: round + 1}
		}
		if height == lastHeight {
			s.log.Info().Int("events", len(events)).Msg("Scroll height unchanged, feed cannot grow")
			return &Result{Events: events, State: StateHeightUnchanged, Rounds: round + 1}
		}

		lastHeight = height
		round++
	}
}

// settle suspends the loop for a jittered interval within the configured
// bounds so asynchronously loaded content can render.
func (s *Scraper) settle(ctx context.Context) error {
	delay := s.cfg.SettleMin
	if span := s.cfg.SettleMax - s.cfg.SettleMin; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span)))
	}
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
