package scraper

import (
	"context"
	"time"

	"sjsage522/meetupworker/logger"
)

// Do runs fn up to p.Attempts times, sleeping an exponentially growing,
// capped delay between attempts. Every error is treated as retryable; the
// last attempt's error is returned to the caller rather than swallowed.
// Context cancellation between attempts aborts the remaining retries.
func (p RetryPolicy) Do(ctx context.Context, log *logger.Logger, op string, fn func() error) error {
	var err error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}

		log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("Operation failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	log.Error().
		Err(err).
		Str("op", op).
		Int("attempts", p.Attempts).
		Msg("Operation failed after all attempts")
	return err
}
