package sink

import (
	"sjsage522/meetupworker/internal/scraper"
)

// Sink receives the events collected by one scrape job, exactly once,
// after the scroll loop reaches a terminal state.
type Sink interface {
	// Write delivers the job's events. dest is the job's output target
	// (a file path for the file sink; ignored by the stream sink).
	Write(dest string, events []scraper.Event) error

	// Close releases any held connections
	Close() error
}
