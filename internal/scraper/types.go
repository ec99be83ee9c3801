package scraper

import (
	"time"
)

// Sentinel values for optional fields that could not be resolved
const (
	GroupNameUnavailable = "Group name not available"
	NoRating             = "No rating"
	NoImage              = "No image available"
)

// Event represents one scraped event
type Event struct {
	Id          string     `json:"event_id"`
	Title       string     `json:"title"`
	Link        string     `json:"url"`
	StartsAt    *time.Time `json:"date,omitempty"`
	DateDisplay string     `json:"date_display,omitempty"`
	GroupName   string     `json:"group_name"`
	Rating      string     `json:"rating"`
	Attendees   int        `json:"attendees"`
	Thumbnail   string     `json:"image_url"`
}

// Selectors contains CSS selectors for the event list and per-field lookups.
// Site markup drift is handled by editing this configuration, not the
// extraction code.
type Selectors struct {
	// EventList matches one rendered event card in the feed
	EventList string
	// IdAttr is the identity attribute carried by the card itself
	IdAttr string

	// Required fields; an event without them is discarded
	Title    string
	Link     string
	LinkAttr string

	// Optional fields; failures degrade to documented defaults
	Time          string
	TimeAttr      string
	Group         string
	GroupPrefix   string
	Rating        string
	Attendees     string
	Thumbnail     string
	ThumbnailAttr string
}

// RetryPolicy bounds retries of browser operations
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// ScraperConfig contains configuration for one scrape session
type ScraperConfig struct {
	URL        string
	BaseURL    string
	Selectors  Selectors
	MaxRounds  int
	Exhaustive bool
	SettleMin  time.Duration
	SettleMax  time.Duration
	Retry      RetryPolicy
}

// TerminalState describes why the scroll loop stopped
type TerminalState string

const (
	// StateBudget means the configured round budget was reached
	StateBudget TerminalState = "budget_reached"
	// StateNoNewContent means a round produced zero new events
	StateNoNewContent TerminalState = "feed_exhausted"
	// StateHeightUnchanged means the page could not scroll any further
	StateHeightUnchanged TerminalState = "height_unchanged"
	// StateError means a browser operation failed after retry exhaustion
	StateError TerminalState = "error"
)

// Result is the outcome of one scrape session. Events holds whatever was
// collected before the terminal state, in discovery order; on StateError it
// is the partial prefix and Err carries the cause.
type Result struct {
	Events []Event
	State  TerminalState
	Rounds int
	Err    error
}
