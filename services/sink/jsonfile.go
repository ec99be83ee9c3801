package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sjsage522/meetupworker/internal/scraper"
	"sjsage522/meetupworker/logger"
)

// FileSink writes a job's events to a pretty-printed JSON file
type FileSink struct {
	log *logger.Logger
}

// NewFileSink creates a file sink
func NewFileSink() *FileSink {
	return &FileSink{log: logger.ForSink()}
}

// Write serializes the events to dest, creating the parent directory if
// needed. An empty result still produces a file holding an empty array.
func (s *FileSink) Write(dest string, events []scraper.Event) error {
	if dest == "" {
		return fmt.Errorf("file sink requires an output path")
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if events == nil {
		events = []scraper.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	s.log.Info().Int("events", len(events)).Str("path", dest).Msg("Saved events")
	return nil
}

// Close is a no-op for the file sink
func (s *FileSink) Close() error {
	return nil
}
