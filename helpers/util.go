package helpers

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var digitRun = regexp.MustCompile(`\d+`)

// FirstInt extracts the first run of digits from free text like "46 attendees".
// Returns ok=false when the text contains no digits.
func FirstInt(text string) (int, bool) {
	match := digitRun.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeEventTime parses a datetime attribute such as
// "2025-06-07T18:00:00-07:00[America/Los_Angeles]" into a time.Time.
// The bracketed zone annotation is stripped and a trailing literal Z is
// accepted as the UTC offset. Returns ok=false when the value cannot be
// parsed; callers keep the raw text for display in that case.
func NormalizeEventTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "["); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveURL resolves a possibly relative href against a base URL
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(parsed).String()
}
