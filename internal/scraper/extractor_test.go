package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/meetupworker/logger"
)

func newTestExtractor() *Extractor {
	return NewExtractor("https://www.meetup.com", MeetupSelectors(), logger.ForScraper("test"))
}

func TestExtractFullCard(t *testing.T) {
	el := &fakeElement{
		attrs: map[string]string{"data-event-id": "305011111"},
		html: `<div data-event-id="305011111">
			<h3>Go Developers Monthly</h3>
			<a href="/go-developers/events/305011111/">details</a>
			<time datetime="2025-06-07T18:00:00-07:00[America/Los_Angeles]">Sat, Jun 7 · 6:00 PM PDT</time>
			<div class="flex-shrink min-w-0 truncate">by Go Developers Group</div>
			<div class="text-ds-neutral500"><span>4.8</span></div>
			<div class="text-primary text-xs"><span>46 attendees</span></div>
			<img src="https://secure.meetupstatic.com/photos/event/1.webp" />
		</div>`,
	}

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)

	assert.Equal(t, "305011111", event.Id)
	assert.Equal(t, "Go Developers Monthly", event.Title)
	assert.Equal(t, "https://www.meetup.com/go-developers/events/305011111/", event.Link)
	require.NotNil(t, event.StartsAt)
	assert.Equal(t, time.Date(2025, 6, 7, 18, 0, 0, 0, event.StartsAt.Location()), *event.StartsAt)
	assert.Equal(t, "Sat, Jun 7 · 6:00 PM PDT", event.DateDisplay)
	assert.Equal(t, "Go Developers Group", event.GroupName)
	assert.Equal(t, "4.8", event.Rating)
	assert.Equal(t, 46, event.Attendees)
	assert.Equal(t, "https://secure.meetupstatic.com/photos/event/1.webp", event.Thumbnail)
}

func TestExtractDefaultsForUnresolvableOptionalFields(t *testing.T) {
	// Only the required fields resolve; every optional field takes its
	// documented default instead of dropping the record
	el := eventCard("42", "Bare Event")

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)

	assert.Equal(t, "42", event.Id)
	assert.Nil(t, event.StartsAt)
	assert.Empty(t, event.DateDisplay)
	assert.Equal(t, GroupNameUnavailable, event.GroupName)
	assert.Equal(t, NoRating, event.Rating)
	assert.Equal(t, 0, event.Attendees)
	assert.Equal(t, NoImage, event.Thumbnail)
}

func TestExtractRejectsMissingRequiredFields(t *testing.T) {
	x := newTestExtractor()

	// No identity attribute
	assert.Nil(t, x.Extract(&fakeElement{
		attrs: map[string]string{},
		html:  `<div><h3>Title</h3><a href="/events/1/">x</a></div>`,
	}))

	// Empty identity
	assert.Nil(t, x.Extract(&fakeElement{
		attrs: map[string]string{"data-event-id": ""},
		html:  `<div><h3>Title</h3><a href="/events/1/">x</a></div>`,
	}))

	// No title
	assert.Nil(t, x.Extract(&fakeElement{
		attrs: map[string]string{"data-event-id": "1"},
		html:  `<div data-event-id="1"><a href="/events/1/">x</a></div>`,
	}))

	// No event link
	assert.Nil(t, x.Extract(&fakeElement{
		attrs: map[string]string{"data-event-id": "1"},
		html:  `<div data-event-id="1"><h3>Title</h3><a href="/groups/1/">x</a></div>`,
	}))

	// Stale handle on attribute read
	assert.Nil(t, x.Extract(&fakeElement{attrErr: assert.AnError}))

	// Stale handle on subtree snapshot
	assert.Nil(t, x.Extract(&fakeElement{
		attrs:   map[string]string{"data-event-id": "1"},
		htmlErr: assert.AnError,
	}))
}

func TestExtractUnparsableDateKeepsDisplayText(t *testing.T) {
	el := &fakeElement{
		attrs: map[string]string{"data-event-id": "7"},
		html: `<div data-event-id="7">
			<h3>Date TBD Event</h3>
			<a href="/events/7/">x</a>
			<time datetime="sometime soon">Date to be announced</time>
		</div>`,
	}

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)
	assert.Nil(t, event.StartsAt)
	assert.Equal(t, "Date to be announced", event.DateDisplay)
}

func TestExtractTimeZoneSuffixStripped(t *testing.T) {
	el := &fakeElement{
		attrs: map[string]string{"data-event-id": "8"},
		html: `<div data-event-id="8">
			<h3>UTC Event</h3>
			<a href="/events/8/">x</a>
			<time datetime="2025-03-01T10:00:00Z[UTC]">Mar 1</time>
		</div>`,
	}

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)
	require.NotNil(t, event.StartsAt)
	assert.Equal(t, time.UTC, event.StartsAt.Location())
}

func TestExtractAbsoluteLinkUntouched(t *testing.T) {
	el := &fakeElement{
		attrs: map[string]string{"data-event-id": "9"},
		html: `<div data-event-id="9">
			<h3>Linked Event</h3>
			<a href="https://www.meetup.com/other/events/9/">x</a>
		</div>`,
	}

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)
	assert.Equal(t, "https://www.meetup.com/other/events/9/", event.Link)
}

func TestExtractNonMatchingThumbnailDegrades(t *testing.T) {
	el := &fakeElement{
		attrs: map[string]string{"data-event-id": "10"},
		html: `<div data-event-id="10">
			<h3>Event</h3>
			<a href="/events/10/">x</a>
			<img src="data:image/gif;base64,R0lGOD" data-srcset="https://secure.meetupstatic.com/x.webp" />
		</div>`,
	}

	event := newTestExtractor().Extract(el)
	require.NotNil(t, event)
	assert.Equal(t, NoImage, event.Thumbnail)
}
