package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/meetupworker/helpers"
	"sjsage522/meetupworker/internal/browser"
	"sjsage522/meetupworker/logger"
)

// Extractor maps one element handle to an Event according to a selector
// profile. Identity, title and link are required; every other field falls
// back to its default when the lookup fails.
type Extractor struct {
	baseURL   string
	selectors Selectors
	log       *logger.Logger
}

// NewExtractor creates an extractor for the given base URL and selectors
func NewExtractor(baseURL string, selectors Selectors, log *logger.Logger) *Extractor {
	return &Extractor{
		baseURL:   baseURL,
		selectors: selectors,
		log:       log,
	}
}

// Extract builds an Event from the element handle. It returns nil when a
// required field cannot be resolved; the element is then skipped, never
// emitted as a partial record.
func (x *Extractor) Extract(el browser.Element) *Event {
	id, ok, err := el.Attribute(x.selectors.IdAttr)
	if err != nil || !ok || id == "" {
		x.log.Debug().Err(err).Msg("Element has no identity attribute, skipping")
		return nil
	}

	// Snapshot the card's subtree once; field lookups below parse the
	// static HTML instead of going back to the live handle, so a scroll
	// happening mid-extraction cannot invalidate them one by one.
	html, err := el.HTML()
	if err != nil {
		x.log.Debug().Err(err).Str("event_id", id).Msg("Element subtree unavailable, skipping")
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		x.log.Debug().Err(err).Str("event_id", id).Msg("Element subtree unparsable, skipping")
		return nil
	}

	title := strings.TrimSpace(doc.Find(x.selectors.Title).First().Text())
	if title == "" {
		x.log.Debug().Str("event_id", id).Msg("Event has no title, skipping")
		return nil
	}

	href, _ := doc.Find(x.selectors.Link).First().Attr(x.selectors.LinkAttr)
	link := helpers.ResolveURL(x.baseURL, href)
	if link == "" {
		x.log.Debug().Str("event_id", id).Msg("Event has no link, skipping")
		return nil
	}

	event := &Event{
		Id:        id,
		Title:     title,
		Link:      link,
		GroupName: GroupNameUnavailable,
		Rating:    NoRating,
		Thumbnail: NoImage,
	}

	x.extractDate(doc, event)
	x.extractGroup(doc, event)
	x.extractRating(doc, event)
	x.extractAttendees(doc, event)
	x.extractThumbnail(doc, event)

	return event
}

func (x *Extractor) extractDate(doc *goquery.Document, event *Event) {
	timeSel := doc.Find(x.selectors.Time).First()
	if timeSel.Length() == 0 {
		x.log.Debug().Str("event_id", event.Id).Msg("Degraded field: date")
		return
	}

	event.DateDisplay = strings.TrimSpace(timeSel.Text())

	raw, ok := timeSel.Attr(x.selectors.TimeAttr)
	if !ok {
		return
	}
	if parsed, ok := helpers.NormalizeEventTime(raw); ok {
		event.StartsAt = &parsed
	} else {
		x.log.Debug().Str("event_id", event.Id).Str("datetime", raw).Msg("Could not parse event date")
		if event.DateDisplay == "" {
			event.DateDisplay = strings.TrimSpace(raw)
		}
	}
}

func (x *Extractor) extractGroup(doc *goquery.Document, event *Event) {
	text := strings.TrimSpace(doc.Find(x.selectors.Group).First().Text())
	if text == "" {
		x.log.Debug().Str("event_id", event.Id).Msg("Degraded field: group")
		return
	}
	event.GroupName = strings.TrimSpace(strings.TrimPrefix(text, x.selectors.GroupPrefix))
}

func (x *Extractor) extractRating(doc *goquery.Document, event *Event) {
	text := strings.TrimSpace(doc.Find(x.selectors.Rating).First().Text())
	if text == "" {
		x.log.Debug().Str("event_id", event.Id).Msg("Degraded field: rating")
		return
	}
	event.Rating = text
}

func (x *Extractor) extractAttendees(doc *goquery.Document, event *Event) {
	text := doc.Find(x.selectors.Attendees).First().Text()
	n, ok := helpers.FirstInt(text)
	if !ok {
		x.log.Debug().Str("event_id", event.Id).Msg("Degraded field: attendees")
		return
	}
	event.Attendees = n
}

func (x *Extractor) extractThumbnail(doc *goquery.Document, event *Event) {
	src, ok := doc.Find(x.selectors.Thumbnail).First().Attr(x.selectors.ThumbnailAttr)
	if !ok || !strings.HasPrefix(src, "http") {
		x.log.Debug().Str("event_id", event.Id).Msg("Degraded field: thumbnail")
		return
	}
	event.Thumbnail = src
}
