package scraper

// MeetupSelectors returns the locator profile for the Meetup event search
// feed. Kept as data so markup changes stay out of the extraction logic.
func MeetupSelectors() Selectors {
	return Selectors{
		EventList: `[data-event-id]`,
		IdAttr:    "data-event-id",

		Title:    "h3",
		Link:     `a[href*="/events/"]`,
		LinkAttr: "href",

		Time:          "time",
		TimeAttr:      "datetime",
		Group:         "div.flex-shrink.min-w-0.truncate",
		GroupPrefix:   "by ",
		Rating:        `[class*="text-ds-neutral500"] span`,
		Attendees:     `[class*="text-primary"][class*="text-xs"] span`,
		Thumbnail:     `img[src*="meetupstatic.com"]`,
		ThumbnailAttr: "src",
	}
}
