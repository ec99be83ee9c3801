package browser

import "context"

// Session is the narrow browser capability the scrape loop depends on.
// Every call may fail with a timeout or stale-element error; callers wrap
// them with retries rather than assuming success.
type Session interface {
	// Navigate opens the given URL and waits for the page load event
	Navigate(ctx context.Context, url string) error

	// Height returns the current document scroll height
	Height() (int, error)

	// ScrollToBottom scrolls the window to the bottom of the document
	ScrollToBottom() error

	// Elements returns a snapshot of the elements matching the selector.
	// The returned handles are not live; a later scroll may invalidate them.
	Elements(selector string) ([]Element, error)

	// Close shuts the session down and releases the underlying page
	Close() error
}

// Element is one DOM element handle returned by Session.Elements
type Element interface {
	// Attribute returns the value of the named attribute.
	// The second return is false when the attribute is absent.
	Attribute(name string) (string, bool, error)

	// Text returns the visible text of the element
	Text() (string, error)

	// HTML returns the outer HTML of the element's subtree
	HTML() (string, error)
}
