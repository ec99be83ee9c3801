package scraper

import (
	"context"
	"fmt"

	"sjsage522/meetupworker/internal/browser"
)

// fakeElement implements browser.Element over static data
type fakeElement struct {
	attrs   map[string]string
	html    string
	text    string
	attrErr error
	htmlErr error
}

var _ browser.Element = (*fakeElement)(nil)

func (f *fakeElement) Attribute(name string) (string, bool, error) {
	if f.attrErr != nil {
		return "", false, f.attrErr
	}
	val, ok := f.attrs[name]
	return val, ok, nil
}

func (f *fakeElement) Text() (string, error) {
	return f.text, nil
}

func (f *fakeElement) HTML() (string, error) {
	if f.htmlErr != nil {
		return "", f.htmlErr
	}
	return f.html, nil
}

// eventCard builds a minimal extractable event element
func eventCard(id, title string) *fakeElement {
	html := fmt.Sprintf(
		`<div data-event-id="%s"><h3>%s</h3><a href="/events/%s/">details</a></div>`,
		id, title, id)
	return &fakeElement{
		attrs: map[string]string{"data-event-id": id},
		html:  html,
	}
}

// fakeSession implements browser.Session with scripted rounds. Elements and
// Height replay their configured slices and repeat the last entry once
// exhausted.
type fakeSession struct {
	navigated   []string
	navigateErr error

	rounds  [][]browser.Element
	heights []int

	scrollCalls   int
	elementCalls  int
	heightCalls   int
	scrollFailAt  int // fail every ScrollToBottom call numbered >= this (1-based, 0 = never)
	elementFailAt int // same for Elements
}

var _ browser.Session = (*fakeSession)(nil)

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	if f.navigateErr != nil {
		return f.navigateErr
	}
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeSession) Height() (int, error) {
	f.heightCalls++
	if len(f.heights) == 0 {
		return 0, nil
	}
	idx := f.heightCalls - 1
	if idx >= len(f.heights) {
		idx = len(f.heights) - 1
	}
	return f.heights[idx], nil
}

func (f *fakeSession) ScrollToBottom() error {
	f.scrollCalls++
	if f.scrollFailAt > 0 && f.scrollCalls >= f.scrollFailAt {
		return fmt.Errorf("scroll timeout on call %d", f.scrollCalls)
	}
	return nil
}

func (f *fakeSession) Elements(string) ([]browser.Element, error) {
	f.elementCalls++
	if f.elementFailAt > 0 && f.elementCalls >= f.elementFailAt {
		return nil, fmt.Errorf("stale snapshot on call %d", f.elementCalls)
	}
	if len(f.rounds) == 0 {
		return nil, nil
	}
	idx := f.elementCalls - 1
	if idx >= len(f.rounds) {
		idx = len(f.rounds) - 1
	}
	return f.rounds[idx], nil
}

func (f *fakeSession) Close() error {
	return nil
}
