package browser

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"sjsage522/meetupworker/config"
	"sjsage522/meetupworker/logger"
	"sjsage522/meetupworker/pkg/errors"
)

// RodSession implements Session on top of a go-rod page
type RodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	log      *logger.Logger
}

// NewRodSession launches a headless Chromium and opens one stealth page.
// The session owns the browser process; Close kills it.
func NewRodSession(cfg *config.Config) (*RodSession, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("window-size", cfg.WindowSize).
		Set("user-agent", cfg.UserAgent).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-notifications").
		Set("disable-popup-blocking")

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.NewNavigation("", "failed to launch browser", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, errors.NewNavigation("", "failed to connect to browser", err)
	}

	// stealth.Page injects the anti-detection script before any navigation
	page, err := stealth.Page(b)
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, errors.NewNavigation("", "failed to open stealth page", err)
	}

	log := logger.ForBrowser()
	log.Info().
		Bool("headless", cfg.Headless).
		Str("user_agent", cfg.UserAgent).
		Msg("Browser launched")

	return &RodSession{
		browser:  b,
		launcher: l,
		page:     page,
		timeout:  cfg.BrowserTimeout,
		log:      log,
	}, nil
}

// Navigate opens the URL and blocks until the load event fires
func (s *RodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return errors.NewNavigation(url, "navigation failed", err)
	}
	if err := page.WaitLoad(); err != nil {
		return errors.NewNavigation(url, "page load wait failed", err)
	}
	s.log.Debug().Str("url", url).Msg("Navigation complete")
	return nil
}

// Height returns document.body.scrollHeight
func (s *RodSession) Height() (int, error) {
	res, err := s.page.Timeout(s.timeout).Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, errors.NewBrowser("", "failed to read scroll height", err)
	}
	return res.Value.Int(), nil
}

// ScrollToBottom scrolls the window to the bottom of the document
func (s *RodSession) ScrollToBottom() error {
	_, err := s.page.Timeout(s.timeout).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err != nil {
		return errors.NewBrowser("", "scroll to bottom failed", err)
	}
	return nil
}

// Elements snapshots the elements matching the selector
func (s *RodSession) Elements(selector string) ([]Element, error) {
	els, err := s.page.Timeout(s.timeout).Elements(selector)
	if err != nil {
		return nil, errors.NewBrowser("", "element snapshot failed", err)
	}

	handles := make([]Element, 0, len(els))
	for _, el := range els {
		handles = append(handles, &rodElement{el: el, timeout: s.timeout})
	}
	return handles, nil
}

// Close closes the page, the browser and the launched process
func (s *RodSession) Close() error {
	s.log.Info().Msg("Closing browser session")
	if s.page != nil {
		_ = s.page.Close()
	}
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// rodElement adapts *rod.Element to the Element interface
type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *rodElement) Attribute(name string) (string, bool, error) {
	val, err := e.el.Timeout(e.timeout).Attribute(name)
	if err != nil {
		return "", false, errors.NewBrowser("", "attribute lookup failed", err)
	}
	if val == nil {
		return "", false, nil
	}
	return *val, true, nil
}

func (e *rodElement) Text() (string, error) {
	text, err := e.el.Timeout(e.timeout).Text()
	if err != nil {
		return "", errors.NewBrowser("", "element text failed", err)
	}
	return text, nil
}

func (e *rodElement) HTML() (string, error) {
	html, err := e.el.Timeout(e.timeout).HTML()
	if err != nil {
		return "", errors.NewBrowser("", "element html failed", err)
	}
	return html, nil
}
