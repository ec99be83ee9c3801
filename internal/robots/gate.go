package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"

	"sjsage522/meetupworker/config"
	"sjsage522/meetupworker/logger"
	"sjsage522/meetupworker/services/cache"
)

// Result is the gate's verdict for one target URL
type Result struct {
	Allowed    bool
	CrawlDelay time.Duration
}

// Gate checks a target host's published robots.txt before any navigation.
// Any retrieval or parse failure is treated as a denial; a run must not
// start on a host whose policy could not be read.
type Gate struct {
	client    *http.Client
	cacheSvc  cache.CacheService
	cacheTTL  time.Duration
	userAgent string
	log       *logger.Logger
}

// NewGate creates a gate using the configured client identity.
// cacheSvc may be nil; the policy is then fetched on every check.
func NewGate(cfg *config.Config, cacheSvc cache.CacheService) *Gate {
	return &Gate{
		client:    &http.Client{Timeout: cfg.RobotsTimeout},
		cacheSvc:  cacheSvc,
		cacheTTL:  cfg.RobotsCacheTTL,
		userAgent: cfg.UserAgent,
		log:       logger.ForGate(),
	}
}

// Check fetches the host's robots.txt and evaluates whether the configured
// identity may fetch rawURL, along with any published crawl delay.
func (g *Gate) Check(ctx context.Context, rawURL string) Result {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || parsed.Scheme == "" {
		g.log.Warn().Str("url", rawURL).Msg("Target URL is not absolute, denying")
		return Result{}
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
	body, err := cache.Fetch(g.cacheSvc, "robots:"+parsed.Host, g.cacheTTL, func() ([]byte, error) {
		return g.fetch(ctx, robotsURL)
	})
	if err != nil {
		g.log.Warn().Err(err).Str("robots_url", robotsURL).Msg("Policy fetch failed, denying")
		return Result{}
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		g.log.Warn().Err(err).Str("robots_url", robotsURL).Msg("Policy parse failed, denying")
		return Result{}
	}

	group := data.FindGroup(g.userAgent)

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}

	if !group.Test(path) {
		g.log.Warn().Str("url", rawURL).Msg("Scraping not allowed by robots.txt")
		return Result{}
	}

	if group.CrawlDelay > 0 {
		g.log.Info().Dur("crawl_delay", group.CrawlDelay).Msg("Host publishes a crawl delay")
	}
	return Result{Allowed: true, CrawlDelay: group.CrawlDelay}
}

// fetch downloads robots.txt. A 404 yields an empty policy (everything
// allowed); any other non-2xx status or transport error is a failure.
func (g *Gate) fetch(ctx context.Context, robotsURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []byte{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("robots.txt fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
