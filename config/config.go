package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Client identity used for robots.txt evaluation and as the browser user agent
	UserAgent string

	// Browser configuration
	Headless   bool
	NoSandbox  bool
	BrowserBin string
	WindowSize string

	// Timeouts
	NavigateTimeout time.Duration
	BrowserTimeout  time.Duration
	RobotsTimeout   time.Duration

	// Scroll settle delay bounds (content render wait after each scroll)
	SettleMin time.Duration
	SettleMax time.Duration

	// Retry policy for browser operations
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// Memcache configuration (robots.txt cache)
	MemcacheAddr   string
	RobotsCacheTTL time.Duration

	// Redis configuration (optional event stream sink)
	RedisAddr      string
	RedisDB        int
	RedisStream    string
	RedisStreamMax int64

	// Sink selection: "file" or "redis"
	SinkType string

	// Maximum number of concurrently scraped URLs
	MaxConcurrency int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMax, _ := strconv.ParseInt(getEnv("REDIS_STREAM_MAX_LENGTH", "500"), 10, 64)
	retryAttempts, _ := strconv.Atoi(getEnv("RETRY_ATTEMPTS", "3"))
	maxConcurrency, _ := strconv.Atoi(getEnv("MAX_CONCURRENCY", "2"))

	return Config{
		UserAgent: getEnv("USER_AGENT",
			"MeetupWorker/0.0.1 (https://github.com/sjsage522/meetupworker; sjsage522@naver.com)"),
		Headless:        getEnvBool("BROWSER_HEADLESS", true),
		NoSandbox:       getEnvBool("BROWSER_NO_SANDBOX", false),
		BrowserBin:      getEnv("BROWSER_BIN", ""),
		WindowSize:      getEnv("BROWSER_WINDOW_SIZE", "1920,1080"),
		NavigateTimeout: getEnvSeconds("NAVIGATE_TIMEOUT_SECONDS", 30*time.Second),
		BrowserTimeout:  getEnvSeconds("BROWSER_TIMEOUT_SECONDS", 10*time.Second),
		RobotsTimeout:   getEnvSeconds("ROBOTS_TIMEOUT_SECONDS", 10*time.Second),
		SettleMin:       getEnvSeconds("SETTLE_MIN_SECONDS", 2*time.Second),
		SettleMax:       getEnvSeconds("SETTLE_MAX_SECONDS", 4*time.Second),
		RetryAttempts:   retryAttempts,
		RetryBaseDelay:  getEnvSeconds("RETRY_BASE_DELAY_SECONDS", 1*time.Second),
		RetryMaxDelay:   getEnvSeconds("RETRY_MAX_DELAY_SECONDS", 30*time.Second),
		MemcacheAddr:    getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RobotsCacheTTL:  getEnvSeconds("ROBOTS_CACHE_TTL_SECONDS", 3600*time.Second),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         redisDB,
		RedisStream:     getEnv("REDIS_STREAM", "meetupevents"),
		RedisStreamMax:  redisStreamMax,
		SinkType:        getEnv("SINK_TYPE", "file"),
		MaxConcurrency:  maxConcurrency,
		Environment:     getEnv("MEETUP_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the scraper cannot run with
func (c *Config) Validate() error {
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	if c.SettleMin < 0 || c.SettleMax < c.SettleMin {
		return fmt.Errorf("invalid settle delay bounds: min=%s max=%s", c.SettleMin, c.SettleMax)
	}
	if c.RetryBaseDelay <= 0 {
		return fmt.Errorf("RETRY_BASE_DELAY_SECONDS must be positive, got %s", c.RetryBaseDelay)
	}
	if c.SinkType != "file" && c.SinkType != "redis" {
		return fmt.Errorf("unknown sink type %q (expected file or redis)", c.SinkType)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("MAX_CONCURRENCY must be at least 1, got %d", c.MaxConcurrency)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvSeconds retrieves a duration given in seconds or returns a default value
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return defaultValue
	}
	return time.Duration(seconds * float64(time.Second))
}
