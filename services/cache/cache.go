package cache

import (
	"time"
)

// CacheService represents a generic cache service.
// The worker uses it to share fetched robots.txt policies across runs so a
// host is not re-polled for every scrape job.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// Fetch reads key from the cache, falling back to fill on a miss and storing
// the result with the given TTL. A cache write failure is ignored; the filled
// value is still returned.
func Fetch(svc CacheService, key string, ttl time.Duration, fill func() ([]byte, error)) ([]byte, error) {
	if svc != nil {
		if value, err := svc.Get(key); err == nil {
			return value, nil
		}
	}

	value, err := fill()
	if err != nil {
		return nil, err
	}
	if svc != nil {
		_ = svc.Set(key, value, ttl)
	}
	return value, nil
}
