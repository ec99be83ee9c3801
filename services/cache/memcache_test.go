package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	// Create a memcache client
	mc := NewMemcacheService("localhost:11211")

	// Test if memcached is available
	_, err := mc.client.Get("test")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	// Set a value
	err = mc.Set("robots:test_host", []byte("User-agent: *\nAllow: /"), 1*time.Second)
	assert.NoError(t, err)

	// Get the value
	value, err := mc.Get("robots:test_host")
	assert.NoError(t, err)
	assert.Equal(t, "User-agent: *\nAllow: /", string(value))

	// Delete the value
	err = mc.Delete("robots:test_host")
	assert.NoError(t, err)

	// Try to get the deleted value
	_, err = mc.Get("robots:test_host")
	assert.Error(t, err)
}

type fakeCache struct {
	data map[string][]byte
}

func (f *fakeCache) Get(key string) ([]byte, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (f *fakeCache) Set(key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func TestFetch(t *testing.T) {
	fc := &fakeCache{data: make(map[string][]byte)}

	fills := 0
	fill := func() ([]byte, error) {
		fills++
		return []byte("policy"), nil
	}

	// Miss fills and stores
	value, err := Fetch(fc, "robots:example.org", time.Minute, fill)
	assert.NoError(t, err)
	assert.Equal(t, "policy", string(value))
	assert.Equal(t, 1, fills)

	// Hit does not fill again
	value, err = Fetch(fc, "robots:example.org", time.Minute, fill)
	assert.NoError(t, err)
	assert.Equal(t, "policy", string(value))
	assert.Equal(t, 1, fills)

	// Fill errors propagate
	_, err = Fetch(fc, "robots:other.org", time.Minute, func() ([]byte, error) {
		return nil, errors.New("network down")
	})
	assert.Error(t, err)

	// Nil cache still fills
	value, err = Fetch(nil, "robots:example.org", time.Minute, fill)
	assert.NoError(t, err)
	assert.Equal(t, "policy", string(value))
	assert.Equal(t, 2, fills)
}
