package cache

import "time"

// CacheService is a minimal TTL cache used to enforce the scrape
// cooldown per catalog.
type CacheService interface {
	// Get returns the cached value, or an error on miss.
	Get(key string) ([]byte, error)
	// Set stores a value with an expiration.
	Set(key string, value []byte, expiration time.Duration) error
	// Delete removes a key.
	Delete(key string) error
}
