package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()

	err := c.Set("key", []byte("value"), time.Minute)
	assert.NoError(t, err)

	value, err := c.Get("key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get("absent")
	assert.Error(t, err)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()

	err := c.Set("key", []byte("value"), -time.Second)
	assert.NoError(t, err)

	_, err = c.Get("key")
	assert.Error(t, err)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()

	assert.NoError(t, c.Set("key", []byte("value"), time.Minute))
	assert.NoError(t, c.Delete("key"))

	_, err := c.Get("key")
	assert.Error(t, err)
}
