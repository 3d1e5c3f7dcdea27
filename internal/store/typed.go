package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Get decodes the cached value at key as T. A value that no longer decodes
// as T is treated as a miss.
func Get[T any](c domain.ResponseCache, key string) (*T, bool) {
	raw, ok := c.Retrieve(key)
	if !ok {
		return nil, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Put encodes v and saves it under key
func Put[T any](c domain.ResponseCache, key string, v *T, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	c.Save(key, data, ttl)
	return nil
}
