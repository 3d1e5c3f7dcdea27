package domain

import (
	"encoding/json"
	"time"
)

// Cache key prefixes. The set is closed; every cache key starts with one.
const (
	PrefixTrending   = "trending"
	PrefixSearch     = "search"
	PrefixRatings    = "ratings"
	PrefixFavourites = "favourites"
)

// CachePrefixes lists every namespace in the response cache
func CachePrefixes() []string {
	return []string{PrefixTrending, PrefixSearch, PrefixRatings, PrefixFavourites}
}

// ResponseCache is the durable TTL cache for provider pages.
// It is best-effort: persistence failures read as misses and never surface.
type ResponseCache interface {
	// Save writes or overwrites key with an entry expiring after ttl
	Save(key string, value json.RawMessage, ttl time.Duration)

	// Retrieve returns the stored value, evicting it first if expired
	Retrieve(key string) (json.RawMessage, bool)

	// InvalidateByPrefix removes every key starting with prefix
	InvalidateByPrefix(prefix string)

	// ClearAll drops the whole store
	ClearAll()
}
