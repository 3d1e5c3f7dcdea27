package service

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// Cache keys must stay byte-for-byte stable: entries persisted by earlier
// runs are looked up with them.
//
//	trending_{day|week}_page_{n}
//	search_{lower(query)}_page_{n}
//	favourites_page_{n}
//	ratings_page_{n}

// TrendingKey is the cache key for a trending page
func TrendingKey(window domain.TimeWindow, page int) string {
	return fmt.Sprintf("%s_%s_page_%d", domain.PrefixTrending, window, page)
}

// SearchKey is the cache key for a search page. Queries differing only in
// case share an entry.
func SearchKey(query string, page int) string {
	return fmt.Sprintf("%s_%s_page_%d", domain.PrefixSearch, strings.ToLower(query), page)
}

// FavouritesKey is the cache key for a favourites page
func FavouritesKey(page int) string {
	return fmt.Sprintf("%s_page_%d", domain.PrefixFavourites, page)
}

// RatingsKey is the cache key for a rated-movies page
func RatingsKey(page int) string {
	return fmt.Sprintf("%s_page_%d", domain.PrefixRatings, page)
}
