package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// FilterResult is a movie that matched a local filter
type FilterResult struct {
	Movie          domain.Movie
	Index          int   // position in the filtered slice
	MatchedIndexes []int // byte offsets in the lowercase title (for highlighting)
	Score          int   // higher is better
}

// movieIndex implements fuzzy.Source over precomputed lowercase titles
type movieIndex struct {
	movies      []domain.Movie
	lowerTitles []string
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx movieIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of movies (implements fuzzy.Source)
func (idx movieIndex) Len() int { return len(idx.movies) }

func newMovieIndex(movies []domain.Movie) movieIndex {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = strings.ToLower(m.Title)
	}
	return movieIndex{movies: movies, lowerTitles: titles}
}

// FilterMovies fuzzy-filters the movies already on screen. An empty query
// returns every movie in its original order.
func FilterMovies(query string, movies []domain.Movie) []FilterResult {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]FilterResult, len(movies))
		for i, m := range movies {
			results[i] = FilterResult{Movie: m, Index: i}
		}
		return results
	}

	idx := newMovieIndex(movies)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			Movie:          movies[match.Index],
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// RankTitles returns the indexes of titles that contain query as a
// case-insensitive subsequence, closest match first
func RankTitles(query string, titles []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := lfuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	indexes := make([]int, len(ranks))
	for i, r := range ranks {
		indexes[i] = r.OriginalIndex
	}
	return indexes
}

// GrepMovies keeps the movies whose title matches query, closest first
func GrepMovies(query string, movies []domain.Movie) []domain.Movie {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	order := RankTitles(query, titles)
	out := make([]domain.Movie, len(order))
	for i, idx := range order {
		out[i] = movies[idx]
	}
	return out
}
