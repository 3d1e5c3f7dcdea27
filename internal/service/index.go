package service

import "sync"

// favouriteIndex is the session-local set of favourited movie IDs.
// It mirrors the most recently fetched favourites pages, not server truth.
type favouriteIndex struct {
	mu  sync.RWMutex
	ids map[int]struct{}
}

func newFavouriteIndex() *favouriteIndex {
	return &favouriteIndex{ids: make(map[int]struct{})}
}

func (f *favouriteIndex) has(id int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[id]
	return ok
}

func (f *favouriteIndex) add(id int) {
	f.mu.Lock()
	f.ids[id] = struct{}{}
	f.mu.Unlock()
}

func (f *favouriteIndex) remove(id int) {
	f.mu.Lock()
	delete(f.ids, id)
	f.mu.Unlock()
}

func (f *favouriteIndex) reset() {
	f.mu.Lock()
	f.ids = make(map[int]struct{})
	f.mu.Unlock()
}

// merge adds ids; page 1 replaces the whole set
func (f *favouriteIndex) merge(page int, ids []int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if page == 1 {
		f.ids = make(map[int]struct{}, len(ids))
	}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
}

func (f *favouriteIndex) len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}

// ratingIndex maps movie ID to the account's rating. Absent means unrated.
type ratingIndex struct {
	mu      sync.RWMutex
	ratings map[int]float64
}

func newRatingIndex() *ratingIndex {
	return &ratingIndex{ratings: make(map[int]float64)}
}

func (r *ratingIndex) get(id int) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratings[id]
}

func (r *ratingIndex) set(id int, value float64) {
	r.mu.Lock()
	r.ratings[id] = value
	r.mu.Unlock()
}

func (r *ratingIndex) remove(id int) {
	r.mu.Lock()
	delete(r.ratings, id)
	r.mu.Unlock()
}

// restore puts back a captured rating; 0 means there was none
func (r *ratingIndex) restore(id int, previous float64) {
	if previous == 0 {
		r.remove(id)
		return
	}
	r.set(id, previous)
}

func (r *ratingIndex) reset() {
	r.mu.Lock()
	r.ratings = make(map[int]float64)
	r.mu.Unlock()
}

// merge records ratings; page 1 replaces the whole map
func (r *ratingIndex) merge(page int, ratings map[int]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page == 1 {
		r.ratings = make(map[int]float64, len(ratings))
	}
	for id, v := range ratings {
		r.ratings[id] = v
	}
}

func (r *ratingIndex) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ratings)
}
