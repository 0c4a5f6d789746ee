package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/omarshaarawi/matchbot/internal/models"
)

// Repository holds the watch list. It is lost on restart.
type Repository struct {
	watched map[string]models.WatchEntry
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{watched: make(map[string]models.WatchEntry)}
}

func (r *Repository) Watch(entry models.WatchEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	r.watched[entry.URL] = entry
}

func (r *Repository) Unwatch(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.watched[url]
	delete(r.watched, url)
	return ok
}

func (r *Repository) Get(url string) (models.WatchEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.watched[url]
	return entry, ok
}

// Watched returns the watch list ordered by URL.
func (r *Repository) Watched() []models.WatchEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.WatchEntry, 0, len(r.watched))
	for _, e := range r.watched {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

// UpdateScore records the latest score for a watched URL and reports whether
// it differs from the previous one. Unknown URLs are ignored.
func (r *Repository) UpdateScore(url, score string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.watched[url]
	if !ok || entry.Score == score {
		return false
	}
	entry.Score = score
	entry.UpdatedAt = time.Now()
	r.watched[url] = entry
	return true
}
