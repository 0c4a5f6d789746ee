package models

import "time"

// WatchEntry is a match page the scheduler polls for score changes.
type WatchEntry struct {
	URL       string
	MatchID   int
	Title     string
	Score     string
	UpdatedAt time.Time
}
