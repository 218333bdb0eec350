package entity

import "time"

// CacheEntry is a keyed, serialised result with the time it was written.
type CacheEntry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// IsExpired reports whether the entry is older than ttl at now.
// An entry exactly ttl old is still fresh.
func (e CacheEntry) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.UpdatedAt) > ttl
}
