// Package session keeps the client's authenticated session: a persisted
// token record and the in-memory Auth context derived from it.
package session

import "time"

// Entry is a stored value with its expiry. A zero ExpiresAt never expires.
type Entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether e is past its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// KV is a persisted key-value region with per-key expiry.
// Implementations return raw entries; expiry is evaluated by the reader.
type KV interface {
	Get(key string) (Entry, bool, error)
	Put(entries map[string]Entry) error
	Delete(keys ...string) error
}
