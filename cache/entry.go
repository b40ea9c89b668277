package cache

import "time"

// Entry is a stored value with the time it was stored.
// Entries are replaced on every successful fetch, never mutated in place.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// Fresh reports whether the entry is at most ttl old at now.
func (e Entry[V]) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) <= ttl
}

// EntryStore holds entries by key. AdmissionCache serializes all calls,
// so implementations need not be safe for concurrent use on their own.
type EntryStore[V any] interface {
	Load(key string) (Entry[V], bool)
	Store(key string, entry Entry[V])
}

// MapStore is an unbounded EntryStore. Expired entries are never removed,
// only shadowed by the next successful fetch for the same key.
type MapStore[V any] struct {
	entries map[string]Entry[V]
}

// NewMapStore creates an empty MapStore.
func NewMapStore[V any]() *MapStore[V] {
	return &MapStore[V]{entries: make(map[string]Entry[V])}
}

func (s *MapStore[V]) Load(key string) (Entry[V], bool) {
	e, ok := s.entries[key]
	return e, ok
}

func (s *MapStore[V]) Store(key string, entry Entry[V]) {
	s.entries[key] = entry
}

// Len returns the number of stored keys, stale ones included.
func (s *MapStore[V]) Len() int {
	return len(s.entries)
}
