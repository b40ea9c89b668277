// Package recent implements the bounded recent-keys tracker used for admission control.
package recent

// Tracker remembers the most recent fetch keys in insertion order.
// The front of the queue (index 0) is the oldest key. Duplicates are kept:
// recording a key that is already tracked appends another copy.
// Tracker is not safe for concurrent use.
type Tracker struct {
	queue    []string
	capacity int
}

// New creates a Tracker holding at most capacity keys. Capacity below 1 is raised to 1.
func New(capacity int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{
		queue:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Len returns the number of tracked keys.
func (t *Tracker) Len() int {
	return len(t.queue)
}

// Cap returns the maximum number of tracked keys.
func (t *Tracker) Cap() int {
	return t.capacity
}

// Full reports whether the tracker holds capacity keys or more.
func (t *Tracker) Full() bool {
	return len(t.queue) >= t.capacity
}

// Contains reports whether key appears anywhere in the tracker.
func (t *Tracker) Contains(key string) bool {
	for _, k := range t.queue {
		if k == key {
			return true
		}
	}
	return false
}

// Record appends key, evicting the oldest key first when the tracker is full.
// It returns the evicted key, if any.
func (t *Tracker) Record(key string) (evicted string, ok bool) {
	if t.Full() {
		evicted, ok = t.queue[0], true
		copy(t.queue, t.queue[1:])
		t.queue = t.queue[:len(t.queue)-1]
	}
	t.queue = append(t.queue, key)
	return evicted, ok
}

// Keys returns a copy of the tracked keys, oldest first.
func (t *Tracker) Keys() []string {
	return append([]string(nil), t.queue...)
}
