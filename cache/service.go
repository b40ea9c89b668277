package cache

import (
	"context"
	"time"
)

// FetchFn is the function signature the cache expects when fetching from the source of truth.
type FetchFn[V any] func(ctx context.Context) (V, error)

// Provenance tells the caller whether a value was served from the cache or fetched.
type Provenance int

const (
	// Fetched marks a value obtained from a fresh call to the fetch function.
	Fetched Provenance = iota
	// FromCache marks a value served from a stored entry without fetching.
	FromCache
)

// String returns the human readable message attached to results.
func (p Provenance) String() string {
	switch p {
	case FromCache:
		return "from cache"
	case Fetched:
		return "from api"
	default:
		return "unknown"
	}
}

// Result is a resolved value tagged with its provenance.
type Result[V any] struct {
	Value      V
	Provenance Provenance
}

// Resolver exposes the read-through operation consumers depend on.
// It is exported so that repositories can accept any implementation, including test fakes.
type Resolver[V any] interface {
	Resolve(ctx context.Context, key string, fetch FetchFn[V]) (Result[V], error)
}

// Clock supplies the current time. Tests replace it to simulate expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Observer receives notifications about cache decisions.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	// ObserveResolve is called once per successful resolve.
	// bypassed reports whether admission control skipped the cache lookup.
	ObserveResolve(key string, p Provenance, bypassed bool)
	// ObserveBypass is called when admission control skips the cache lookup,
	// before the fetch runs and whatever its outcome.
	ObserveBypass(key string)
	// ObserveFetch is called after every fetch attempt.
	ObserveFetch(key string, d time.Duration, err error)
	// ObserveRecent reports the recent-keys tracker size after it changes.
	ObserveRecent(size int)
}

type nopObserver struct{}

func (nopObserver) ObserveResolve(string, Provenance, bool)   {}
func (nopObserver) ObserveBypass(string)                      {}
func (nopObserver) ObserveFetch(string, time.Duration, error) {}
func (nopObserver) ObserveRecent(int)                         {}
