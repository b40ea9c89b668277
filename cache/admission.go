package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goliatone/go-weather-cache/internal/recent"
)

// AdmissionCache is a TTL cache guarded by a recent-activity admission check.
//
// For each key it decides whether a stored value may be served or a fresh fetch
// is required. Once the recent-keys tracker is full, a key that is not tracked
// bypasses the cache even when a fresh entry exists for it.
type AdmissionCache[V any] struct {
	mu       sync.Mutex
	cfg      Config
	store    EntryStore[V]
	recent   *recent.Tracker
	clock    Clock
	observer Observer
	logger   *slog.Logger
}

// Option configures an AdmissionCache.
type Option[V any] func(*AdmissionCache[V])

// WithClock replaces the wall clock used for timestamps and freshness checks.
func WithClock[V any](clock Clock) Option[V] {
	return func(c *AdmissionCache[V]) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithStore replaces the default unbounded MapStore.
func WithStore[V any](store EntryStore[V]) Option[V] {
	return func(c *AdmissionCache[V]) {
		if store != nil {
			c.store = store
		}
	}
}

// WithObserver attaches an Observer, e.g. a metrics collector.
func WithObserver[V any](observer Observer) Option[V] {
	return func(c *AdmissionCache[V]) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(c *AdmissionCache[V]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an AdmissionCache with the provided configuration.
func New[V any](cfg Config, opts ...Option[V]) (*AdmissionCache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &AdmissionCache[V]{
		cfg:      cfg,
		store:    NewMapStore[V](),
		recent:   recent.New(cfg.RecentCapacity),
		clock:    systemClock{},
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewDefault creates an AdmissionCache using DefaultConfig.
func NewDefault[V any](opts ...Option[V]) *AdmissionCache[V] {
	c, err := New(DefaultConfig(), opts...)
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return c
}

// Resolve returns the value for key, either from a fresh stored entry or by
// invoking fetch exactly once.
//
// fetch runs without holding the cache lock. Two concurrent calls for the same
// key may both fetch; the last one to finish overwrites the entry. A failed
// fetch leaves the cache untouched and is returned wrapped in *FetchError.
func (c *AdmissionCache[V]) Resolve(ctx context.Context, key string, fetch FetchFn[V]) (Result[V], error) {
	if fetch == nil {
		return Result[V]{}, ErrNilFetch
	}

	c.mu.Lock()
	admitted := !c.recent.Full() || c.recent.Contains(key)
	if admitted {
		if entry, ok := c.store.Load(key); ok && entry.Fresh(c.clock.Now(), c.cfg.TTL) {
			c.mu.Unlock()
			c.logger.Debug("cache hit", "key", key)
			c.observer.ObserveResolve(key, FromCache, false)
			return Result[V]{Value: entry.Value, Provenance: FromCache}, nil
		}
	}
	c.mu.Unlock()

	if !admitted {
		c.logger.Debug("admission bypass", "key", key)
		c.observer.ObserveBypass(key)
	}
	return c.fetchAndStore(ctx, key, fetch, !admitted)
}

func (c *AdmissionCache[V]) fetchAndStore(ctx context.Context, key string, fetch FetchFn[V], bypassed bool) (Result[V], error) {
	start := c.clock.Now()
	value, err := fetch(ctx)
	c.observer.ObserveFetch(key, c.clock.Now().Sub(start), err)
	if err != nil {
		c.logger.Debug("fetch failed", "key", key, "error", err)
		return Result[V]{}, &FetchError{Key: key, Err: err}
	}

	c.mu.Lock()
	c.store.Store(key, Entry[V]{Value: value, StoredAt: c.clock.Now()})
	evicted, didEvict := c.recent.Record(key)
	size := c.recent.Len()
	c.mu.Unlock()

	if didEvict {
		c.logger.Debug("recent key evicted", "key", evicted)
	}
	c.logger.Debug("fetched", "key", key, "bypassed", bypassed)
	c.observer.ObserveRecent(size)
	c.observer.ObserveResolve(key, Fetched, bypassed)
	return Result[V]{Value: value, Provenance: Fetched}, nil
}

// RecentKeys returns a snapshot of the recent-keys tracker, oldest first.
func (c *AdmissionCache[V]) RecentKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent.Keys()
}

// Peek returns the stored entry for key without touching admission state,
// whether or not the entry is still fresh.
func (c *AdmissionCache[V]) Peek(key string) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Load(key)
}

// Config returns the configuration used by this cache.
func (c *AdmissionCache[V]) Config() Config {
	return c.cfg
}
