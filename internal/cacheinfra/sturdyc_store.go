package cacheinfra

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-weather-cache/cache"
	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc backed entry store.
type Config struct {
	// Capacity defines the maximum number of entries that the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Must be between 1 and Capacity.
	NumShards int

	// Retention is how long an entry is kept, fresh or not.
	// It must be at least the admission cache TTL, otherwise entries
	// disappear while they could still be served.
	Retention time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc sweeps expired entries.
	// Zero value uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config sized for a few hundred cities.
func DefaultConfig() Config {
	return Config{
		Capacity:           1024,
		NumShards:          8,
		Retention:          30 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1), validation.Max(c.Capacity)),
		validation.Field(&c.Retention, validation.Required, validation.Min(time.Nanosecond)),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
}

// ValidateFor validates the configuration and checks that entries outlive ttl.
func (c Config) ValidateFor(ttl time.Duration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Retention < ttl {
		return ErrRetentionTooShort
	}
	return nil
}

// ErrRetentionTooShort is returned when Retention is below the cache TTL.
var ErrRetentionTooShort = errors.New("cacheinfra: retention must be at least the cache TTL")

func (c Config) sturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// SturdycStore is a bounded cache.EntryStore backed by a sturdyc client.
//
// Freshness is still decided by the admission cache from Entry.StoredAt;
// sturdyc only bounds how many entries are kept and for how long.
type SturdycStore[V any] struct {
	client *sturdyc.Client[cache.Entry[V]]
}

var _ cache.EntryStore[any] = (*SturdycStore[any])(nil)

// NewSturdycStore creates a new sturdyc backed store.
func NewSturdycStore[V any](cfg Config) (*SturdycStore[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[cache.Entry[V]](
		cfg.Capacity,
		cfg.NumShards,
		cfg.Retention,
		cfg.EvictionPercentage,
		cfg.sturdycOptions()...,
	)

	return &SturdycStore[V]{client: client}, nil
}

// Load implements cache.EntryStore.
func (s *SturdycStore[V]) Load(key string) (cache.Entry[V], bool) {
	return s.client.Get(key)
}

// Store implements cache.EntryStore, overwriting any previous entry for key.
func (s *SturdycStore[V]) Store(key string, entry cache.Entry[V]) {
	s.client.Set(key, entry)
}

// Len returns the number of entries currently held.
func (s *SturdycStore[V]) Len() int {
	return s.client.Size()
}
