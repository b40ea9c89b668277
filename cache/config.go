package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultTTL is how long a stored entry is considered fresh.
	DefaultTTL = 5 * time.Minute
	// DefaultRecentCapacity bounds the recent-keys tracker used for admission control.
	DefaultRecentCapacity = 3
)

// Config holds the admission cache settings.
// The application always runs with DefaultConfig; other values exist for tests and embedding.
type Config struct {
	// TTL is the maximum age of an entry that may still be served.
	TTL time.Duration

	// RecentCapacity is the number of recent fetch keys remembered.
	// Once the tracker is full, keys outside it bypass the cache.
	RecentCapacity int
}

// DefaultConfig returns a Config populated with the fixed production values.
func DefaultConfig() Config {
	return Config{
		TTL:            DefaultTTL,
		RecentCapacity: DefaultRecentCapacity,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Nanosecond)),
		validation.Field(&c.RecentCapacity, validation.Required, validation.Min(1)),
	)
}
