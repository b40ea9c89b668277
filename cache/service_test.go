package cache

import (
	"errors"
	"testing"
)

func TestProvenance_String(t *testing.T) {
	tests := []struct {
		p    Provenance
		want string
	}{
		{FromCache, "from cache"},
		{Fetched, "from api"},
		{Provenance(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Provenance(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&FetchError{Key: "Paris", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to find *FetchError")
	}
	if fe.Key != "Paris" {
		t.Errorf("expected key Paris, got %q", fe.Key)
	}
	if got, want := err.Error(), "cache: fetch Paris: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError bool
	}{
		{name: "valid default config", cfg: DefaultConfig()},
		{name: "zero TTL", cfg: Config{TTL: 0, RecentCapacity: 3}, wantError: true},
		{name: "negative TTL", cfg: Config{TTL: -1, RecentCapacity: 3}, wantError: true},
		{name: "zero capacity", cfg: Config{TTL: DefaultTTL, RecentCapacity: 0}, wantError: true},
		{name: "negative capacity", cfg: Config{TTL: DefaultTTL, RecentCapacity: -2}, wantError: true},
		{name: "capacity of one", cfg: Config{TTL: DefaultTTL, RecentCapacity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no validation error but got: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TTL != DefaultTTL {
		t.Errorf("expected TTL %v, got %v", DefaultTTL, cfg.TTL)
	}
	if cfg.RecentCapacity != 3 {
		t.Errorf("expected RecentCapacity 3, got %d", cfg.RecentCapacity)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New[string](Config{}); err == nil {
		t.Error("New() should fail with invalid config")
	}
}
