package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
	_ "time/tzdata"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-weather-cache/weather"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
api:
  key: file-key
  lang: en
  timeout: 3s
cities:
  - Kazan
  - Sochi
timezone: UTC
store:
  capacity: 64
  retention: 10m
log_level: debug
`)
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.Key != "file-key" || cfg.API.Lang != "en" || cfg.API.Timeout != 3*time.Second {
		t.Errorf("unexpected api section: %+v", cfg.API)
	}
	if cfg.API.Units != "metric" {
		t.Errorf("expected default units to survive, got %q", cfg.API.Units)
	}
	if !slices.Equal(cfg.Cities, []string{"Kazan", "Sochi"}) {
		t.Errorf("unexpected cities: %v", cfg.Cities)
	}
	if !cfg.Store.Enabled() || cfg.Store.Capacity != 64 || cfg.Store.Retention != 10*time.Minute {
		t.Errorf("unexpected store section: %+v", cfg.Store)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "api:\n  key: file-key\n")
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvLang, "de")
	t.Setenv(EnvBaseURL, "http://localhost:9999/data/2.5/")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.Key != "env-key" || cfg.API.Lang != "de" || cfg.API.BaseURL != "http://localhost:9999/data/2.5/" {
		t.Errorf("env overrides not applied: %+v", cfg.API)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !slices.Equal(cfg.Cities, weather.DefaultCities) {
		t.Errorf("expected default cities, got %v", cfg.Cities)
	}
	if cfg.Store.Enabled() {
		t.Error("bounded store should be disabled by default")
	}
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected validation error for missing api key")
	}
	var ge *goerrors.Error
	if !errors.As(err, &ge) || ge.Category != goerrors.CategoryValidation {
		t.Errorf("expected validation category, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "api: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Default()
	valid.API.Key = "k"

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no cities", mutate: func(c *Config) { c.Cities = nil }, wantError: true},
		{name: "blank city", mutate: func(c *Config) { c.Cities = []string{"Kazan", ""} }, wantError: true},
		{name: "bad language", mutate: func(c *Config) { c.API.Lang = "not a language tag" }, wantError: true},
		{name: "bad units", mutate: func(c *Config) { c.API.Units = "kelvin" }, wantError: true},
		{name: "bad url", mutate: func(c *Config) { c.API.BaseURL = "::not a url" }, wantError: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantError: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantError: true},
		{name: "store enabled", mutate: func(c *Config) { c.Store = Store{Capacity: 16} }},
		{name: "store retention falls back to default", mutate: func(c *Config) { c.Store = Store{Capacity: 16, Retention: -time.Minute} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Cities = append([]string(nil), valid.Cities...)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no validation error but got: %v", err)
			}
		})
	}
}

func TestStore_Infra(t *testing.T) {
	infra := Store{Capacity: 4}.Infra()
	if infra.Capacity != 4 {
		t.Errorf("expected capacity 4, got %d", infra.Capacity)
	}
	if infra.NumShards != 4 {
		t.Errorf("expected shards clamped to capacity, got %d", infra.NumShards)
	}
	if err := infra.Validate(); err != nil {
		t.Errorf("expected valid infra config: %v", err)
	}

	infra = Store{Capacity: 100, Shards: 2, Retention: time.Hour}.Infra()
	if infra.NumShards != 2 || infra.Retention != time.Hour {
		t.Errorf("unexpected infra config: %+v", infra)
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Europe/Moscow"
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() failed: %v", err)
	}
	if loc.String() != "Europe/Moscow" {
		t.Errorf("expected Europe/Moscow, got %s", loc)
	}
}
