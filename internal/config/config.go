// Package config loads the application configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-weather-cache/internal/cacheinfra"
	"github.com/goliatone/go-weather-cache/internal/openweather"
	"github.com/goliatone/go-weather-cache/weather"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey  = "WEATHER_API_KEY"
	EnvBaseURL = "WEATHER_BASE_URL"
	EnvLang    = "WEATHER_LANG"
)

// Config is the application configuration.
type Config struct {
	API      API      `yaml:"api"`
	Store    Store    `yaml:"store"`
	Cities   []string `yaml:"cities"`
	Timezone string   `yaml:"timezone"`
	Prefs    string   `yaml:"prefs_path"`
	Listen   string   `yaml:"listen"`
	LogLevel string   `yaml:"log_level"`
}

// API configures the weather provider client.
type API struct {
	BaseURL string        `yaml:"base_url"`
	Key     string        `yaml:"key"`
	Lang    string        `yaml:"lang"`
	Units   string        `yaml:"units"`
	Timeout time.Duration `yaml:"timeout"`
}

// Store selects the entry store behind the admission cache.
// A zero Capacity keeps the unbounded in-memory map.
type Store struct {
	Capacity  int           `yaml:"capacity"`
	Shards    int           `yaml:"shards"`
	Retention time.Duration `yaml:"retention"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		API: API{
			BaseURL: openweather.DefaultBaseURL,
			Lang:    openweather.DefaultLang,
			Units:   openweather.DefaultUnits,
			Timeout: openweather.DefaultTimeout,
		},
		Cities:   append([]string(nil), weather.DefaultCities...),
		Timezone: "Local",
		Prefs:    "weather-prefs.db",
		Listen:   ":8080",
		LogLevel: "info",
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "parse config file")
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.API.Key = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvLang); ok && v != "" {
		c.API.Lang = v
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.API),
		validation.Field(&c.Store),
		validation.Field(&c.Cities, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.Timezone, validation.By(validTimezone)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// Validate checks the API section.
func (a API) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BaseURL, validation.Required, is.URL),
		validation.Field(&a.Key, validation.Required),
		validation.Field(&a.Lang, validation.Required, validation.By(validLanguage)),
		validation.Field(&a.Units, validation.In("standard", "metric", "imperial")),
		validation.Field(&a.Timeout, validation.Min(time.Duration(0))),
	)
}

// Validate checks the store section. A disabled store is always valid.
func (s Store) Validate() error {
	if !s.Enabled() {
		return nil
	}
	return s.Infra().Validate()
}

// Enabled reports whether a bounded store was requested.
func (s Store) Enabled() bool {
	return s.Capacity > 0
}

// Infra converts the section to the sturdyc store configuration,
// filling unset fields from cacheinfra.DefaultConfig.
func (s Store) Infra() cacheinfra.Config {
	cfg := cacheinfra.DefaultConfig()
	cfg.Capacity = s.Capacity
	if s.Shards > 0 {
		cfg.NumShards = s.Shards
	}
	if cfg.NumShards > cfg.Capacity {
		cfg.NumShards = cfg.Capacity
	}
	if s.Retention > 0 {
		cfg.Retention = s.Retention
	}
	return cfg
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func validTimezone(value any) error {
	tz, _ := value.(string)
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown time zone %q", tz)
	}
	return nil
}

func validLanguage(value any) error {
	tag, _ := value.(string)
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid language tag %q", tag)
	}
	return nil
}
