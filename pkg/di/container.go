package di

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-weather-cache/cache"
	"github.com/goliatone/go-weather-cache/internal/cacheinfra"
	"github.com/goliatone/go-weather-cache/internal/config"
	"github.com/goliatone/go-weather-cache/internal/openweather"
	"github.com/goliatone/go-weather-cache/internal/telemetry"
	"github.com/goliatone/go-weather-cache/prefs"
	"github.com/goliatone/go-weather-cache/weather"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsNamespace prefixes every metric registered by the container.
const MetricsNamespace = "weather"

// Container provides dependency injection for the weather service.
// It owns a single admission cache instance; every consumer obtained from the
// container shares it for the container's lifetime.
type Container struct {
	config   config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	cache    *cache.AdmissionCache[weather.WeatherResponse]
	client   *openweather.Client
	repo     *weather.Repository
	service  *weather.Service
}

type options struct {
	logger    *slog.Logger
	registry  *prometheus.Registry
	transport http.RoundTripper
	clock     cache.Clock
}

// Option configures the container.
type Option func(*options)

// WithLogger sets the logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry sets the Prometheus registry metrics are registered on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithTransport sets the HTTP transport used to reach the weather provider.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithClock sets the clock used by the admission cache.
func WithClock(clock cache.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer wires the cache, provider client, repository and use cases from cfg.
func NewContainer(cfg config.Config, opts ...Option) (*Container, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics(o.registry, MetricsNamespace)

	cacheOpts := []cache.Option[weather.WeatherResponse]{
		cache.WithObserver[weather.WeatherResponse](metrics),
		cache.WithLogger[weather.WeatherResponse](o.logger),
		cache.WithClock[weather.WeatherResponse](o.clock),
	}
	if cfg.Store.Enabled() {
		infra := cfg.Store.Infra()
		if err := infra.ValidateFor(cache.DefaultTTL); err != nil {
			return nil, err
		}
		store, err := cacheinfra.NewSturdycStore[weather.WeatherResponse](infra)
		if err != nil {
			return nil, err
		}
		cacheOpts = append(cacheOpts, cache.WithStore[weather.WeatherResponse](store))
	}
	weatherCache := cache.NewDefault(cacheOpts...)

	client, err := openweather.New(openweather.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Lang:    cfg.API.Lang,
		Units:   cfg.API.Units,
		Timeout: cfg.API.Timeout,
	}, openweather.WithLogger(o.logger), openweather.WithTransport(o.transport))
	if err != nil {
		return nil, err
	}

	repo := weather.NewRepository(client, weatherCache, o.logger)
	service := weather.NewService(repo,
		weather.WithCities(cfg.Cities),
		weather.WithLocation(location),
		weather.WithLanguage(cfg.API.Lang),
	)

	return &Container{
		config:   cfg,
		logger:   o.logger,
		registry: o.registry,
		metrics:  metrics,
		cache:    weatherCache,
		client:   client,
		repo:     repo,
		service:  service,
	}, nil
}

// Cache returns the shared admission cache.
func (c *Container) Cache() *cache.AdmissionCache[weather.WeatherResponse] {
	return c.cache
}

// Service returns the weather use cases.
func (c *Container) Service() *weather.Service {
	return c.service
}

// Repository returns the weather repository.
func (c *Container) Repository() *weather.Repository {
	return c.repo
}

// Metrics returns the cache metrics.
func (c *Container) Metrics() *telemetry.Metrics {
	return c.metrics
}

// Registry returns the Prometheus registry, e.g. to expose it over HTTP.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Logger returns the shared logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// OpenPrefs opens the preferences store configured by prefs_path.
// The caller owns the returned store and must close it.
func (c *Container) OpenPrefs(ctx context.Context) (*prefs.Store, error) {
	return prefs.Open(ctx, c.config.Prefs)
}
