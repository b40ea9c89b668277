package weather

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-weather-cache/cache"
	"golang.org/x/sync/errgroup"
)

// Provider fetches raw payloads from the remote weather API.
type Provider interface {
	Weather(ctx context.Context, city string) (WeatherResponse, error)
	Forecast(ctx context.Context, city string) (ForecastResponse, error)
}

// Repository is the data layer of the weather service. Single city lookups go
// through the admission cache; list and forecast requests hit the provider directly.
type Repository struct {
	provider Provider
	cache    cache.Resolver[WeatherResponse]
	logger   *slog.Logger
}

// NewRepository wires a provider and the cache used for single city lookups.
func NewRepository(provider Provider, resolver cache.Resolver[WeatherResponse], logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		provider: provider,
		cache:    resolver,
		logger:   logger,
	}
}

// CitiesWeather fetches current weather for every city concurrently.
// Results keep the order of cities; the first failure cancels the rest.
func (r *Repository) CitiesWeather(ctx context.Context, cities []string) ([]WeatherResponse, error) {
	out := make([]WeatherResponse, len(cities))
	g, gctx := errgroup.WithContext(ctx)

	for i, city := range cities {
		g.Go(func() error {
			w, err := r.provider.Weather(gctx, city)
			if err != nil {
				return err
			}
			out[i] = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Forecast returns the forecast steps for city.
func (r *Repository) Forecast(ctx context.Context, city string) ([]ForecastResponseItem, error) {
	res, err := r.provider.Forecast(ctx, city)
	if err != nil {
		return nil, err
	}
	return res.List, nil
}

// Weather returns current weather for city, possibly from the cache.
// The city name is the cache key as given.
func (r *Repository) Weather(ctx context.Context, city string) (Wrapped[WeatherResponse], error) {
	res, err := r.cache.Resolve(ctx, city, func(ctx context.Context) (WeatherResponse, error) {
		return r.provider.Weather(ctx, city)
	})
	if err != nil {
		return Wrapped[WeatherResponse]{}, err
	}

	r.logger.Debug("weather resolved", "city", city, "source", res.Provenance.String())
	return Wrapped[WeatherResponse]{Data: res.Value, Message: res.Provenance.String()}, nil
}
