// Package openweather is the HTTP client for the OpenWeather current weather
// and forecast endpoints.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-weather-cache/weather"
)

// Defaults mirror the public OpenWeather API.
const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/"
	DefaultLang    = "ru"
	DefaultUnits   = "metric"
	DefaultTimeout = 10 * time.Second
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Lang    string
	Units   string
	Timeout time.Duration
}

// Client fetches weather payloads. It implements weather.Provider.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	logger  *slog.Logger
}

var _ weather.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	logger    *slog.Logger
}

// WithTransport sets the base transport the decorators wrap.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithLogger sets the logger for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// New creates a Client. Empty config fields fall back to the defaults.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = withDefaults(cfg)

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid weather base url")
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	o := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		http: &http.Client{
			Transport: chain(o.transport, cfg),
			Timeout:   cfg.Timeout,
		},
		baseURL: base,
		logger:  o.logger,
	}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	if cfg.Units == "" {
		cfg.Units = DefaultUnits
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Weather returns current conditions for city.
func (c *Client) Weather(ctx context.Context, city string) (weather.WeatherResponse, error) {
	var out weather.WeatherResponse
	err := c.get(ctx, "weather", city, &out)
	return out, err
}

// Forecast returns the forecast for city.
func (c *Client) Forecast(ctx context.Context, city string) (weather.ForecastResponse, error) {
	var out weather.ForecastResponse
	err := c.get(ctx, "forecast", city, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, endpoint, city string, dest any) error {
	u := c.baseURL.ResolveReference(&url.URL{
		Path:     endpoint,
		RawQuery: url.Values{"q": {city}}.Encode(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "build weather request")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "weather provider unreachable").
			WithTextCode(weather.CodeNetwork)
	}
	defer resp.Body.Close()

	var reqID string
	if resp.Request != nil {
		reqID = resp.Request.Header.Get(RequestIDHeader)
	}
	c.logger.Debug("weather request",
		"endpoint", endpoint,
		"city", city,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		category := goerrors.CategoryExternal
		if resp.StatusCode == http.StatusNotFound {
			category = goerrors.CategoryNotFound
		}
		return goerrors.New(fmt.Sprintf("weather provider returned %d for %s", resp.StatusCode, endpoint), category).
			WithCode(resp.StatusCode).
			WithTextCode(weather.CodeHTTP)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "decode weather response").
			WithTextCode(weather.CodeDecode)
	}
	return nil
}
