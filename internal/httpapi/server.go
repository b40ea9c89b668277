// Package httpapi exposes the weather use cases and cache metrics over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-weather-cache/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the subset of weather.Service served over HTTP.
type Service interface {
	ListCities(ctx context.Context) ([]weather.MainInfo, error)
	CityWeather(ctx context.Context, city string) (weather.Wrapped[weather.Detailed], error)
	CityForecast(ctx context.Context, city string) (weather.Forecast, error)
}

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler builds the routes. A nil gatherer leaves /metrics unmounted.
func NewHandler(service Service, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cities", h.cities)
	mux.HandleFunc("GET /weather/{city}", h.weather)
	mux.HandleFunc("GET /forecast/{city}", h.forecast)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (h *handler) cities(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCities(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, http.StatusOK, list)
}

func (h *handler) weather(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.CityWeather(r.Context(), r.PathValue("city"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, http.StatusOK, res)
}

func (h *handler) forecast(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.CityForecast(r.Context(), r.PathValue("city"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, http.StatusOK, res)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if weather.IsNotFound(err) {
		status = http.StatusNotFound
	}
	h.logger.Warn("request failed", "path", r.URL.Path, "status", status, "error", err)
	h.write(w, status, ErrorResponse{Error: weather.MapError(err)})
}

func (h *handler) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// Server runs the HTTP API.
type Server struct {
	server *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
