// Command weather shows current weather and forecasts for a list of cities,
// serving repeated single city lookups from an admission-controlled cache.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-weather-cache/internal/config"
	"github.com/goliatone/go-weather-cache/internal/httpapi"
	"github.com/goliatone/go-weather-cache/pkg/di"
	"github.com/goliatone/go-weather-cache/prefs"
	"github.com/goliatone/go-weather-cache/weather"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	container *di.Container
	logger    *slog.Logger
	stdout    io.Writer
}

func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer, opts ...di.Option) error {
	args, err := parseFlags(argv, stderr)
	if err != nil {
		return err
	}
	if args.command == "" {
		_, _ = io.WriteString(stderr, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load(args.config)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.LogLevel, args.verbose)
	container, err := di.NewContainer(cfg, append([]di.Option{di.WithLogger(logger)}, opts...)...)
	if err != nil {
		return err
	}

	a := &app{container: container, logger: logger, stdout: stdout}

	switch args.command {
	case "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, strings.Join(args.rest, " "))
	case "forecast":
		return a.forecast(ctx, strings.Join(args.rest, " "))
	case "shell":
		return a.shell(ctx, stdin)
	case "serve":
		return a.serve(ctx)
	default:
		return fmt.Errorf("unknown command %q", args.command)
	}
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func (a *app) list(ctx context.Context) error {
	list, err := a.container.Service().ListCities(ctx)
	if err != nil {
		return userError(err)
	}
	renderList(a.stdout, list)
	return nil
}

func (a *app) show(ctx context.Context, city string) error {
	store := a.openPrefs(ctx)
	if store != nil {
		defer store.Close()
	}

	city = a.pickCity(ctx, store, city)
	res, err := a.container.Service().CityWeather(ctx, city)
	if err != nil {
		return userError(err)
	}
	renderDetailed(a.stdout, res.Data, res.Message)
	a.remember(ctx, store, city)
	return nil
}

func (a *app) forecast(ctx context.Context, city string) error {
	store := a.openPrefs(ctx)
	if store != nil {
		defer store.Close()
	}

	city = a.pickCity(ctx, store, city)
	res, err := a.container.Service().CityForecast(ctx, city)
	if err != nil {
		return userError(err)
	}
	renderForecast(a.stdout, res)
	a.remember(ctx, store, city)
	return nil
}

// shell keeps one cache for the whole session so repeated cities are served from it.
// It returns when stdin ends, on "quit", or as soon as ctx is cancelled.
func (a *app) shell(ctx context.Context, stdin io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, scanErr := readLines(ctx, stdin)
	for {
		var city string
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			city = strings.TrimSpace(line)
		}

		switch city {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		res, err := a.container.Service().CityWeather(ctx, city)
		if err != nil {
			fmt.Fprintf(a.stdout, "%s: %s\n", city, weather.MapError(err))
			a.logger.Debug("lookup failed", "city", city, "error", err)
			continue
		}
		renderDetailed(a.stdout, res.Data, res.Message)
	}
}

// readLines scans r on its own goroutine so a blocked read never delays
// cancellation. The error channel receives exactly one value before lines closes.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		var err error
		defer func() {
			errc <- err
			close(lines)
		}()

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()

	return lines, errc
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.container.Config()
	handler := httpapi.NewHandler(a.container.Service(), a.container.Registry(), a.logger)
	server := httpapi.NewServer(cfg.Listen, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening", "addr", cfg.Listen)
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *app) openPrefs(ctx context.Context) *prefs.Store {
	store, err := a.container.OpenPrefs(ctx)
	if err != nil {
		a.logger.Warn("preferences unavailable", "error", err)
		return nil
	}
	return store
}

// pickCity falls back to the saved city, then to the first configured city.
func (a *app) pickCity(ctx context.Context, store *prefs.Store, city string) string {
	if city != "" {
		return city
	}
	if store != nil {
		saved, ok, err := store.Load(ctx, prefs.LastCityKey)
		if err != nil {
			a.logger.Warn("load last city", "error", err)
		}
		if ok && saved != "" {
			return saved
		}
	}
	return a.container.Service().Cities()[0]
}

func (a *app) remember(ctx context.Context, store *prefs.Store, city string) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, prefs.LastCityKey, city); err != nil {
		a.logger.Warn("save last city", "error", err)
	}
}

func userError(err error) error {
	return fmt.Errorf("%s: %w", weather.MapError(err), err)
}
