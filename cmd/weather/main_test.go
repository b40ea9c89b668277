package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-weather-cache/internal/config"
)

type provider struct {
	weatherHits atomic.Int64
}

func (p *provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("q")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case city == "Atlantis":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"city not found"}`))
	case strings.HasSuffix(r.URL.Path, "/weather"):
		p.weatherHits.Add(1)
		fmt.Fprintf(w, `{"name":%q,"weather":[{"description":"snow","icon":"13d"}],"main":{"temp":-3.4,"feels_like":-8.9,"humidity":80,"pressure":1020},"wind":{"speed":4.2}}`, city)
	case strings.HasSuffix(r.URL.Path, "/forecast"):
		_, _ = w.Write([]byte(`{"list":[{"dt":3600,"main":{"temp":-4.2},"weather":[{"icon":"13n"}]}]}`))
	}
}

type harness struct {
	provider *provider
	config   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	p := &provider{}
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "weather.yaml")
	content := fmt.Sprintf("timezone: UTC\nprefs_path: %s\ncities:\n  - Kazan\n  - Sochi\n", filepath.Join(dir, "prefs.db"))
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvBaseURL, srv.URL+"/data/2.5/")
	return &harness{provider: p, config: cfgPath}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv := append([]string{"-config", h.config}, args...)
	err := run(context.Background(), argv, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_List(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Kazan") || !strings.Contains(out, "Sochi") {
		t.Errorf("expected both cities in output, got:\n%s", out)
	}
	if strings.Index(out, "Kazan") > strings.Index(out, "Sochi") {
		t.Errorf("expected configured order, got:\n%s", out)
	}
}

func TestRun_ShowRemembersCity(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "show", "Saint", "Petersburg")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Saint Petersburg: -3°C, snow") || !strings.Contains(out, "(from api)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = h.run(t, "", "show")
	if err != nil {
		t.Fatalf("show without city failed: %v", err)
	}
	if !strings.HasPrefix(out, "Saint Petersburg:") {
		t.Errorf("expected saved city to be used, got:\n%s", out)
	}
}

func TestRun_ShowDefaultsToFirstCity(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.HasPrefix(out, "Kazan:") {
		t.Errorf("expected first configured city, got:\n%s", out)
	}
}

func TestRun_Forecast(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "forecast", "Kazan")
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}
	if !strings.Contains(out, "1 янв") || !strings.Contains(out, " 01:00") || !strings.Contains(out, "-4°C") {
		t.Errorf("unexpected forecast output:\n%s", out)
	}
}

func TestRun_ShowNotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "show", "Atlantis")
	if err == nil {
		t.Fatal("expected error for unknown city")
	}
	if !strings.HasPrefix(err.Error(), "Failed to load data") {
		t.Errorf("expected user facing message, got %v", err)
	}
}

func TestRun_ShellUsesCache(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "Kazan\n\nKazan\nAtlantis\nquit\nSochi\n", "shell")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	if strings.Count(out, "(from api)") != 1 || strings.Count(out, "(from cache)") != 1 {
		t.Errorf("expected one api and one cache lookup, got:\n%s", out)
	}
	if !strings.Contains(out, "Atlantis: Failed to load data") {
		t.Errorf("expected mapped error line, got:\n%s", out)
	}
	if strings.Contains(out, "Sochi") {
		t.Errorf("expected shell to stop at quit, got:\n%s", out)
	}
	if hits := h.provider.weatherHits.Load(); hits != 1 {
		t.Errorf("expected 1 provider call, got %d", hits)
	}
}

func TestRun_ShellReturnsOnCancel(t *testing.T) {
	h := newHarness(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var stdout, stderr bytes.Buffer
		done <- run(ctx, []string{"-config", h.config, "shell"}, pr, &stdout, &stderr)
	}()

	// The write returns once the shell has read the line; it then waits for more input.
	if _, err := io.WriteString(pw, "Kazan\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shell still waiting for input after cancellation")
	}
}

func TestRun_Errors(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run(t, ""); err == nil {
		t.Error("expected error for missing command")
	}
	if _, err := h.run(t, "", "bogus"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, strings.NewReader(""), &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "usage: weather") {
		t.Errorf("expected usage text, got %q", stderr.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "warn", false).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}

	newLogger(&buf, "warn", true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected verbose flag to enable debug, got %q", buf.String())
	}
}
