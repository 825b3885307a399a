package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/weather/internal/config"
	"github.com/raphi011/weather/internal/log"
	"github.com/raphi011/weather/internal/weather"
)

var testNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.Local)

// provider is a stand-in weatherapi.com that counts requests.
type provider struct {
	*httptest.Server
	hits atomic.Int32
}

func newProvider(t *testing.T, h http.HandlerFunc) *provider {
	t.Helper()
	p := &provider{}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(p.Close)
	return p
}

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "pune.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func serveFixture(t *testing.T) http.HandlerFunc {
	data := readFixture(t)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

func serveStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// newTestApp returns an app with every file inside a temp dir, a fixed
// clock and a journal captured in memory.
func newTestApp(t *testing.T, baseURL string) (*app, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	cfg.CacheFile = filepath.Join(dir, "data.json")
	cfg.LogFile = filepath.Join(dir, "weather.log")
	cfg.HistoryFile = filepath.Join(dir, "history.json")

	var journal bytes.Buffer
	a := newApp(cfg, log.NewJournal(&journal, "debug").Logger)
	a.now = func() time.Time { return testNow }
	return a, &journal
}

// seedCache stores the fixture for Pune stamped at fetchedOn.
func seedCache(t *testing.T, a *app, fetchedOn time.Time) {
	t.Helper()
	doc, err := weather.Decode(readFixture(t))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	doc.FetchedOn = weather.NewTimestamp(fetchedOn)
	if err := a.store.Save(doc); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
}

type result struct {
	stdout string
	stderr string
	code   int
}

func run(t *testing.T, a *app, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), a, args, &stdout, &stderr)
	return result{
		stdout: ansi.Strip(stdout.String()),
		stderr: stderr.String(),
		code:   code,
	}
}
