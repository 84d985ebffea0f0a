package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"snnd/internal/backend"
	"snnd/internal/httpapi"
	"snnd/internal/journal"
	"snnd/internal/service"
)

// createTempAssetsDir creates a temporary directory populated with empty
// model asset files and returns its path.
func createTempAssetsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write temp asset %s: %v", p, err)
		}
	}
	return dir
}

// newServer starts an httptest server in front of a service backed by a
// simulated backend with the given apply latency and an in-memory journal.
func newServer(t *testing.T, assetsDir string, delay time.Duration) (*httptest.Server, *service.Service, *backend.Simulated) {
	t.Helper()
	log := zerolog.New(io.Discard)
	j, err := journal.Open(":memory:", log)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	sim := backend.NewSimulated(delay)
	svc, err := service.New(service.Options{
		Backend:   sim,
		AssetsDir: assetsDir,
		Journal:   j,
		Logger:    log,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close(context.Background())
	})
	return srv, svc, sim
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func selectOption(t *testing.T, base, option string) (*http.Response, []byte) {
	t.Helper()
	return httpPostJSON(t, base+"/menu/select", []byte(`{"option":"`+option+`"}`))
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, string(body))
	}
	return v
}
