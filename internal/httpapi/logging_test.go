package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// legacy query param ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("legacy query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	// no override falls back to the default
	defer SetDefaultLogLevel("")
	SetDefaultLogLevel("info")
	r = httptest.NewRequest("GET", "/x", nil)
	if got := requestLogLevel(r); got != LevelInfo {
		t.Fatalf("default level not used: %v", got)
	}
}

func TestLogEnd_RespectsRequestLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	// error level: successes are dropped, failures are logged
	r := httptest.NewRequest("POST", "/menu/select?log=error", nil)
	logEnd(r, "menu select", 200, time.Now(), nil, nil)
	if buf.Len() != 0 {
		t.Fatalf("success logged at error level: %q", buf.String())
	}
	logEnd(r, "menu select", 409, time.Now(), errors.New("run is disabled"), func(e *zerolog.Event) { e.Str("option", "run") })
	out := buf.String()
	if !strings.Contains(out, `"status":409`) || !strings.Contains(out, `"option":"run"`) {
		t.Fatalf("missing failure log: %q", out)
	}

	buf.Reset()
	r = httptest.NewRequest("POST", "/menu/select?log=off", nil)
	logEnd(r, "menu select", 409, time.Now(), errors.New("x"), nil)
	if buf.Len() != 0 {
		t.Fatalf("logged with log=off: %q", buf.String())
	}
}
