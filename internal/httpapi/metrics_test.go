package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := MetricsMiddleware(r)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/events", http.MethodGet, "418"))
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events?limit=5", nil))
		if rr.Code != http.StatusTeapot {
			t.Fatalf("status=%d", rr.Code)
		}
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/events", http.MethodGet, "418")); got != before+2 {
		t.Fatalf("expected two counted requests, before=%v after=%v", before, got)
	}
	if got := testutil.ToFloat64(httpInflight.WithLabelValues(http.MethodGet)); got != 0 {
		t.Fatalf("inflight gauge not released: %v", got)
	}
}

func TestMetricsMiddleware_UnroutedFallsBackToPath(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/raw", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte(`snnd_http_requests_total{method="POST",path="/raw",status="200"}`)) {
		preview := body
		if len(preview) > 400 {
			preview = preview[:400]
		}
		t.Fatalf("expected /raw series in metrics; got: %q", string(preview))
	}
}
