package httpapi

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncrementBackpressure_IncrementsCounter(t *testing.T) {
	// Ensure metrics are registered (init() already does this)
	// Read baseline value for reason="rate_limit"
	baseline := testutil.ToFloat64(backpressureTotal.WithLabelValues("rate_limit"))
	// Increment twice
	IncrementBackpressure("rate_limit")
	IncrementBackpressure("rate_limit")
	// Verify incremented by 2
	got := testutil.ToFloat64(backpressureTotal.WithLabelValues("rate_limit"))
	if got < baseline+2 {
		t.Fatalf("expected backpressure counter >= %v, got %v", baseline+2, got)
	}

	// Empty reason should default to "unspecified"
	before := testutil.ToFloat64(backpressureTotal.WithLabelValues("unspecified"))
	IncrementBackpressure("")
	after := testutil.ToFloat64(backpressureTotal.WithLabelValues("unspecified"))
	if after < before+1 {
		t.Fatalf("expected unspecified reason to increment by at least 1: before=%v after=%v", before, after)
	}
}

func TestCountSelection_FoldsInvalidOptions(t *testing.T) {
	before := testutil.ToFloat64(menuSelectionsTotal.WithLabelValues("invalid", "error"))
	countSelection("no-such-option-"+t.Name(), 400)
	if got := testutil.ToFloat64(menuSelectionsTotal.WithLabelValues("invalid", "error")); got != before+1 {
		t.Fatalf("expected invalid selection to be counted, before=%v after=%v", before, got)
	}
	rejected := testutil.ToFloat64(menuSelectionsTotal.WithLabelValues("run", "rejected"))
	countSelection("run", 409)
	if got := testutil.ToFloat64(menuSelectionsTotal.WithLabelValues("run", "rejected")); got != rejected+1 {
		t.Fatalf("expected rejected run to be counted")
	}
}
