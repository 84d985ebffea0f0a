package httpapi

import "testing"

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_PositiveSetsValue(t *testing.T) {
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetMutationRateLimit(t *testing.T) {
	defer SetMutationRateLimit(0, 0)
	SetMutationRateLimit(-1, 5)
	if mutationLimiter != nil {
		t.Fatalf("expected no limiter for non-positive rate")
	}
	SetMutationRateLimit(2, 0)
	if mutationLimiter == nil || mutationLimiter.Burst() != 1 {
		t.Fatalf("expected limiter with burst normalized to 1, got %+v", mutationLimiter)
	}
}
