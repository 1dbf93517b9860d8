package services

import (
	"context"
	"testing"
	"time"
)

func TestBackoffDoublesAndCaps(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 8, BaseDelay: time.Second, MaxDelay: 16 * time.Second, Jitter: exactJitter}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 16 * time.Second}
	for i, w := range want {
		if got := p.Backoff(i + 1); got != w {
			t.Fatalf("Backoff(%d) = %v, want %v", i+1, got, w)
		}
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	low := RetryPolicy{BaseDelay: 4 * time.Second, MaxDelay: time.Minute, Jitter: func(int64) int64 { return 0 }}
	if got := low.Backoff(1); got != 3*time.Second {
		t.Fatalf("low jitter = %v, want 3s", got)
	}
	high := RetryPolicy{BaseDelay: 4 * time.Second, MaxDelay: time.Minute, Jitter: func(n int64) int64 { return n - 1 }}
	if got := high.Backoff(1); got != 5*time.Second {
		t.Fatalf("high jitter = %v, want 5s", got)
	}
	capped := RetryPolicy{BaseDelay: 16 * time.Second, MaxDelay: 16 * time.Second, Jitter: func(n int64) int64 { return n - 1 }}
	if got := capped.Backoff(1); got != 16*time.Second {
		t.Fatalf("capped = %v, want 16s", got)
	}
}

func TestBackoffRandomStaysInRange(t *testing.T) {
	p := NewRetryPolicy(5, 100*time.Millisecond, 0)
	for i := 0; i < 200; i++ {
		got := p.Backoff(2)
		if got < 150*time.Millisecond || got > 250*time.Millisecond {
			t.Fatalf("Backoff(2) = %v out of range", got)
		}
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	p := NewRetryPolicy(0, 0, 0)
	if p.MaxAttempts != 1 || p.BaseDelay != time.Second || p.MaxDelay != 16*time.Second {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestSleepCtxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); err == nil {
		t.Fatalf("expected context error")
	}
}
