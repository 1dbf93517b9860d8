package services

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy is a bounded exponential backoff with jitter.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Jitter returns a value in [0, n). Nil uses math/rand.
	Jitter func(n int64) int64
}

func NewRetryPolicy(maxAttempts int, base, maxDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if base <= 0 {
		base = time.Second
	}
	if maxDelay <= 0 {
		maxDelay = base * 16
	}
	return RetryPolicy{MaxAttempts: maxAttempts, BaseDelay: base, MaxDelay: maxDelay}
}

// Backoff returns the wait before the next attempt after `attempt` attempts
// (1-based): base * 2^(attempt-1), plus or minus up to 25%, capped at MaxDelay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	shift := attempt - 1
	if shift > 30 {
		shift = 30
	}
	backoff := p.BaseDelay << shift
	if backoff <= 0 || backoff > p.MaxDelay {
		backoff = p.MaxDelay
	}

	quarter := int64(backoff / 4)
	if quarter > 0 {
		jitter := p.jitter(2*quarter+1) - quarter
		backoff += time.Duration(jitter)
	}
	if backoff > p.MaxDelay {
		backoff = p.MaxDelay
	}
	return backoff
}

func (p RetryPolicy) jitter(n int64) int64 {
	if p.Jitter != nil {
		return p.Jitter(n)
	}
	return rand.Int63n(n)
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
