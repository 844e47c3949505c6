package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Timeout bounds one Generate call including every retry. Zero means
	// no bound beyond the caller's context.
	Timeout time.Duration
}

// delay is the pause before retry n (1-based): exponential growth capped at
// MaxWait, with +/-20% jitter.
func (c RetryConfig) delay(n int) time.Duration {
	d := float64(c.InitialWait)
	for range n - 1 {
		d *= c.Multiplier
		if d >= float64(c.MaxWait) {
			break
		}
	}
	d = min(d, float64(c.MaxWait))
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

type retrying struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries Unavailable and RateLimited failures, and InvalidOutput
// once. Truncated and Rejected failures and context errors return at once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	invalidSeen := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		wait := r.cfg.delay(attempt)
		var e *Error
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case !errors.As(err, &e):
			// Plain transport errors from outside this package.
		case e.Kind == Truncated, e.Kind == Rejected:
			return nil, err
		case e.Kind == InvalidOutput:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		case e.Kind == RateLimited && e.RetryAfter > 0:
			wait = e.RetryAfter
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Name() string { return providerName(r.inner) }
