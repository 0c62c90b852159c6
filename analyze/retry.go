package analyze

import (
	"context"
	"time"
)

// RetryPolicy describes how a failing call is retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the wait after the first failure. Each following
	// wait is multiplied by Multiplier and capped at MaxDelay.
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Retryable reports whether err is worth another attempt.
	// Nil retries every error; only ctx decides cancellation.
	Retryable func(err error) bool

	// Sleep waits for d or until ctx is done. Nil uses a timer.
	// Tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the policy used for model calls:
// 3 attempts, waiting 4s then 8s, never more than 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 4 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
	}
}

// Delay returns the wait before the attempt following attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := float64(p.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= p.multiplier()
		if p.MaxDelay > 0 && d >= float64(p.MaxDelay) {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && time.Duration(d) > p.MaxDelay {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// RetryFunc is notified before each retry with the failed attempt number,
// its error and the wait before the next attempt.
type RetryFunc func(attempt int, err error, delay time.Duration)

// Do calls fn until it succeeds, returns a non-retryable error or the
// attempts run out. It returns the attempt count alongside fn's last error.
// Context cancellation stops the loop and returns the context error.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error, onRetry RetryFunc) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempt, ctxErr
		}

		if attempt == maxAttempts || !p.retryable(err) {
			return attempt, lastErr
		}

		delay := p.Delay(attempt)
		if onRetry != nil {
			onRetry(attempt, err, delay)
		}

		if err := p.sleep(ctx, delay); err != nil {
			return attempt, err
		}
	}

	return maxAttempts, lastErr
}

func (p RetryPolicy) multiplier() float64 {
	if p.Multiplier <= 0 {
		return 1
	}
	return p.Multiplier
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return true
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
