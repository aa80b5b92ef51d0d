// Package retry provides exponential backoff: for clients reaching a
// server that may not be accepting connections yet, and for listeners
// pacing themselves after a transient Accept failure.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// ── Permanent errors ─────────────────────────────────────────────────

// PermanentError wraps an error to signal that retrying will not help.
// Return [Permanent](err) from the operation function to stop retrying
// immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable.  The backoff loop will return
// the inner error immediately without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err has been marked as permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ── Backoff ──────────────────────────────────────────────────────────

// Backoff implements exponential backoff with optional jitter.
type Backoff struct {
	// InitialDelay is the delay before the first retry (default 250ms).
	InitialDelay time.Duration
	// MaxDelay caps the backoff duration (default 5s).
	MaxDelay time.Duration
	// Multiplier increases the delay each attempt (default 2.0).
	Multiplier float64
	// MaxAttempts is the total number of tries including the first.
	// 0 retries until the context is cancelled.
	MaxAttempts int
	// Jitter adds ±25% randomisation.
	Jitter bool
	// OnRetry, when set, is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultBackoff returns the configuration used for client dials:
// a handful of quick attempts, then give up.
func DefaultBackoff() *Backoff {
	return &Backoff{
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		MaxAttempts:  5,
		Jitter:       true,
	}
}

// Delay returns the wait after the given failed attempt (1-based):
// InitialDelay grown by Multiplier per attempt, capped at MaxDelay,
// with jitter applied last.
func (b *Backoff) Delay(attempt int) time.Duration {
	delay := b.InitialDelay
	if delay == 0 {
		delay = 250 * time.Millisecond
	}
	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	maxDelay := b.MaxDelay
	if maxDelay == 0 {
		maxDelay = 5 * time.Second
	}

	d := float64(delay) * math.Pow(multiplier, float64(max(attempt-1, 0)))
	wait := time.Duration(math.Min(d, float64(maxDelay)))
	if b.Jitter {
		wait = addJitter(wait)
	}
	return wait
}

// Wait sleeps for Delay(attempt) or until ctx ends, whichever comes
// first.  It returns ctx.Err() when cut short.
func (b *Backoff) Wait(ctx context.Context, attempt int) error {
	return sleep(ctx, b.Delay(attempt))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do executes fn repeatedly until it succeeds, returns a permanent
// error, or the retry budget (attempts / context) is exhausted.
//
// The attempt parameter passed to fn is 1-based.  On success fn should
// return nil.  To abort retrying, wrap the error with [Permanent].
func (b *Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(attempt)
		switch {
		case err == nil:
			return nil
		case IsPermanent(err):
			return errors.Unwrap(err)
		case b.MaxAttempts > 0 && attempt >= b.MaxAttempts:
			return fmt.Errorf("gave up after %d attempts: %w", b.MaxAttempts, err)
		}

		wait := b.Delay(attempt)
		if b.OnRetry != nil {
			b.OnRetry(attempt, err, wait)
		}
		if werr := sleep(ctx, wait); werr != nil {
			return fmt.Errorf("retry cancelled: %w", werr)
		}
	}
}

// AcceptBackoff is the pause schedule for a listener whose Accept
// fails transiently (for example when out of file descriptors):
// 5ms doubling to 1s, never giving up.
func AcceptBackoff() *Backoff {
	return &Backoff{
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
	}
}

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	result := float64(d) + delta
	return time.Duration(math.Max(result, float64(time.Millisecond)))
}
