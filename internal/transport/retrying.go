package transport

import (
	"context"
	"net"
	"time"

	jserr "jokeserver/internal/errors"
	"jokeserver/internal/retry"
	"jokeserver/util"
)

// RetryingDialer retries retryable dial failures with backoff, so a
// client started alongside the server does not fail on the first
// refused connection.
type RetryingDialer struct {
	Dialer  Dialer
	Backoff *retry.Backoff
	Logger  *util.Logger
}

// Dial tries the wrapped dialer until it succeeds, fails permanently,
// or the backoff budget runs out.
func (d *RetryingDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	b := *d.backoff()
	b.OnRetry = func(attempt int, err error, wait time.Duration) {
		d.Logger.Verbose("dial %s attempt %d failed: %v (retrying in %v)",
			address, attempt, err, wait.Truncate(time.Millisecond))
	}

	var conn net.Conn
	err := b.Do(ctx, func(int) error {
		c, err := d.Dialer.Dial(ctx, network, address)
		if err != nil {
			if !jserr.IsRetryable(err) {
				return retry.Permanent(err)
			}
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Close closes the wrapped dialer.
func (d *RetryingDialer) Close() error { return d.Dialer.Close() }

func (d *RetryingDialer) backoff() *retry.Backoff {
	if d.Backoff != nil {
		return d.Backoff
	}
	return retry.DefaultBackoff()
}
