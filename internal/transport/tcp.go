package transport

import (
	"context"
	"net"
	"time"

	jserr "jokeserver/internal/errors"
)

// TCPDialer establishes plain TCP connections.
type TCPDialer struct {
	Timeout time.Duration
}

// Dial connects to address over TCP.  Failures come back as
// *errors.NetworkError so callers can tell refused (retryable) dials
// from the rest.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, jserr.Wrap("dial", address, err)
	}
	return conn, nil
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }
