package util

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsHarmless reports whether err is expected when a peer goes away or
// the server shuts down: EOF, a closed connection, or a reset.  Such
// errors end a session quietly instead of being logged as failures.
func IsHarmless(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	// net.OpError wrapping "use of closed network connection"
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
