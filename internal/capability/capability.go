// Package capability defines what happens over an established
// connection.  Each Capability encapsulates a single behaviour and
// operates on a Session rather than a raw net.Conn, which keeps
// capabilities testable and decoupled from transport details.
//
// Server side: Dispenser answers content requests, AdminGateway flips
// the shared mode.  Client side: Requester and Toggler drive those two
// channels from a local console.
package capability

import (
	"context"

	"jokeserver/internal/session"
)

// Capability handles a single connection according to a specific
// behaviour.
type Capability interface {
	// Handle runs the capability against the given session.
	// It blocks until the connection is done or the context is
	// cancelled.
	Handle(ctx context.Context, sess *session.Session) error
}

// closeOnCancel interrupts blocked reads on sess when ctx ends.  The
// returned func detaches the hook.
func closeOnCancel(ctx context.Context, sess *session.Session) func() bool {
	return context.AfterFunc(ctx, func() { sess.Close() }) //nolint:errcheck
}
