// Package core is the orchestration layer.  It composes transports
// and capabilities into complete operational modes and provides the
// builders that turn a Config into a runnable Mode.
//
// Architecture layers (bottom → top):
//
//	transport  →  capability  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Mode represents a complete operational mode of jokeserver (serve,
// client or admin).  Each mode owns its full lifecycle from
// connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
