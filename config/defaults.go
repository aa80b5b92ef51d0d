package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultClientPort is where content clients connect.
	DefaultClientPort = 4545

	// DefaultAdminPort is where admin clients connect.
	DefaultAdminPort = 4546

	// DefaultHost is the server the client and admin commands dial.
	DefaultHost = "localhost"

	// DefaultOrder is the rotation order within a cycle.
	DefaultOrder = "shuffle"

	// DefaultDisplayName replaces the placeholder for clients that
	// never send a name.
	DefaultDisplayName = "friend"

	// DefaultBurst is the limiter burst when --rate is set.
	DefaultBurst = 5

	// DefaultDialTimeout bounds a single dial attempt.
	DefaultDialTimeout = 5 * time.Second

	// DefaultRetries is how many times a refused dial is retried.
	DefaultRetries = 5

	// DefaultVerbosity prints connection and cycle events.
	DefaultVerbosity = 1

	// DefaultGracePeriod is how long shutdown waits for handlers.
	DefaultGracePeriod = 5 * time.Second
)
