// Package metrics provides lightweight, lock-free counters for the
// runtime statistics of a jokeserver process.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a jokeserver process.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	sessionsActive atomic.Int64
	sessionsTotal  atomic.Int64
	adminsActive   atomic.Int64
	adminsTotal    atomic.Int64
	jokesServed    atomic.Int64
	proverbsServed atomic.Int64
	cycles         atomic.Int64
	toggles        atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastToggle   time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection metrics ───────────────────────────────────────────────

// SessionOpened increments both the active and total client counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active client counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the number of connected clients.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// AdminOpened increments both the active and total admin counters.
func (c *Collector) AdminOpened() {
	if c == nil {
		return
	}
	c.adminsActive.Add(1)
	c.adminsTotal.Add(1)
}

// AdminClosed decrements the active admin counter.
func (c *Collector) AdminClosed() {
	if c == nil {
		return
	}
	c.adminsActive.Add(-1)
}

// ── Content metrics ──────────────────────────────────────────────────

// ItemServed records one delivered item.  proverb selects the counter.
func (c *Collector) ItemServed(proverb bool) {
	if c == nil {
		return
	}
	if proverb {
		c.proverbsServed.Add(1)
	} else {
		c.jokesServed.Add(1)
	}
}

// ItemsServed returns the total number of delivered items.
func (c *Collector) ItemsServed() int64 {
	if c == nil {
		return 0
	}
	return c.jokesServed.Load() + c.proverbsServed.Load()
}

// CycleCompleted records one completed rotation cycle.
func (c *Collector) CycleCompleted() {
	if c == nil {
		return
	}
	c.cycles.Add(1)
}

// ── Mode metrics ─────────────────────────────────────────────────────

// Toggled records an admin toggle.
func (c *Collector) Toggled() {
	if c == nil {
		return
	}
	c.toggles.Add(1)
	c.mu.Lock()
	c.lastToggle = time.Now()
	c.mu.Unlock()
}

// Toggles returns the number of toggles so far.
func (c *Collector) Toggles() int64 {
	if c == nil {
		return 0
	}
	return c.toggles.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsActive   int64  `json:"sessions_active"`
	SessionsTotal    int64  `json:"sessions_total"`
	AdminsActive     int64  `json:"admins_active"`
	AdminsTotal      int64  `json:"admins_total"`
	JokesServed      int64  `json:"jokes_served"`
	ProverbsServed   int64  `json:"proverbs_served"`
	CyclesCompleted  int64  `json:"cycles_completed"`
	Toggles          int64  `json:"toggles"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastToggle       string `json:"last_toggle,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive:  c.sessionsActive.Load(),
		SessionsTotal:   c.sessionsTotal.Load(),
		AdminsActive:    c.adminsActive.Load(),
		AdminsTotal:     c.adminsTotal.Load(),
		JokesServed:     c.jokesServed.Load(),
		ProverbsServed:  c.proverbsServed.Load(),
		CyclesCompleted: c.cycles.Load(),
		Toggles:         c.toggles.Load(),
		ErrorsTotal:     c.errorsTotal.Load(),
	}
	if !c.lastToggle.IsZero() {
		s.LastToggle = c.lastToggle.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
