// Package mode holds the process-wide switch between joke and proverb
// content.  Every session reads it on every request; admin connections
// flip it.
package mode

import (
	"sync"
	"sync/atomic"

	"jokeserver/internal/content"
)

// Mode is the globally active content category.
type Mode uint32

const (
	Joke Mode = iota
	Proverb
)

func (m Mode) String() string {
	if m == Proverb {
		return "proverb"
	}
	return "joke"
}

// Title is the human-readable name used in admin confirmations.
func (m Mode) Title() string {
	if m == Proverb {
		return "Proverb Mode"
	}
	return "Joke Mode"
}

// Category maps the mode to the content set it serves.
func (m Mode) Category() content.Category {
	if m == Proverb {
		return content.Proverb
	}
	return content.Joke
}

func (m Mode) flip() Mode {
	if m == Joke {
		return Proverb
	}
	return Joke
}

// Flag is the shared mode.  The zero value is ready to use and starts
// in Joke mode.  It lives for the whole process; there is no teardown.
type Flag struct {
	v atomic.Uint32

	mu        sync.RWMutex
	listeners []func(Mode)
}

// New returns a Flag in Joke mode.
func New() *Flag { return &Flag{} }

// Load returns the current mode.  It never blocks.
func (f *Flag) Load() Mode {
	return Mode(f.v.Load())
}

// Toggle flips the mode and returns the new value.  Concurrent toggles
// are serialized by compare-and-swap, so n toggles always flip n times.
func (f *Flag) Toggle() Mode {
	for {
		old := Mode(f.v.Load())
		next := old.flip()
		if f.v.CompareAndSwap(uint32(old), uint32(next)) {
			f.notify(next)
			return next
		}
	}
}

// OnChange registers fn to be called after every successful toggle
// with the mode that toggle produced.  Listeners run on the toggling
// goroutine; racing toggles may deliver out of order.
func (f *Flag) OnChange(fn func(Mode)) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

func (f *Flag) notify(m Mode) {
	f.mu.RLock()
	ls := f.listeners
	f.mu.RUnlock()
	for _, fn := range ls {
		fn(m)
	}
}
