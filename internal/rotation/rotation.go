// Package rotation implements the per-session traversal over a content
// set: every index in [0, N) is handed out exactly once per cycle, and
// a new cycle starts as soon as the previous one is exhausted.
//
// A Cursor is not safe for concurrent use; its owner serializes calls.
package rotation

import (
	"fmt"
	"math/rand/v2"
	"strings"

	jserr "jokeserver/internal/errors"
)

// Order selects how indices are sequenced within a cycle.
type Order int

const (
	// Shuffled hands out a fresh random permutation every cycle.
	Shuffled Order = iota
	// Sequential hands out 0, 1, …, N-1 every cycle (round-robin).
	Sequential
)

func (o Order) String() string {
	switch o {
	case Shuffled:
		return "shuffle"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseOrder accepts "shuffle"/"shuffled"/"random" and
// "sequential"/"round-robin" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shuffle", "shuffled", "random":
		return Shuffled, nil
	case "sequential", "round-robin", "roundrobin":
		return Sequential, nil
	default:
		return 0, fmt.Errorf("unknown rotation order %q (want shuffle or sequential)", s)
	}
}

// Cursor produces a non-repeating traversal of [0, n) per cycle.
type Cursor struct {
	n       int
	order   Order
	perm    []int
	pos     int
	cycles  int
	rnd     *rand.Rand
	onCycle func(cycle int)
}

// Option customises a Cursor.
type Option func(*Cursor)

// WithRand makes shuffling deterministic.  Without it the
// auto-seeded global source is used.
func WithRand(r *rand.Rand) Option {
	return func(c *Cursor) { c.rnd = r }
}

// OnCycleComplete registers fn to run on the call that hands out the
// last index of a cycle.  cycle counts completed cycles from 1.
func OnCycleComplete(fn func(cycle int)) Option {
	return func(c *Cursor) { c.onCycle = fn }
}

// New returns a cursor over n items positioned at the start of its
// first cycle.
func New(n int, order Order, opts ...Option) (*Cursor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cursor over %d items: %w", n, jserr.ErrEmptyCycle)
	}
	if order != Shuffled && order != Sequential {
		return nil, fmt.Errorf("cursor: unsupported %s", order)
	}
	c := &Cursor{n: n, order: order, perm: make([]int, n)}
	for _, opt := range opts {
		opt(c)
	}
	c.fill()
	return c, nil
}

// Next returns the next index of the current cycle, starting a new
// cycle first when the current one is exhausted.
func (c *Cursor) Next() (int, error) {
	if c == nil || c.n == 0 {
		return 0, jserr.ErrEmptyCycle
	}
	if c.pos == c.n {
		c.restart()
	}

	idx := c.perm[c.pos]
	c.pos++

	if c.pos == c.n {
		c.cycles++
		if c.onCycle != nil {
			c.onCycle(c.cycles)
		}
	}
	return idx, nil
}

// Len returns the cycle length N.
func (c *Cursor) Len() int { return c.n }

// Remaining returns how many indices are left in the current cycle.
// It is N right after construction and 0 right after a cycle ends.
func (c *Cursor) Remaining() int { return c.n - c.pos }

// Cycles returns the number of completed cycles.
func (c *Cursor) Cycles() int { return c.cycles }

// Order returns the sequencing strategy.
func (c *Cursor) Order() Order { return c.order }

// restart begins a new cycle.  With more than one item a shuffled
// cycle never opens with the index that closed the previous one.
func (c *Cursor) restart() {
	last := c.perm[c.n-1]
	c.fill()
	c.pos = 0

	if c.order == Shuffled && c.n > 1 && c.perm[0] == last {
		j := 1 + c.intN(c.n-1)
		c.perm[0], c.perm[j] = c.perm[j], c.perm[0]
	}
}

func (c *Cursor) fill() {
	for i := range c.perm {
		c.perm[i] = i
	}
	if c.order == Shuffled {
		swap := func(i, j int) { c.perm[i], c.perm[j] = c.perm[j], c.perm[i] }
		if c.rnd != nil {
			c.rnd.Shuffle(c.n, swap)
		} else {
			rand.Shuffle(c.n, swap)
		}
	}
}

func (c *Cursor) intN(n int) int {
	if c.rnd != nil {
		return c.rnd.IntN(n)
	}
	return rand.IntN(n)
}
