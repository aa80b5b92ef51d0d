package rotation

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jserr "jokeserver/internal/errors"
)

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func drain(t *testing.T, c *Cursor, calls int) []int {
	t.Helper()
	out := make([]int, 0, calls)
	for i := 0; i < calls; i++ {
		idx, err := c.Next()
		require.NoError(t, err)
		out = append(out, idx)
	}
	return out
}

// TestNew_Empty verifies a cursor over zero items is ErrEmptyCycle.
func TestNew_Empty(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(n, Shuffled)
		require.Error(t, err)
		assert.True(t, jserr.Is(err, jserr.ErrEmptyCycle))
	}
}

// TestNew_BadOrder verifies an unknown order is rejected.
func TestNew_BadOrder(t *testing.T) {
	_, err := New(3, Order(9))
	require.Error(t, err)
}

func TestNext_ZeroCursor(t *testing.T) {
	var c Cursor
	_, err := c.Next()
	assert.True(t, jserr.Is(err, jserr.ErrEmptyCycle))

	var nilCursor *Cursor
	_, err = nilCursor.Next()
	assert.True(t, jserr.Is(err, jserr.ErrEmptyCycle))
}

// TestSequential_RoundRobin verifies sequential order is 0, 1, ..., N-1
// repeated.
func TestSequential_RoundRobin(t *testing.T) {
	var completed []int
	c, err := New(3, Sequential, OnCycleComplete(func(n int) { completed = append(completed, n) }))
	require.NoError(t, err)

	got := drain(t, c, 2)
	assert.Equal(t, []int{0, 1}, got)
	assert.Empty(t, completed)

	got = drain(t, c, 1)
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, []int{1}, completed, "cycle completes on the 3rd call")

	got = drain(t, c, 1)
	assert.Equal(t, []int{0}, got)
	assert.Equal(t, []int{1}, completed)
}

// Every cycle, whatever the order, is a permutation of [0, N).
func TestNoRepeatWithinCycle(t *testing.T) {
	for _, order := range []Order{Shuffled, Sequential} {
		for _, n := range []int{1, 2, 3, 4, 7, 16} {
			c, err := New(n, order, seeded(uint64(n)))
			require.NoError(t, err)

			for cycle := 0; cycle < 5; cycle++ {
				seen := make(map[int]bool, n)
				for _, idx := range drain(t, c, n) {
					require.True(t, idx >= 0 && idx < n, "index %d out of range", idx)
					require.False(t, seen[idx], "%s n=%d: index %d repeated in cycle %d", order, n, idx, cycle)
					seen[idx] = true
				}
				assert.Len(t, seen, n)
			}
		}
	}
}

// TestCycleCompletedOncePerCycle verifies the completion callback fires
// on every Nth call and only then.
func TestCycleCompletedOncePerCycle(t *testing.T) {
	const n = 4
	calls := 0
	var firedAt []int
	c, err := New(n, Shuffled, seeded(1), OnCycleComplete(func(cycle int) {
		firedAt = append(firedAt, calls)
		assert.Equal(t, len(firedAt), cycle)
	}))
	require.NoError(t, err)

	for i := 0; i < 3*n+1; i++ {
		calls++
		_, err := c.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{4, 8, 12}, firedAt)
	assert.Equal(t, 3, c.Cycles())
	assert.Equal(t, n-1, c.Remaining())
}

// TestShuffled_NoImmediateRepeatAcrossCycles verifies a new shuffled
// cycle does not start with the index that ended the last one.
func TestShuffled_NoImmediateRepeatAcrossCycles(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		c, err := New(3, Shuffled, seeded(seed))
		require.NoError(t, err)

		seq := drain(t, c, 30)
		for i := 1; i < len(seq); i++ {
			require.NotEqual(t, seq[i-1], seq[i], "seed %d: repeat at %d in %v", seed, i, seq)
		}
	}
}

// TestSingleItem verifies a one-item cursor completes a cycle on every
// call.
func TestSingleItem(t *testing.T) {
	fired := 0
	c, err := New(1, Shuffled, OnCycleComplete(func(int) { fired++ }))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0}, drain(t, c, 3))
	assert.Equal(t, 3, fired)
}

// TestShuffled_Deterministic verifies a seeded source gives a
// reproducible order.
func TestShuffled_Deterministic(t *testing.T) {
	a, err := New(8, Shuffled, seeded(42))
	require.NoError(t, err)
	b, err := New(8, Shuffled, seeded(42))
	require.NoError(t, err)

	assert.Equal(t, drain(t, a, 24), drain(t, b, 24))
}

// TestRemaining verifies Remaining counts down within a cycle.
func TestRemaining(t *testing.T) {
	c, err := New(2, Sequential)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Remaining())
	drain(t, c, 1)
	assert.Equal(t, 1, c.Remaining())
	drain(t, c, 1)
	assert.Equal(t, 0, c.Remaining())
	drain(t, c, 1)
	assert.Equal(t, 1, c.Remaining())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, Sequential, c.Order())
}

// TestParseOrder verifies order names parse case-insensitively.
func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"shuffle", Shuffled, false},
		{"Random", Shuffled, false},
		{" sequential ", Sequential, false},
		{"round-robin", Sequential, false},
		{"alphabetical", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrder(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
