package metrics

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollector_Sessions verifies session and admin counters track
// opens and closes.
func TestCollector_Sessions(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	c.AdminOpened()

	s := c.Snapshot()
	assert.Equal(t, int64(1), s.SessionsActive)
	assert.Equal(t, int64(2), s.SessionsTotal)
	assert.Equal(t, int64(1), s.AdminsActive)
	assert.Equal(t, int64(1), s.AdminsTotal)
	assert.Equal(t, int64(1), c.ActiveSessions())
}

// TestCollector_Items verifies jokes and proverbs are counted
// separately.
func TestCollector_Items(t *testing.T) {
	c := New()
	c.ItemServed(false)
	c.ItemServed(false)
	c.ItemServed(true)
	c.CycleCompleted()

	s := c.Snapshot()
	assert.Equal(t, int64(2), s.JokesServed)
	assert.Equal(t, int64(1), s.ProverbsServed)
	assert.Equal(t, int64(3), c.ItemsServed())
	assert.Equal(t, int64(1), s.CyclesCompleted)
}

// TestCollector_TogglesAndErrors verifies toggles and errors are
// counted and the latest of each is recorded.
func TestCollector_TogglesAndErrors(t *testing.T) {
	c := New()
	c.Toggled()
	c.RecordError("read: connection reset")

	s := c.Snapshot()
	assert.Equal(t, int64(1), c.Toggles())
	assert.NotEmpty(t, s.LastToggle)
	assert.Equal(t, int64(1), c.ErrorCount())
	assert.Equal(t, "read: connection reset", s.LastErrorMessage)
}

// TestCollector_Concurrent verifies counters are safe under concurrent
// updates.
func TestCollector_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SessionOpened()
			c.ItemServed(true)
			c.Toggled()
			c.SessionClosed()
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	assert.Equal(t, int64(0), s.SessionsActive)
	assert.Equal(t, int64(50), s.SessionsTotal)
	assert.Equal(t, int64(50), s.ProverbsServed)
	assert.Equal(t, int64(50), s.Toggles)
}

// TestCollector_NilSafe verifies a nil Collector accepts every call.
func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.SessionOpened()
	c.SessionClosed()
	c.AdminOpened()
	c.AdminClosed()
	c.ItemServed(false)
	c.CycleCompleted()
	c.Toggled()
	c.RecordError("x")

	assert.Equal(t, int64(0), c.ActiveSessions())
	assert.Equal(t, int64(0), c.ItemsServed())
	assert.Equal(t, int64(0), c.Toggles())
	assert.Equal(t, int64(0), c.ErrorCount())
	assert.Equal(t, Snapshot{}, c.Snapshot())
}

// TestCollector_JSON verifies the JSON snapshot decodes back into a
// Snapshot.
func TestCollector_JSON(t *testing.T) {
	c := New()
	c.ItemServed(false)

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(c.JSON()), &s))
	assert.Equal(t, int64(1), s.JokesServed)
	assert.NotEmpty(t, s.Uptime)
}
