package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger_Levels verifies each level prints only at or above its
// verbosity.
func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3) // debug level
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Error("e")
	l.Warn("w")
	l.Info("i")
	l.Verbose("v")
	l.Debug("d")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	wantPrefixes := []string{"[ERR]", "[WRN]", "[INF]", "[VRB]", "[DBG]"}
	for i, prefix := range wantPrefixes {
		assert.Contains(t, lines[i], prefix)
	}
}

// TestLogger_QuietMode verifies verbosity 0 still prints errors and
// nothing else.
func TestLogger_QuietMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(0) // quiet
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	l.Info("should not appear")
	l.Verbose("should not appear")
	l.Debug("should not appear")
	l.Error("always appears")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

// TestLogger_Timestamps verifies timestamps are prepended when enabled.
func TestLogger_Timestamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)
	l.SetTimestamps(true)

	l.Info("test")

	// Timestamp format is "HH:MM:SS.mmm"
	out := buf.String()
	assert.Contains(t, out, ":")
	assert.GreaterOrEqual(t, len(out), 15)
}

// TestLogger_With verifies scoped children prefix their messages and
// nest.
func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)
	l.SetTimestamps(false)

	child := l.With("session 1234")
	child.Info("User Ann connected.")
	child.With("joke").Info("cycle completed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[INF] session 1234: User Ann connected.", lines[0])
	assert.Equal(t, "[INF] session 1234 joke: cycle completed", lines[1])
}

// TestLogger_ChildSharesOutput verifies a child logger writes to its
// parent's output.
func TestLogger_ChildSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	child := l.With("admin")

	// Redirecting the parent after the child exists must affect both.
	l.SetOutput(&buf)
	l.SetTimestamps(false)
	child.Warn("ignored input")

	assert.Equal(t, "[WRN] admin: ignored input\n", buf.String())
}
