// Package session represents a single connection lifecycle: the
// connection itself, an id for logs, the client's display name and
// the pair of rotation cursors that belong to that client.
//
// Rotation state is scoped to the connection.  A client that
// reconnects gets a fresh session and fresh cursors.
package session

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"jokeserver/internal/content"
	jserr "jokeserver/internal/errors"
	"jokeserver/internal/rotation"
	"jokeserver/util"
)

// DefaultName is substituted for the placeholder when a client never
// sends a display name.
const DefaultName = "friend"

// MaxNameLength caps display names, in runes.
const MaxNameLength = 64

// Config describes the content side of a session.  Admin sessions
// leave Library nil.
type Config struct {
	Library       *content.Library
	Order         rotation.Order
	DefaultName   string
	CursorOptions []rotation.Option

	// OnCycle runs after a cursor completes a cycle, after the
	// completion has been logged.
	OnCycle func(c content.Category, cycle int)
}

// Session encapsulates the runtime context for a single connection.
// Capabilities operate on sessions rather than raw connections.
type Session struct {
	ID     string
	Conn   net.Conn
	Logger *util.Logger

	// Stdin/Stdout are the local console for client-side sessions
	// (interactive client and admin).  Server sessions leave them nil.
	Stdin  io.Reader
	Stdout io.Writer

	cfg Config

	mu      sync.Mutex
	name    string
	cursors [2]*rotation.Cursor
	closed  bool

	closeOnce sync.Once
	closeErr  error
}

// New creates a Session bound to conn.  The session logger is scoped
// with the first eight characters of a random UUID.
func New(conn net.Conn, cfg Config, logger *util.Logger) *Session {
	id := uuid.NewString()
	if cfg.DefaultName == "" {
		cfg.DefaultName = DefaultName
	}
	return &Session{
		ID:     id,
		Conn:   conn,
		Logger: logger.With("session " + id[:8]),
		cfg:    cfg,
		name:   cfg.DefaultName,
	}
}

// Name returns the display name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName records the client's display name.  Blank names keep the
// default; long names are cut to MaxNameLength runes.
func (s *Session) SetName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.name = name
	}
	return s.name
}

// Next advances the cursor for category c (creating it on first use)
// and returns the rendered item.  Calls are serialized per session so
// overlapping requests cannot break the no-repeat guarantee.
func (s *Session) Next(c content.Category) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", jserr.ErrNotConnected
	}
	if s.cfg.Library == nil {
		return "", fmt.Errorf("session %s: no content library", s.ID)
	}
	set, err := s.cfg.Library.Set(c)
	if err != nil {
		return "", err
	}

	cur := s.cursors[c]
	if cur == nil {
		cur, err = s.newCursor(c, set.Len())
		if err != nil {
			return "", err
		}
		s.cursors[c] = cur
	}

	idx, err := cur.Next()
	if err != nil {
		return "", err
	}
	return set.Item(idx).Render(s.name), nil
}

// Close releases the cursors and closes the connection.  It is safe to
// call more than once and from another goroutine, which is how a
// blocked read is interrupted on shutdown.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.cursors = [2]*rotation.Cursor{}
		s.mu.Unlock()

		if s.Conn != nil {
			s.closeErr = s.Conn.Close()
		}
	})
	return s.closeErr
}

func (s *Session) newCursor(c content.Category, n int) (*rotation.Cursor, error) {
	label := strings.ToUpper(c.String())
	opts := append([]rotation.Option{}, s.cfg.CursorOptions...)
	opts = append(opts, rotation.OnCycleComplete(func(cycle int) {
		s.Logger.Info("%s CYCLE COMPLETED", label)
		if s.cfg.OnCycle != nil {
			s.cfg.OnCycle(c, cycle)
		}
	}))
	return rotation.New(n, s.cfg.Order, opts...)
}
