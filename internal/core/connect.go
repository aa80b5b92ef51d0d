package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"jokeserver/internal/capability"
	"jokeserver/internal/session"
	"jokeserver/internal/transport"
	"jokeserver/util"
)

// ConnectMode dials the server and runs a client-side capability
// (Requester or Toggler) on the resulting connection.
type ConnectMode struct {
	Dialer     transport.Dialer
	Capability capability.Capability
	Address    string
	Logger     *util.Logger

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ConnectMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run dials the server, creates a session, and hands it to the
// capability.  The transport is closed when Run returns.
func (m *ConnectMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	m.Logger.Verbose("connecting to %s", m.Address)

	conn, err := m.Dialer.Dial(ctx, "tcp", m.Address)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", m.Address, err)
	}

	sess := session.New(conn, session.Config{}, m.Logger)
	defer sess.Close() //nolint:errcheck
	sess.Stdin = m.stdin()
	sess.Stdout = m.stdout()

	m.Logger.Verbose("connected to %s", conn.RemoteAddr())
	return m.Capability.Handle(ctx, sess)
}
