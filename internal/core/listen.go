package core

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"jokeserver/internal/capability"
	jserr "jokeserver/internal/errors"
	"jokeserver/internal/metrics"
	"jokeserver/internal/retry"
	"jokeserver/internal/session"
	"jokeserver/util"
)

// Listener accepts inbound connections on one channel and runs a
// capability on each of them in its own goroutine.
type Listener struct {
	Name       string // "client" or "admin", used in logs
	Address    string // "host:port"
	Capability capability.Capability
	Session    session.Config
	Logger     *util.Logger
	Metrics    *metrics.Collector

	// Admin selects the admin counters in Metrics.
	Admin bool

	// Grace bounds how long Serve waits for handlers after the
	// context ends.  0 waits indefinitely.
	Grace time.Duration

	// AcceptBackoff paces retries after a transient Accept failure.
	// Nil uses retry.AcceptBackoff.
	AcceptBackoff *retry.Backoff

	ln net.Listener
	wg sync.WaitGroup
}

// Listen binds the address.  It is separate from Serve so callers can
// learn the bound port (Addr) before accepting.  Calling it again
// after a successful bind is a no-op.
func (l *Listener) Listen(ctx context.Context) error {
	if l.ln != nil {
		return nil
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", l.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.Address, err)
	}
	l.ln = ln
	l.Logger.Verbose("%s channel listening on %s", l.Name, ln.Addr())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (l *Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Run is Listen followed by Serve.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.Listen(ctx); err != nil {
		return err
	}
	return l.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled or Accept fails
// permanently.  Transient failures such as running out of file
// descriptors are logged and retried with backoff.  A cancelled
// context is a clean shutdown and returns nil.
func (l *Listener) Serve(ctx context.Context) error {
	if l.ln == nil {
		return fmt.Errorf("%s listener: Serve called before Listen", l.Name)
	}
	defer l.wait()

	// Shut the listener down when the context expires.
	stop := context.AfterFunc(ctx, func() { l.ln.Close() }) //nolint:errcheck
	defer stop()
	defer l.ln.Close()

	backoff := l.AcceptBackoff
	if backoff == nil {
		backoff = retry.AcceptBackoff()
	}

	failures := 0
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.Metrics.RecordError(err.Error())
			if !jserr.IsRetryable(err) {
				return fmt.Errorf("accept on %s: %w", l.Name, err)
			}

			failures++
			l.Logger.Warn("accept on %s: %v (retry %d)", l.Name, err, failures)
			if backoff.Wait(ctx, failures) != nil {
				return nil
			}
			continue
		}
		failures = 0

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.serveConn(ctx, conn)
		}()
	}
}

func (l *Listener) serveConn(ctx context.Context, conn net.Conn) {
	sess := session.New(conn, l.Session, l.Logger)
	defer sess.Close() //nolint:errcheck

	l.opened(sess)
	defer l.closed()

	if err := l.Capability.Handle(ctx, sess); err != nil && !util.IsHarmless(err) {
		sess.Logger.Error("%v", err)
		l.Metrics.RecordError(err.Error())
	}
}

func (l *Listener) opened(sess *session.Session) {
	if l.Admin {
		l.Metrics.AdminOpened()
		sess.Logger.Verbose("admin connection from %s", sess.Conn.RemoteAddr())
		return
	}
	l.Metrics.SessionOpened()
	sess.Logger.Verbose("client connection from %s (%d active)",
		sess.Conn.RemoteAddr(), l.Metrics.ActiveSessions())
}

func (l *Listener) closed() {
	if l.Admin {
		l.Metrics.AdminClosed()
		return
	}
	l.Metrics.SessionClosed()
}

// wait blocks until every handler has returned or the grace period
// runs out.
func (l *Listener) wait() {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	if l.Grace <= 0 {
		<-done
		return
	}
	select {
	case <-done:
	case <-time.After(l.Grace):
		l.Logger.Warn("%s handlers still running after %v", l.Name, l.Grace)
	}
}
