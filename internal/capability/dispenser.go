package capability

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"jokeserver/internal/metrics"
	"jokeserver/internal/mode"
	"jokeserver/internal/protocol"
	"jokeserver/internal/session"
	"jokeserver/util"
)

// Dispenser serves content to one client session: every request is
// answered from the cursor matching the mode active at that moment.
type Dispenser struct {
	Flag    *mode.Flag
	Metrics *metrics.Collector

	// Rate limits requests per second per session; 0 disables it.
	Rate  float64
	Burst int
}

// Handle reads frames until the client quits or disconnects.  A clean
// disconnect returns nil; malformed frames and I/O failures are
// returned so the listener can log them.
func (d *Dispenser) Handle(ctx context.Context, sess *session.Session) error {
	defer closeOnCancel(ctx, sess)()

	r := protocol.NewReader(sess.Conn)
	w := protocol.NewWriter(sess.Conn)
	limiter := d.limiter()

	first := true
	for {
		f, err := r.ReadFrame()
		if err != nil {
			if util.IsHarmless(err) {
				sess.Logger.Info("Client disconnected.")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		if first {
			first = false
			if f.IsHello() {
				sess.Logger.Info("User %s connected.", sess.SetName(f.Name))
				continue
			}
			sess.Logger.Info("User %s connected.", sess.Name())
		}

		switch {
		case f.IsQuit():
			sess.Logger.Verbose("Client quit.")
			return nil
		case f.IsHello():
			sess.Logger.Debug("ignoring repeated hello from %q", f.Name)
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil // shutting down
			}
		}

		m := d.Flag.Load()
		text, err := sess.Next(m.Category())
		if err != nil {
			return fmt.Errorf("next %s: %w", m, err)
		}
		if err := w.WriteFrame(protocol.Item(text, m.String())); err != nil {
			if util.IsHarmless(err) {
				return nil
			}
			return err
		}
		d.Metrics.ItemServed(m == mode.Proverb)
		sess.Logger.Debug("sent %s: %s", m, text)
	}
}

func (d *Dispenser) limiter() *rate.Limiter {
	if d.Rate <= 0 {
		return nil
	}
	burst := d.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(d.Rate), burst)
}
