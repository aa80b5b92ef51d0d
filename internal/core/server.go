package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jokeserver/internal/metrics"
	"jokeserver/internal/mode"
	"jokeserver/util"
)

// ServerMode runs the client and admin listeners side by side.  Both
// share one mode flag; neither accept loop blocks the other.
type ServerMode struct {
	Client  *Listener
	Admin   *Listener
	Flag    *mode.Flag
	Metrics *metrics.Collector
	Logger  *util.Logger
}

// Run binds both ports, prints the banner and serves until ctx is
// cancelled or either listener fails.
func (m *ServerMode) Run(ctx context.Context) error {
	if err := m.Client.Listen(ctx); err != nil {
		return err
	}
	if err := m.Admin.Listen(ctx); err != nil {
		m.Client.ln.Close() //nolint:errcheck
		return err
	}

	m.Flag.OnChange(func(md mode.Mode) {
		m.Metrics.Toggled()
		m.Logger.Info("Mode toggled to: %s", md.Title())
	})

	m.Logger.Info("Joke Server starting up, listening at port %d for clients and port %d for admin.",
		util.PortOf(m.Client.Addr()), util.PortOf(m.Admin.Addr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.Client.Serve(gctx) })
	g.Go(func() error { return m.Admin.Serve(gctx) })
	err := g.Wait()

	m.Logger.Info("Joke Server shutting down.")
	if n := m.Metrics.ErrorCount(); n > 0 {
		m.Logger.Warn("%d connection errors since startup", n)
	}
	m.Logger.Verbose("metrics: %s", m.Metrics.JSON())
	return err
}
