package core

import (
	"jokeserver/config"
	"jokeserver/internal/capability"
	"jokeserver/internal/content"
	jserr "jokeserver/internal/errors"
	"jokeserver/internal/metrics"
	"jokeserver/internal/mode"
	"jokeserver/internal/retry"
	"jokeserver/internal/session"
	"jokeserver/internal/transport"
	"jokeserver/util"
)

// BuildServer validates cfg, loads the content library and wires the
// two listeners around a fresh mode flag.
func BuildServer(cfg *config.Config, logger *util.Logger) (*ServerMode, error) {
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	order, err := cfg.RotationOrder()
	if err != nil {
		return nil, err
	}
	lib, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}

	flag := mode.New()
	mc := metrics.New()

	sessCfg := session.Config{
		Library:     lib,
		Order:       order,
		DefaultName: cfg.DefaultName,
		OnCycle: func(content.Category, int) {
			mc.CycleCompleted()
		},
	}

	return &ServerMode{
		Client: &Listener{
			Name:    "client",
			Address: util.FormatAddr(cfg.BindAddress, cfg.ClientPort),
			Capability: &capability.Dispenser{
				Flag:    flag,
				Metrics: mc,
				Rate:    cfg.Rate,
				Burst:   cfg.Burst,
			},
			Session: sessCfg,
			Logger:  logger,
			Metrics: mc,
			Grace:   config.DefaultGracePeriod,
		},
		Admin: &Listener{
			Name:       "admin",
			Address:    util.FormatAddr(cfg.BindAddress, cfg.AdminPort),
			Capability: &capability.AdminGateway{Flag: flag},
			Logger:     logger,
			Metrics:    mc,
			Admin:      true,
			Grace:      config.DefaultGracePeriod,
		},
		Flag:    flag,
		Metrics: mc,
		Logger:  logger,
	}, nil
}

// BuildClient wires the interactive content client.
func BuildClient(cfg *config.Config, logger *util.Logger, interactive bool) (*ConnectMode, error) {
	if err := cfg.ValidateClient(cfg.ClientPort); err != nil {
		return nil, err
	}
	return &ConnectMode{
		Dialer:     buildDialer(cfg, logger),
		Capability: &capability.Requester{Name: cfg.Name, Interactive: interactive},
		Address:    util.FormatAddr(cfg.Host, cfg.ClientPort),
		Logger:     logger,
	}, nil
}

// BuildAdmin wires the interactive admin client.
func BuildAdmin(cfg *config.Config, logger *util.Logger, interactive bool) (*ConnectMode, error) {
	if err := cfg.ValidateClient(cfg.AdminPort); err != nil {
		return nil, err
	}
	return &ConnectMode{
		Dialer:     buildDialer(cfg, logger),
		Capability: &capability.Toggler{Interactive: interactive},
		Address:    util.FormatAddr(cfg.Host, cfg.AdminPort),
		Logger:     logger,
	}, nil
}

// ── shared helpers ───────────────────────────────────────────────────

// buildDialer creates a TCP dialer, wrapped with retries unless
// Retries is 0.
func buildDialer(cfg *config.Config, logger *util.Logger) transport.Dialer {
	tcp := &transport.TCPDialer{Timeout: cfg.DialTimeout}
	if cfg.Retries == 0 {
		return tcp
	}
	b := retry.DefaultBackoff()
	b.MaxAttempts = cfg.Retries + 1
	return &transport.RetryingDialer{Dialer: tcp, Backoff: b, Logger: logger}
}

func loadLibrary(cfg *config.Config) (*content.Library, error) {
	if cfg.ContentPath == "" {
		return content.Default(), nil
	}
	lib, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		return nil, &jserr.ConfigError{
			Field:   "content",
			Value:   cfg.ContentPath,
			Message: err.Error(),
			Hint:    "the file needs non-empty 'jokes' and/or 'proverbs' lists",
			Err:     err,
		}
	}
	return lib, nil
}
