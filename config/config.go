// Package config defines the runtime configuration for jokeserver and
// validates it for each role (server, client, admin).
package config

import (
	"fmt"
	"time"

	jserr "jokeserver/internal/errors"
	"jokeserver/internal/rotation"
)

// Config holds every tuneable.  Fields carry env tags for LoadFromEnv;
// CLI flags are bound onto the same struct by package cmd.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────
	BindAddress string  `env:"JOKESERVER_BIND"`
	ClientPort  int     `env:"JOKESERVER_PORT"`
	AdminPort   int     `env:"JOKESERVER_ADMIN_PORT"`
	Order       string  `env:"JOKESERVER_ORDER"`   // "shuffle" or "sequential"
	ContentPath string  `env:"JOKESERVER_CONTENT"` // optional YAML content file
	DefaultName string  `env:"JOKESERVER_DEFAULT_NAME"`
	Rate        float64 `env:"JOKESERVER_RATE"` // requests/s per session, 0 = unlimited
	Burst       int     `env:"JOKESERVER_BURST"`

	// ── Client / admin ───────────────────────────────────────────────
	Host        string        `env:"JOKESERVER_HOST"`
	Name        string        `env:"JOKESERVER_NAME"`
	DialTimeout time.Duration `env:"JOKESERVER_DIAL_TIMEOUT"`
	Retries     int           `env:"JOKESERVER_RETRIES"`

	// ── Output ───────────────────────────────────────────────────────
	Verbose    int  `env:"JOKESERVER_VERBOSE"`
	Timestamps bool `env:"JOKESERVER_TIMESTAMPS"` // always on at debug verbosity
}

// Defaults returns a Config populated from defaults.go.
func Defaults() Config {
	return Config{
		ClientPort:  DefaultClientPort,
		AdminPort:   DefaultAdminPort,
		Order:       DefaultOrder,
		DefaultName: DefaultDisplayName,
		Burst:       DefaultBurst,
		Host:        DefaultHost,
		DialTimeout: DefaultDialTimeout,
		Retries:     DefaultRetries,
		Verbose:     DefaultVerbosity,
	}
}

// RotationOrder parses Order.
func (c *Config) RotationOrder() (rotation.Order, error) {
	return rotation.ParseOrder(c.Order)
}

// ── Validation ───────────────────────────────────────────────────────

// ValidateServer checks the settings used by the serve command.
func (c *Config) ValidateServer() error {
	if err := checkPort("port", c.ClientPort); err != nil {
		return err
	}
	if err := checkPort("admin-port", c.AdminPort); err != nil {
		return err
	}
	if c.ClientPort == c.AdminPort {
		return &jserr.ConfigError{
			Field:   "admin-port",
			Value:   c.AdminPort,
			Message: "must differ from --port",
			Hint:    fmt.Sprintf("the defaults are %d (clients) and %d (admin)", DefaultClientPort, DefaultAdminPort),
		}
	}
	if _, err := c.RotationOrder(); err != nil {
		return &jserr.ConfigError{
			Field:   "order",
			Value:   c.Order,
			Message: "unknown rotation order",
			Hint:    "use shuffle or sequential",
			Err:     err,
		}
	}
	if c.Rate < 0 {
		return &jserr.ConfigError{Field: "rate", Value: c.Rate, Message: "must not be negative", Hint: "0 disables rate limiting"}
	}
	if c.Burst < 0 {
		return &jserr.ConfigError{Field: "burst", Value: c.Burst, Message: "must not be negative"}
	}
	return nil
}

// ValidateClient checks the settings used by the client and admin
// commands.  port is the port that command will dial.
func (c *Config) ValidateClient(port int) error {
	if c.Host == "" {
		return &jserr.ConfigError{Field: "host", Message: "is required", Hint: "pass the server name as the first argument"}
	}
	if err := checkPort("port", port); err != nil {
		return err
	}
	if c.Retries < 0 {
		return &jserr.ConfigError{Field: "retries", Value: c.Retries, Message: "must not be negative"}
	}
	return nil
}

func checkPort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &jserr.ConfigError{
			Field:   field,
			Value:   port,
			Message: "out of range 1-65535",
			Hint:    "use a port between 1 and 65535",
		}
	}
	return nil
}
