package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by package cmd)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LoadFromEnv overlays JOKESERVER_* environment variables onto cfg.
// Unset variables leave the existing value alone, so call it on a
// Defaults() config and before binding CLI flags.
func LoadFromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
