// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target's `env`-tagged fields from environment variables,
// applying `envDefault` values for unset keys. Target must be a non-nil
// struct pointer.
func ParseEnv(target any) error {
	if target == nil {
		return fmt.Errorf("config target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse environment config: %w", err)
	}
	return nil
}
