package config

import (
	"fmt"

	"github.com/leapstack-labs/shopdash/internal/state"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := state.ParseDialect(c.Database.Driver); err != nil {
		return fmt.Errorf("database.driver: %w", err)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputTable, OutputJSON, c.Output)
	}
	return nil
}

// ValidateServer checks the settings only the dashboard server needs.
func (c *Config) ValidateServer() error {
	if c.Server.SessionSecret == "" && !c.Server.Dev {
		return fmt.Errorf("server.session_secret is required outside dev mode\nHint: set SHOPDASH_SERVER_SESSION_SECRET or run with --dev")
	}
	return nil
}
