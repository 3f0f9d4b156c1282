// Package config provides configuration management for the shopdash CLI.
//
// Values are layered: built-in defaults, then shopdash.yaml, then SHOPDASH_
// environment variables, then explicitly set command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Database DatabaseConfig `koanf:"database" yaml:"database" json:"database"`
	Server   ServerConfig   `koanf:"server" yaml:"server" json:"server"`
	API      APIConfig      `koanf:"api" yaml:"api" json:"api"`
	Auth     AuthConfig     `koanf:"auth" yaml:"auth" json:"auth"`
	Verbose  bool           `koanf:"verbose" yaml:"verbose" json:"verbose"`
	Output   string         `koanf:"output" yaml:"output" json:"output"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-" yaml:"-" json:"-"`
}

// DatabaseConfig selects the state database.
type DatabaseConfig struct {
	Driver string `koanf:"driver" yaml:"driver" json:"driver"`
	DSN    string `koanf:"dsn" yaml:"dsn" json:"dsn"`
}

// ServerConfig holds configuration for the dashboard server.
type ServerConfig struct {
	Port            int           `koanf:"port" yaml:"port" json:"port"`
	Origin          string        `koanf:"origin" yaml:"origin" json:"origin"`
	SessionSecret   string        `koanf:"session_secret" yaml:"session_secret" json:"session_secret"`
	Dev             bool          `koanf:"dev" yaml:"dev" json:"dev"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// APIConfig tells CLI commands where the API lives. An empty URL serves
// the API in-process against the configured database.
type APIConfig struct {
	URL   string `koanf:"url" yaml:"url" json:"url"`
	Token string `koanf:"token" yaml:"token" json:"token"`
}

// AuthConfig maps API bearer tokens to user IDs.
type AuthConfig struct {
	Tokens map[string]string `koanf:"tokens" yaml:"tokens" json:"tokens"`
}

// Default configuration values.
const (
	DefaultDriver          = "sqlite"
	DefaultDSN             = ".shopdash/shopdash.db"
	DefaultPort            = 3000
	DefaultShutdownTimeout = 5 * time.Second
	DefaultOutput          = "table"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Default returns a Config with only the built-in defaults applied.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: DefaultDriver, DSN: DefaultDSN},
		Server:   ServerConfig{Port: DefaultPort, ShutdownTimeout: DefaultShutdownTimeout},
		Output:   DefaultOutput,
	}
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	out.Server.SessionSecret = mask(c.Server.SessionSecret)
	out.API.Token = mask(c.API.Token)
	if len(c.Auth.Tokens) > 0 {
		out.Auth.Tokens = make(map[string]string, len(c.Auth.Tokens))
		for token, user := range c.Auth.Tokens {
			tail := token
			if len(tail) > 4 {
				tail = tail[len(tail)-4:]
			}
			out.Auth.Tokens["****"+tail] = user
		}
	}
	return &out
}
