// Package commands implements the shopdash subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/cli/config"
	"github.com/leapstack-labs/shopdash/internal/client"
	"github.com/leapstack-labs/shopdash/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
}

// NewCommandContext collects the configuration, logger and streams of cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
		In:     cmd.InOrStdin(),
	}
}

// OpenRepo opens the configured database and applies pending migrations.
// The caller must close the returned store.
func (c *CommandContext) OpenRepo(ctx context.Context) (*state.SQLStore, error) {
	repo, err := c.openDB()
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

// openDB opens the configured database without touching its schema.
func (c *CommandContext) openDB() (*state.SQLStore, error) {
	if err := ensureStateDir(c.Cfg.Database); err != nil {
		return nil, err
	}
	repo := state.NewSQLStore(c.Logger)
	if err := repo.Open(c.Cfg.Database.Driver, c.Cfg.Database.DSN); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repo, nil
}

// Client returns an API client. With api.url set it talks to a running
// server; otherwise the API is served in-process against the configured
// database. Either way the request carries api.token. The cleanup function
// must be called (typically via defer).
func (c *CommandContext) Client(ctx context.Context) (*client.Client, func(), error) {
	if c.Cfg.API.URL != "" {
		c.Logger.Debug("using remote API", "url", c.Cfg.API.URL)
		return client.New(c.Cfg.API.URL, client.WithToken(c.Cfg.API.Token)), func() {}, nil
	}

	repo, err := c.OpenRepo(ctx)
	if err != nil {
		return nil, nil, err
	}
	router := api.NewRouter(api.NewHandlers(repo, nil, c.Logger), auth.NewTokenResolver(c.Cfg.Auth.Tokens))
	cleanup := func() {
		_ = repo.Close()
	}
	return client.New("", client.WithHandler(router), client.WithToken(c.Cfg.API.Token)), cleanup, nil
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded (e.g. a command executed on its own in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// ensureStateDir creates the parent directory of a SQLite database file.
func ensureStateDir(db config.DatabaseConfig) error {
	d, err := state.ParseDialect(db.Driver)
	if err != nil {
		return err
	}
	if d != state.DialectSQLite || db.DSN == ":memory:" || strings.HasPrefix(db.DSN, "file:") {
		return nil
	}
	dir := filepath.Dir(db.DSN)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}
