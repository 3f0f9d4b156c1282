package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/ui"
	"github.com/leapstack-labs/shopdash/internal/ui/resources"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the admin dashboard",
		Long: `Start the admin dashboard and the store API on one HTTP server.

Pages live under /, the API under /api. In dev mode static assets are served
from disk and browsers reload when they change.`,
		Example: `  # Start on the configured port
  shopdash serve

  # Local development without a session secret
  shopdash serve --dev --port 3000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	// Bound to server.* by the config loader.
	cmd.Flags().Int("port", 0, "Port to serve on (default: 3000)")
	cmd.Flags().Bool("dev", false, "Development mode: serve assets from disk with live reload")
	cmd.Flags().String("origin", "", "Public origin used in API URLs shown on the dashboard")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := cc.OpenRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	origin := cfg.Server.Origin
	if origin == "" {
		origin = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	secret := cfg.Server.SessionSecret
	if secret == "" {
		//nolint:gosec // only reachable in dev mode
		secret = "shopdash-dev-secret"
	}

	serverCfg := ui.Config{
		Repo:            repo,
		Port:            cfg.Server.Port,
		Origin:          origin,
		Dev:             cfg.Server.Dev,
		SessionSecret:   secret,
		Tokens:          cfg.Auth.Tokens,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          cc.Logger,
	}
	if cfg.Server.Dev {
		serverCfg.StaticDir = resources.Dir()
	}

	_, _ = fmt.Fprintf(cc.ErrOut, "Dashboard running on %s\n", origin)
	_, _ = fmt.Fprintln(cc.ErrOut, "Press Ctrl+C to stop")

	if err := ui.NewServer(serverCfg).Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
