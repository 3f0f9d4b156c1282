package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply all pending schema migrations to the configured database.

serve and the in-process API migrate on start, so this is mostly useful
before pointing several servers at one PostgreSQL database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			repo, err := cc.OpenRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			version, err := repo.MigrationVersion(cmd.Context())
			if err != nil {
				return err
			}
			cc.Presenter().Toast(toastf("Database at version %d", version))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			repo, err := cc.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			version, err := repo.MigrationVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			if cc.jsonOutput() {
				return printJSON(cc.Out, map[string]any{"version": version, "dialect": repo.Dialect()})
			}
			_, _ = fmt.Fprintf(cc.Out, "%s schema version %d\n", repo.Dialect(), version)
			return nil
		},
	})

	return cmd
}
