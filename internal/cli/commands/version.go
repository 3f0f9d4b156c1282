package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/state"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	Schema    int64  `json:"schemaVersion"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Print the shopdash release, the commit it was built from and the database schema version it expects.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info.GoVersion = runtime.Version()
			if latest, err := state.LatestMigrationVersion(); err == nil {
				info.Schema = latest
			}

			cc := NewCommandContext(cmd)
			if cc.jsonOutput() {
				return printJSON(cc.Out, info)
			}
			_, _ = fmt.Fprintf(cc.Out, "Shopdash v%s\n", info.Version)
			_, _ = fmt.Fprintf(cc.Out, "  commit:  %s (%s)\n", info.Commit, info.Date)
			_, _ = fmt.Fprintf(cc.Out, "  go:      %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(cc.Out, "  schema:  %d\n", info.Schema)
			return nil
		},
	}
}
