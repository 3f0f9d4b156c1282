package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/shopdash/internal/cli/config"
)

// NewConfigCommand creates the config command, which prints the effective
// configuration with secrets masked.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, shopdash.yaml,
SHOPDASH_* environment variables and flags. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			red := cc.Cfg.Redacted()

			if cc.jsonOutput() {
				return printJSON(cc.Out, red)
			}
			if file := config.GetConfigFileUsed(); file != "" {
				_, _ = fmt.Fprintf(cc.Out, "# %s\n", file)
			}
			enc := yaml.NewEncoder(cc.Out)
			enc.SetIndent(2)
			if err := enc.Encode(red); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
