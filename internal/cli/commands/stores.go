package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// NewStoresCommand creates the stores command group.
func NewStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "Manage stores",
		Long: `List, create, rename and delete the stores of the signed-in user.

The user is resolved from api.token, which must be listed under auth.tokens
(or accepted by the server when api.url is set).`,
	}

	cmd.AddCommand(newStoresListCommand())
	cmd.AddCommand(newStoresCreateCommand())
	cmd.AddCommand(newStoresRenameCommand())
	cmd.AddCommand(newStoresDeleteCommand())
	return cmd
}

func newStoresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			c, cleanup, err := cc.Client(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := c.ListStores(cmd.Context())
			if err != nil {
				return err
			}
			return renderStores(cc, items)
		},
	}
}

func renderStores(cc *CommandContext, items []*core.Store) error {
	if cc.jsonOutput() {
		return printJSON(cc.Out, items)
	}
	t := newTable(cc.Out, table.Row{"ID", "Name", "Created"})
	for _, st := range items {
		t.AppendRow(table.Row{st.ID, st.Name, ago(st.CreatedAt)})
	}
	t.Render()
	countLine(cc.Out, len(items), "store")
	return nil
}

func newStoresCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a store",
		Long: `Create a store. Without a name argument the name is asked for
interactively when running in a terminal.`,
		Example: `  shopdash stores create "Web-shop"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			ctx := cmd.Context()

			name := ""
			if len(args) == 1 {
				name = args[0]
			} else if cc.Interactive() {
				var err error
				name, err = Prompt(cc.In, cc.ErrOut, "Create store", forms.StoreNamePlaceholder)
				if err != nil {
					return err
				}
			}

			c, cleanup, err := cc.Client(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec := &formflow.Recorder{}
			form := forms.NewStoreModal(c, rec)
			_ = form.Set(func(v *forms.StoreValues) { v.Name = name })
			if err := cc.submit(ctx, rec, form.Submit); err != nil {
				return err
			}

			nav, _ := rec.LastNavigation()
			id := strings.TrimPrefix(nav.Target(), "/")
			if cc.jsonOutput() {
				return printJSON(cc.Out, map[string]string{"id": id, "name": name})
			}
			_, _ = cc.Out.Write([]byte(id + "\n"))
			return nil
		},
	}
}

func newStoresRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			ctx := cmd.Context()
			c, cleanup, err := cc.Client(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := c.GetStore(ctx, args[0])
			if err != nil {
				return err
			}

			rec := &formflow.Recorder{}
			form := forms.NewSettingsForm(c, st, rec)
			_ = form.Set(func(v *forms.StoreValues) { v.Name = args[1] })
			return cc.submit(ctx, rec, form.Submit)
		},
	}
}

func newStoresDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a store",
		Long: `Delete a store. A store that still has billboards, categories or
products cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			ctx := cmd.Context()
			c, cleanup, err := cc.Client(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := c.GetStore(ctx, args[0])
			if err != nil {
				return err
			}

			rec := &formflow.Recorder{}
			form := forms.NewSettingsForm(c, st, rec)
			return cc.confirmDelete(ctx, rec, form, "store "+st.Name, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
