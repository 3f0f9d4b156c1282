package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
)

// billboardOptions holds the flags of the billboard commands.
type billboardOptions struct {
	store    string
	label    string
	imageURL string
	yes      bool
}

// NewBillboardsCommand creates the billboards command group.
func NewBillboardsCommand() *cobra.Command {
	opts := &billboardOptions{}

	cmd := &cobra.Command{
		Use:     "billboards",
		Aliases: []string{"billboard"},
		Short:   "Manage the billboards of a store",
		Example: `  shopdash billboards list --store <store-id>
  shopdash billboards create --store <store-id> --label "Summer" --image-url https://img/summer.png`,
	}
	storeFlag(cmd, &opts.store)

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List billboards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBillboardsList(cmd, opts)
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a billboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBillboardSave(cmd, opts, "")
		},
	}
	billboardFlags(create, opts)
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a billboard",
		Long:  "Update a billboard. Only the given flags are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBillboardSave(cmd, opts, args[0])
		},
	}
	billboardFlags(update, opts)
	cmd.AddCommand(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a billboard",
		Long:  "Delete a billboard. Billboards still used by categories cannot be deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBillboardDelete(cmd, opts, args[0])
		},
	}
	del.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.AddCommand(del)

	return cmd
}

func billboardFlags(cmd *cobra.Command, opts *billboardOptions) {
	cmd.Flags().StringVar(&opts.label, "label", "", "Billboard label")
	cmd.Flags().StringVar(&opts.imageURL, "image-url", "", "Background image URL")
}

func runBillboardsList(cmd *cobra.Command, opts *billboardOptions) error {
	if err := requireStore(opts.store); err != nil {
		return err
	}
	cc := NewCommandContext(cmd)
	c, cleanup, err := cc.Client(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	items, err := c.ListBillboards(cmd.Context(), opts.store)
	if err != nil {
		return err
	}
	if cc.jsonOutput() {
		return printJSON(cc.Out, items)
	}

	t := newTable(cc.Out, table.Row{"ID", "Label", "Image", "Created"})
	for _, b := range items {
		t.AppendRow(table.Row{b.ID, b.Label, b.ImageURL, ago(b.CreatedAt)})
	}
	t.Render()
	countLine(cc.Out, len(items), "billboard")
	return nil
}

func runBillboardSave(cmd *cobra.Command, opts *billboardOptions, id string) error {
	if err := requireStore(opts.store); err != nil {
		return err
	}
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()
	c, cleanup, err := cc.Client(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rec := &formflow.Recorder{}
	form := forms.NewBillboardForm(c, opts.store, nil, rec)
	if id != "" {
		b, err := c.GetBillboard(ctx, opts.store, id)
		if err != nil {
			return err
		}
		form = forms.NewBillboardForm(c, opts.store, b, rec)
	}

	flags := cmd.Flags()
	_ = form.Set(func(v *forms.BillboardValues) {
		if flags.Changed("label") || id == "" {
			v.Label = opts.label
		}
		if flags.Changed("image-url") || id == "" {
			v.ImageURL = opts.imageURL
		}
	})
	return cc.submit(ctx, rec, form.Submit)
}

func runBillboardDelete(cmd *cobra.Command, opts *billboardOptions, id string) error {
	if err := requireStore(opts.store); err != nil {
		return err
	}
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()
	c, cleanup, err := cc.Client(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := c.GetBillboard(ctx, opts.store, id)
	if err != nil {
		return err
	}

	rec := &formflow.Recorder{}
	form := forms.NewBillboardForm(c, opts.store, b, rec)
	return cc.confirmDelete(ctx, rec, form, "billboard "+b.Label, opts.yes)
}
