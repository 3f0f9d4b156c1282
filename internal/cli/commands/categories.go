package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
)

type categoryOptions struct {
	store     string
	name      string
	billboard string
	yes       bool
}

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand() *cobra.Command {
	opts := &categoryOptions{}

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage the categories of a store",
		Example: `  shopdash categories create --store <store-id> --name Shirts --billboard <billboard-id>`,
	}
	storeFlag(cmd, &opts.store)

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCategoriesList(cmd, opts)
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCategorySave(cmd, opts, "")
		},
	}
	categoryFlags(create, opts)
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategorySave(cmd, opts, args[0])
		},
	}
	categoryFlags(update, opts)
	cmd.AddCommand(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  "Delete a category. Categories that still hold products cannot be deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryDelete(cmd, opts, args[0])
		},
	}
	del.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.AddCommand(del)

	return cmd
}

func categoryFlags(cmd *cobra.Command, opts *categoryOptions) {
	cmd.Flags().StringVar(&opts.name, "name", "", "Category name")
	cmd.Flags().StringVar(&opts.billboard, "billboard", "", "ID of the billboard shown with the category")
}

func runCategoriesList(cmd *cobra.Command, opts *categoryOptions) error {
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

	items, err := c.ListCategories(ctx, opts.store)
	if err != nil {
		return err
	}
	if cc.jsonOutput() {
		return printJSON(cc.Out, items)
	}

	billboards, err := c.ListBillboards(ctx, opts.store)
	if err != nil {
		return err
	}
	labels := make(map[string]string, len(billboards))
	for _, b := range billboards {
		labels[b.ID] = b.Label
	}

	t := newTable(cc.Out, table.Row{"ID", "Name", "Billboard", "Created"})
	for _, cat := range items {
		t.AppendRow(table.Row{cat.ID, cat.Name, labels[cat.BillboardID], ago(cat.CreatedAt)})
	}
	t.Render()
	countLine(cc.Out, len(items), "category")
	return nil
}

func runCategorySave(cmd *cobra.Command, opts *categoryOptions, id string) error {
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
	form := forms.NewCategoryForm(c, opts.store, nil, rec)
	if id != "" {
		cat, err := c.GetCategory(ctx, opts.store, id)
		if err != nil {
			return err
		}
		form = forms.NewCategoryForm(c, opts.store, cat, rec)
	}

	flags := cmd.Flags()
	_ = form.Set(func(v *forms.CategoryValues) {
		if flags.Changed("name") || id == "" {
			v.Name = opts.name
		}
		if flags.Changed("billboard") || id == "" {
			v.BillboardID = opts.billboard
		}
	})
	return cc.submit(ctx, rec, form.Submit)
}

func runCategoryDelete(cmd *cobra.Command, opts *categoryOptions, id string) error {
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

	cat, err := c.GetCategory(ctx, opts.store, id)
	if err != nil {
		return err
	}

	rec := &formflow.Recorder{}
	form := forms.NewCategoryForm(c, opts.store, cat, rec)
	return cc.confirmDelete(ctx, rec, form, "category "+cat.Name, opts.yes)
}
