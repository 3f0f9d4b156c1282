package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

type productOptions struct {
	store    string
	name     string
	price    string
	category string
	featured bool
	archived bool
	yes      bool

	// list filters
	featuredOnly    bool
	includeArchived bool
}

// NewProductsCommand creates the products command group.
func NewProductsCommand() *cobra.Command {
	opts := &productOptions{}

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the products of a store",
		Example: `  shopdash products list --store <store-id> --featured
  shopdash products create --store <store-id> --name Tee --price 19.99 --category <category-id>`,
	}
	storeFlag(cmd, &opts.store)

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Long:    "List products. Archived products are hidden unless --archived is given.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProductsList(cmd, opts)
		},
	}
	list.Flags().StringVar(&opts.category, "category", "", "Only products of this category")
	list.Flags().BoolVar(&opts.featuredOnly, "featured", false, "Only featured products")
	list.Flags().BoolVar(&opts.includeArchived, "archived", false, "Include archived products")
	cmd.AddCommand(list)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProductSave(cmd, opts, "")
		},
	}
	productFlags(create, opts)
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductSave(cmd, opts, args[0])
		},
	}
	productFlags(update, opts)
	cmd.AddCommand(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductDelete(cmd, opts, args[0])
		},
	}
	del.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.AddCommand(del)

	return cmd
}

func productFlags(cmd *cobra.Command, opts *productOptions) {
	cmd.Flags().StringVar(&opts.name, "name", "", "Product name")
	cmd.Flags().StringVar(&opts.price, "price", "", "Price, e.g. 19.99")
	cmd.Flags().StringVar(&opts.category, "category", "", "Category ID")
	cmd.Flags().BoolVar(&opts.featured, "featured", false, "Show the product on the storefront home page")
	cmd.Flags().BoolVar(&opts.archived, "archived", false, "Hide the product from the storefront")
}

func runProductsList(cmd *cobra.Command, opts *productOptions) error {
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

	items, err := c.ListProducts(ctx, opts.store, core.ProductFilter{
		CategoryID:      opts.category,
		FeaturedOnly:    opts.featuredOnly,
		IncludeArchived: opts.includeArchived,
	})
	if err != nil {
		return err
	}
	if cc.jsonOutput() {
		return printJSON(cc.Out, items)
	}

	categories, err := c.ListCategories(ctx, opts.store)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	t := newTable(cc.Out, table.Row{"ID", "Name", "Price", "Category", "Featured", "Archived", "Created"})
	t.SetColumnConfigs([]table.ColumnConfig{{Name: "Price", Align: text.AlignRight}})
	for _, p := range items {
		t.AppendRow(table.Row{p.ID, p.Name, price(p.PriceCents), names[p.CategoryID], yesNo(p.IsFeatured), yesNo(p.IsArchived), ago(p.CreatedAt)})
	}
	t.Render()
	countLine(cc.Out, len(items), "product")
	return nil
}

func runProductSave(cmd *cobra.Command, opts *productOptions, id string) error {
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
	form := forms.NewProductForm(c, opts.store, nil, rec)
	if id != "" {
		p, err := c.GetProduct(ctx, opts.store, id)
		if err != nil {
			return err
		}
		form = forms.NewProductForm(c, opts.store, p, rec)
	}

	flags := cmd.Flags()
	changed := func(name string) bool { return id == "" || flags.Changed(name) }
	_ = form.Set(func(v *forms.ProductValues) {
		if changed("name") {
			v.Name = opts.name
		}
		if changed("price") {
			v.Price = opts.price
		}
		if changed("category") {
			v.CategoryID = opts.category
		}
		if changed("featured") {
			v.IsFeatured = opts.featured
		}
		if changed("archived") {
			v.IsArchived = opts.archived
		}
	})
	return cc.submit(ctx, rec, form.Submit)
}

func runProductDelete(cmd *cobra.Command, opts *productOptions, id string) error {
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

	p, err := c.GetProduct(ctx, opts.store, id)
	if err != nil {
		return err
	}

	rec := &formflow.Recorder{}
	form := forms.NewProductForm(c, opts.store, p, rec)
	return cc.confirmDelete(ctx, rec, form, "product "+p.Name, opts.yes)
}
