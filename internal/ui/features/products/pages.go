package products

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// List renders the products client page, archived products included.
func List(storeID, origin string, items []*core.Product, categories []*core.Category) templ.Component {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	base := forms.ProductsPath(storeID)
	rows := make([]components.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, components.Row{
			Key:  p.Name,
			Href: base + "/" + p.ID,
			Cells: []string{
				p.Name,
				yesNo(p.IsArchived),
				yesNo(p.IsFeatured),
				"$" + forms.FormatPrice(p.PriceCents),
				names[p.CategoryID],
				components.FormatDate(p.CreatedAt),
			},
		})
	}

	return templ.Join(
		templ.Raw(`<div id="products"><div class="heading-row">`),
		components.Heading("Products ("+strconv.Itoa(len(items))+")", "Manage products for your store"),
		components.LinkButton("Add New", base+"/new"),
		templ.Raw(`</div>`),
		components.Separator(),
		components.DataTable("name", []string{"Name", "Archived", "Featured", "Price", "Category", "Date"}, rows),
		components.Heading("API", "API calls for Products"),
		components.Separator(),
		components.ApiList(origin, storeID, "products", "productId"),
		templ.Raw(`</div>`),
	)
}

// Form renders the product form. id is "new" in create mode.
func Form(storeID, id string, form *formflow.Form[forms.ProductValues], categories []*core.Category) templ.Component {
	labels := form.Labels()
	errs := form.Errors()
	action := forms.ProductsPath(storeID) + "/" + id

	options := make([]components.Option, 0, len(categories))
	for _, c := range categories {
		options = append(options, components.Option{Value: c.ID, Label: c.Name})
	}

	return templ.Join(
		templ.Raw(`<div id="product-form" data-signals="`+templ.EscapeString(components.FormSignals(form.Values()))+`">`),
		components.AlertModal("@post('"+action+"/delete')"),
		templ.Raw(`<div class="heading-row">`),
		components.Heading(labels.Title, labels.Description),
		components.When(form.CanDelete(), components.DeleteTrigger()),
		templ.Raw(`</div>`),
		components.Separator(),
		templ.Raw(`<form class="entity-form" onsubmit="return false">`),
		components.Input(components.Field{Signal: "name", Label: "Name", Placeholder: "Product name", Error: errs["name"]}),
		components.Input(components.Field{Signal: "price", Label: "Price", Placeholder: "9.99", Error: errs["price"]}),
		components.Input(components.Field{Signal: "category-id", Label: "Category", Placeholder: "Select a category", Options: options, Error: errs["categoryId"]}),
		components.Input(components.Field{Signal: "is-featured", Label: "Featured", Type: "checkbox", Hint: "This product will appear on the home page"}),
		components.Input(components.Field{Signal: "is-archived", Label: "Archived", Type: "checkbox", Hint: "This product will not appear anywhere in the store"}),
		components.Button(labels.Action, "primary", "@post('"+action+"')"),
		templ.Raw(`</form></div>`),
	)
}
