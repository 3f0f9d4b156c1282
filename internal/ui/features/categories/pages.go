package categories

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// List renders the categories client page.
func List(storeID, origin string, items []*core.Category, billboards []*core.Billboard) templ.Component {
	labels := make(map[string]string, len(billboards))
	for _, b := range billboards {
		labels[b.ID] = b.Label
	}

	base := forms.CategoriesPath(storeID)
	rows := make([]components.Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, components.Row{
			Key:   c.Name,
			Href:  base + "/" + c.ID,
			Cells: []string{c.Name, labels[c.BillboardID], components.FormatDate(c.CreatedAt)},
		})
	}

	return templ.Join(
		templ.Raw(`<div id="categories"><div class="heading-row">`),
		components.Heading("Categories ("+strconv.Itoa(len(items))+")", "Manage categories for your store"),
		components.LinkButton("Add New", base+"/new"),
		templ.Raw(`</div>`),
		components.Separator(),
		components.DataTable("name", []string{"Name", "Billboard", "Date"}, rows),
		components.Heading("API", "API calls for Categories"),
		components.Separator(),
		components.ApiList(origin, storeID, "categories", "categoryId"),
		templ.Raw(`</div>`),
	)
}

// Form renders the category form. id is "new" in create mode.
func Form(storeID, id string, form *formflow.Form[forms.CategoryValues], billboards []*core.Billboard) templ.Component {
	labels := form.Labels()
	errs := form.Errors()
	action := forms.CategoriesPath(storeID) + "/" + id

	options := make([]components.Option, 0, len(billboards))
	for _, b := range billboards {
		options = append(options, components.Option{Value: b.ID, Label: b.Label})
	}

	return templ.Join(
		templ.Raw(`<div id="category-form" data-signals="`+templ.EscapeString(components.FormSignals(form.Values()))+`">`),
		components.AlertModal("@post('"+action+"/delete')"),
		templ.Raw(`<div class="heading-row">`),
		components.Heading(labels.Title, labels.Description),
		components.When(form.CanDelete(), components.DeleteTrigger()),
		templ.Raw(`</div>`),
		components.Separator(),
		templ.Raw(`<form class="entity-form" onsubmit="return false">`),
		components.Input(components.Field{Signal: "name", Label: "Name", Placeholder: "Category name", Error: errs["name"]}),
		components.Input(components.Field{Signal: "billboard-id", Label: "Billboard", Placeholder: "Select a billboard", Options: options, Error: errs["billboardId"]}),
		components.Button(labels.Action, "primary", "@post('"+action+"')"),
		templ.Raw(`</form></div>`),
	)
}
