package billboards

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// List renders the billboards client page.
func List(storeID, origin string, items []*core.Billboard) templ.Component {
	base := forms.BillboardsPath(storeID)
	rows := make([]components.Row, 0, len(items))
	for _, b := range items {
		rows = append(rows, components.Row{
			Key:   b.Label,
			Href:  base + "/" + b.ID,
			Cells: []string{b.Label, components.FormatDate(b.CreatedAt)},
		})
	}

	return templ.Join(
		templ.Raw(`<div id="billboards"><div class="heading-row">`),
		components.Heading("Billboards ("+strconv.Itoa(len(items))+")", "Manage billboards"),
		components.LinkButton("Add New", base+"/new"),
		templ.Raw(`</div>`),
		components.Separator(),
		components.DataTable("label", []string{"Label", "Date"}, rows),
		components.Heading("API", "API calls for Billboards"),
		components.Separator(),
		components.ApiList(origin, storeID, "billboards", "billboardId"),
		templ.Raw(`</div>`),
	)
}

// Form renders the billboard form. id is "new" in create mode.
func Form(storeID, id string, form *formflow.Form[forms.BillboardValues]) templ.Component {
	labels := form.Labels()
	errs := form.Errors()
	action := forms.BillboardsPath(storeID) + "/" + id

	return templ.Join(
		templ.Raw(`<div id="billboard-form" data-signals="`+templ.EscapeString(components.FormSignals(form.Values()))+`">`),
		components.AlertModal("@post('"+action+"/delete')"),
		templ.Raw(`<div class="heading-row">`),
		components.Heading(labels.Title, labels.Description),
		components.When(form.CanDelete(), components.DeleteTrigger()),
		templ.Raw(`</div>`),
		components.Separator(),
		templ.Raw(`<form class="entity-form" onsubmit="return false">`),
		components.Input(components.Field{Signal: "label", Label: "Label", Placeholder: "Billboard label", Error: errs["label"]}),
		components.Input(components.Field{Signal: "image-url", Label: "Background image", Placeholder: "Image URL", Error: errs["imageUrl"]}),
		components.Button(labels.Action, "primary", "@post('"+action+"')"),
		templ.Raw(`</form></div>`),
	)
}
