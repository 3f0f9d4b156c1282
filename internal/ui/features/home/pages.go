package home

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// StoreModal renders the store-creation modal. It cannot be closed: a user
// without stores has nowhere else to go.
func StoreModal(form *formflow.Form[forms.StoreValues]) templ.Component {
	labels := form.Labels()
	errs := form.Errors()
	return templ.Join(
		templ.Raw(`<div id="store-modal" class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true"`+
			` data-signals="`+templ.EscapeString(components.Signals(form.Values()))+`">`),
		components.Heading(labels.Title, labels.Description),
		components.Input(components.Field{
			Signal:      "name",
			Label:       "Name",
			Placeholder: forms.StoreNamePlaceholder,
			Error:       errs["name"],
		}),
		templ.Raw(`<div class="modal-actions">`),
		components.Button(labels.Action, "primary", "@post('/stores')"),
		templ.Raw(`</div></div></div>`),
	)
}

// Overview renders the store summary cards.
func Overview(st *core.Store, counts core.EntityCounts) templ.Component {
	card := func(title string, n int) templ.Component {
		return templ.Raw(`<div class="card"><h3>` + templ.EscapeString(title) + `</h3><p class="stat">` + strconv.Itoa(n) + `</p></div>`)
	}
	return templ.Join(
		templ.Raw(`<div id="overview">`),
		components.Heading("Dashboard", "Overview of "+st.Name),
		components.Separator(),
		templ.Raw(`<div class="cards">`),
		card("Billboards", counts.Billboards),
		card("Categories", counts.Categories),
		card("Products", counts.Products),
		card("Featured products", counts.Featured),
		templ.Raw(`</div></div>`),
	)
}
