package settings

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// APIURLVariable names the storefront setting the API alert is meant for.
const APIURLVariable = "NEXT_PUBLIC_API_URL"

// Settings renders the settings form of a store.
func Settings(storeID, origin string, form *formflow.Form[forms.StoreValues]) templ.Component {
	labels := form.Labels()
	errs := form.Errors()
	action := "/" + storeID + "/settings"

	return templ.Join(
		templ.Raw(`<div id="settings-form" data-signals="`+templ.EscapeString(components.FormSignals(form.Values()))+`">`),
		components.AlertModal("@post('"+action+"/delete')"),
		templ.Raw(`<div class="heading-row">`),
		components.Heading(labels.Title, labels.Description),
		components.When(form.CanDelete(), components.DeleteTrigger()),
		templ.Raw(`</div>`),
		components.Separator(),
		templ.Raw(`<form class="entity-form" onsubmit="return false">`),
		components.Input(components.Field{Signal: "name", Label: "Name", Placeholder: "Store name", Error: errs["name"]}),
		components.Button(labels.Action, "primary", "@post('"+action+"')"),
		templ.Raw(`</form>`),
		components.Separator(),
		components.ApiAlert(APIURLVariable, origin+"/api/"+storeID, components.ApiPublic),
		templ.Raw(`</div>`),
	)
}
