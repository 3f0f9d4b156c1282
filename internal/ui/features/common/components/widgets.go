package components

import (
	"github.com/a-h/templ"
)

// Heading renders a page title with its description.
func Heading(title, description string) templ.Component {
	return component(func(h *writer) {
		h.raw("<div class=\"heading\"><h2>")
		h.text(title)
		h.raw("</h2><p>")
		h.text(description)
		h.raw("</p></div>")
	})
}

// ApiAlertVariant selects the badge of an ApiAlert.
type ApiAlertVariant string

// Variants.
const (
	ApiPublic ApiAlertVariant = "public"
	ApiAdmin  ApiAlertVariant = "admin"
)

// ApiAlert shows a copyable API route with a public or admin badge.
func ApiAlert(title, description string, variant ApiAlertVariant) templ.Component {
	return component(func(h *writer) {
		badge := "Public"
		if variant == ApiAdmin {
			badge = "Admin"
		}
		h.raw("<div class=\"api-alert\"><div class=\"api-alert-title\">")
		h.text(title)
		h.raw(" <span")
		h.attr("class", "badge badge-"+string(variant))
		h.raw(">")
		h.text(badge)
		h.raw("</span></div><code>")
		h.text(description)
		h.raw("</code><button type=\"button\"")
		h.attr("data-on:click", "navigator.clipboard.writeText("+JSString(description)+")")
		h.raw(">Copy</button></div>")
	})
}

// ApiList lists the public and admin routes of an entity collection.
func ApiList(origin, storeID, entityName, entityIDName string) templ.Component {
	base := origin + "/api/" + storeID
	return component(func(h *writer) {
		h.raw("<div class=\"api-list\">")
		h.render(ApiAlert("GET", base+"/"+entityName, ApiPublic))
		h.render(ApiAlert("GET", base+"/"+entityName+"/{"+entityIDName+"}", ApiPublic))
		h.render(ApiAlert("POST", base+"/"+entityName, ApiAdmin))
		h.render(ApiAlert("PATCH", base+"/"+entityName+"/{"+entityIDName+"}", ApiAdmin))
		h.render(ApiAlert("DELETE", base+"/"+entityName+"/{"+entityIDName+"}", ApiAdmin))
		h.raw("</div>")
	})
}

// Button is a datastar action button. Its request drives the $loading
// signal, which disables every control of the form.
func Button(label, class, onClick string) templ.Component {
	return component(func(h *writer) {
		h.raw("<button type=\"button\"")
		h.attr("class", class)
		h.attr("data-on:click", onClick)
		h.raw(" data-indicator:loading data-attr:disabled=\"$loading\">")
		h.text(label)
		h.raw("</button>")
	})
}

// LinkButton renders an anchor styled as a button.
func LinkButton(label, href string) templ.Component {
	return component(func(h *writer) {
		h.raw("<a class=\"button\"")
		h.attr("href", href)
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	})
}

// Field describes one controlled form input.
type Field struct {
	// Signal is the kebab-case signal key, e.g. "image-url".
	Signal      string
	Label       string
	Placeholder string
	Error       string
	// Type is the input type; "checkbox" renders a checkbox.
	Type string
	// Options turns the input into a select.
	Options []Option
	// Hint is shown under checkboxes.
	Hint string
}

// Option is a select option.
type Option struct {
	Value string
	Label string
}

// Input renders a labelled, signal-bound form control and its validation message.
func Input(f Field) templ.Component {
	return component(func(h *writer) {
		id := "field-" + f.Signal
		h.raw("<div class=\"field\">")
		if f.Type == "checkbox" {
			h.raw("<label class=\"checkbox\"><input type=\"checkbox\"")
			h.attr("id", id)
			h.raw(" data-bind:" + f.Signal + " data-attr:disabled=\"$loading\">")
			h.text(f.Label)
			h.raw("</label>")
			if f.Hint != "" {
				h.raw("<p class=\"hint\">")
				h.text(f.Hint)
				h.raw("</p>")
			}
		} else {
			h.raw("<label")
			h.attr("for", id)
			h.raw(">")
			h.text(f.Label)
			h.raw("</label>")
			if len(f.Options) > 0 {
				h.raw("<select")
				h.attr("id", id)
				h.raw(" data-bind:" + f.Signal + " data-attr:disabled=\"$loading\">")
				h.raw("<option value=\"\">")
				h.text(f.Placeholder)
				h.raw("</option>")
				for _, o := range f.Options {
					h.raw("<option")
					h.attr("value", o.Value)
					h.raw(">")
					h.text(o.Label)
					h.raw("</option>")
				}
				h.raw("</select>")
			} else {
				typ := f.Type
				if typ == "" {
					typ = "text"
				}
				h.raw("<input")
				h.attr("type", typ)
				h.attr("id", id)
				h.attr("placeholder", f.Placeholder)
				h.raw(" data-bind:" + f.Signal + " data-attr:disabled=\"$loading\">")
			}
		}
		if f.Error != "" {
			h.raw("<p class=\"field-error\">")
			h.text(f.Error)
			h.raw("</p>")
		}
		h.raw("</div>")
	})
}

// AlertModal is the confirmation dialog of destructive actions. It is shown
// while $confirmOpen is true and cannot be dismissed while $loading.
func AlertModal(confirmAction string) templ.Component {
	return component(func(h *writer) {
		h.raw("<div class=\"modal-backdrop\" data-show=\"$confirmOpen\" style=\"display: none\">")
		h.raw("<div class=\"modal\" role=\"alertdialog\" aria-modal=\"true\">")
		h.raw("<h3>Are you sure?</h3><p>This action cannot be undone.</p><div class=\"modal-actions\">")
		h.raw("<button type=\"button\" class=\"outline\" data-on:click=\"$confirmOpen = false\" data-attr:disabled=\"$loading\">Cancel</button>")
		h.render(Button("Continue", "destructive", confirmAction))
		h.raw("</div></div></div>")
	})
}

// Separator renders a horizontal rule.
func Separator() templ.Component {
	return templ.Raw("<hr class=\"separator\">")
}
