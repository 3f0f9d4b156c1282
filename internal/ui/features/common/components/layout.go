package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/navbar"
)

// DatastarScript is the client runtime the pages load.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData is the per-page input of Page.
type PageData struct {
	Title string
	IsDev bool
	// Toasts are flashes carried over from the previous request.
	Toasts []formflow.Toast
	// Navbar is nil on pages outside a store (sign-in, setup).
	Navbar *navbar.Navbar
	// UpdatesURL, when set, opens a live-update stream on load.
	UpdatesURL string
}

// Page renders a full HTML document around body.
func Page(data PageData, body templ.Component) templ.Component {
	return component(func(h *writer) {
		h.raw("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		h.text(data.Title + " - Shopdash")
		h.raw("</title><link rel=\"stylesheet\" href=\"/static/app.css\">")
		h.raw("<script type=\"module\"")
		h.attr("src", DatastarScript)
		h.raw("></script></head><body>")

		if data.IsDev {
			h.raw("<div data-init=\"@get('/reload', {retryMaxCount: 1000})\"></div>")
		}
		if data.UpdatesURL != "" {
			h.raw("<div")
			h.attr("data-init", "@get("+JSString(data.UpdatesURL)+", {openWhenHidden: true})")
			h.raw("></div>")
		}
		if data.Navbar != nil {
			h.render(Navbar(data.Navbar))
		}
		h.raw("<main class=\"ui-content\">")
		h.render(body)
		h.raw("</main>")
		h.render(Toasts(data.Toasts))
		h.raw("</body></html>")
	})
}

// Toasts renders the toast container. Patching it replaces every visible toast.
func Toasts(toasts []formflow.Toast) templ.Component {
	return component(func(h *writer) {
		h.raw("<div id=\"toasts\" class=\"toasts\" aria-live=\"polite\">")
		for _, t := range toasts {
			h.raw("<div role=\"status\"")
			h.attr("class", "toast toast-"+string(t.Level))
			h.raw(">")
			h.text(t.Message)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// Navbar renders the store switcher, the main navigation and the user button.
func Navbar(nb *navbar.Navbar) templ.Component {
	return component(func(h *writer) {
		h.raw("<nav id=\"navbar\" class=\"navbar\">")

		h.raw("<select class=\"store-switcher\" aria-label=\"Select a store\"")
		h.attr("data-on:change", "window.location.assign('/' + el.value)")
		h.raw(">")
		for _, st := range nb.Stores {
			h.raw("<option")
			h.attr("value", st.ID)
			if nb.Active != nil && nb.Active.ID == st.ID {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(st.Name)
			h.raw("</option>")
		}
		h.raw("</select>")

		h.raw("<div class=\"main-nav\">")
		for _, route := range nb.Routes {
			h.raw("<a")
			h.attr("href", route.Href)
			if route.Active {
				h.raw(" class=\"active\" aria-current=\"page\"")
			}
			h.raw(">")
			h.text(route.Label)
			h.raw("</a>")
		}
		h.raw("</div>")

		h.raw("<form method=\"post\" action=\"/sign-out\" class=\"user-button\"><span>")
		h.text(nb.UserID)
		h.raw("</span><button type=\"submit\">Sign out</button></form>")
		h.raw("</nav>")
	})
}
