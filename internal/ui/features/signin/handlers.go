package signin

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the sign-in feature.
type Handlers struct {
	deps     *common.Deps
	sessions *auth.SessionResolver
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps, sessions *auth.SessionResolver) *Handlers {
	return &Handlers{deps: deps, sessions: sessions}
}

// SignInPage renders the sign-in form, or sends signed-in users home.
func (h *Handlers) SignInPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := h.deps.PageData(w, r, "Sign in", "")
	h.deps.Render(w, r, components.Page(data, SignInForm("")))
}

// SignIn starts a session for the submitted user name. Identity is delegated
// to whatever fronts the dashboard; the form only records who is working.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.FormValue("user"))
	if user == "" {
		data := h.deps.PageData(w, r, "Sign in", "")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		h.deps.Render(w, r, components.Page(data, SignInForm("User is required")))
		return
	}

	if err := h.sessions.SignIn(w, r, user); err != nil {
		h.deps.Logger.Error("failed to sign in", "error", err)
		http.Error(w, "failed to sign in", http.StatusInternalServerError)
		return
	}
	h.deps.Logger.Info("user signed in", "user_id", user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignOut ends the session.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.deps.Logger.Error("failed to sign out", "error", err)
	}
	_ = h.deps.AddToasts(w, r, []formflow.Toast{{Level: formflow.ToastSuccess, Message: "Signed out."}})
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// SignInForm renders the sign-in form with an optional error.
func SignInForm(errMsg string) templ.Component {
	return templ.Join(
		templ.Raw(`<div id="sign-in" class="card narrow">`),
		components.Heading("Sign in", "to continue to Shopdash"),
		templ.Raw(`<form method="post" action="/sign-in"><label for="user">User</label>`+
			`<input id="user" name="user" autocomplete="username" autofocus>`),
		components.When(errMsg != "", templ.Raw(`<p class="field-error">`+templ.EscapeString(errMsg)+`</p>`)),
		templ.Raw(`<button type="submit" class="primary">Continue</button></form></div>`),
	)
}
