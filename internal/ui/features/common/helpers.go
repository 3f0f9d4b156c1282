package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/navbar"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// FlashSession is the session holding toasts that survive a navigation.
const FlashSession = "shopdash-flash"

// NewID is the path segment of entity forms in create mode.
const NewID = "new"

// RequireStore resolves the navbar for /{storeId} routes. Anonymous users are
// sent to the sign-in page and unknown or foreign stores to the setup page.
func (d *Deps) RequireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserFromContext(r.Context())
		nb, err := navbar.Resolve(r.Context(), userID, d.Repo, chi.URLParam(r, "storeId"), r.URL.Path)
		if errors.Is(err, navbar.ErrUnauthenticated) {
			http.Redirect(w, r, navbar.SignInPath, http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if nb.Active == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithNavbar(r.Context(), nb)))
	})
}

// AddToasts stores toasts as session flashes for the next page load.
func (d *Deps) AddToasts(w http.ResponseWriter, r *http.Request, toasts []formflow.Toast) error {
	if len(toasts) == 0 {
		return nil
	}
	// An undecodable cookie still yields a fresh session.
	sess, _ := d.Sessions.Get(r, FlashSession)
	for _, t := range toasts {
		sess.AddFlash(string(t.Level) + "|" + t.Message)
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}
	return nil
}

// PopToasts returns and clears the flashed toasts. It must run before the
// response body is written.
func (d *Deps) PopToasts(w http.ResponseWriter, r *http.Request) []formflow.Toast {
	sess, err := d.Sessions.Get(r, FlashSession)
	if err != nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		d.Logger.Warn("failed to clear flashes", "error", err)
	}

	toasts := make([]formflow.Toast, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		level, msg, _ := strings.Cut(s, "|")
		toasts = append(toasts, formflow.Toast{Level: formflow.ToastLevel(level), Message: msg})
	}
	return toasts
}

// PageData builds the layout data of a page, consuming pending flashes.
func (d *Deps) PageData(w http.ResponseWriter, r *http.Request, title, updatesURL string) components.PageData {
	return components.PageData{
		Title:      title,
		IsDev:      d.IsDev,
		Toasts:     d.PopToasts(w, r),
		Navbar:     NavbarFromContext(r.Context()),
		UpdatesURL: updatesURL,
	}
}

// Render writes a full page.
func (d *Deps) Render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		d.Logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// NavigateScript is the client script performing nav.
func NavigateScript(nav formflow.Navigation) string {
	switch {
	case nav.Assign != "":
		return "window.location.assign(" + components.JSString(nav.Assign) + ")"
	case nav.Push != "":
		return "window.location.href = " + components.JSString(nav.Push)
	default:
		return "window.location.reload()"
	}
}

// Finish answers a datastar form action with the feedback recorded while the
// form ran. When the form navigated, toasts are flashed and the browser is
// sent to the target (or reloaded for a plain refresh). Otherwise view is
// patched (e.g. to show validation messages) followed by the toasts, and
// signals, when non-nil, are merged into the client state.
func (d *Deps) Finish(w http.ResponseWriter, r *http.Request, rec *formflow.Recorder, view templ.Component, signals any) {
	toasts := rec.Toasts()

	if nav, ok := rec.LastNavigation(); ok {
		if err := d.AddToasts(w, r, toasts); err != nil {
			d.Logger.Error("failed to flash toasts", "error", err)
		}
		sse := datastar.NewSSE(w, r)
		if err := sse.ExecuteScript(NavigateScript(nav)); err != nil {
			d.Logger.Debug("failed to send navigation", "error", err)
		}
		return
	}

	sse := datastar.NewSSE(w, r)
	if signals != nil {
		if err := sse.MarshalAndPatchSignals(signals); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
	if view != nil {
		if err := sse.PatchElementTempl(view); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
	if len(toasts) > 0 {
		if err := sse.PatchElementTempl(components.Toasts(toasts)); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
}

// FailAction answers a datastar action that could not run a form at all.
func (d *Deps) FailAction(w http.ResponseWriter, r *http.Request, err error) {
	d.Logger.Error("form action failed", "path", r.URL.Path, "error", err)
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElementTempl(components.Toasts([]formflow.Toast{{Level: formflow.ToastError, Message: formflow.DefaultFailure}}))
}

// Fill copies the submitted signals into form. When the form refuses them the
// action is answered with FailAction and false is returned.
func Fill[V any](d *Deps, w http.ResponseWriter, r *http.Request, form *formflow.Form[V], values V) bool {
	if err := form.Set(func(v *V) { *v = values }); err != nil {
		d.FailAction(w, r, err)
		return false
	}
	return true
}

// LoadForEdit resolves the {id} path segment: NewID yields (nil, nil).
func LoadForEdit[T any](r *http.Request, param string, get func(storeID, id string) (*T, error)) (*T, error) {
	id := chi.URLParam(r, param)
	if id == NewID {
		return nil, nil
	}
	return get(chi.URLParam(r, "storeId"), id)
}

// NotFound reports whether err means the entity does not exist.
func NotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}

// ServeUpdates is the long-lived SSE endpoint of a store page. It sends
// nothing initially (the page is server-rendered) and re-renders view
// whenever the store changes.
func (d *Deps) ServeUpdates(w http.ResponseWriter, r *http.Request, view func(r *http.Request) (templ.Component, error)) {
	sse := datastar.NewSSE(w, r)

	updates := d.Notifier.Subscribe(chi.URLParam(r, "storeId"))
	defer d.Notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			c, err := view(r)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.PatchElementTempl(c); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// OriginFor returns the configured public origin or derives it from r.
func (d *Deps) OriginFor(r *http.Request) string {
	if d.Origin != "" {
		return strings.TrimRight(d.Origin, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
