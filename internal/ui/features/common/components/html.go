// Package components provides the shared markup of the dashboard: page
// layout, navbar, toasts, headings, API alerts, tables, inputs and the
// confirmation modal.
package components

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates the first error of a sequence of writes.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *writer) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s HTML-escaped. It is safe inside attribute values.
func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *writer) attr(name, value string) {
	h.raw(" " + name + "=\"")
	h.text(value)
	h.raw("\"")
}

func (h *writer) render(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// component adapts a builder function to templ.Component.
func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// JSString quotes s as a JavaScript string literal for datastar expressions.
func JSString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Signals encodes initial datastar signals for a data-signals attribute.
func Signals(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FormSignals encodes the values of a form plus the confirmation modal flag.
func FormSignals(values any) string {
	m := map[string]any{}
	if b, err := json.Marshal(values); err == nil {
		_ = json.Unmarshal(b, &m)
	}
	m["confirmOpen"] = false
	return Signals(m)
}

// When renders c only if cond holds.
func When(cond bool, c templ.Component) templ.Component {
	if !cond || c == nil {
		return templ.NopComponent
	}
	return c
}

// DeleteTrigger opens the confirmation modal of an edit form.
func DeleteTrigger() templ.Component {
	return templ.Raw(`<button type="button" class="destructive icon" aria-label="Delete" data-on:click="$confirmOpen = true" data-attr:disabled="$loading">Delete</button>`)
}
