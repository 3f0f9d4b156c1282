// Package common provides shared types and utilities for UI features.
package common

import (
	"context"
	"log/slog"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/navbar"
	"github.com/leapstack-labs/shopdash/internal/notifier"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// Deps are the collaborators shared by every feature.
type Deps struct {
	// Repo serves page reads.
	Repo core.Repository
	// API performs the writes of the forms, usually an in-process client.Client.
	API      forms.API
	Sessions sessions.Store
	Notifier *notifier.Notifier
	// Origin is the public base URL shown in API alerts, e.g. "http://localhost:3000".
	Origin string
	IsDev  bool
	Logger *slog.Logger
}

type navbarKey struct{}

// WithNavbar stores the resolved navbar in ctx.
func WithNavbar(ctx context.Context, nb *navbar.Navbar) context.Context {
	return context.WithValue(ctx, navbarKey{}, nb)
}

// NavbarFromContext returns the navbar stored by RequireStore.
func NavbarFromContext(ctx context.Context) *navbar.Navbar {
	nb, _ := ctx.Value(navbarKey{}).(*navbar.Navbar)
	return nb
}
