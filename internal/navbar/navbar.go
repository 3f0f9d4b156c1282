// Package navbar resolves the dashboard navigation bar for the signed-in user:
// their stores, the active store and the section links.
package navbar

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// SignInPath is where unauthenticated users are sent.
const SignInPath = "/sign-in"

// ErrUnauthenticated is returned by Resolve when there is no user.
var ErrUnauthenticated = auth.ErrUnauthenticated

// StoreLister lists the stores of a user.
type StoreLister interface {
	ListStores(ctx context.Context, userID string) ([]*core.Store, error)
}

// Route is one section link of the main navigation.
type Route struct {
	Href   string
	Label  string
	Active bool
}

// Navbar is the resolved navigation state.
type Navbar struct {
	UserID string
	Stores []*core.Store
	// Active is nil when activeStoreID is unknown or owned by someone else.
	Active *core.Store
	Routes []Route
}

// Resolve builds the navbar for userID. currentPath marks the active route.
func Resolve(ctx context.Context, userID string, stores StoreLister, activeStoreID, currentPath string) (*Navbar, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	list, err := stores.ListStores(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	nb := &Navbar{UserID: userID, Stores: list}
	for _, st := range list {
		if st.ID == activeStoreID {
			nb.Active = st
			break
		}
	}
	if nb.Active != nil {
		nb.Routes = Routes(nb.Active.ID, currentPath)
	}
	return nb, nil
}

// Routes returns the section links of a store. The overview link is active only
// on its exact path; the others also on their sub-pages.
func Routes(storeID, currentPath string) []Route {
	base := "/" + storeID
	routes := []Route{
		{Href: base, Label: "Overview"},
		{Href: base + "/billboards", Label: "Billboards"},
		{Href: base + "/categories", Label: "Categories"},
		{Href: base + "/products", Label: "Products"},
		{Href: base + "/settings", Label: "Settings"},
	}
	for i := range routes {
		href := routes[i].Href
		routes[i].Active = currentPath == href || (i > 0 && strings.HasPrefix(currentPath, href+"/"))
	}
	return routes
}

// StoreIDs returns the IDs of the listed stores, in order.
func (n *Navbar) StoreIDs() []string {
	ids := make([]string, len(n.Stores))
	for i, st := range n.Stores {
		ids[i] = st.ID
	}
	return ids
}
