// Package statetest provides in-memory repositories for tests of packages
// that sit on top of internal/state.
package statetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/state"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// NewRepository opens a migrated in-memory SQLite store that is closed when the test ends.
func NewRepository(t testing.TB) *state.SQLStore {
	t.Helper()

	store := state.NewSQLStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open("sqlite", ":memory:"))
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// Seed holds the entities created by SeedStore.
type Seed struct {
	Store     *core.Store
	Billboard *core.Billboard
	Category  *core.Category
	Product   *core.Product
}

// SeedStore creates a store for userID with one billboard, category and product.
func SeedStore(t testing.TB, repo core.Repository, userID, name string) Seed {
	t.Helper()
	ctx := context.Background()

	st, err := repo.CreateStore(ctx, userID, name)
	require.NoError(t, err)

	bb := &core.Billboard{StoreID: st.ID, Label: name + " hero", ImageURL: "https://img.example.com/hero.png"}
	require.NoError(t, repo.CreateBillboard(ctx, bb))

	cat := &core.Category{StoreID: st.ID, BillboardID: bb.ID, Name: "Shirts"}
	require.NoError(t, repo.CreateCategory(ctx, cat))

	prod := &core.Product{StoreID: st.ID, CategoryID: cat.ID, Name: "Tee", PriceCents: 1999, IsFeatured: true}
	require.NoError(t, repo.CreateProduct(ctx, prod))

	return Seed{Store: st, Billboard: bb, Category: cat, Product: prod}
}
