package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/cli/config"
	clitest "github.com/leapstack-labs/shopdash/internal/cli/testutil"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/state"
	"github.com/leapstack-labs/shopdash/internal/state/statetest"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// project is a temporary shopdash project with one seeded store.
type project struct {
	cfg  *config.Config
	repo *state.SQLStore
	seed statetest.Seed
}

func setupProject(t *testing.T) *project {
	t.Helper()

	clitest.SetupTestProject(t)
	cfg := clitest.LoadTestConfig(t)

	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
	repo, err := cc.OpenRepo(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return &project{
		cfg:  cfg,
		repo: repo,
		seed: statetest.SeedStore(t, repo, clitest.User, "Web-shop"),
	}
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *cobra.Command
		wantUse  string
		subs     []string
		hasStore bool
	}{
		{name: "stores", build: NewStoresCommand, wantUse: "stores", subs: []string{"list", "create", "rename", "delete"}},
		{name: "billboards", build: NewBillboardsCommand, wantUse: "billboards", subs: []string{"list", "create", "update", "delete"}, hasStore: true},
		{name: "categories", build: NewCategoriesCommand, wantUse: "categories", subs: []string{"list", "create", "update", "delete"}, hasStore: true},
		{name: "products", build: NewProductsCommand, wantUse: "products", subs: []string{"list", "create", "update", "delete"}, hasStore: true},
		{name: "migrate", build: NewMigrateCommand, wantUse: "migrate", subs: []string{"status"}},
		{name: "serve", build: NewServeCommand, wantUse: "serve"},
		{name: "config", build: NewConfigCommand, wantUse: "config"},
		{name: "doctor", build: NewDoctorCommand, wantUse: "doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.build()

			assert.Equal(t, tt.wantUse, cmd.Use)
			assert.NotEmpty(t, cmd.Short, "Short should not be empty")
			for _, sub := range tt.subs {
				found, _, err := cmd.Find([]string{sub})
				require.NoError(t, err)
				assert.Equal(t, sub, found.Name())
			}
			if tt.hasStore {
				assert.NotNil(t, cmd.PersistentFlags().Lookup("store"), "store-scoped commands take --store")
			}
		})
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewServeCommand()
	for _, flag := range []string{"port", "dev", "origin"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Contains(t, cmd.Aliases, "ui")
}

func TestServe_RequiresSessionSecret(t *testing.T) {
	setupProject(t)

	res := clitest.Execute(NewServeCommand())

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "session_secret")
}

func TestStores(t *testing.T) {
	t.Run("list as table", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "list")

		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, p.seed.Store.ID)
		assert.Contains(t, res.Out, "Web-shop")
		assert.Contains(t, res.Out, "1 store")
	})

	t.Run("list as json", func(t *testing.T) {
		p := setupProject(t)
		p.cfg.Output = config.OutputJSON

		res := clitest.Execute(NewStoresCommand(), "list")

		require.NoError(t, res.Err)
		var got []*core.Store
		require.NoError(t, json.Unmarshal([]byte(res.Out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, p.seed.Store.ID, got[0].ID)
	})

	t.Run("create prints the new id", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "create", "Outlet")

		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Store created successfully")
		stores, err := p.repo.ListStores(context.Background(), clitest.User)
		require.NoError(t, err)
		require.Len(t, stores, 2)

		var created *core.Store
		for _, st := range stores {
			if st.Name == "Outlet" {
				created = st
			}
		}
		require.NotNil(t, created)
		assert.Equal(t, created.ID+"\n", res.Out)
	})

	t.Run("create without a name outside a terminal", func(t *testing.T) {
		setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "create")

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "invalid input")
		assert.Contains(t, res.Err.Error(), "name: String must contain at least 1 character(s)")
	})

	t.Run("rename", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "rename", p.seed.Store.ID, "Renamed")

		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Store updated Successfully")
		st, err := p.repo.GetStore(context.Background(), p.seed.Store.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", st.Name)
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "delete", p.seed.Store.ID)

		assert.ErrorIs(t, res.Err, ErrNotConfirmed)
	})

	t.Run("delete refused while the store has content", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewStoresCommand(), "delete", p.seed.Store.ID, "--yes")

		require.Error(t, res.Err)
		assert.Contains(t, res.ErrOut, "✗")
		_, err := p.repo.GetStore(context.Background(), p.seed.Store.ID)
		assert.NoError(t, err)
	})

	t.Run("foreign token sees nothing", func(t *testing.T) {
		p := setupProject(t)
		p.cfg.API.Token = "unknown"

		res := clitest.Execute(NewStoresCommand(), "list")

		require.Error(t, res.Err)
		assert.ErrorIs(t, res.Err, auth.ErrUnauthenticated)
	})
}

func TestBillboards(t *testing.T) {
	t.Run("store is required", func(t *testing.T) {
		setupProject(t)

		res := clitest.Execute(NewBillboardsCommand(), "list")

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "--store is required")
	})

	t.Run("create and list", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewBillboardsCommand(), "create", "--store", storeID, "--label", "Autumn", "--image-url", "https://img/autumn.png")
		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Billboard created.")

		res = clitest.Execute(NewBillboardsCommand(), "list", "--store", storeID)
		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, "Autumn")
		assert.Contains(t, res.Out, "Web-shop hero")
		assert.Contains(t, res.Out, "2 billboards")
		clitest.AssertNoANSI(t, res.Out)
	})

	t.Run("create reports every invalid field", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewBillboardsCommand(), "create", "--store", p.seed.Store.ID)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "label:")
		assert.Contains(t, res.Err.Error(), "imageUrl:")
		assert.Empty(t, res.ErrOut, "validation failures show no toast")
	})

	t.Run("update changes only the given flags", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewBillboardsCommand(), "update", p.seed.Billboard.ID, "--store", storeID, "--label", "Renamed")

		require.NoError(t, res.Err)
		got, err := p.repo.GetBillboard(context.Background(), storeID, p.seed.Billboard.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Label)
		assert.Equal(t, p.seed.Billboard.ImageURL, got.ImageURL)
	})

	t.Run("delete blocked by categories", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewBillboardsCommand(), "delete", p.seed.Billboard.ID, "--store", p.seed.Store.ID, "--yes")

		require.Error(t, res.Err)
		assert.Contains(t, res.ErrOut, forms.BillboardDeleteFailure)
	})

	t.Run("delete unused billboard", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID
		spare := &core.Billboard{StoreID: storeID, Label: "Spare", ImageURL: "https://img/spare.png"}
		require.NoError(t, p.repo.CreateBillboard(context.Background(), spare))

		res := clitest.Execute(NewBillboardsCommand(), "delete", spare.ID, "--store", storeID, "-y")

		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Billboard deleted.")
		_, err := p.repo.GetBillboard(context.Background(), storeID, spare.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestCategories(t *testing.T) {
	t.Run("list shows billboard labels", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewCategoriesCommand(), "list", "--store", p.seed.Store.ID)

		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, "Shirts")
		assert.Contains(t, res.Out, "Web-shop hero")
		assert.Contains(t, res.Out, "1 category")
	})

	t.Run("create", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewCategoriesCommand(), "create", "--store", storeID, "--name", "Hats", "--billboard", p.seed.Billboard.ID)

		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Category created.")
		items, err := p.repo.ListCategories(context.Background(), storeID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("delete blocked by products", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewCategoriesCommand(), "delete", p.seed.Category.ID, "--store", p.seed.Store.ID, "--yes")

		require.Error(t, res.Err)
		assert.Contains(t, res.ErrOut, forms.CategoryDeleteFailure)
	})
}

func TestProducts(t *testing.T) {
	t.Run("create parses the price", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewProductsCommand(), "create", "--store", storeID,
			"--name", "Cap", "--price", "12.50", "--category", p.seed.Category.ID, "--archived")

		require.NoError(t, res.Err)
		items, err := p.repo.ListProducts(context.Background(), storeID, core.ProductFilter{IncludeArchived: true})
		require.NoError(t, err)

		var got *core.Product
		for _, item := range items {
			if item.Name == "Cap" {
				got = item
			}
		}
		require.NotNil(t, got)
		assert.Equal(t, int64(1250), got.PriceCents)
		assert.True(t, got.IsArchived)
		assert.False(t, got.IsFeatured)
	})

	t.Run("price must be positive", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewProductsCommand(), "create", "--store", p.seed.Store.ID,
			"--name", "Cap", "--price", "0", "--category", p.seed.Category.ID)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "price: Number must be greater than 0")
	})

	t.Run("price beyond int64 cents is rejected", func(t *testing.T) {
		p := setupProject(t)

		res := clitest.Execute(NewProductsCommand(), "create", "--store", p.seed.Store.ID,
			"--name", "Cap", "--price", "184467440737095516.17", "--category", p.seed.Category.ID)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "price: "+forms.PriceTooLarge)
		assert.NotContains(t, res.ErrOut, "Product created.")

		products, err := p.repo.ListProducts(context.Background(), p.seed.Store.ID, core.ProductFilter{IncludeArchived: true})
		require.NoError(t, err)
		assert.Len(t, products, 1, "only the seeded product exists")
	})

	t.Run("list hides archived products", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID
		old := &core.Product{StoreID: storeID, CategoryID: p.seed.Category.ID, Name: "Old tee", PriceCents: 500, IsArchived: true}
		require.NoError(t, p.repo.CreateProduct(context.Background(), old))

		res := clitest.Execute(NewProductsCommand(), "list", "--store", storeID)
		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, "$19.99")
		assert.Contains(t, res.Out, "Shirts")
		assert.NotContains(t, res.Out, "Old tee")

		res = clitest.Execute(NewProductsCommand(), "list", "--store", storeID, "--archived")
		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, "Old tee")
		assert.Contains(t, res.Out, "$5.00")
	})

	t.Run("update toggles featured", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewProductsCommand(), "update", p.seed.Product.ID, "--store", storeID, "--featured=false")

		require.NoError(t, res.Err)
		got, err := p.repo.GetProduct(context.Background(), storeID, p.seed.Product.ID)
		require.NoError(t, err)
		assert.False(t, got.IsFeatured)
		assert.Equal(t, int64(1999), got.PriceCents, "untouched fields keep their values")
	})

	t.Run("delete", func(t *testing.T) {
		p := setupProject(t)
		storeID := p.seed.Store.ID

		res := clitest.Execute(NewProductsCommand(), "delete", p.seed.Product.ID, "--store", storeID, "--yes")

		require.NoError(t, res.Err)
		assert.Contains(t, res.ErrOut, "Product deleted.")
	})
}

func TestMigrateStatus(t *testing.T) {
	setupProject(t)

	res := clitest.Execute(NewMigrateCommand(), "status")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "sqlite schema version")
	assert.NotContains(t, res.Out, "version 0", "the project was migrated during setup")
}

func TestConfigCommand(t *testing.T) {
	p := setupProject(t)

	res := clitest.Execute(NewConfigCommand())

	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "driver: sqlite")
	assert.Contains(t, res.Out, "shutdown_timeout: 5s")
	assert.NotContains(t, res.Out, clitest.Token, "tokens are masked")
	assert.Contains(t, res.Out, config.GetConfigFileUsed())
	assert.Equal(t, clitest.Token, p.cfg.API.Token, "the loaded config keeps the real token")
}
