package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/client"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/state/statetest"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

type testEnv struct {
	ctx    context.Context
	client *client.Client
	repo   core.Repository
	seed   statetest.Seed
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := statetest.NewRepository(t)
	seed := statetest.SeedStore(t, repo, "user-1", "Web-shop")
	router := api.NewRouter(api.NewHandlers(repo, nil, testutil.NewTestLogger(t)), auth.Chain{})

	return &testEnv{
		ctx:    auth.WithUser(context.Background(), "user-1"),
		client: client.New("", client.WithHandler(router)),
		repo:   repo,
		seed:   seed,
	}
}

func success(msg string) formflow.Toast { return formflow.Toast{Level: formflow.ToastSuccess, Message: msg} }
func failure(msg string) formflow.Toast { return formflow.Toast{Level: formflow.ToastError, Message: msg} }

func TestBillboardForm_Create(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}
	storeID := env.seed.Store.ID

	form := NewBillboardForm(env.client, storeID, nil, rec)
	assert.Equal(t, formflow.ModeCreate, form.Mode())
	assert.Equal(t, "Create billboard", form.Labels().Title)
	assert.False(t, form.CanDelete())

	require.NoError(t, form.Set(func(v *BillboardValues) {
		v.Label = "Summer"
		v.ImageURL = "https://img/summer.png"
	}))
	require.NoError(t, form.Submit(env.ctx))

	assert.Equal(t, []formflow.Toast{success("Billboard created.")}, rec.Toasts())
	nav, ok := rec.LastNavigation()
	require.True(t, ok)
	assert.Equal(t, formflow.Navigation{Refresh: true, Push: "/" + storeID + "/billboards"}, nav)

	list, err := env.repo.ListBillboards(env.ctx, storeID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestBillboardForm_ValidationNeverCallsAPI(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}

	form := NewBillboardForm(env.client, env.seed.Store.ID, nil, rec)
	err := form.Submit(env.ctx)

	var verr *formflow.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, formflow.FieldErrors{
		"label":    "String must contain at least 1 character(s)",
		"imageUrl": "String must contain at least 1 character(s)",
	}, form.Errors())
	assert.Empty(t, rec.Events())
}

func TestBillboardForm_EditAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}
	storeID := env.seed.Store.ID

	form := NewBillboardForm(env.client, storeID, env.seed.Billboard, rec)
	assert.Equal(t, "Save changes", form.Labels().Action)
	require.True(t, form.CanDelete())

	require.NoError(t, form.Set(func(v *BillboardValues) { v.Label = "Renamed" }))
	require.NoError(t, form.Submit(env.ctx))

	// Categories still use the billboard.
	require.NoError(t, form.OpenConfirm())
	err := form.ConfirmDelete(env.ctx)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.False(t, form.ConfirmOpen())

	assert.Equal(t, []formflow.Toast{
		success("Billboard updated."),
		failure(BillboardDeleteFailure),
	}, rec.Toasts())

	b, err := env.repo.GetBillboard(env.ctx, storeID, env.seed.Billboard.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", b.Label)
}

func TestCategoryForm_DeleteBlockedByProducts(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}

	form := NewCategoryForm(env.client, env.seed.Store.ID, env.seed.Category, rec)
	require.NoError(t, form.OpenConfirm())
	assert.Error(t, form.ConfirmDelete(env.ctx))
	assert.Equal(t, []formflow.Toast{failure(CategoryDeleteFailure)}, rec.Toasts())
	_, navigated := rec.LastNavigation()
	assert.False(t, navigated)
}

func TestProductForm_PriceRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}
	storeID := env.seed.Store.ID

	form := NewProductForm(env.client, storeID, env.seed.Product, rec)
	assert.Equal(t, "19.99", form.Values().Price)

	require.NoError(t, form.Set(func(v *ProductValues) {
		v.Price = "24.5"
		v.IsArchived = true
	}))
	require.NoError(t, form.Submit(env.ctx))

	p, err := env.repo.GetProduct(env.ctx, storeID, env.seed.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2450), p.PriceCents)
	assert.True(t, p.IsArchived)

	require.NoError(t, form.OpenConfirm())
	require.NoError(t, form.ConfirmDelete(env.ctx))
	assert.Equal(t, []formflow.Toast{success("Product updated."), success("Product deleted.")}, rec.Toasts())
}

func TestProductForm_Validation(t *testing.T) {
	form := NewProductForm(nil, "s1", nil, nil)
	require.NoError(t, form.Set(func(v *ProductValues) {
		v.Name = "Tee"
		v.Price = "0"
		v.CategoryID = "c1"
	}))

	err := form.Submit(context.Background())
	var verr *formflow.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, formflow.FieldErrors{"price": "Number must be greater than 0"}, verr.Fields)
}

func TestProductForm_PriceRule(t *testing.T) {
	tests := []struct {
		price   string
		wantMsg string
	}{
		{price: "0.004", wantMsg: PriceTooSmall},
		{price: "-3", wantMsg: PriceTooSmall},
		{price: "Inf", wantMsg: PriceNotANumber},
		{price: "NaN", wantMsg: PriceNotANumber},
		{price: "0x10", wantMsg: PriceNotANumber},
		{price: "1e17", wantMsg: PriceTooLarge},
		{price: "184467440737095516.17", wantMsg: PriceTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			rec := &formflow.Recorder{}
			form := NewProductForm(nil, "s1", nil, rec)
			require.NoError(t, form.Set(func(v *ProductValues) {
				v.Name = "Tee"
				v.Price = tt.price
				v.CategoryID = "c1"
			}))

			// a nil client would panic if the request were sent
			err := form.Submit(context.Background())
			var verr *formflow.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, formflow.FieldErrors{"price": tt.wantMsg}, verr.Fields)
			assert.Empty(t, rec.Toasts())
		})
	}

	t.Run("one cent is accepted", func(t *testing.T) {
		msg, ok := priceRule("0.005")
		assert.True(t, ok)
		assert.Empty(t, msg)
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "19.99", want: 1999},
		{in: " 5 ", want: 500},
		{in: "0.005", want: 1},
		{in: "12.344", want: 1234},
		{in: "abc", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "1e17", wantErr: true},
		{in: "184467440737095516.17", wantErr: true},
		{in: "92233720368547758.07", want: 9223372036854775807},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "7.50", FormatPrice(750))
}

func TestSettingsForm(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}

	form := NewSettingsForm(env.client, env.seed.Store, rec)
	assert.Equal(t, formflow.ModeEdit, form.Mode())
	assert.Equal(t, formflow.Labels{
		Title:       "Settings",
		Description: "Manage your Store",
		Action:      "Save",
		SubmitToast: "Store updated Successfully",
	}, form.Labels())

	require.NoError(t, form.Set(func(v *StoreValues) { v.Name = "Renamed" }))
	require.NoError(t, form.Submit(env.ctx))
	nav, _ := rec.LastNavigation()
	assert.Equal(t, formflow.Navigation{Refresh: true}, nav)

	// The store still has content, so the delete fails and the modal closes.
	require.NoError(t, form.OpenConfirm())
	assert.Error(t, form.ConfirmDelete(env.ctx))
	assert.False(t, form.ConfirmOpen())

	assert.Equal(t, []formflow.Toast{
		success("Store updated Successfully"),
		failure(formflow.DefaultFailure),
	}, rec.Toasts())
}

func TestSettingsForm_DeleteEmptyStore(t *testing.T) {
	env := setupTestEnv(t)
	rec := &formflow.Recorder{}

	empty, err := env.repo.CreateStore(env.ctx, "user-1", "Empty")
	require.NoError(t, err)

	form := NewSettingsForm(env.client, empty, rec)
	require.NoError(t, form.OpenConfirm())
	require.NoError(t, form.ConfirmDelete(env.ctx))

	nav, _ := rec.LastNavigation()
	assert.Equal(t, formflow.Navigation{Refresh: true, Push: "/"}, nav)
	assert.Equal(t, []formflow.Toast{success("Store deleted Successfully")}, rec.Toasts())
}

type failingStores struct {
	API
}

func (failingStores) CreateStore(context.Context, string) (*core.Store, error) {
	return nil, errors.New("boom")
}

func TestStoreModal(t *testing.T) {
	t.Run("success assigns the new store", func(t *testing.T) {
		env := setupTestEnv(t)
		rec := &formflow.Recorder{}

		form := NewStoreModal(env.client, rec)
		assert.Equal(t, "Manage Products and Categories", form.Labels().Description)
		require.NoError(t, form.Set(func(v *StoreValues) { v.Name = "Second" }))
		require.NoError(t, form.Submit(env.ctx))

		nav, ok := rec.LastNavigation()
		require.True(t, ok)
		assert.NotEmpty(t, nav.Assign)
		assert.Empty(t, nav.Push)
		assert.Equal(t, []formflow.Toast{success("Store created successfully")}, rec.Toasts())
	})

	t.Run("failure", func(t *testing.T) {
		rec := &formflow.Recorder{}
		form := NewStoreModal(failingStores{}, rec)
		require.NoError(t, form.Set(func(v *StoreValues) { v.Name = "Second" }))

		assert.EqualError(t, form.Submit(context.Background()), "boom")
		assert.Equal(t, []formflow.Toast{failure("Error creating store")}, rec.Toasts())
		assert.False(t, form.Loading())
	})

	t.Run("empty name", func(t *testing.T) {
		form := NewStoreModal(failingStores{}, nil)
		err := form.Submit(context.Background())
		assert.ErrorContains(t, err, "name: String must contain at least 1 character(s)")
	})
}
