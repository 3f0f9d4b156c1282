package billboards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/ui/features"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

func setupTestRouter(t *testing.T) (http.Handler, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	return fixture.Router(t, SetupRoutes), fixture
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, features.RequestAs(r, features.TestUser))
	return rec
}

func TestListPage(t *testing.T) {
	h, fixture := setupTestRouter(t)
	storeID := fixture.Seed.Store.ID

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/"+storeID+"/billboards", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"Billboards (1)",
		"Manage billboards",
		"Web-shop hero",
		`href="/` + storeID + `/billboards/new"`,
		"API calls for Billboards",
		"http://localhost:3000/api/" + storeID + "/billboards/{billboardId}",
		"/" + storeID + "/billboards/updates",
	} {
		assert.Contains(t, body, want)
	}
}

func TestFormPage(t *testing.T) {
	tests := []struct {
		name       string
		id         func(f *features.TestFixture) string
		wantStatus int
		wantBody   []string
		notBody    []string
	}{
		{
			name:       "create mode",
			id:         func(*features.TestFixture) string { return "new" },
			wantStatus: http.StatusOK,
			wantBody:   []string{"Create billboard", "Add a new billboard", `id="billboard-form"`},
			notBody:    []string{"Edit a billboard."},
		},
		{
			name:       "edit mode",
			id:         func(f *features.TestFixture) string { return f.Seed.Billboard.ID },
			wantStatus: http.StatusOK,
			wantBody:   []string{"Edit billboard", "Save changes", "Web-shop hero", "Are you sure?"},
		},
		{
			name:       "unknown billboard",
			id:         func(*features.TestFixture) string { return "missing" },
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestRouter(t)
			target := "/" + fixture.Seed.Store.ID + "/billboards/" + tt.id(fixture)

			rec := serve(h, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			for _, not := range tt.notBody {
				assert.NotContains(t, body, not)
			}
		})
	}
}

func TestSubmit_CreateNavigatesToList(t *testing.T) {
	h, fixture := setupTestRouter(t)
	storeID := fixture.Seed.Store.ID

	rec := serve(h, features.DatastarPost("/"+storeID+"/billboards/new",
		`{"label":"Autumn","imageUrl":"https://img/autumn.png","confirmOpen":false}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `window.location.href = "/`+storeID+`/billboards"`)
	assert.NotNil(t, features.FlashCookie(rec.Result()), "toast is flashed for the list page")

	items, err := fixture.Repo.ListBillboards(context.Background(), storeID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	h, fixture := setupTestRouter(t)
	storeID := fixture.Seed.Store.ID

	rec := serve(h, features.DatastarPost("/"+storeID+"/billboards/new", `{"label":"","imageUrl":""}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "billboard-form")
	assert.Contains(t, body, "field-error")
	assert.NotContains(t, body, "window.location")
	assert.Nil(t, features.FlashCookie(rec.Result()))
}

func TestSubmit_EditUpdatesBillboard(t *testing.T) {
	h, fixture := setupTestRouter(t)
	storeID := fixture.Seed.Store.ID
	id := fixture.Seed.Billboard.ID

	rec := serve(h, features.DatastarPost("/"+storeID+"/billboards/"+id,
		`{"label":"Renamed","imageUrl":"https://img/new.png"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := fixture.Repo.GetBillboard(context.Background(), storeID, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Label)
	assert.Equal(t, "https://img/new.png", got.ImageURL)
}

func TestDelete(t *testing.T) {
	t.Run("blocked while categories use it", func(t *testing.T) {
		h, fixture := setupTestRouter(t)
		storeID := fixture.Seed.Store.ID

		rec := serve(h, features.DatastarPost("/"+storeID+"/billboards/"+fixture.Seed.Billboard.ID+"/delete", `{}`))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Make sure you removed all categories using this billboard first.")
		assert.Contains(t, body, `"confirmOpen":false`)
		assert.NotContains(t, body, "window.location")

		_, err := fixture.Repo.GetBillboard(context.Background(), storeID, fixture.Seed.Billboard.ID)
		assert.NoError(t, err)
	})

	t.Run("unused billboard is removed", func(t *testing.T) {
		h, fixture := setupTestRouter(t)
		storeID := fixture.Seed.Store.ID
		spare := &core.Billboard{StoreID: storeID, Label: "Spare", ImageURL: "https://img/spare.png"}
		require.NoError(t, fixture.Repo.CreateBillboard(context.Background(), spare))

		rec := serve(h, features.DatastarPost("/"+storeID+"/billboards/"+spare.ID+"/delete", `{}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `window.location.href = "/`+storeID+`/billboards"`)
		_, err := fixture.Repo.GetBillboard(context.Background(), storeID, spare.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("create mode has nothing to delete", func(t *testing.T) {
		h, fixture := setupTestRouter(t)

		rec := serve(h, features.DatastarPost("/"+fixture.Seed.Store.ID+"/billboards/new/delete", `{}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "toasts")
	})
}
