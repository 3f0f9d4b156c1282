package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/notifier"
	"github.com/leapstack-labs/shopdash/internal/state/statetest"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

type testEnv struct {
	router   http.Handler
	repo     core.Repository
	notifier *notifier.Notifier
	seed     statetest.Seed
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := statetest.NewRepository(t)
	seed := statetest.SeedStore(t, repo, "user-1", "Web-shop")
	n := notifier.New()
	res := auth.NewTokenResolver(map[string]string{
		"token-1": "user-1",
		"token-2": "user-2",
	})

	return &testEnv{
		router:   NewRouter(NewHandlers(repo, n, testutil.NewTestLogger(t)), res),
		repo:     repo,
		notifier: n,
		seed:     seed,
	}
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestStores_CreateAndList(t *testing.T) {
	env := setupTestEnv(t)

	rec := env.do(http.MethodPost, "/api/stores", "token-2", `{"name":"Second shop"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[core.Store](t, rec)
	assert.Equal(t, "Second shop", created.Name)
	assert.Equal(t, "user-2", created.UserID)

	rec = env.do(http.MethodGet, "/api/stores", "token-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stores := decodeBody[[]core.Store](t, rec)
	require.Len(t, stores, 1)
	assert.Equal(t, created.ID, stores[0].ID)
}

func TestStores_EmptyListIsArray(t *testing.T) {
	env := setupTestEnv(t)

	rec := env.do(http.MethodGet, "/api/stores", "token-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAPI_ErrorStatuses(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.seed.Store.ID

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "create store unauthenticated", method: http.MethodPost, path: "/api/stores", body: `{"name":"x"}`, wantCode: 401, wantBody: "Unauthenticated"},
		{name: "create store without name", method: http.MethodPost, path: "/api/stores", token: "token-1", body: `{"name":"  "}`, wantCode: 400, wantBody: "Name is required"},
		{name: "malformed body", method: http.MethodPost, path: "/api/stores", token: "token-1", body: `{`, wantCode: 400, wantBody: "Invalid request body"},
		{name: "rename foreign store", method: http.MethodPatch, path: "/api/stores/" + storeID, token: "token-2", body: `{"name":"mine"}`, wantCode: 403, wantBody: "Unauthorized"},
		{name: "billboard without label", method: http.MethodPost, path: "/api/" + storeID + "/billboards", token: "token-1", body: `{"imageUrl":"https://img"}`, wantCode: 400, wantBody: "Label is required"},
		{name: "billboard without image", method: http.MethodPost, path: "/api/" + storeID + "/billboards", token: "token-1", body: `{"label":"Hero"}`, wantCode: 400, wantBody: "Image URL is required"},
		{name: "billboard of foreign store", method: http.MethodPost, path: "/api/" + storeID + "/billboards", token: "token-2", body: `{"label":"Hero","imageUrl":"https://img"}`, wantCode: 403, wantBody: "Unauthorized"},
		{name: "delete billboard in use", method: http.MethodDelete, path: "/api/" + storeID + "/billboards/" + env.seed.Billboard.ID, token: "token-1", wantCode: 409, wantBody: "Conflict"},
		{name: "delete category in use", method: http.MethodDelete, path: "/api/" + storeID + "/categories/" + env.seed.Category.ID, token: "token-1", wantCode: 409, wantBody: "Conflict"},
		{name: "delete store with content", method: http.MethodDelete, path: "/api/stores/" + storeID, token: "token-1", wantCode: 409, wantBody: "Conflict"},
		{name: "unknown billboard", method: http.MethodGet, path: "/api/" + storeID + "/billboards/missing", wantCode: 404, wantBody: "Not found"},
		{name: "product without price", method: http.MethodPost, path: "/api/" + storeID + "/products", token: "token-1", body: `{"name":"Cap","categoryId":"c"}`, wantCode: 400, wantBody: "Price is required"},
		{name: "product with unknown category", method: http.MethodPost, path: "/api/" + storeID + "/products", token: "token-1", body: `{"name":"Cap","priceCents":100,"categoryId":"missing"}`, wantCode: 404, wantBody: "Not found"},
		{name: "bad featured filter", method: http.MethodGet, path: "/api/" + storeID + "/products?isFeatured=maybe", wantCode: 400, wantBody: "isFeatured must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestBillboards_Lifecycle(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.seed.Store.ID
	base := "/api/" + storeID + "/billboards"

	rec := env.do(http.MethodPost, base, "token-1", `{"label":"Summer","imageUrl":"https://img/summer.png"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[core.Billboard](t, rec)
	assert.Equal(t, storeID, created.StoreID)

	rec = env.do(http.MethodPatch, base+"/"+created.ID, "token-1", `{"label":"Winter","imageUrl":"https://img/winter.png"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Winter", decodeBody[core.Billboard](t, rec).Label)

	// Reads are public
	rec = env.do(http.MethodGet, base, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]core.Billboard](t, rec), 2)

	rec = env.do(http.MethodDelete, base+"/"+created.ID, "token-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, base+"/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategories_Lifecycle(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.seed.Store.ID
	base := "/api/" + storeID + "/categories"

	rec := env.do(http.MethodPost, base, "token-1", `{"name":"Hats","billboardId":"`+env.seed.Billboard.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[core.Category](t, rec)

	rec = env.do(http.MethodPatch, base+"/"+created.ID, "token-1", `{"name":"Caps","billboardId":"`+env.seed.Billboard.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Caps", decodeBody[core.Category](t, rec).Name)

	rec = env.do(http.MethodDelete, base+"/"+created.ID, "token-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProducts_Filters(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.seed.Store.ID
	base := "/api/" + storeID + "/products"

	body := `{"name":"Polo","priceCents":2500,"categoryId":"` + env.seed.Category.ID + `","isArchived":true}`
	rec := env.do(http.MethodPost, base, "token-1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 1},
		{query: "?includeArchived=true", want: 2},
		{query: "?isFeatured=true", want: 1},
		{query: "?categoryId=" + env.seed.Category.ID + "&includeArchived=1", want: 2},
		{query: "?categoryId=other", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(http.MethodGet, base+tt.query, "", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decodeBody[[]core.Product](t, rec), tt.want)
		})
	}
}

func TestMutationsNotifyStoreListeners(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.seed.Store.ID

	ch := env.notifier.Subscribe(storeID)
	defer env.notifier.Unsubscribe(ch)

	rec := env.do(http.MethodPatch, "/api/stores/"+storeID, "token-1", `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	// Failed mutations stay silent.
	rec = env.do(http.MethodPatch, "/api/stores/"+storeID, "token-1", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	select {
	case <-ch:
		t.Fatal("unexpected notification")
	default:
	}
}
