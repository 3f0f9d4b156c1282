// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/client"
	"github.com/leapstack-labs/shopdash/internal/notifier"
	"github.com/leapstack-labs/shopdash/internal/state"
	"github.com/leapstack-labs/shopdash/internal/state/statetest"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// TestUser owns the seeded store of a fixture.
const TestUser = "user-1"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Repo         *state.SQLStore
	Seed         statetest.Seed
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Deps         *common.Deps
}

// SetupTestFixture creates an in-memory repository seeded with one store of
// TestUser and page dependencies whose API client runs in-process.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	repo := statetest.NewRepository(t)
	seed := statetest.SeedStore(t, repo, TestUser, "Web-shop")
	n := notifier.New()
	sessionStore := NewTestSessionStore()

	apiRouter := chi.NewRouter()
	api.SetupRoutes(apiRouter, api.NewHandlers(repo, n, logger))

	return &TestFixture{
		Repo:         repo,
		Seed:         seed,
		Notifier:     n,
		SessionStore: sessionStore,
		Deps: &common.Deps{
			Repo:     repo,
			API:      client.New("", client.WithHandler(apiRouter)),
			Sessions: sessionStore,
			Notifier: n,
			Origin:   "http://localhost:3000",
			Logger:   logger,
		},
	}
}

// Router mounts a feature on a fresh chi router.
func (f *TestFixture) Router(t *testing.T, setup func(chi.Router, *common.Deps) error) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	require.NoError(t, setup(r, f.Deps))
	return r
}

// RequestAs attaches userID to the request context as the signed-in user.
func RequestAs(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), userID))
}

// DatastarPost builds a datastar action request carrying signals as JSON.
func DatastarPost(target, signals string) *http.Request {
	r, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(signals))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Datastar-Request", "true")
	return r
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// FlashCookie returns the flash session cookie set on a response, if any.
func FlashCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == common.FlashSession {
			return c
		}
	}
	return nil
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
