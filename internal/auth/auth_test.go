package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionResolver_SignInRoundTrip(t *testing.T) {
	res := NewSessionResolver(NewCookieStore("test-secret-key-32-bytes-long!!"))

	req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
	_, ok := res.UserID(req)
	assert.False(t, ok, "fresh request has no identity")

	rec := httptest.NewRecorder()
	require.NoError(t, res.SignIn(rec, req, "user-1"))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	id, ok := res.UserID(next)
	require.True(t, ok)
	assert.Equal(t, "user-1", id)

	out := httptest.NewRecorder()
	require.NoError(t, res.SignOut(out, next))
	cookies := out.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestTokenResolver(t *testing.T) {
	res := NewTokenResolver(map[string]string{"tok-1": "user-1"})

	tests := []struct {
		name   string
		header string
		wantID string
		wantOK bool
	}{
		{name: "valid token", header: "Bearer tok-1", wantID: "user-1", wantOK: true},
		{name: "unknown token", header: "Bearer nope"},
		{name: "wrong scheme", header: "Basic tok-1"},
		{name: "missing header"},
		{name: "empty bearer", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			id, ok := res.UserID(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}

	id, ok := res.Lookup("tok-1")
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
	_, ok = res.Lookup("")
	assert.False(t, ok)
}

func TestMiddleware_ChainStoresUser(t *testing.T) {
	chain := Chain{
		NewSessionResolver(NewCookieStore("test-secret-key-32-bytes-long!!")),
		NewTokenResolver(map[string]string{"tok-1": "user-1"}),
	}

	var got string
	var ok bool
	h := Middleware(chain)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "user-1", got)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
