// Package auth resolves the identity of the user behind an HTTP request.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie name of the dashboard session.
const SessionName = "shopdash-session"

const userIDKey = "user_id"

// ErrUnauthenticated is returned when a request carries no identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver extracts a user ID from a request.
type Resolver interface {
	UserID(r *http.Request) (string, bool)
}

// SessionResolver reads the user ID from a gorilla session cookie.
type SessionResolver struct {
	store sessions.Store
}

// NewSessionResolver creates a resolver backed by store.
func NewSessionResolver(store sessions.Store) *SessionResolver {
	return &SessionResolver{store: store}
}

// Store returns the underlying session store. Other session names (flashes)
// share its cookie settings.
func (s *SessionResolver) Store() sessions.Store {
	return s.store
}

// UserID implements Resolver.
func (s *SessionResolver) UserID(r *http.Request) (string, bool) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return "", false
	}
	id, ok := session.Values[userIDKey].(string)
	return id, ok && id != ""
}

// SignIn stores userID in the session.
func (s *SessionResolver) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := s.store.Get(r, SessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// SignOut clears the session.
func (s *SessionResolver) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// TokenResolver maps bearer tokens to user IDs. It serves the CLI, which has no cookie jar.
type TokenResolver struct {
	tokens map[string]string
}

// NewTokenResolver creates a resolver from a token → user ID map.
func NewTokenResolver(tokens map[string]string) *TokenResolver {
	return &TokenResolver{tokens: tokens}
}

// UserID implements Resolver.
func (t *TokenResolver) UserID(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	return t.Lookup(token)
}

// Lookup returns the user a token belongs to.
func (t *TokenResolver) Lookup(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	for candidate, userID := range t.tokens {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
			return userID, true
		}
	}
	return "", false
}

// Chain tries each resolver in order.
type Chain []Resolver

// UserID implements Resolver.
func (c Chain) UserID(r *http.Request) (string, bool) {
	for _, res := range c {
		if res == nil {
			continue
		}
		if id, ok := res.UserID(r); ok {
			return id, true
		}
	}
	return "", false
}

type userKey struct{}

// WithUser stores the resolved user ID in ctx.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the user ID stored by Middleware.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

// Middleware resolves the user once per request and stores it in the request context.
// Requests without identity pass through unchanged; handlers decide whether that is an error.
func Middleware(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := res.UserID(r); ok {
				r = r.WithContext(WithUser(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewCookieStore builds the session store the way the UI server configures it.
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30) // 30 days
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}
