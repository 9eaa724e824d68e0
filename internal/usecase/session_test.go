package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"lashup-client/internal/domain"
	"lashup-client/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "u1@studio.test",
		"role":  role,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestHydrateDecodesRoleOnceCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	env.store.Set(localstore.KeyToken, signToken(t, "ADMIN", time.Now().Add(time.Hour)))
	env.store.Set(localstore.KeyUser, domain.User{ID: "u1", Email: "u1@studio.test", Role: "ADMIN"})

	session := NewSession(env.client, env.store, env.hub)
	session.Hydrate()

	if !session.IsAuthenticated() {
		t.Fatal("valid stored token + user must authenticate")
	}
	if !session.IsAdmin() {
		t.Fatal("role claim ADMIN must decode to the admin enum")
	}
	if env.client.Token() == "" {
		t.Fatal("hydration must attach the bearer token to the API client")
	}
}

func TestHydrateExpiredTokenClearsSession(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	env.store.Set(localstore.KeyToken, signToken(t, "user", time.Now().Add(-time.Hour)))
	env.store.Set(localstore.KeyUser, domain.User{ID: "u1"})

	session := NewSession(env.client, env.store, env.hub)
	session.Hydrate()

	if session.IsAuthenticated() {
		t.Fatal("expired token must not authenticate")
	}
	var leftover string
	if env.store.Get(localstore.KeyToken, &leftover) {
		t.Fatal("expired token must be purged from storage")
	}
}

func TestHydrateMissingKeysStaysLoggedOut(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	session := NewSession(env.client, env.store, env.hub)
	session.Hydrate()

	if session.IsAuthenticated() {
		t.Fatal("empty storage must hydrate to logged out")
	}
	if session.Role() != domain.RoleUser {
		t.Fatal("logged-out role must be the plain user enum")
	}
}

func TestUnauthorizedResponseExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	env := newTestEnv(t, mux)
	session := NewSession(env.client, env.store, env.hub)

	// Establish a session by hand, as if a login had happened earlier.
	env.store.Set(localstore.KeyToken, "stale-token")
	env.store.Set(localstore.KeyUser, domain.User{ID: "u1"})
	env.client.SetToken("stale-token")
	session.mu.Lock()
	session.user = &domain.User{ID: "u1"}
	session.authenticated = true
	session.mu.Unlock()

	if _, err := env.client.ListOrders(context.Background()); err == nil {
		t.Fatal("expected 401 error")
	}

	if session.IsAuthenticated() {
		t.Fatal("401 must invalidate the session")
	}
	if env.client.Token() != "" {
		t.Fatal("401 must clear the bearer token")
	}
	var leftover string
	if env.store.Get(localstore.KeyToken, &leftover) {
		t.Fatal("401 must clear persisted credentials")
	}
}

func TestLoginPersistsAndDecodesRole(t *testing.T) {
	adminToken := ""
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": adminToken,
			"user":  domain.User{ID: "u9", Email: "owner@studio.test", Role: "Admin"},
		})
	})

	env := newTestEnv(t, mux)
	adminToken = signToken(t, "Admin", time.Now().Add(time.Hour))
	session := NewSession(env.client, env.store, env.hub)

	if err := session.Login(context.Background(), "owner@studio.test", "pw"); err != nil {
		t.Fatal(err)
	}
	if !session.IsAdmin() {
		t.Fatal("mixed-case role string must decode to admin")
	}

	var storedToken string
	if !env.store.Get(localstore.KeyToken, &storedToken) || storedToken != adminToken {
		t.Fatal("login must persist the token")
	}

	// A fresh session on the same store restores the same identity.
	restored := NewSession(env.client, env.store, env.hub)
	restored.Hydrate()
	if !restored.IsAdmin() {
		t.Fatal("restored session must keep the decoded role")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	session := NewSession(env.client, env.store, env.hub)

	env.store.Set(localstore.KeyToken, "tok")
	env.client.SetToken("tok")
	session.mu.Lock()
	session.user = &domain.User{ID: "u1"}
	session.role = domain.RoleAdmin
	session.authenticated = true
	session.mu.Unlock()

	session.Logout()

	if session.IsAuthenticated() || session.IsAdmin() {
		t.Fatal("logout must reset auth state")
	}
	if env.client.Token() != "" {
		t.Fatal("logout must clear the client token")
	}
}
