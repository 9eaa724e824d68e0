package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
	"lashup-client/internal/localstore"
)

type testEnv struct {
	server *httptest.Server
	client *api.Client
	store  *localstore.Store
	hub    *notify.Hub
	toasts <-chan notify.Notification
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hub := notify.NewHub()
	toasts, unsubscribe := hub.Subscribe(64)
	t.Cleanup(unsubscribe)

	return &testEnv{
		server: server,
		client: api.NewClient(server.URL, 2*time.Second),
		store:  localstore.Open(filepath.Join(t.TempDir(), "state.json")),
		hub:    hub,
		toasts: toasts,
	}
}

// drainToasts returns all buffered notifications. Publishing is synchronous,
// so everything emitted before this call is visible.
func (e *testEnv) drainToasts() []notify.Notification {
	var out []notify.Notification
	for {
		select {
		case n := <-e.toasts:
			out = append(out, n)
		default:
			return out
		}
	}
}

func (e *testEnv) countToasts(level notify.Level) int {
	count := 0
	for _, n := range e.drainToasts() {
		if n.Level == level {
			count++
		}
	}
	return count
}

// adminSession builds an authenticated admin without a login round trip.
func (e *testEnv) adminSession() *Session {
	return &Session{
		api:           e.client,
		store:         e.store,
		notify:        e.hub,
		user:          &domain.User{ID: "admin-1", Email: "admin@studio.test", Role: "admin"},
		role:          domain.RoleAdmin,
		authenticated: true,
	}
}

func (e *testEnv) userSession() *Session {
	return &Session{
		api:           e.client,
		store:         e.store,
		notify:        e.hub,
		user:          &domain.User{ID: "user-1", Email: "user@studio.test", Role: "user"},
		role:          domain.RoleUser,
		authenticated: true,
	}
}

// instantPolicy keeps the configured retry count but skips the real delay,
// recording each pause instead.
func instantPolicy(retries int, delays *[]time.Duration) FetchPolicy {
	return FetchPolicy{
		Retries: retries,
		Delay:   5 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			if delays != nil {
				*delays = append(*delays, d)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		},
	}
}
