package usecase

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"lashup-client/internal/domain"
	memcache "lashup-client/internal/infrastructure/cache"

	"github.com/goccy/go-json"
)

func TestGalleryFetchServesFromCache(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gallery", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]domain.GalleryItem{{ID: "g1", URL: "https://cdn/img1.webp"}})
	})
	env := newTestEnv(t, mux)

	mem := memcache.NewMemoryCache(time.Minute, time.Minute)
	store := NewGalleryStore(env.client, env.userSession(), env.hub, nil, mem, time.Minute, "gallery", 50, instantPolicy(0, nil))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("network calls = %d, want 1 (second read from cache)", got)
	}
	if items := store.Items(); len(items) != 1 || items[0].ID != "g1" {
		t.Fatalf("items = %+v", items)
	}
	if phase, _ := store.State(); phase != PhaseReady {
		t.Fatalf("phase = %v", phase)
	}
}

func TestGalleryDeleteInvalidatesCache(t *testing.T) {
	var lists atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gallery", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		if lists.Load() == 1 {
			json.NewEncoder(w).Encode([]domain.GalleryItem{{ID: "g1"}, {ID: "g2"}})
			return
		}
		json.NewEncoder(w).Encode([]domain.GalleryItem{{ID: "g2"}})
	})
	mux.HandleFunc("DELETE /gallery/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	env := newTestEnv(t, mux)

	mem := memcache.NewMemoryCache(time.Minute, time.Minute)
	store := NewGalleryStore(env.client, env.adminSession(), env.hub, nil, mem, time.Minute, "gallery", 50, instantPolicy(0, nil))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := store.Delete(context.Background(), "g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if items := store.Items(); len(items) != 1 || items[0].ID != "g2" {
		t.Fatalf("items after delete = %+v", items)
	}

	// deletion must have purged the cached list
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := lists.Load(); got != 2 {
		t.Fatalf("list calls = %d, want 2 (cache invalidated by delete)", got)
	}
}

func TestGalleryCacheIsolatedFromLocalReconciliation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gallery", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.GalleryItem{{ID: "g1", Caption: "original"}})
	})
	env := newTestEnv(t, mux)

	mem := memcache.NewMemoryCache(time.Minute, time.Minute)
	first := NewGalleryStore(env.client, env.userSession(), env.hub, nil, mem, time.Minute, "gallery", 50, instantPolicy(0, nil))
	if err := first.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// Replacing a record locally must not write through to the cached slice.
	first.col.replace(domain.GalleryItem{ID: "g1", Caption: "edited"})

	second := NewGalleryStore(env.client, env.userSession(), env.hub, nil, mem, time.Minute, "gallery", 50, instantPolicy(0, nil))
	if err := second.Fetch(context.Background()); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	items := second.Items()
	if len(items) != 1 || items[0].Caption != "original" {
		t.Fatalf("cached list was mutated through aliasing: %+v", items)
	}

	// Same isolation on the read path.
	second.col.replace(domain.GalleryItem{ID: "g1", Caption: "edited again"})
	third := NewGalleryStore(env.client, env.userSession(), env.hub, nil, mem, time.Minute, "gallery", 50, instantPolicy(0, nil))
	if err := third.Fetch(context.Background()); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if got := third.Items()[0].Caption; got != "original" {
		t.Fatalf("cache read handed out an aliased slice: caption %q", got)
	}
}

func TestGalleryDeleteRequiresAdmin(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /gallery/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	env := newTestEnv(t, mux)

	store := NewGalleryStore(env.client, env.userSession(), env.hub, nil, nil, 0, "gallery", 50, instantPolicy(0, nil))
	if err := store.Delete(context.Background(), "g1"); err != domain.ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if calls.Load() != 0 {
		t.Fatal("forbidden delete must not reach the network")
	}
}
