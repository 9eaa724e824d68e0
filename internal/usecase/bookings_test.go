package usecase

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
)

func TestUserCannotCancelConfirmedBooking(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	env := newTestEnv(t, mux)
	store := NewBookingStore(env.client, env.userSession(), env.hub, instantPolicy(0, nil))
	store.col.finishOK([]domain.Booking{{ID: "b1", Status: domain.BookingStatusConfirmed}})

	if err := store.Cancel(context.Background(), "b1"); err == nil {
		t.Fatal("confirmed booking must not be user-cancellable")
	}
	if calls.Load() != 0 {
		t.Fatal("blocked cancellation must not reach the server")
	}
}

func TestUserCancelsPendingBooking(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /bookings/b1/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Booking{ID: "b1", Status: domain.BookingStatusCancelled})
	})

	env := newTestEnv(t, mux)
	store := NewBookingStore(env.client, env.userSession(), env.hub, instantPolicy(0, nil))
	store.col.finishOK([]domain.Booking{{ID: "b1", Status: domain.BookingStatusPending}})

	if err := store.Cancel(context.Background(), "b1"); err != nil {
		t.Fatal(err)
	}
	cancelled, _ := store.col.find("b1")
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Fatal("server response must replace the local record")
	}
}

func TestAdminSetsAnyKnownBookingStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /bookings/b1/status", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		_ = jsonDecode(r, &req)
		writeJSON(w, http.StatusOK, domain.Booking{ID: "b1", Status: req.Status})
	})

	env := newTestEnv(t, mux)
	store := NewBookingStore(env.client, env.adminSession(), env.hub, instantPolicy(0, nil))
	// Admins may move even a confirmed booking back to pending.
	store.col.finishOK([]domain.Booking{{ID: "b1", Status: domain.BookingStatusConfirmed}})

	if err := store.SetStatus(context.Background(), "b1", domain.BookingStatusPending); err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(context.Background(), "b1", "NO_SHOW"); err == nil {
		t.Fatal("unknown status must be rejected client-side")
	}
}

func TestCreateBookingPrepends(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, domain.Booking{ID: "b-new", Status: domain.BookingStatusPending})
	})

	env := newTestEnv(t, mux)
	store := NewBookingStore(env.client, env.userSession(), env.hub, instantPolicy(0, nil))
	store.col.finishOK([]domain.Booking{{ID: "b-old"}})

	req := api.CreateBookingRequest{ServiceID: "s1", Date: "2026-09-10", Time: "14:00"}
	if _, err := store.Create(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	bookings := store.Bookings()
	if len(bookings) != 2 || bookings[0].ID != "b-new" {
		t.Fatalf("create must prepend: %+v", bookings)
	}
}
