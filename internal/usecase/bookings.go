package usecase

import (
	"context"
	"fmt"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
)

const fetchBookingsFallback = "Failed to fetch bookings"

// BookingStore holds appointment records. Users book and may cancel while
// pending; admins set any of the three states.
type BookingStore struct {
	api     *api.Client
	session *Session
	notify  *notify.Hub
	policy  FetchPolicy
	col     collection[domain.Booking]
}

func NewBookingStore(client *api.Client, session *Session, hub *notify.Hub, policy FetchPolicy) *BookingStore {
	return &BookingStore{
		api:     client,
		session: session,
		notify:  hub,
		policy:  policy,
		col:     newCollection(func(b domain.Booking) string { return b.ID }),
	}
}

func (s *BookingStore) Fetch(ctx context.Context) error {
	s.col.beginLoad()
	bookings, err := fetchWithRetry(ctx, s.policy, s.api.ListBookings)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchBookingsFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}
	s.col.finishOK(bookings)
	return nil
}

func (s *BookingStore) Bookings() []domain.Booking {
	return s.col.snapshot()
}

func (s *BookingStore) State() (Phase, string) {
	return s.col.state()
}

func (s *BookingStore) Create(ctx context.Context, req api.CreateBookingRequest) (*domain.Booking, error) {
	if !s.session.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to book appointment"))
		return nil, err
	}
	s.col.prepend(*booking)
	s.notify.Success("Appointment booked")
	return booking, nil
}

// Cancel is the owning user's cancellation; a confirmed booking is released
// by the studio, not the client.
func (s *BookingStore) Cancel(ctx context.Context, id string) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	booking, ok := s.col.find(id)
	if ok && !domain.CanUserCancelBooking(booking.Status) {
		err := fmt.Errorf("booking can no longer be cancelled (status %s)", booking.Status)
		s.notify.Error(err.Error())
		return err
	}

	updated, err := s.api.UpdateBookingStatus(ctx, id, api.UpdateBookingStatusRequest{
		Status: domain.BookingStatusCancelled,
	})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to cancel booking"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Booking cancelled")
	return nil
}

// SetStatus is the admin transition: any known status, any time.
func (s *BookingStore) SetStatus(ctx context.Context, id, status string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	if !domain.ValidBookingStatus(status) {
		err := fmt.Errorf("unknown booking status %q", status)
		s.notify.Error(err.Error())
		return err
	}

	updated, err := s.api.UpdateBookingStatus(ctx, id, api.UpdateBookingStatusRequest{Status: status})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to update booking"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Booking updated")
	return nil
}
