package domain

import "time"

// Booking Statuses
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
}

type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	User      *User     `json:"user,omitempty"`
	ServiceID string    `json:"serviceId"`
	Service   *Service  `json:"service,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD as the server sends it
	Time      string    `json:"time"` // HH:MM
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanUserCancelBooking: owners may cancel only while still pending.
// A confirmed slot is released by the studio, not the client.
func CanUserCancelBooking(status string) bool {
	return status == BookingStatusPending
}

// ValidBookingStatus reports whether s is one of the three known states.
// Admins may set any of them at any time.
func ValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}
