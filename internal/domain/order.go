package domain

import "time"

// --- Cart Entities ---

// CartItem is a local (client-persisted) product/quantity pair.
// Uniqueness key is ProductID; the cart controller owns the collection.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// --- Order Entities ---

// Order Statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Cancellation actors
const (
	CancelledByUser  = "USER"
	CancelledByAdmin = "ADMIN"
)

// OrderStatuses lists the fulfillment track in checkpoint order.
// CANCELLED sits outside the track.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

type Order struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	User             *User       `json:"user,omitempty"`
	Items            []OrderItem `json:"items"`
	Status           string      `json:"status"`
	CancelledBy      string      `json:"cancelledBy,omitempty"` // USER | ADMIN, set at cancellation
	TotalAmount      float64     `json:"totalAmount"`
	PaymentReference string      `json:"paymentReference,omitempty"`
	Paid             bool        `json:"paid"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // price at time of purchase
}

// ProgressIndex returns the order's position on the four-checkpoint track,
// or -1 for CANCELLED and unknown statuses (no progress display).
func ProgressIndex(status string) int {
	for i, s := range OrderStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

// IsTerminalOrderStatus reports whether no further transitions exist.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// CanUserCancelOrder: owners may cancel only before fulfillment starts.
func CanUserCancelOrder(status string) bool {
	return status == OrderStatusPending || status == OrderStatusConfirmed
}

// CanAdminEditOrder: admins may move any non-terminal order, except one the
// user already cancelled. That cancellation is final from the admin side.
func CanAdminEditOrder(o *Order) bool {
	if o == nil {
		return false
	}
	if o.CancelledBy == CancelledByUser {
		return false
	}
	return !IsTerminalOrderStatus(o.Status)
}

// ValidOrderTransition enforces forward-only movement along the track.
// Cancellation is allowed from any non-terminal state (actor checks are
// layered on top by the caller).
func ValidOrderTransition(current, next string) bool {
	if current == next {
		return false
	}
	if IsTerminalOrderStatus(current) {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	ci, ni := ProgressIndex(current), ProgressIndex(next)
	if ci < 0 || ni < 0 {
		return false
	}
	return ni > ci
}
