package api

import (
	"context"
	"net/http"
	"net/url"

	"lashup-client/internal/domain"
)

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderItemInput `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status      string `json:"status"`
	CancelledBy string `json:"cancelledBy,omitempty"`
}

// InitializePaymentResponse carries the gateway redirect target and the
// reference echoed back on return.
type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
	OrderID          string `json:"orderId"`
}

// ListOrders returns the caller's orders, or all orders for admins.
// The server scopes by the bearer token.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, req UpdateOrderStatusRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPatch, "orders/"+id+"/status", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InitializePayment requests a payment-session URL for an order.
func (c *Client) InitializePayment(ctx context.Context, orderID string) (*InitializePaymentResponse, error) {
	var resp InitializePaymentResponse
	body := map[string]string{"orderId": orderID}
	if err := c.do(ctx, http.MethodPost, "orders/payment/initialize", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPayment sends the gateway's return reference back for verification.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*domain.Order, error) {
	var order domain.Order
	path := "orders/payment/verify?reference=" + url.QueryEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- Bookings ---

type CreateBookingRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.do(ctx, http.MethodPost, "bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, req UpdateBookingStatusRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.do(ctx, http.MethodPatch, "bookings/"+id+"/status", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
