package usecase

import (
	"context"
	"fmt"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
)

const fetchOrdersFallback = "Failed to fetch orders"

// OrderStore holds the order list (the caller's own, or all for admins) and
// enforces the client-side status gating. The server remains the authority;
// these guards only stop requests that are certain to be rejected.
type OrderStore struct {
	api     *api.Client
	session *Session
	notify  *notify.Hub
	policy  FetchPolicy
	col     collection[domain.Order]
}

func NewOrderStore(client *api.Client, session *Session, hub *notify.Hub, policy FetchPolicy) *OrderStore {
	return &OrderStore{
		api:     client,
		session: session,
		notify:  hub,
		policy:  policy,
		col:     newCollection(func(o domain.Order) string { return o.ID }),
	}
}

func (s *OrderStore) Fetch(ctx context.Context) error {
	s.col.beginLoad()
	orders, err := fetchWithRetry(ctx, s.policy, s.api.ListOrders)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchOrdersFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}
	s.col.finishOK(orders)
	return nil
}

func (s *OrderStore) Orders() []domain.Order {
	return s.col.snapshot()
}

func (s *OrderStore) State() (Phase, string) {
	return s.col.state()
}

func (s *OrderStore) Get(id string) (domain.Order, bool) {
	return s.col.find(id)
}

// Create places an order from cart items; the confirmed record is prepended.
func (s *OrderStore) Create(ctx context.Context, items []domain.CartItem) (*domain.Order, error) {
	if !s.session.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	req := api.CreateOrderRequest{}
	for _, item := range items {
		req.Items = append(req.Items, api.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to place order"))
		return nil, err
	}
	s.col.prepend(*order)
	s.notify.Success("Order placed")
	return order, nil
}

// Cancel is the owning user's cancellation: allowed from PENDING and
// CONFIRMED only, tagged cancelledBy=USER.
func (s *OrderStore) Cancel(ctx context.Context, id string) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	order, ok := s.col.find(id)
	if ok && !domain.CanUserCancelOrder(order.Status) {
		err := fmt.Errorf("order can no longer be cancelled (status %s)", order.Status)
		s.notify.Error(err.Error())
		return err
	}

	updated, err := s.api.UpdateOrderStatus(ctx, id, api.UpdateOrderStatusRequest{
		Status:      domain.OrderStatusCancelled,
		CancelledBy: domain.CancelledByUser,
	})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to cancel order"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Order cancelled")
	return nil
}

// UpdateStatus is the admin transition. A user-cancelled order is rejected
// before any network call: that cancellation is final from the admin side.
func (s *OrderStore) UpdateStatus(ctx context.Context, id, status string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}

	if order, ok := s.col.find(id); ok {
		if !domain.CanAdminEditOrder(&order) {
			err := fmt.Errorf("order %s can no longer be edited", id)
			s.notify.Error(err.Error())
			return err
		}
		if !domain.ValidOrderTransition(order.Status, status) {
			err := fmt.Errorf("invalid transition from %s to %s", order.Status, status)
			s.notify.Error(err.Error())
			return err
		}
	}

	req := api.UpdateOrderStatusRequest{Status: status}
	if status == domain.OrderStatusCancelled {
		req.CancelledBy = domain.CancelledByAdmin
	}

	updated, err := s.api.UpdateOrderStatus(ctx, id, req)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to update order status"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Order status updated")
	return nil
}
