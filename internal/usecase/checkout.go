package usecase

import (
	"context"
	"fmt"
	"time"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
	"lashup-client/internal/localstore"
)

// PendingOrder is the durable marker written before the full-page redirect
// to the payment gateway, and cleared once the return is verified.
type PendingOrder struct {
	OrderID   string    `json:"orderId"`
	Reference string    `json:"reference"`
	StartedAt time.Time `json:"startedAt"`
}

// Checkout drives the payment redirect flow: place order, initialize the
// gateway session, mark pending, verify on return, then clear marker + cart.
type Checkout struct {
	api    *api.Client
	store  *localstore.Store
	cart   *Cart
	orders *OrderStore
	notify *notify.Hub
}

func NewCheckout(client *api.Client, store *localstore.Store, cart *Cart, orders *OrderStore, hub *notify.Hub) *Checkout {
	return &Checkout{
		api:    client,
		store:  store,
		cart:   cart,
		orders: orders,
		notify: hub,
	}
}

// Begin places the order from the current cart and requests the gateway URL.
// The caller performs the actual redirect with the returned URL. The cart is
// NOT cleared yet; that happens after verification.
func (c *Checkout) Begin(ctx context.Context) (string, error) {
	order, err := c.orders.Create(ctx, c.cart.Items())
	if err != nil {
		return "", err
	}

	payment, err := c.api.InitializePayment(ctx, order.ID)
	if err != nil {
		c.notify.Error(domain.ServerMessage(err, "Failed to start payment"))
		return "", err
	}

	c.store.Set(localstore.KeyPendingOrder, PendingOrder{
		OrderID:   order.ID,
		Reference: payment.Reference,
		StartedAt: time.Now(),
	})
	return payment.AuthorizationURL, nil
}

// Pending returns the stored marker, if a payment round trip is in flight.
func (c *Checkout) Pending() (PendingOrder, bool) {
	var p PendingOrder
	ok := c.store.Get(localstore.KeyPendingOrder, &p)
	return p, ok && p.Reference != ""
}

// Complete verifies the gateway's return reference with the backend. On
// success the pending marker and the cart are cleared and the confirmed
// order is reconciled into the order list.
func (c *Checkout) Complete(ctx context.Context, reference string) (*domain.Order, error) {
	if reference == "" {
		if p, ok := c.Pending(); ok {
			reference = p.Reference
		} else {
			return nil, fmt.Errorf("no payment reference to verify")
		}
	}

	order, err := c.api.VerifyPayment(ctx, reference)
	if err != nil {
		c.notify.Error(domain.ServerMessage(err, "Payment verification failed"))
		return nil, err
	}

	c.store.Delete(localstore.KeyPendingOrder)
	c.cart.Clear()
	c.orders.col.replace(*order)
	c.notify.Success("Payment confirmed")
	return order, nil
}
