package usecase

import (
	"sync"

	"lashup-client/internal/domain"
	"lashup-client/internal/localstore"
)

// Cart owns the local CartItem collection. Every mutation persists
// synchronously; no other component writes the cart key.
type Cart struct {
	mu    sync.Mutex
	store *localstore.Store
	items []domain.CartItem
}

// NewCart rehydrates from durable storage. Absent or corrupt state yields an
// empty cart.
func NewCart(store *localstore.Store) *Cart {
	c := &Cart{store: store}
	var items []domain.CartItem
	if store.Get(localstore.KeyCart, &items) {
		c.items = items
	}
	return c
}

// AddItem merges by product id: an existing entry gains quantity, a new
// product is appended. Quantity is clamped to at least 1.
func (c *Cart) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += quantity
			c.persistLocked()
			return
		}
	}

	c.items = append(c.items, domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  quantity,
	})
	c.persistLocked()
}

// UpdateQuantity sets the quantity exactly; anything below 1 removes the
// entry instead.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			c.persistLocked()
			return
		}
	}
}

// RemoveItem deletes the entry if present; no-op otherwise.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked()
			return
		}
	}
}

// Clear empties the collection (post-checkout or explicit clear).
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persistLocked()
}

// Items returns a copy of the current entries.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice sums price*quantity; 0 for an empty cart.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities, not distinct entries.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) persistLocked() {
	c.store.Set(localstore.KeyCart, c.items)
}
