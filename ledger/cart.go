// Package ledger implements the in-memory state containers: cart, wallet
// and session.
package ledger

import (
	"context"
	"sync"
	"time"

	"techshop/domain"
)

// CartLedger is the shopping cart: cart items keyed by product id, ordered
// by first insertion. Totals are derived from the items on every read, never
// cached.
type CartLedger struct {
	mu    sync.RWMutex
	items map[int]*domain.CartItem
	order []int
}

// NewCartLedger constructs an empty cart.
func NewCartLedger() *CartLedger {
	return &CartLedger{items: make(map[int]*domain.CartItem)}
}

// compile-time assertion that CartLedger implements domain.Cart
var _ domain.Cart = (*CartLedger)(nil)

func (c *CartLedger) Add(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateProduct(p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[p.ID]; ok {
		item.Quantity++
		return nil
	}
	c.items[p.ID] = &domain.CartItem{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
	return nil
}

// AddAfter adds the product once delay elapses, modeling the confirmation
// delay of the original add-to-cart flow. The wait is cancellable; the
// mutation is atomic once the timer fires.
func (c *CartLedger) AddAfter(ctx context.Context, delay time.Duration, p domain.Product) error {
	if delay <= 0 {
		return c.Add(ctx, p)
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return c.Add(ctx, p)
	}
}

func (c *CartLedger) Remove(ctx context.Context, productID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
	return nil
}

// remove must be called with the write lock held. Absent ids are a no-op.
func (c *CartLedger) remove(productID int) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetQuantity sets the quantity for an existing item. The clamp lives here,
// not in callers: any quantity <= 0 removes the item, so the ledger never
// holds an item below quantity 1. Absent ids are a no-op.
func (c *CartLedger) SetQuantity(ctx context.Context, productID, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
		return nil
	}
	if item, ok := c.items[productID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (c *CartLedger) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int]*domain.CartItem)
	c.order = nil
	return nil
}

// Items returns a copy of the cart contents in insertion order.
func (c *CartLedger) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// TotalItems returns the sum of quantities across items.
func (c *CartLedger) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of effective line totals across items.
func (c *CartLedger) TotalPrice() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total int64
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}
