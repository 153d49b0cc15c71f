// Package cart holds the in-progress lines of a single point-of-sale session.
// A cart is never persisted.
package cart

import (
	"warehouse-pos/internal/domain"

	"github.com/shopspring/decimal"
)

// Cart is an ordered list of prospective order lines, at most one per product.
// It enforces no capacity or stock limit; callers cap quantities.
type Cart struct {
	items []domain.OrderItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the existing line for product, or appends a
// new line priced at the product's current price. A merged line keeps the
// price captured when it was first added.
func (c *Cart) AddItem(product domain.Product, quantity int) {
	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity += quantity
		return
	}
	c.items = append(c.items, domain.NewOrderItem(product, quantity))
}

// RemoveItem drops the line for productID. Removing an absent product does
// nothing.
func (c *Cart) RemoveItem(productID int64) {
	if i := c.indexOf(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.items = nil
}

// CalculateTotal sums the line totals.
func (c *Cart) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Quantity is the number of units of productID already in the cart.
func (c *Cart) Quantity(productID int64) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.OrderItem {
	out := make([]domain.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
