package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a product category in the warehouse.
// The json tags correspond to the field names in the persisted collection.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"min=2,max=100"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"` // nil until the first update
}

// Product represents a stocked item. Quantity is never negative.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"min=2,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  int64           `json:"category_id"`
	SKU         string          `json:"sku" validate:"sku"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Touch stamps the update time.
func (p *Product) Touch(now time.Time) {
	p.UpdatedAt = &now
}

// Touch stamps the update time.
func (c *Category) Touch(now time.Time) {
	c.UpdatedAt = &now
}
