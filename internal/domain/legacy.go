package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Data files written by the earlier desktop release use PascalCase keys and
// timestamps without a zone. The decoders below read both that layout and the
// snake_case one; encoding always writes snake_case.

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // no zone: read as UTC
}

type legacyTime struct {
	time.Time
}

func (t *legacyTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *legacyTime) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// UnmarshalJSON reads either key layout.
func (c *Category) UnmarshalJSON(data []byte) error {
	type category Category
	var doc struct {
		category
		LegacyCreatedAt *legacyTime `json:"CreatedAt"`
		LegacyUpdatedAt *legacyTime `json:"UpdatedAt"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = Category(doc.category)
	if doc.LegacyCreatedAt != nil {
		c.CreatedAt = doc.LegacyCreatedAt.Time
	}
	if doc.LegacyUpdatedAt != nil {
		c.UpdatedAt = doc.LegacyUpdatedAt.ptr()
	}
	return nil
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	var doc struct {
		product
		LegacyCategoryID *int64      `json:"CategoryId"`
		LegacyCreatedAt  *legacyTime `json:"CreatedAt"`
		LegacyUpdatedAt  *legacyTime `json:"UpdatedAt"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = Product(doc.product)
	if doc.LegacyCategoryID != nil {
		p.CategoryID = *doc.LegacyCategoryID
	}
	if doc.LegacyCreatedAt != nil {
		p.CreatedAt = doc.LegacyCreatedAt.Time
	}
	if doc.LegacyUpdatedAt != nil {
		p.UpdatedAt = doc.LegacyUpdatedAt.ptr()
	}
	return nil
}

// UnmarshalJSON ignores the derived TotalPrice key of legacy lines.
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type orderItem OrderItem
	var doc struct {
		orderItem
		LegacyProductID   *int64           `json:"ProductId"`
		LegacyProductName *string          `json:"ProductName"`
		LegacyUnitPrice   *decimal.Decimal `json:"UnitPrice"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*i = OrderItem(doc.orderItem)
	if doc.LegacyProductID != nil {
		i.ProductID = *doc.LegacyProductID
	}
	if doc.LegacyProductName != nil {
		i.ProductName = *doc.LegacyProductName
	}
	if doc.LegacyUnitPrice != nil {
		i.UnitPrice = *doc.LegacyUnitPrice
	}
	return nil
}

// UnmarshalJSON reads either key layout. Items decode through
// OrderItem.UnmarshalJSON.
func (o *Order) UnmarshalJSON(data []byte) error {
	type order Order
	var doc struct {
		order
		LegacyCustomerName    *string          `json:"CustomerName"`
		LegacyTotalAmount     *decimal.Decimal `json:"TotalAmount"`
		LegacyOrderDate       *legacyTime      `json:"OrderDate"`
		LegacyCreatedByUserID *int64           `json:"CreatedByUserId"`
		LegacyPaymentMethod   *string          `json:"PaymentMethod"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*o = Order(doc.order)
	if doc.LegacyCustomerName != nil {
		o.CustomerName = *doc.LegacyCustomerName
	}
	if doc.LegacyTotalAmount != nil {
		o.TotalAmount = *doc.LegacyTotalAmount
	}
	if doc.LegacyOrderDate != nil {
		o.OrderDate = doc.LegacyOrderDate.Time
	}
	if doc.LegacyCreatedByUserID != nil {
		o.CreatedByUserID = *doc.LegacyCreatedByUserID
	}
	if doc.LegacyPaymentMethod != nil {
		o.PaymentMethod = *doc.LegacyPaymentMethod
	}
	return nil
}
