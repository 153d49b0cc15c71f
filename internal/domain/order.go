package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order or cart. ProductName and UnitPrice are
// copied from the product when the line is created and never refreshed.
type OrderItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// NewOrderItem snapshots a product into a line item.
func NewOrderItem(p Product, quantity int) OrderItem {
	return OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	}
}

// TotalPrice is UnitPrice x Quantity.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a finalized sale.
type Order struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OrderDate       time.Time       `json:"order_date"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	PaymentMethod   string          `json:"payment_method"`
}

// NewOrder returns an empty order ready for AddItem.
func NewOrder(customerName string, createdByUserID int64, paymentMethod string) *Order {
	return &Order{
		CustomerName:    customerName,
		Items:           []OrderItem{},
		TotalAmount:     decimal.Zero,
		CreatedByUserID: createdByUserID,
		PaymentMethod:   paymentMethod,
	}
}

// AddItem appends a line and grows TotalAmount by its total.
func (o *Order) AddItem(item OrderItem) {
	o.Items = append(o.Items, item)
	o.TotalAmount = o.TotalAmount.Add(item.TotalPrice())
}

// Clone returns a deep copy so callers never share the Items backing array.
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
