// Package pos runs a single point-of-sale session: it fills a cart against
// live stock and checks it out into the order ledger.
package pos

import (
	"context"
	"fmt"
	"strings"

	"warehouse-pos/internal/cart"
	"warehouse-pos/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultMaxLineQuantity caps a single AddToCart call.
const DefaultMaxLineQuantity = 100

// ErrPaymentDeclined is returned by Checkout when the payment step refuses the
// amount or method. Nothing is committed.
var ErrPaymentDeclined = fmt.Errorf("payment declined: %w", domain.ErrValidation)

// ProductLookup reads current product state.
type ProductLookup interface {
	GetByID(id int64) (*domain.Product, error)
}

// OrderCommitter is the part of the ledger a checkout needs.
type OrderCommitter interface {
	Add(ctx context.Context, order *domain.Order) error
	ProcessPayment(amount decimal.Decimal, method string) bool
	GenerateReceipt(amount decimal.Decimal, method string) string
}

// CheckoutRequest names who pays and how.
type CheckoutRequest struct {
	CustomerName  string
	UserID        int64
	PaymentMethod string
}

// CheckoutResult is the committed order with its receipt.
type CheckoutResult struct {
	Order            domain.Order `json:"order"`
	Receipt          string       `json:"receipt"`
	PaymentReference string       `json:"payment_reference"`
}

// Session is one till: a cart checked against live stock.
type Session struct {
	products ProductLookup
	orders   OrderCommitter
	cart     *cart.Cart
	maxLine  int
	logger   *zap.Logger
}

// NewSession starts an empty cart over products, committing into orders. A
// maxLineQuantity below 1 falls back to DefaultMaxLineQuantity.
func NewSession(products ProductLookup, orders OrderCommitter, maxLineQuantity int, logger *zap.Logger) *Session {
	if maxLineQuantity < 1 {
		maxLineQuantity = DefaultMaxLineQuantity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		products: products,
		orders:   orders,
		cart:     cart.New(),
		maxLine:  maxLineQuantity,
		logger:   logger,
	}
}

// AddToCart puts quantity units of a product in the cart. The cart may never
// hold more units of a product than are in stock at the time of the call.
func (s *Session) AddToCart(productID int64, quantity int) error {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if quantity < 1 || quantity > s.maxLine {
		return domain.NewValidationError("quantity", "must be between 1 and %d", s.maxLine)
	}
	inCart := s.cart.Quantity(productID)
	if p.Quantity == 0 || inCart+quantity > p.Quantity {
		return &domain.InsufficientStockError{
			ProductName: p.Name,
			Requested:   inCart + quantity,
			Available:   p.Quantity,
		}
	}
	s.cart.AddItem(*p, quantity)
	s.logger.Debug("added to cart",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("in_cart", inCart+quantity),
	)
	return nil
}

// RemoveFromCart drops the product's line, if any.
func (s *Session) RemoveFromCart(productID int64) {
	s.cart.RemoveItem(productID)
}

// Cart returns a copy of the cart lines.
func (s *Session) Cart() []domain.OrderItem {
	return s.cart.Items()
}

// Total is the cart total at captured prices.
func (s *Session) Total() decimal.Decimal {
	return s.cart.CalculateTotal()
}

// Abandon empties the cart without committing anything.
func (s *Session) Abandon() {
	s.cart.Clear()
}

// Checkout takes payment for the cart total and commits the cart as one
// order. The cart is cleared only when the order is stored.
func (s *Session) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if s.cart.IsEmpty() {
		return nil, domain.NewValidationError("cart", "is empty")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, domain.NewValidationError("customer_name", "cannot be empty")
	}

	total := s.cart.CalculateTotal()
	if !s.orders.ProcessPayment(total, req.PaymentMethod) {
		return nil, fmt.Errorf("%w: %s via %q", ErrPaymentDeclined, total.StringFixed(2), req.PaymentMethod)
	}
	reference := uuid.New().String()

	order := domain.NewOrder(strings.TrimSpace(req.CustomerName), req.UserID, req.PaymentMethod)
	for _, item := range s.cart.Items() {
		order.AddItem(item)
	}
	if err := s.orders.Add(ctx, order); err != nil {
		s.logger.Warn("checkout failed", zap.String("payment_reference", reference), zap.Error(err))
		return nil, err
	}
	s.cart.Clear()

	return &CheckoutResult{
		Order:            order.Clone(),
		Receipt:          s.orders.GenerateReceipt(total, req.PaymentMethod),
		PaymentReference: reference,
	}, nil
}
