package pos

import (
	"context"
	"errors"
	"testing"

	"warehouse-pos/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubProducts map[int64]domain.Product

func (s stubProducts) GetByID(id int64) (*domain.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Add(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrders) ProcessPayment(amount decimal.Decimal, method string) bool {
	args := m.Called(amount.StringFixed(2), method)
	return args.Bool(0)
}

func (m *MockOrders) GenerateReceipt(amount decimal.Decimal, method string) string {
	args := m.Called(amount.StringFixed(2), method)
	return args.String(0)
}

func newSession(orders OrderCommitter) *Session {
	products := stubProducts{
		1: {ID: 1, Name: "Hammer", Price: decimal.RequireFromString("9.99"), Quantity: 10},
		2: {ID: 2, Name: "Saw", Price: decimal.RequireFromString("15.00"), Quantity: 3},
		3: {ID: 3, Name: "Level", Price: decimal.RequireFromString("20.00"), Quantity: 0},
	}
	return NewSession(products, orders, 0, nil)
}

func TestSession_AddToCart(t *testing.T) {
	s := newSession(new(MockOrders))

	require.NoError(t, s.AddToCart(1, 2))
	require.NoError(t, s.AddToCart(1, 3))
	require.NoError(t, s.AddToCart(2, 3))

	items := s.Cart()
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "94.95", s.Total().StringFixed(2))
}

func TestSession_AddToCart_Rejects(t *testing.T) {
	s := newSession(new(MockOrders))
	require.NoError(t, s.AddToCart(2, 2))

	tests := []struct {
		name      string
		productID int64
		quantity  int
		want      error
	}{
		{"unknown product", 99, 1, domain.ErrNotFound},
		{"zero quantity", 1, 0, domain.ErrValidation},
		{"above line cap", 1, DefaultMaxLineQuantity + 1, domain.ErrValidation},
		{"out of stock", 3, 1, domain.ErrInsufficientStock},
		{"cart plus request exceeds stock", 2, 2, domain.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddToCart(tt.productID, tt.quantity)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Equal(t, 2, s.Cart()[0].Quantity, "rejected adds leave the cart alone")

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(s.AddToCart(2, 2), &stockErr))
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)
}

func TestSession_RemoveAndAbandon(t *testing.T) {
	s := newSession(new(MockOrders))
	require.NoError(t, s.AddToCart(1, 1))
	require.NoError(t, s.AddToCart(2, 1))

	s.RemoveFromCart(1)
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, int64(2), s.Cart()[0].ProductID)

	s.Abandon()
	assert.Empty(t, s.Cart())
	assert.True(t, s.Total().IsZero())
}

func TestSession_Checkout(t *testing.T) {
	orders := new(MockOrders)
	s := newSession(orders)
	require.NoError(t, s.AddToCart(1, 5))

	orders.On("ProcessPayment", "49.95", "Cash").Return(true)
	orders.On("Add", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 7
		}).
		Return(nil)
	orders.On("GenerateReceipt", "49.95", "Cash").Return("receipt")

	res, err := s.Checkout(context.Background(), CheckoutRequest{CustomerName: " Ada ", UserID: 4, PaymentMethod: "Cash"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Order.ID)
	assert.Equal(t, "Ada", res.Order.CustomerName)
	assert.Equal(t, int64(4), res.Order.CreatedByUserID)
	assert.Equal(t, "49.95", res.Order.TotalAmount.StringFixed(2))
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, "Hammer", res.Order.Items[0].ProductName)
	assert.Equal(t, "receipt", res.Receipt)
	_, err = uuid.Parse(res.PaymentReference)
	assert.NoError(t, err)
	assert.Empty(t, s.Cart())
	orders.AssertExpectations(t)
}

func TestSession_Checkout_Validation(t *testing.T) {
	orders := new(MockOrders)
	s := newSession(orders)

	_, err := s.Checkout(context.Background(), CheckoutRequest{CustomerName: "Ada", PaymentMethod: "Cash"})
	assert.True(t, errors.Is(err, domain.ErrValidation), "empty cart")

	require.NoError(t, s.AddToCart(1, 1))
	_, err = s.Checkout(context.Background(), CheckoutRequest{CustomerName: "  ", PaymentMethod: "Cash"})
	assert.True(t, errors.Is(err, domain.ErrValidation), "blank customer")

	orders.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything)
	assert.Len(t, s.Cart(), 1)
}

func TestSession_Checkout_PaymentDeclined(t *testing.T) {
	orders := new(MockOrders)
	s := newSession(orders)
	require.NoError(t, s.AddToCart(1, 1))
	orders.On("ProcessPayment", "9.99", "").Return(false)

	_, err := s.Checkout(context.Background(), CheckoutRequest{CustomerName: "Ada"})
	assert.True(t, errors.Is(err, ErrPaymentDeclined))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Len(t, s.Cart(), 1)
}

func TestSession_Checkout_CommitFailureKeepsCart(t *testing.T) {
	orders := new(MockOrders)
	s := newSession(orders)
	require.NoError(t, s.AddToCart(2, 3))

	orders.On("ProcessPayment", "45.00", "Card").Return(true)
	orders.On("Add", mock.Anything, mock.Anything).
		Return(&domain.InsufficientStockError{ProductName: "Saw", Requested: 3, Available: 1})

	_, err := s.Checkout(context.Background(), CheckoutRequest{CustomerName: "Ada", PaymentMethod: "Card"})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Len(t, s.Cart(), 1)
	orders.AssertNotCalled(t, "GenerateReceipt", mock.Anything, mock.Anything)
}
