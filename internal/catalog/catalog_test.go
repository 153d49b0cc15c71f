package catalog

import (
	"context"
	"testing"
	"time"

	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCollection is a mock implementation of store.Collection.
type MockCollection[T any] struct {
	mock.Mock
}

func (m *MockCollection[T]) Load(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	var records []T
	if arg0 := args.Get(0); arg0 != nil {
		records = arg0.([]T)
	}
	return records, args.Error(1)
}

func (m *MockCollection[T]) Save(ctx context.Context, records []T) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestCategoryCatalog(t *testing.T) *CategoryCatalog {
	t.Helper()
	st, err := store.NewJSONFile[domain.Category](t.TempDir(), "Categories.json")
	require.NoError(t, err)
	c, err := NewCategoryCatalog(context.Background(), st, nil)
	require.NoError(t, err)
	c.now = fixedClock
	return c
}

func newTestProductCatalog(t *testing.T) (*ProductCatalog, *CategoryCatalog) {
	t.Helper()
	categories := newTestCategoryCatalog(t)
	require.NoError(t, categories.Add(context.Background(), &domain.Category{Name: "Tools", Description: "Hand tools"}))

	st, err := store.NewJSONFile[domain.Product](t.TempDir(), "Products.json")
	require.NoError(t, err)
	products, err := NewProductCatalog(context.Background(), st, categories, nil)
	require.NoError(t, err)
	products.now = fixedClock
	return products, categories
}

func sampleProduct(sku string, quantity int) *domain.Product {
	return &domain.Product{
		Name:        "Claw Hammer",
		Description: "16oz steel",
		Price:       decimal.RequireFromString("9.99"),
		Quantity:    quantity,
		CategoryID:  1,
		SKU:         sku,
	}
}
