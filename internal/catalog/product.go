package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/store"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CategoryChecker is the slice of the category catalog products depend on.
type CategoryChecker interface {
	Exists(id int64) bool
}

// ProductCatalog owns the product collection and is the only place a
// product's quantity on hand changes.
type ProductCatalog struct {
	store      store.Collection[domain.Product]
	categories CategoryChecker
	products   []domain.Product
	nextID     int64
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewProductCatalog loads the stored products and seeds the id counter with
// max(id)+1.
func NewProductCatalog(ctx context.Context, st store.Collection[domain.Product], categories CategoryChecker, logger *zap.Logger) (*ProductCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	products, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load products: %w", err)
	}
	c := &ProductCatalog{
		store:      st,
		categories: categories,
		products:   products,
		nextID:     1,
		validate:   newValidator(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, p := range products {
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
	}
	return c, nil
}

// GetAll returns a copy of every product in insertion order.
func (c *ProductCatalog) GetAll() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID returns a copy of the product, or ErrProductNotFound.
func (c *ProductCatalog) GetByID(id int64) (*domain.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	p := c.products[i]
	return &p, nil
}

// Exists reports whether a product with id is stored.
func (c *ProductCatalog) Exists(id int64) bool {
	return c.indexOf(id) >= 0
}

// Add validates product, assigns the next id and creation time, and persists.
// A zero initial quantity is rejected.
func (c *ProductCatalog) Add(ctx context.Context, product *domain.Product) error {
	if err := c.checkProduct(product, 0, 1); err != nil {
		return err
	}

	product.ID = c.nextID
	c.nextID++
	product.CreatedAt = c.now()
	product.UpdatedAt = nil
	c.products = append(c.products, *product)

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("product added",
		zap.Int64("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.Int("quantity", product.Quantity),
	)
	return nil
}

// Update re-validates product and overwrites every mutable field of the
// stored product with the same id.
func (c *ProductCatalog) Update(ctx context.Context, product *domain.Product) error {
	i := c.indexOf(product.ID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, product.ID)
	}
	if err := c.checkProduct(product, product.ID, 0); err != nil {
		return err
	}

	existing := &c.products[i]
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Quantity = product.Quantity
	existing.CategoryID = product.CategoryID
	existing.SKU = product.SKU
	existing.Touch(c.now())
	*product = *existing

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("product updated", zap.Int64("product_id", product.ID))
	return nil
}

// Delete removes the product. Orders referencing it keep their snapshot lines.
func (c *ProductCatalog) Delete(ctx context.Context, id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	c.products = append(c.products[:i], c.products[i+1:]...)

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("product deleted", zap.Int64("product_id", id))
	return nil
}

// UpdateStock applies delta to the quantity on hand. delta is negative for a
// sale and positive for a return. A delta that would leave the quantity below
// zero fails with *domain.InsufficientStockError and changes nothing.
func (c *ProductCatalog) UpdateStock(ctx context.Context, productID int64, delta int) (*domain.Product, error) {
	i := c.indexOf(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	}
	p := &c.products[i]

	newQuantity := p.Quantity + delta
	if newQuantity < 0 {
		return nil, &domain.InsufficientStockError{
			ProductName: p.Name,
			Requested:   abs(delta),
			Available:   p.Quantity,
		}
	}

	before := p.Quantity
	p.Quantity = newQuantity
	p.Touch(c.now())
	updated := *p

	if err := c.save(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("stock updated",
		zap.Int64("product_id", productID),
		zap.Int("quantity_change", delta),
		zap.Int("quantity_before", before),
		zap.Int("quantity_after", newQuantity),
	)
	return &updated, nil
}

// Search matches term against name, description or SKU, ignoring case.
func (c *ProductCatalog) Search(term string) []domain.Product {
	if isBlank(term) {
		return c.GetAll()
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if containsFold(p.Name, term) || containsFold(p.Description, term) || containsFold(p.SKU, term) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns the products filed under categoryID.
func (c *ProductCatalog) ByCategory(categoryID int64) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// LowStock returns products whose quantity is at or below threshold.
func (c *ProductCatalog) LowStock(threshold int) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Quantity <= threshold {
			out = append(out, p)
		}
	}
	return out
}

// checkProduct validates every field. selfID excludes the product itself from
// the SKU uniqueness check. New products need at least one unit in stock; an
// update may record an empty shelf.
func (c *ProductCatalog) checkProduct(p *domain.Product, selfID int64, minQuantity int) error {
	if isBlank(p.Name) {
		return domain.NewValidationError("name", "product name cannot be empty")
	}
	if !p.Price.IsPositive() {
		return domain.NewValidationError("price", "Price must be greater than 0")
	}
	if p.Quantity < minQuantity {
		if minQuantity == 1 {
			return domain.NewValidationError("quantity", "Quantity must be greater than 0")
		}
		return domain.NewValidationError("quantity", "Quantity cannot be negative")
	}
	if err := checkStruct(c.validate, p); err != nil {
		return err
	}
	if c.categories == nil || !c.categories.Exists(p.CategoryID) {
		return domain.NewValidationError("category_id", "category with ID %d does not exist", p.CategoryID)
	}
	for _, other := range c.products {
		if other.ID != selfID && strings.EqualFold(other.SKU, p.SKU) {
			return domain.NewValidationError("sku", "SKU '%s' already exists", p.SKU)
		}
	}
	return nil
}

func (c *ProductCatalog) indexOf(id int64) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *ProductCatalog) save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.products); err != nil {
		c.logger.Error("failed to save products", zap.Error(err))
		return fmt.Errorf("catalog: save products: %w", err)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
