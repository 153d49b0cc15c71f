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

// CategoryCatalog owns the category collection.
type CategoryCatalog struct {
	store      store.Collection[domain.Category]
	categories []domain.Category
	nextID     int64
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewCategoryCatalog loads the stored categories and seeds the id counter
// with max(id)+1.
func NewCategoryCatalog(ctx context.Context, st store.Collection[domain.Category], logger *zap.Logger) (*CategoryCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	categories, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load categories: %w", err)
	}
	c := &CategoryCatalog{
		store:      st,
		categories: categories,
		nextID:     1,
		validate:   newValidator(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, cat := range categories {
		if cat.ID >= c.nextID {
			c.nextID = cat.ID + 1
		}
	}
	return c, nil
}

// GetAll returns a copy of every category in insertion order.
func (c *CategoryCatalog) GetAll() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// GetByID returns a copy of the category, or ErrCategoryNotFound.
func (c *CategoryCatalog) GetByID(id int64) (*domain.Category, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}
	cat := c.categories[i]
	return &cat, nil
}

// GetByName is a case-insensitive exact match.
func (c *CategoryCatalog) GetByName(name string) (*domain.Category, error) {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.Name, name) {
			return &cat, nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", domain.ErrCategoryNotFound, name)
}

// Add assigns the next id and creation time to category and persists it.
func (c *CategoryCatalog) Add(ctx context.Context, category *domain.Category) error {
	if err := c.checkName(category); err != nil {
		return err
	}
	if c.ExistsByName(category.Name) {
		return domain.NewValidationError("name", "category '%s' already exists", category.Name)
	}

	category.ID = c.nextID
	c.nextID++
	category.CreatedAt = c.now()
	category.UpdatedAt = nil
	c.categories = append(c.categories, *category)

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("category added", zap.Int64("category_id", category.ID), zap.String("name", category.Name))
	return nil
}

// Update overwrites name and description of the stored category with the
// same id.
func (c *CategoryCatalog) Update(ctx context.Context, category *domain.Category) error {
	i := c.indexOf(category.ID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, category.ID)
	}
	if err := c.checkName(category); err != nil {
		return err
	}
	for _, other := range c.categories {
		if other.ID != category.ID && strings.EqualFold(other.Name, category.Name) {
			return domain.NewValidationError("name", "category '%s' already exists", category.Name)
		}
	}

	existing := &c.categories[i]
	existing.Name = category.Name
	existing.Description = category.Description
	existing.Touch(c.now())
	*category = *existing

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("category updated", zap.Int64("category_id", category.ID))
	return nil
}

// Delete removes the category. Products referencing it are left untouched.
func (c *CategoryCatalog) Delete(ctx context.Context, id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}
	c.categories = append(c.categories[:i], c.categories[i+1:]...)

	if err := c.save(ctx); err != nil {
		return err
	}
	c.logger.Debug("category deleted", zap.Int64("category_id", id))
	return nil
}

// Exists reports whether a category with id is stored.
func (c *CategoryCatalog) Exists(id int64) bool {
	return c.indexOf(id) >= 0
}

// ExistsByName reports whether a category has name, ignoring case.
func (c *CategoryCatalog) ExistsByName(name string) bool {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.Name, name) {
			return true
		}
	}
	return false
}

// Search matches term against name or description, ignoring case. A blank
// term returns every category.
func (c *CategoryCatalog) Search(term string) []domain.Category {
	if isBlank(term) {
		return c.GetAll()
	}
	out := []domain.Category{}
	for _, cat := range c.categories {
		if containsFold(cat.Name, term) || containsFold(cat.Description, term) {
			out = append(out, cat)
		}
	}
	return out
}

// Count is the number of stored categories.
func (c *CategoryCatalog) Count() int {
	return len(c.categories)
}

// ValidateID reports a missing category as a validation failure, for callers
// checking a foreign key rather than looking the category up.
func (c *CategoryCatalog) ValidateID(id int64) error {
	if !c.Exists(id) {
		return domain.NewValidationError("category_id", "category with ID %d does not exist", id)
	}
	return nil
}

// CreatedBetween returns categories created in [start, end].
func (c *CategoryCatalog) CreatedBetween(start, end time.Time) []domain.Category {
	out := []domain.Category{}
	for _, cat := range c.categories {
		if !cat.CreatedAt.Before(start) && !cat.CreatedAt.After(end) {
			out = append(out, cat)
		}
	}
	return out
}

// RecentlyUpdated returns categories updated within the last days before now.
func (c *CategoryCatalog) RecentlyUpdated(now time.Time, days int) []domain.Category {
	cutoff := now.AddDate(0, 0, -days)
	out := []domain.Category{}
	for _, cat := range c.categories {
		if cat.UpdatedAt != nil && !cat.UpdatedAt.Before(cutoff) {
			out = append(out, cat)
		}
	}
	return out
}

func (c *CategoryCatalog) checkName(category *domain.Category) error {
	if isBlank(category.Name) {
		return domain.NewValidationError("name", "category name cannot be empty")
	}
	return checkStruct(c.validate, category)
}

func (c *CategoryCatalog) indexOf(id int64) int {
	for i := range c.categories {
		if c.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *CategoryCatalog) save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.categories); err != nil {
		c.logger.Error("failed to save categories", zap.Error(err))
		return fmt.Errorf("catalog: save categories: %w", err)
	}
	return nil
}
