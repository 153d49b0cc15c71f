// Package ledger keeps finalized orders and reconciles product stock whenever
// an order is committed, changed or removed.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/store"

	"go.uber.org/zap"
)

// StockKeeper is the part of the product catalog the ledger drives.
type StockKeeper interface {
	GetByID(id int64) (*domain.Product, error)
	UpdateStock(ctx context.Context, productID int64, delta int) (*domain.Product, error)
}

// CommitPolicy decides what happens to lines already applied when a later
// line of the same order cannot be.
type CommitPolicy string

const (
	// CommitPartial applies lines one by one in order. When a line fails, the
	// earlier lines stay applied and persisted. A stock error's Requested is
	// that line's quantity.
	CommitPartial CommitPolicy = "partial"
	// CommitPrevalidate checks every line against current stock first and
	// mutates nothing unless all of them fit. A stock error's Requested is the
	// net units for the product across all lines.
	CommitPrevalidate CommitPolicy = "prevalidate"
)

// ParseCommitPolicy accepts "partial" or "prevalidate"; empty means partial.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch CommitPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CommitPartial:
		return CommitPartial, nil
	case CommitPrevalidate:
		return CommitPrevalidate, nil
	default:
		return "", domain.NewValidationError("commit_policy", "unknown commit policy %q", s)
	}
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCommitPolicy selects how a failing line is handled. The default is
// CommitPartial.
func WithCommitPolicy(p CommitPolicy) Option {
	return func(l *Ledger) { l.policy = p }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the time source used for order dates and receipts.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Ledger owns the order collection.
type Ledger struct {
	store    store.Collection[domain.Order]
	products StockKeeper
	orders   []domain.Order
	nextID   int64
	policy   CommitPolicy
	logger   *zap.Logger
	now      func() time.Time
}

// New loads the stored orders and seeds the id counter with max(id)+1.
func New(ctx context.Context, st store.Collection[domain.Order], products StockKeeper, opts ...Option) (*Ledger, error) {
	orders, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load orders: %w", err)
	}
	l := &Ledger{
		store:    st,
		products: products,
		orders:   orders,
		nextID:   1,
		policy:   CommitPartial,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, o := range orders {
		if o.ID >= l.nextID {
			l.nextID = o.ID + 1
		}
	}
	return l, nil
}

// Policy is the commit policy in effect.
func (l *Ledger) Policy() CommitPolicy {
	return l.policy
}

// GetAll returns a deep copy of every order in insertion order.
func (l *Ledger) GetAll() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = o.Clone()
	}
	return out
}

// GetByID returns a deep copy of the order, or ErrOrderNotFound.
func (l *Ledger) GetByID(id int64) (*domain.Order, error) {
	i := l.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	o := l.orders[i].Clone()
	return &o, nil
}

// Exists reports whether an order with id is stored.
func (l *Ledger) Exists(id int64) bool {
	return l.indexOf(id) >= 0
}

// Add deducts stock for every line in order, then assigns the order its id and
// date and stores it. See CommitPolicy for what a failing line leaves behind.
func (l *Ledger) Add(ctx context.Context, order *domain.Order) error {
	if l.policy == CommitPrevalidate {
		if err := l.prevalidate(nil, order.Items); err != nil {
			return err
		}
	}
	for _, item := range order.Items {
		if _, err := l.products.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
			l.logger.Warn("order aborted during stock deduction",
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.String("policy", string(l.policy)),
				zap.Error(err),
			)
			return fmt.Errorf("ledger: deduct stock for product %d: %w", item.ProductID, err)
		}
	}

	order.ID = l.nextID
	l.nextID++
	order.OrderDate = l.now()
	l.orders = append(l.orders, order.Clone())

	if err := l.save(ctx); err != nil {
		return err
	}
	l.logger.Info("order committed",
		zap.Int64("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	return nil
}

// Update returns the stock of every stored line, deducts the stock of every
// line in order, and overwrites the stored order's customer, items, total and
// payment method.
func (l *Ledger) Update(ctx context.Context, order *domain.Order) error {
	i := l.indexOf(order.ID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, order.ID)
	}
	existing := l.orders[i].Clone()

	if l.policy == CommitPrevalidate {
		if err := l.prevalidate(existing.Items, order.Items); err != nil {
			return err
		}
	}
	for _, old := range existing.Items {
		if _, err := l.products.UpdateStock(ctx, old.ProductID, old.Quantity); err != nil {
			return fmt.Errorf("ledger: return stock for product %d: %w", old.ProductID, err)
		}
	}
	for _, item := range order.Items {
		if _, err := l.products.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
			return fmt.Errorf("ledger: deduct stock for product %d: %w", item.ProductID, err)
		}
	}

	stored := &l.orders[i]
	stored.CustomerName = order.CustomerName
	stored.Items = order.Clone().Items
	stored.TotalAmount = order.TotalAmount
	stored.PaymentMethod = order.PaymentMethod
	*order = stored.Clone()

	if err := l.save(ctx); err != nil {
		return err
	}
	l.logger.Info("order updated", zap.Int64("order_id", order.ID))
	return nil
}

// Delete returns the stock of every line and removes the order.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	existing := l.orders[i].Clone()

	if l.policy == CommitPrevalidate {
		if err := l.prevalidate(existing.Items, nil); err != nil {
			return err
		}
	}
	for _, item := range existing.Items {
		if _, err := l.products.UpdateStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("ledger: return stock for product %d: %w", item.ProductID, err)
		}
	}

	l.orders = append(l.orders[:i], l.orders[i+1:]...)
	if err := l.save(ctx); err != nil {
		return err
	}
	l.logger.Info("order deleted", zap.Int64("order_id", id))
	return nil
}

// ByDateRange returns orders dated within [start, end].
func (l *Ledger) ByDateRange(start, end time.Time) []domain.Order {
	out := []domain.Order{}
	for _, o := range l.orders {
		if !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ByCustomer returns orders whose customer name contains name, ignoring case.
func (l *Ledger) ByCustomer(name string) []domain.Order {
	needle := strings.ToLower(name)
	out := []domain.Order{}
	for _, o := range l.orders {
		if strings.Contains(strings.ToLower(o.CustomerName), needle) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// prevalidate checks that taking the take lines after returning the release
// lines leaves every product at or above zero. It mutates nothing.
func (l *Ledger) prevalidate(release, take []domain.OrderItem) error {
	net := map[int64]int{}
	var ids []int64
	track := func(id int64, units int) {
		if _, seen := net[id]; !seen {
			ids = append(ids, id)
		}
		net[id] += units
	}
	for _, item := range take {
		track(item.ProductID, item.Quantity)
	}
	for _, item := range release {
		track(item.ProductID, -item.Quantity)
	}

	for _, id := range ids {
		p, err := l.products.GetByID(id)
		if err != nil {
			return fmt.Errorf("ledger: check stock for product %d: %w", id, err)
		}
		if p.Quantity-net[id] < 0 {
			return fmt.Errorf("ledger: check stock for product %d: %w", id, &domain.InsufficientStockError{
				ProductName: p.Name,
				Requested:   net[id],
				Available:   p.Quantity,
			})
		}
	}
	return nil
}

func (l *Ledger) indexOf(id int64) int {
	for i := range l.orders {
		if l.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) save(ctx context.Context) error {
	if err := l.store.Save(ctx, l.orders); err != nil {
		l.logger.Error("failed to save orders", zap.Error(err))
		return fmt.Errorf("ledger: save orders: %w", err)
	}
	return nil
}
