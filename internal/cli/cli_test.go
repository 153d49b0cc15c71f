package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"warehouse-pos/internal/config"
	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/pos"
	"warehouse-pos/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		AppEnv: "development",
		Storage: config.StorageConfig{
			DataDir:        dir,
			ProductsFile:   "Products.json",
			CategoriesFile: "Categories.json",
			OrdersFile:     "Orders.json",
		},
		Orders: config.OrderConfig{CommitPolicy: "partial", MaxLineQuantity: 100},
	}
}

type result struct {
	code   int
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (r result) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), v), r.stdout.String())
}

func (r result) errorKind(t *testing.T) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(r.stderr.Bytes(), &resp), r.stderr.String())
	return resp.Kind
}

func run(t *testing.T, cfg *config.Config, args ...string) result {
	t.Helper()
	r := result{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	r.code = Run(context.Background(), cfg, nil, args, r.stdout, r.stderr)
	return r
}

// seed creates category 1 "Tools" and product 1, a hammer with 10 units.
func seed(t *testing.T, cfg *config.Config) {
	t.Helper()
	require.Equal(t, ExitOK, run(t, cfg, "category", "add", "--name", "Tools", "--description", "Hand tools").code)
	r := run(t, cfg, "product", "add",
		"--name", "Claw Hammer", "--price", "9.99", "--quantity", "10", "--category", "1", "--sku", "HAM-16")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
}

func TestCategoryCommands(t *testing.T) {
	cfg := testConfig(t.TempDir())

	r := run(t, cfg, "category", "add", "--name", "Tools")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	var created domain.Category
	r.decode(t, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Tools", created.Name)

	r = run(t, cfg, "category", "add", "--name", "tools")
	assert.Equal(t, ExitValidation, r.code)
	assert.Equal(t, "validation", r.errorKind(t))

	r = run(t, cfg, "category", "update", "1", "--description", "Hand tools")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	var updated domain.Category
	r.decode(t, &updated)
	assert.Equal(t, "Tools", updated.Name)
	assert.Equal(t, "Hand tools", updated.Description)
	assert.NotNil(t, updated.UpdatedAt)

	r = run(t, cfg, "category", "list", "--search", "hand")
	var listed []domain.Category
	r.decode(t, &listed)
	assert.Len(t, listed, 1)

	assert.Equal(t, ExitOK, run(t, cfg, "category", "delete", "1").code)
	assert.Equal(t, ExitNotFound, run(t, cfg, "category", "get", "1").code)
	assert.Equal(t, ExitValidation, run(t, cfg, "category", "get", "abc").code)
}

func TestProductCommands(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seed(t, cfg)

	r := run(t, cfg, "product", "get", "1")
	require.Equal(t, ExitOK, r.code)
	var p domain.Product
	r.decode(t, &p)
	assert.Equal(t, "Claw Hammer", p.Name)
	assert.Equal(t, "9.99", p.Price.String())

	r = run(t, cfg, "product", "add",
		"--name", "Mallet", "--price", "5", "--quantity", "1", "--category", "1", "--sku", "ham-16")
	assert.Equal(t, ExitValidation, r.code, "lowercase SKU")

	r = run(t, cfg, "product", "update", "1", "--price", "11.50")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	r.decode(t, &p)
	assert.Equal(t, "11.5", p.Price.String())
	assert.Equal(t, 10, p.Quantity)

	r = run(t, cfg, "product", "stock", "1", "--delta=-7")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	r.decode(t, &p)
	assert.Equal(t, 3, p.Quantity)

	r = run(t, cfg, "product", "stock", "1", "--delta=-5")
	assert.Equal(t, ExitInsufficientStock, r.code)
	assert.Contains(t, r.stderr.String(), "Requested: 5, Available: 3")

	r = run(t, cfg, "product", "list", "--low-stock", "3")
	var low []domain.Product
	r.decode(t, &low)
	assert.Len(t, low, 1)

	assert.Equal(t, ExitNotFound, run(t, cfg, "product", "get", "2").code)
}

func TestProductList_Filters(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seed(t, cfg)
	require.Equal(t, ExitOK, run(t, cfg, "category", "add", "--name", "Fasteners").code)
	r := run(t, cfg, "product", "add",
		"--name", "Wood Screws", "--price", "4.50", "--quantity", "200", "--category", "2", "--sku", "SCR-100")
	require.Equal(t, ExitOK, r.code, r.stderr.String())

	ids := func(args ...string) []int64 {
		var products []domain.Product
		r := run(t, cfg, append([]string{"product", "list"}, args...)...)
		require.Equal(t, ExitOK, r.code, r.stderr.String())
		r.decode(t, &products)
		out := []int64{}
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2}, ids())
	assert.Equal(t, []int64{2}, ids("--category", "2"))
	assert.Equal(t, []int64{1}, ids("--low-stock", "10"))
	assert.Equal(t, []int64{}, ids("--category", "2", "--low-stock", "10"))
	assert.Equal(t, []int64{1}, ids("--search", "hammer", "--category", "1"))
}

func TestCheckoutAndOrders(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seed(t, cfg)

	r := run(t, cfg, "checkout", "--customer", "Ada", "--user", "4", "--method", "Cash",
		"--item", "1:2", "--item", "1:3")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	var res pos.CheckoutResult
	r.decode(t, &res)
	assert.Equal(t, int64(1), res.Order.ID)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, 5, res.Order.Items[0].Quantity)
	assert.Equal(t, "49.95", res.Order.TotalAmount.StringFixed(2))
	assert.Contains(t, res.Receipt, "Payment of $49.95 processed via Cash at ")

	var p domain.Product
	run(t, cfg, "product", "get", "1").decode(t, &p)
	assert.Equal(t, 5, p.Quantity)

	r = run(t, cfg, "checkout", "--customer", "Ada", "--method", "Cash", "--item", "1:6")
	assert.Equal(t, ExitInsufficientStock, r.code)

	r = run(t, cfg, "checkout", "--customer", "Ada", "--method", "", "--item", "1:1")
	assert.Equal(t, ExitValidation, r.code, "declined payment")

	r = run(t, cfg, "checkout", "--customer", "Ada", "--method", "Cash", "--item", "1")
	assert.Equal(t, ExitValidation, r.code, "malformed line")

	var orders []domain.Order
	run(t, cfg, "order", "list", "--customer", "ad").decode(t, &orders)
	require.Len(t, orders, 1)

	r = run(t, cfg, "report", "recent", "--days", "1")
	require.Equal(t, ExitOK, r.code, r.stderr.String())
	var activity report.ActivityReport
	r.decode(t, &activity)
	assert.Equal(t, 1, activity.Orders)
	assert.Equal(t, "49.95", activity.Revenue.StringFixed(2))

	assert.Equal(t, ExitOK, run(t, cfg, "order", "delete", "1").code)
	run(t, cfg, "product", "get", "1").decode(t, &p)
	assert.Equal(t, 10, p.Quantity, "cancelling returns the stock")
	assert.Equal(t, ExitNotFound, run(t, cfg, "order", "get", "1").code)
}

func TestRun_RejectsUnknownCommitPolicy(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Orders.CommitPolicy = "rollback"
	assert.Equal(t, ExitValidation, run(t, cfg, "category", "list").code)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{domain.NewValidationError("name", "bad"), ExitValidation},
		{fmt.Errorf("wrap: %w", domain.ErrOrderNotFound), ExitNotFound},
		{&domain.InsufficientStockError{ProductName: "Saw", Requested: 2, Available: 1}, ExitInsufficientStock},
		{fmt.Errorf("%w: disk full", domain.ErrPersistence), ExitPersistence},
		{errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}
