// Package cli is the command-line surface over the catalogs, the ledger and
// the point-of-sale session. Every command prints indented JSON.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"warehouse-pos/internal/catalog"
	"warehouse-pos/internal/config"
	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/ledger"
	"warehouse-pos/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes by error kind.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitValidation        = 2
	ExitNotFound          = 3
	ExitInsufficientStock = 4
	ExitPersistence       = 5
)

// App wires the collections to their services for one process.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	categories *catalog.CategoryCatalog
	products   *catalog.ProductCatalog
	orders     *ledger.Ledger
	now        func() time.Time
}

// NewApp opens the three collections under cfg.Storage.DataDir.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy, err := ledger.ParseCommitPolicy(cfg.Orders.CommitPolicy)
	if err != nil {
		return nil, err
	}

	catStore, err := store.NewJSONFile[domain.Category](cfg.Storage.DataDir, cfg.Storage.CategoriesFile)
	if err != nil {
		return nil, err
	}
	prodStore, err := store.NewJSONFile[domain.Product](cfg.Storage.DataDir, cfg.Storage.ProductsFile)
	if err != nil {
		return nil, err
	}
	orderStore, err := store.NewJSONFile[domain.Order](cfg.Storage.DataDir, cfg.Storage.OrdersFile)
	if err != nil {
		return nil, err
	}

	categories, err := catalog.NewCategoryCatalog(ctx, catStore, logger.Named("categories"))
	if err != nil {
		return nil, err
	}
	products, err := catalog.NewProductCatalog(ctx, prodStore, categories, logger.Named("products"))
	if err != nil {
		return nil, err
	}
	orders, err := ledger.New(ctx, orderStore, products,
		ledger.WithCommitPolicy(policy),
		ledger.WithLogger(logger.Named("ledger")),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("collections loaded",
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.Int("categories", categories.Count()),
		zap.Int("products", len(products.GetAll())),
		zap.Int("orders", len(orders.GetAll())),
		zap.String("commit_policy", string(policy)),
	)
	return &App{
		cfg:        cfg,
		logger:     logger,
		categories: categories,
		products:   products,
		orders:     orders,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "warehouse-pos",
		Short:         "Warehouse inventory and point-of-sale",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.categoryCommand(),
		a.productCommand(),
		a.orderCommand(),
		a.checkoutCommand(),
		a.reportCommand(),
	)
	return root
}

// Run executes args against the collections configured by cfg and returns the
// process exit code. Results go to stdout, errors to stderr.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, args []string, stdout, stderr io.Writer) int {
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		writeError(stderr, err)
		return ExitCode(err)
	}
	root := app.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		app.logger.Debug("command failed", zap.Strings("args", args), zap.Error(err))
		writeError(stderr, err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the exit code of its kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return ExitValidation
	case domain.KindNotFound:
		return ExitNotFound
	case domain.KindInsufficientStock:
		return ExitInsufficientStock
	case domain.KindPersistence:
		return ExitPersistence
	default:
		return ExitFailure
	}
}

// ErrorResponse is what a failed command prints.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeError(w io.Writer, err error) {
	if encErr := encode(w, ErrorResponse{Error: err.Error(), Kind: domain.KindOf(err).String()}); encErr != nil {
		fmt.Fprintln(w, err)
	}
}
