package cli

import (
	"time"

	"warehouse-pos/internal/domain"
	"warehouse-pos/internal/pos"
	"warehouse-pos/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *App) orderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and cancel orders",
	}

	var customer, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, optionally by customer or date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders := a.orders.ByCustomer(customer)
			if from == "" && to == "" {
				return respond(cmd, orders)
			}
			start, end := time.Time{}, a.now()
			var err error
			if from != "" {
				if start, err = parseDate("from", from); err != nil {
					return err
				}
			}
			if to != "" {
				if end, err = parseDate("to", to); err != nil {
					return err
				}
				end = end.Add(24*time.Hour - time.Nanosecond)
			}
			inRange := map[int64]bool{}
			for _, o := range a.orders.ByDateRange(start, end) {
				inRange[o.ID] = true
			}
			out := []domain.Order{}
			for _, o := range orders {
				if inRange[o.ID] {
					out = append(out, o)
				}
			}
			return respond(cmd, out)
		},
	}
	list.Flags().StringVar(&customer, "customer", "", "case-insensitive match on customer name")
	list.Flags().StringVar(&from, "from", "", "first day, "+dateLayout)
	list.Flags().StringVar(&to, "to", "", "last day, "+dateLayout)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			o, err := a.orders.GetByID(id)
			if err != nil {
				return err
			}
			return respond(cmd, o)
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Cancel an order and return its stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if err := a.orders.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return respond(cmd, map[string]int64{"deleted": id})
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd
}

func (a *App) checkoutCommand() *cobra.Command {
	var req pos.CheckoutRequest
	var lines []string

	cmd := &cobra.Command{
		Use:   "checkout --customer NAME --method METHOD --item ID:QTY...",
		Short: "Sell the listed items as one order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := pos.NewSession(a.products, a.orders, a.cfg.Orders.MaxLineQuantity, a.logger.Named("pos"))
			for _, line := range lines {
				id, qty, err := parseLine(line)
				if err != nil {
					return err
				}
				if err := session.AddToCart(id, qty); err != nil {
					return err
				}
			}
			res, err := session.Checkout(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.logger.Info("checkout complete",
				zap.Int64("order_id", res.Order.ID),
				zap.String("customer", res.Order.CustomerName),
			)
			return respond(cmd, res)
		},
	}
	cmd.Flags().StringVar(&req.CustomerName, "customer", "", "customer name")
	cmd.Flags().Int64Var(&req.UserID, "user", 0, "id of the user ringing up the sale")
	cmd.Flags().StringVar(&req.PaymentMethod, "method", "", "payment method, e.g. Cash")
	cmd.Flags().StringArrayVar(&lines, "item", nil, "cart line as ID:QTY, repeatable")
	return cmd
}

func (a *App) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales figures over stored orders",
	}

	var month, year int
	monthly := &cobra.Command{
		Use:   "monthly",
		Short: "Orders and revenue for one calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			if !cmd.Flags().Changed("month") {
				month = int(now.Month())
			}
			if !cmd.Flags().Changed("year") {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return domain.NewValidationError("month", "must be between 1 and 12")
			}
			return respond(cmd, report.MonthlySales(a.orders.GetAll(), time.Month(month), year))
		},
	}
	monthly.Flags().IntVar(&month, "month", 0, "1-12, defaults to the current month")
	monthly.Flags().IntVar(&year, "year", 0, "defaults to the current year")

	customer := &cobra.Command{
		Use:   "customer NAME",
		Short: "Invoices for customers whose name contains NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respond(cmd, report.CustomerInvoices(a.orders.GetAll(), args[0]))
		},
	}

	var days int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Order count and revenue over the last days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return domain.NewValidationError("days", "must be at least 1")
			}
			return respond(cmd, report.RecentActivity(a.orders.GetAll(), a.now(), days))
		},
	}
	recent.Flags().IntVar(&days, "days", 30, "window length in days")

	cmd.AddCommand(monthly, customer, recent)
	return cmd
}
