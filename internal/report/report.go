// Package report aggregates stored orders into sales figures. It only reads;
// layout is left to the caller.
package report

import (
	"strings"
	"time"

	"warehouse-pos/internal/domain"

	"github.com/shopspring/decimal"
)

// Summary is the headline of a set of orders.
type Summary struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Average decimal.Decimal `json:"average_order_value"`
}

type MonthlySalesReport struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Summary
	Details []domain.Order `json:"details"`
}

// Invoice is the billing view of one order.
type Invoice struct {
	OrderID       int64              `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	InvoiceDate   time.Time          `json:"invoice_date"`
	Items         []domain.OrderItem `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
}

type CustomerInvoicesReport struct {
	Customer string `json:"customer"`
	Summary
	Invoices []Invoice `json:"invoices"`
}

type ActivityReport struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
	Summary
}

// MonthlySales selects the orders dated in the given calendar month.
func MonthlySales(orders []domain.Order, month time.Month, year int) MonthlySalesReport {
	selected := []domain.Order{}
	for _, o := range orders {
		if o.OrderDate.Month() == month && o.OrderDate.Year() == year {
			selected = append(selected, o)
		}
	}
	return MonthlySalesReport{
		Month:   int(month),
		Year:    year,
		Summary: summarize(selected),
		Details: selected,
	}
}

// CustomerInvoices selects the orders whose customer name contains name,
// ignoring case.
func CustomerInvoices(orders []domain.Order, name string) CustomerInvoicesReport {
	needle := strings.ToLower(name)
	selected := []domain.Order{}
	invoices := []Invoice{}
	for _, o := range orders {
		if !strings.Contains(strings.ToLower(o.CustomerName), needle) {
			continue
		}
		selected = append(selected, o)
		invoices = append(invoices, Invoice{
			OrderID:       o.ID,
			CustomerName:  o.CustomerName,
			InvoiceDate:   o.OrderDate,
			Items:         o.Items,
			TotalAmount:   o.TotalAmount,
			PaymentMethod: o.PaymentMethod,
		})
	}
	return CustomerInvoicesReport{
		Customer: name,
		Summary:  summarize(selected),
		Invoices: invoices,
	}
}

// RecentActivity summarizes the orders dated within the last days days up to
// and including now.
func RecentActivity(orders []domain.Order, now time.Time, days int) ActivityReport {
	since := now.AddDate(0, 0, -days)
	selected := []domain.Order{}
	for _, o := range orders {
		if !o.OrderDate.Before(since) && !o.OrderDate.After(now) {
			selected = append(selected, o)
		}
	}
	return ActivityReport{Since: since, Until: now, Summary: summarize(selected)}
}

func summarize(orders []domain.Order) Summary {
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.TotalAmount)
	}
	s := Summary{Orders: len(orders), Revenue: revenue, Average: decimal.Zero}
	if len(orders) > 0 {
		s.Average = revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	return s
}
