package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const receiptTimeLayout = "2006-01-02 15:04:05"

// ProcessPayment is a stand-in for a payment gateway: it accepts any positive
// amount with a named method.
func (l *Ledger) ProcessPayment(amount decimal.Decimal, method string) bool {
	return method != "" && amount.IsPositive()
}

// GenerateReceipt formats a payment confirmation stamped with the current time.
func (l *Ledger) GenerateReceipt(amount decimal.Decimal, method string) string {
	return fmt.Sprintf("Payment of $%s processed via %s at %s",
		amount.StringFixed(2), method, l.now().Format(receiptTimeLayout))
}
