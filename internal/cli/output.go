package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"warehouse-pos/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func encode(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func respond(cmd *cobra.Command, payload any) error {
	return encode(cmd.OutOrStdout(), payload)
}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(field, "must be a positive integer, got %q", s)
	}
	return id, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.NewValidationError("price", "must be a decimal number, got %q", s)
	}
	return d, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date like %s, got %q", dateLayout, s)
	}
	return t, nil
}

// parseLine reads an ID:QTY cart line.
func parseLine(s string) (int64, int, error) {
	idPart, qtyPart, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, domain.NewValidationError("item", "must look like ID:QTY, got %q", s)
	}
	id, err := parseID("item", idPart)
	if err != nil {
		return 0, 0, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyPart))
	if err != nil {
		return 0, 0, domain.NewValidationError("item", "quantity must be an integer, got %q", qtyPart)
	}
	return id, qty, nil
}
