package catalog

import (
	"errors"
	"regexp"
	"strings"

	"warehouse-pos/internal/domain"

	"github.com/go-playground/validator/v10"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9-]{3,20}$`)

// newValidator returns a validator with the catalog's custom tags registered.
func newValidator() *validator.Validate {
	v := validator.New()
	// "sku": uppercase letters, digits and hyphens, 3-20 characters.
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	return v
}

// checkStruct runs the struct tags and translates the first failure into a
// domain.ValidationError.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("", "%v", err)
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min", "max":
		return domain.NewValidationError(field, "%s must be between 2 and 100 characters", fe.Field())
	case "sku":
		return domain.NewValidationError(field, "SKU must be 3-20 uppercase letters, digits or hyphens")
	default:
		return domain.NewValidationError(field, "failed %q check", fe.Tag())
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
