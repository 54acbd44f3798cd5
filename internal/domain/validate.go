package domain

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Amounts are checked numerically; the float is only used for the comparison.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// kobo runs on the original decimal, not the float above.
	_ = v.RegisterValidation("kobo", isKobo)
	return v
}

// isKobo reports whether a decimal amount has at most two decimal places.
// NUMERIC(18,2) columns would otherwise round the excess away on insert.
func isKobo(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}
	d, ok := parent.FieldByName(fl.StructFieldName()).Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Equal(d.Truncate(2))
}

// ValidateInput checks a record submitted by a caller.
func ValidateInput(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return nil
}

// ValidateRecord checks a record read back from storage before it reaches the
// tax engine. Malformed rows are rejected, never coerced.
func ValidateRecord(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, err.Error())
	}
	return nil
}
