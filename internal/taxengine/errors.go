package taxengine

import (
	"fmt"

	"naijatax/internal/domain"
)

// UnsupportedCategoryError reports a classification absent from the rate
// table, such as a WHT payment/recipient pair or an asset category.
type UnsupportedCategoryError struct {
	Kind  string
	Value string
	Year  int
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("unsupported %s %q in %d rate table", e.Kind, e.Value, e.Year)
}

func (e *UnsupportedCategoryError) Unwrap() error { return domain.ErrUnsupportedCategory }

// RateTableError reports a missing or inconsistent rate table.
type RateTableError struct {
	Year   int
	Reason string
	Err    error
}

func (e *RateTableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("rate table %d: %v", e.Year, e.Err)
	}
	return fmt.Sprintf("rate table %d: %s", e.Year, e.Reason)
}

func (e *RateTableError) Unwrap() error { return e.Err }

func invalidTable(year int, format string, args ...interface{}) error {
	return &RateTableError{Year: year, Reason: fmt.Sprintf(format, args...), Err: domain.ErrInvalidRateTable}
}
