// Package taxengine holds the pure Nigerian tax computations: reliefs, PIT,
// CIT, VAT, WHT, capital allowances and the per-year summary that composes
// them. Nothing here performs I/O or keeps state between calls; rate tables
// are passed in by the caller.
package taxengine

import "github.com/shopspring/decimal"

// koboPlaces is the precision of every derived currency amount.
const koboPlaces = 2

// RoundKobo rounds an amount half away from zero to the nearest kobo.
func RoundKobo(d decimal.Decimal) decimal.Decimal {
	return d.Round(koboPlaces)
}

// nonNegative clamps negative amounts to zero.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// capAt returns d limited by cap when the cap is set.
func capAt(d decimal.Decimal, limit decimal.NullDecimal) decimal.Decimal {
	if limit.Valid && d.GreaterThan(limit.Decimal) {
		return limit.Decimal
	}
	return d
}
