package taxengine

import (
	"sort"

	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// Bracket is one PIT band. Upper is unbounded when not Valid.
type Bracket struct {
	Lower decimal.Decimal     `json:"lower"`
	Upper decimal.NullDecimal `json:"upper"`
	Rate  decimal.Decimal     `json:"rate"`
}

// PITSchedule is the progressive schedule of a tax year.
type PITSchedule struct {
	Brackets []Bracket `json:"brackets"`

	// Taxable income at or below this amount pays no PIT.
	ExemptionThreshold decimal.Decimal `json:"exemption_threshold"`

	// Above the threshold PIT never exceeds this share of the excess, so the
	// bands below the threshold phase in instead of landing on the first
	// naira over it. Zero disables the relief.
	ThresholdReliefRate decimal.Decimal `json:"threshold_relief_rate"`
}

// ReliefRules configures the Consolidated Relief Allowance, rent relief,
// exemptions and the individual deduction caps. A cap that is not Valid
// means the deduction is uncapped.
type ReliefRules struct {
	CRAFloor                 decimal.Decimal     `json:"cra_floor"`
	CRAFloorRate             decimal.Decimal     `json:"cra_floor_rate"`
	CRAGrossRate             decimal.Decimal     `json:"cra_gross_rate"`
	RentReliefRate           decimal.Decimal     `json:"rent_relief_rate"`
	RentReliefCap            decimal.Decimal     `json:"rent_relief_cap"`
	CompensationExemptionCap decimal.Decimal     `json:"compensation_exemption_cap"`
	PensionCap               decimal.NullDecimal `json:"pension_cap"`
	NHISCap                  decimal.NullDecimal `json:"nhis_cap"`
	NHFCap                   decimal.NullDecimal `json:"nhf_cap"`
	HousingLoanInterestCap   decimal.NullDecimal `json:"housing_loan_interest_cap"`
	LifeInsuranceCap         decimal.NullDecimal `json:"life_insurance_cap"`
}

// CITBand applies Rate to companies whose turnover is at most Upper.
// The last band is unbounded.
type CITBand struct {
	Upper decimal.NullDecimal `json:"upper"`
	Rate  decimal.Decimal     `json:"rate"`
}

// WHTKey identifies a withholding rate.
type WHTKey struct {
	PaymentType   domain.WHTPaymentType `json:"payment_type"`
	RecipientType domain.RecipientType  `json:"recipient_type"`
}

// WHTRates maps a payment/recipient pair to its withholding rate.
type WHTRates map[WHTKey]decimal.Decimal

// AllowanceRates are the capital allowance rates of one asset category.
type AllowanceRates struct {
	Initial decimal.Decimal `json:"initial"`
	Annual  decimal.Decimal `json:"annual"`
}

// AdvisoryRates are the standard contribution rates used to estimate
// unclaimed reliefs. They never affect the liability.
type AdvisoryRates struct {
	Pension decimal.Decimal `json:"pension"`
	NHF     decimal.Decimal `json:"nhf"`
	NHIS    decimal.Decimal `json:"nhis"`
}

// RateTable is the full set of rates for one tax year. Tables are built once
// by a provider and treated as read-only afterwards.
type RateTable struct {
	Year                      int                                     `json:"year"`
	PIT                       PITSchedule                             `json:"pit"`
	Relief                    ReliefRules                             `json:"relief"`
	CIT                       []CITBand                               `json:"cit"`
	VATRate                   decimal.Decimal                         `json:"vat_rate"`
	WHT                       WHTRates                                `json:"-"`
	CapitalAllowance          map[domain.AssetCategory]AllowanceRates `json:"capital_allowance"`
	CapitalAllowanceProfitCap decimal.Decimal                         `json:"capital_allowance_profit_cap"`
	Advisory                  AdvisoryRates                           `json:"advisory"`
}

// Lookup returns the rate for a payment/recipient pair. Missing pairs fail
// with an UnsupportedCategoryError instead of defaulting to zero.
func (r WHTRates) Lookup(year int, paymentType domain.WHTPaymentType, recipientType domain.RecipientType) (decimal.Decimal, error) {
	rate, ok := r[WHTKey{PaymentType: paymentType, RecipientType: recipientType}]
	if !ok {
		return decimal.Zero, &UnsupportedCategoryError{
			Kind:  "WHT payment/recipient type",
			Value: string(paymentType) + "/" + string(recipientType),
			Year:  year,
		}
	}
	return rate, nil
}

// WHTRate returns the withholding rate for a payment/recipient pair.
func (t *RateTable) WHTRate(paymentType domain.WHTPaymentType, recipientType domain.RecipientType) (decimal.Decimal, error) {
	return t.WHT.Lookup(t.Year, paymentType, recipientType)
}

// AllowanceRatesFor returns the capital allowance rates of an asset category.
func (t *RateTable) AllowanceRatesFor(category domain.AssetCategory) (AllowanceRates, error) {
	rates, ok := t.CapitalAllowance[category]
	if !ok {
		return AllowanceRates{}, &UnsupportedCategoryError{Kind: "asset category", Value: string(category), Year: t.Year}
	}
	return rates, nil
}

// WHTEntries lists the WHT table sorted by payment type then recipient type.
func (t *RateTable) WHTEntries() []WHTEntry {
	entries := make([]WHTEntry, 0, len(t.WHT))
	for k, rate := range t.WHT {
		entries = append(entries, WHTEntry{PaymentType: k.PaymentType, RecipientType: k.RecipientType, Rate: rate})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PaymentType != entries[j].PaymentType {
			return entries[i].PaymentType < entries[j].PaymentType
		}
		return entries[i].RecipientType < entries[j].RecipientType
	})
	return entries
}

// WHTEntry is a flattened WHT table row.
type WHTEntry struct {
	PaymentType   domain.WHTPaymentType `json:"payment_type"`
	RecipientType domain.RecipientType  `json:"recipient_type"`
	Rate          decimal.Decimal       `json:"rate"`
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

// Validate checks that a table can be applied without ambiguity: brackets
// start at zero and are contiguous, exactly the last PIT bracket and CIT band
// are unbounded, and every rate lies in [0, 1].
func (t *RateTable) Validate() error {
	if t == nil {
		return &RateTableError{Reason: "nil table", Err: domain.ErrInvalidRateTable}
	}
	brackets := sortedBrackets(t.PIT.Brackets)
	if len(brackets) == 0 {
		return invalidTable(t.Year, "no PIT brackets")
	}
	if !brackets[0].Lower.IsZero() {
		return invalidTable(t.Year, "first PIT bracket starts at %s, not 0", brackets[0].Lower)
	}
	for i, b := range brackets {
		if !validRate(b.Rate) {
			return invalidTable(t.Year, "PIT bracket %d rate %s out of range", i, b.Rate)
		}
		last := i == len(brackets)-1
		if !last {
			if !b.Upper.Valid {
				return invalidTable(t.Year, "PIT bracket %d is unbounded but not last", i)
			}
			if !b.Upper.Decimal.Equal(brackets[i+1].Lower) {
				return invalidTable(t.Year, "PIT bracket %d ends at %s but next starts at %s", i, b.Upper.Decimal, brackets[i+1].Lower)
			}
		}
		if b.Upper.Valid && !b.Upper.Decimal.GreaterThan(b.Lower) {
			return invalidTable(t.Year, "PIT bracket %d is empty", i)
		}
		if last && b.Upper.Valid {
			return invalidTable(t.Year, "last PIT bracket must be unbounded")
		}
	}
	if t.PIT.ExemptionThreshold.IsNegative() {
		return invalidTable(t.Year, "negative PIT exemption threshold")
	}
	if !validRate(t.PIT.ThresholdReliefRate) {
		return invalidTable(t.Year, "PIT threshold relief rate %s out of range", t.PIT.ThresholdReliefRate)
	}

	bands := sortedBands(t.CIT)
	if len(bands) == 0 {
		return invalidTable(t.Year, "no CIT bands")
	}
	for i, b := range bands {
		if !validRate(b.Rate) {
			return invalidTable(t.Year, "CIT band %d rate %s out of range", i, b.Rate)
		}
		if i < len(bands)-1 && !b.Upper.Valid {
			return invalidTable(t.Year, "more than one unbounded CIT band")
		}
	}
	if bands[len(bands)-1].Upper.Valid {
		return invalidTable(t.Year, "last CIT band must be unbounded")
	}

	if !validRate(t.VATRate) {
		return invalidTable(t.Year, "VAT rate %s out of range", t.VATRate)
	}
	for k, rate := range t.WHT {
		if !validRate(rate) {
			return invalidTable(t.Year, "WHT rate for %s/%s out of range", k.PaymentType, k.RecipientType)
		}
	}
	for cat, r := range t.CapitalAllowance {
		if !validRate(r.Initial) || !validRate(r.Annual) {
			return invalidTable(t.Year, "capital allowance rates for %s out of range", cat)
		}
	}
	if !validRate(t.CapitalAllowanceProfitCap) {
		return invalidTable(t.Year, "capital allowance profit cap %s out of range", t.CapitalAllowanceProfitCap)
	}

	rel := t.Relief
	for name, v := range map[string]decimal.Decimal{
		"cra_floor":                  rel.CRAFloor,
		"rent_relief_cap":            rel.RentReliefCap,
		"compensation_exemption_cap": rel.CompensationExemptionCap,
	} {
		if v.IsNegative() {
			return invalidTable(t.Year, "negative %s", name)
		}
	}
	for name, v := range map[string]decimal.Decimal{
		"cra_floor_rate":   rel.CRAFloorRate,
		"cra_gross_rate":   rel.CRAGrossRate,
		"rent_relief_rate": rel.RentReliefRate,
	} {
		if !validRate(v) {
			return invalidTable(t.Year, "%s out of range", name)
		}
	}
	return nil
}

// sortedBrackets returns a copy of brackets ordered by lower bound.
func sortedBrackets(in []Bracket) []Bracket {
	out := make([]Bracket, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Lower.LessThan(out[j].Lower) })
	return out
}

// sortedBands returns a copy of bands ordered by upper bound, unbounded last.
func sortedBands(in []CITBand) []CITBand {
	out := make([]CITBand, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Upper.Valid {
			return false
		}
		if !out[j].Upper.Valid {
			return true
		}
		return out[i].Upper.Decimal.LessThan(out[j].Upper.Decimal)
	})
	return out
}
