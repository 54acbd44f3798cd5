package taxengine

import "github.com/shopspring/decimal"

// BandTax is the tax charged inside one PIT bracket.
type BandTax struct {
	Lower        decimal.Decimal     `json:"lower"`
	Upper        decimal.NullDecimal `json:"upper"`
	Rate         decimal.Decimal     `json:"rate"`
	IncomeInBand decimal.Decimal     `json:"income_in_band"`
	Tax          decimal.Decimal     `json:"tax"`
}

// PITResult is the personal income tax on a taxable income.
type PITResult struct {
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	BelowThreshold  bool            `json:"below_threshold"`
	Bands           []BandTax       `json:"bands"`
	ThresholdRelief decimal.Decimal `json:"threshold_relief"`
	Tax             decimal.Decimal `json:"tax"`
	EffectiveRate   decimal.Decimal `json:"effective_rate"`
}

// ComputePIT applies the progressive schedule to taxable income. Each
// bracket's rate applies only to the slice of income inside it. Income at or
// below the exemption threshold pays nothing; just above it the tax is capped
// at ThresholdReliefRate of the excess, which keeps PIT continuous at the
// threshold. Band taxes are rounded to kobo and Tax is their sum less
// ThresholdRelief, so the breakdown always adds up.
func ComputePIT(taxableIncome decimal.Decimal, schedule PITSchedule) PITResult {
	income := nonNegative(taxableIncome)
	res := PITResult{TaxableIncome: income, ThresholdRelief: decimal.Zero, Tax: decimal.Zero, EffectiveRate: decimal.Zero}
	if income.LessThanOrEqual(schedule.ExemptionThreshold) {
		res.BelowThreshold = true
		return res
	}

	brackets := sortedBrackets(schedule.Brackets)
	res.Bands = make([]BandTax, 0, len(brackets))
	total := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Lower) {
			break
		}
		top := income
		if b.Upper.Valid && b.Upper.Decimal.LessThan(income) {
			top = b.Upper.Decimal
		}
		slice := top.Sub(b.Lower)
		tax := RoundKobo(slice.Mul(b.Rate))
		res.Bands = append(res.Bands, BandTax{
			Lower: b.Lower, Upper: b.Upper, Rate: b.Rate,
			IncomeInBand: slice, Tax: tax,
		})
		total = total.Add(tax)
	}
	res.Tax = total
	if schedule.ThresholdReliefRate.IsPositive() {
		capped := RoundKobo(income.Sub(schedule.ExemptionThreshold).Mul(schedule.ThresholdReliefRate))
		if capped.LessThan(total) {
			res.ThresholdRelief = total.Sub(capped)
			res.Tax = capped
		}
	}
	if income.IsPositive() {
		res.EffectiveRate = res.Tax.DivRound(income, 6)
	}
	return res
}
