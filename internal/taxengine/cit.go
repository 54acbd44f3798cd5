package taxengine

import "github.com/shopspring/decimal"

// CITResult is the company income tax for a year.
type CITResult struct {
	Turnover    decimal.Decimal     `json:"turnover"`
	TotalProfit decimal.Decimal     `json:"total_profit"`
	BandUpper   decimal.NullDecimal `json:"band_upper"`
	Rate        decimal.Decimal     `json:"rate"`
	Tax         decimal.Decimal     `json:"tax"`
}

// ComputeCIT selects the band by turnover and applies its flat rate to the
// profit. A turnover equal to a band's upper bound belongs to that band, so
// with a 25,000,000 small-company ceiling exactly 25,000,000 is taxed at the
// small-company rate. A non-positive profit pays nothing in any band.
func ComputeCIT(year int, turnover, profit decimal.Decimal, bands []CITBand) (CITResult, error) {
	turnover = nonNegative(turnover)
	res := CITResult{Turnover: turnover, TotalProfit: profit, Tax: decimal.Zero}

	band, ok := citBandFor(turnover, bands)
	if !ok {
		return res, invalidTable(year, "no CIT band covers turnover %s", turnover)
	}
	res.BandUpper = band.Upper
	res.Rate = band.Rate
	if !profit.IsPositive() {
		return res, nil
	}
	res.Tax = RoundKobo(profit.Mul(band.Rate))
	return res, nil
}

func citBandFor(turnover decimal.Decimal, bands []CITBand) (CITBand, bool) {
	for _, b := range sortedBands(bands) {
		if !b.Upper.Valid || turnover.LessThanOrEqual(b.Upper.Decimal) {
			return b, true
		}
	}
	return CITBand{}, false
}
