package taxengine

import (
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// VATPeriodResult is the VAT position of one (year, month) filing period.
type VATPeriodResult struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	OutputVAT        decimal.Decimal `json:"output_vat"`
	InputVAT         decimal.Decimal `json:"input_vat"`
	NetPayable       decimal.Decimal `json:"net_payable"`
	ExcessInputVAT   decimal.Decimal `json:"excess_input_vat"`
	OutputVolume     decimal.Decimal `json:"output_volume"`
	InputVolume      decimal.Decimal `json:"input_volume"`
	ExemptVolume     decimal.Decimal `json:"exempt_volume"`
	TransactionCount int             `json:"transaction_count"`
	ExemptCount      int             `json:"exempt_count"`
}

// TransactionVAT is the VAT carried by a single transaction: zero when
// exempt, otherwise amount x rate rounded to kobo. Any stored vatAmount is
// ignored in favour of this recomputation.
func TransactionVAT(tx domain.VATTransaction, rate decimal.Decimal) decimal.Decimal {
	if tx.IsExempt {
		return decimal.Zero
	}
	return RoundKobo(nonNegative(tx.Amount).Mul(rate))
}

// ComputeVATForPeriod nets output against input VAT for the transactions of
// one filing period. Transactions outside (year, month) are skipped; grouping
// uses the same year/month keys as the filing status records. Exempt
// transactions count towards volume only.
func ComputeVATForPeriod(txs []domain.VATTransaction, year, month int, rate decimal.Decimal) VATPeriodResult {
	res := VATPeriodResult{
		Year: year, Month: month,
		OutputVAT: decimal.Zero, InputVAT: decimal.Zero,
		NetPayable: decimal.Zero, ExcessInputVAT: decimal.Zero,
		OutputVolume: decimal.Zero, InputVolume: decimal.Zero, ExemptVolume: decimal.Zero,
	}
	for i := range txs {
		tx := &txs[i]
		if tx.Year != year || tx.Month != month {
			continue
		}
		res.TransactionCount++
		amount := nonNegative(tx.Amount)
		if tx.IsExempt {
			res.ExemptCount++
			res.ExemptVolume = res.ExemptVolume.Add(amount)
			continue
		}
		vat := TransactionVAT(*tx, rate)
		switch tx.Type {
		case domain.VATOutput:
			res.OutputVAT = res.OutputVAT.Add(vat)
			res.OutputVolume = res.OutputVolume.Add(amount)
		case domain.VATInput:
			res.InputVAT = res.InputVAT.Add(vat)
			res.InputVolume = res.InputVolume.Add(amount)
		}
	}
	net := res.OutputVAT.Sub(res.InputVAT)
	if net.IsPositive() {
		res.NetPayable = net
	} else {
		res.ExcessInputVAT = net.Neg()
	}
	return res
}

// ComputeVATForYear returns the twelve monthly periods of a year in order.
func ComputeVATForYear(txs []domain.VATTransaction, year int, rate decimal.Decimal) []VATPeriodResult {
	periods := make([]VATPeriodResult, 0, 12)
	for m := 1; m <= 12; m++ {
		periods = append(periods, ComputeVATForPeriod(txs, year, m, rate))
	}
	return periods
}
