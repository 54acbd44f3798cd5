package taxengine

import (
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// WHTResult is the withholding on a single payment.
type WHTResult struct {
	PaymentType   domain.WHTPaymentType `json:"payment_type"`
	RecipientType domain.RecipientType  `json:"recipient_type"`
	GrossAmount   decimal.Decimal       `json:"gross_amount"`
	Rate          decimal.Decimal       `json:"rate"`
	WHTAmount     decimal.Decimal       `json:"wht_amount"`
	NetAmount     decimal.Decimal       `json:"net_amount"`
}

// ComputeWHT looks up the rate for the payment/recipient pair and splits the
// gross amount. The net is derived by subtraction so that net + wht equals
// gross exactly. An unknown pair is an error, never a zero rate.
func ComputeWHT(year int, gross decimal.Decimal, paymentType domain.WHTPaymentType, recipientType domain.RecipientType, rates WHTRates) (WHTResult, error) {
	rate, err := rates.Lookup(year, paymentType, recipientType)
	if err != nil {
		return WHTResult{}, err
	}
	gross = nonNegative(gross)
	wht := RoundKobo(gross.Mul(rate))
	return WHTResult{
		PaymentType:   paymentType,
		RecipientType: recipientType,
		GrossAmount:   gross,
		Rate:          rate,
		WHTAmount:     wht,
		NetAmount:     gross.Sub(wht),
	}, nil
}
