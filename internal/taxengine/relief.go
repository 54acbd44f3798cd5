package taxengine

import (
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// ReliefInput is the input of ComputeReliefs. A nil Deductions is treated as
// all-zero deductions.
type ReliefInput struct {
	GrossIncome decimal.Decimal
	Deductions  *domain.StatutoryDeductions
	AccountType domain.AccountType
}

// ReliefResult breaks down the reliefs and exemptions granted for a year.
type ReliefResult struct {
	GrossIncome           decimal.Decimal `json:"gross_income"`
	ExemptCompensation    decimal.Decimal `json:"exempt_compensation"`
	ExemptGifts           decimal.Decimal `json:"exempt_gifts"`
	ExemptPensionBenefits decimal.Decimal `json:"exempt_pension_benefits"`
	ExemptIncome          decimal.Decimal `json:"exempt_income"`
	RelievableIncome      decimal.Decimal `json:"relievable_income"`
	CRA                   decimal.Decimal `json:"cra"`
	RentRelief            decimal.Decimal `json:"rent_relief"`
	Pension               decimal.Decimal `json:"pension"`
	NHIS                  decimal.Decimal `json:"nhis"`
	NHF                   decimal.Decimal `json:"nhf"`
	HousingLoanInterest   decimal.Decimal `json:"housing_loan_interest"`
	LifeInsurance         decimal.Decimal `json:"life_insurance"`
	TotalStatutory        decimal.Decimal `json:"total_statutory_deductions"`
	TotalReliefs          decimal.Decimal `json:"total_reliefs"`
	DeductionsRecorded    bool            `json:"deductions_recorded"`
}

// ComputeReliefs computes the Consolidated Relief Allowance, rent relief and
// capped statutory deductions of an individual. Exempt receipts are removed
// from gross income before the CRA is computed; they are not deductions.
// Business accounts get no personal reliefs. Negative inputs count as zero.
func ComputeReliefs(in ReliefInput, rules ReliefRules) ReliefResult {
	gross := nonNegative(in.GrossIncome)
	res := ReliefResult{
		GrossIncome:        gross,
		RelievableIncome:   gross,
		DeductionsRecorded: in.Deductions != nil,
	}
	if in.AccountType == domain.AccountTypeBusiness {
		return res
	}

	var d domain.StatutoryDeductions
	if in.Deductions != nil {
		d = *in.Deductions
	}

	compensation := nonNegative(d.EmploymentCompensation)
	if compensation.GreaterThan(rules.CompensationExemptionCap) {
		compensation = rules.CompensationExemptionCap
	}
	res.ExemptCompensation = compensation
	res.ExemptGifts = nonNegative(d.GiftsReceived)
	res.ExemptPensionBenefits = nonNegative(d.PensionBenefits)
	exempt := res.ExemptCompensation.Add(res.ExemptGifts).Add(res.ExemptPensionBenefits)
	// Exemptions cannot remove more than was earned.
	if exempt.GreaterThan(gross) {
		exempt = gross
	}
	res.ExemptIncome = exempt
	res.RelievableIncome = gross.Sub(exempt)

	res.CRA = ConsolidatedRelief(res.RelievableIncome, rules)
	res.RentRelief = RentRelief(d.AnnualRentPaid, rules)

	res.Pension = capAt(nonNegative(d.Pension), rules.PensionCap)
	res.NHIS = capAt(nonNegative(d.NHIS), rules.NHISCap)
	res.NHF = capAt(nonNegative(d.NHF), rules.NHFCap)
	res.HousingLoanInterest = capAt(nonNegative(d.HousingLoanInterest), rules.HousingLoanInterestCap)
	res.LifeInsurance = capAt(nonNegative(d.LifeInsurance), rules.LifeInsuranceCap)
	res.TotalStatutory = res.Pension.Add(res.NHIS).Add(res.NHF).Add(res.HousingLoanInterest).Add(res.LifeInsurance)

	res.TotalReliefs = res.CRA.Add(res.RentRelief).Add(res.TotalStatutory)
	return res
}

// ConsolidatedRelief is max(floor, floorRate x gross) + grossRate x gross.
// A zero income still earns the fixed floor.
func ConsolidatedRelief(gross decimal.Decimal, rules ReliefRules) decimal.Decimal {
	gross = nonNegative(gross)
	floor := decimal.Max(rules.CRAFloor, gross.Mul(rules.CRAFloorRate))
	return RoundKobo(floor.Add(gross.Mul(rules.CRAGrossRate)))
}

// RentRelief is rate x rent paid, capped.
func RentRelief(rentPaid decimal.Decimal, rules ReliefRules) decimal.Decimal {
	relief := RoundKobo(nonNegative(rentPaid).Mul(rules.RentReliefRate))
	if relief.GreaterThan(rules.RentReliefCap) {
		return rules.RentReliefCap
	}
	return relief
}
