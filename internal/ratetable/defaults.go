// Package ratetable supplies the year-keyed Nigerian tax rate tables consumed
// by the tax engine: built-in tables for the Personal Income Tax Act regime,
// optionally overridden or extended from a YAML file.
package ratetable

import (
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
	"naijatax/internal/taxengine"
)

// Relief caps and thresholds under the Personal Income Tax Act as amended.
// Each is named so a revision only touches the value here or the YAML file.
var (
	CRAFloor                 = decimal.NewFromInt(200_000)
	CRAFloorRate             = decimal.RequireFromString("0.01")
	CRAGrossRate             = decimal.RequireFromString("0.20")
	RentReliefRate           = decimal.RequireFromString("0.20")
	RentReliefCap            = decimal.NewFromInt(500_000)
	CompensationExemptionCap = decimal.NewFromInt(50_000_000)
	MinimumWageThreshold     = decimal.NewFromInt(840_000)

	// PIT just above MinimumWageThreshold is capped at this share of the
	// excess; the cap stops binding a little below 1.1m.
	ThresholdReliefRate = decimal.RequireFromString("0.50")

	// Contributions are deductible in full; nil caps mean uncapped.
	PensionCap             = decimal.NullDecimal{}
	NHISCap                = decimal.NullDecimal{}
	NHFCap                 = decimal.NullDecimal{}
	HousingLoanInterestCap = decimal.NullDecimal{}
	LifeInsuranceCap       = decimal.NullDecimal{}

	VATRate                   = decimal.RequireFromString("0.075")
	CapitalAllowanceProfitCap = decimal.NewFromInt(2).Div(decimal.NewFromInt(3))

	SmallCompanyTurnover  = decimal.NewFromInt(25_000_000)
	MediumCompanyTurnover = decimal.NewFromInt(100_000_000)

	StandardPensionRate = decimal.RequireFromString("0.08")
	StandardNHFRate     = decimal.RequireFromString("0.025")
	StandardNHISRate    = decimal.RequireFromString("0.05")
)

// FirstBuiltinYear and LastBuiltinYear bound the years with built-in tables.
const (
	FirstBuiltinYear = 2021
	LastBuiltinYear  = 2025
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func upTo(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// pitaBrackets: first 300k at 7%, next 300k at 11%, next 500k at 15%,
// next 500k at 19%, next 1.6m at 21%, remainder at 24%.
func pitaBrackets() []taxengine.Bracket {
	return []taxengine.Bracket{
		{Lower: d("0"), Upper: upTo("300000"), Rate: d("0.07")},
		{Lower: d("300000"), Upper: upTo("600000"), Rate: d("0.11")},
		{Lower: d("600000"), Upper: upTo("1100000"), Rate: d("0.15")},
		{Lower: d("1100000"), Upper: upTo("1600000"), Rate: d("0.19")},
		{Lower: d("1600000"), Upper: upTo("3200000"), Rate: d("0.21")},
		{Lower: d("3200000"), Rate: d("0.24")},
	}
}

func whtRates() taxengine.WHTRates {
	both := func(rates taxengine.WHTRates, pt domain.WHTPaymentType, company, individual string) {
		rates[taxengine.WHTKey{PaymentType: pt, RecipientType: domain.RecipientCompany}] = d(company)
		rates[taxengine.WHTKey{PaymentType: pt, RecipientType: domain.RecipientIndividual}] = d(individual)
	}
	rates := taxengine.WHTRates{}
	both(rates, domain.WHTDividend, "0.10", "0.10")
	both(rates, domain.WHTInterest, "0.10", "0.10")
	both(rates, domain.WHTRoyalty, "0.10", "0.10")
	both(rates, domain.WHTRent, "0.10", "0.10")
	both(rates, domain.WHTProfessionalFee, "0.10", "0.05")
	both(rates, domain.WHTConsultancy, "0.10", "0.05")
	both(rates, domain.WHTManagementFee, "0.10", "0.05")
	both(rates, domain.WHTTechnicalFee, "0.10", "0.05")
	both(rates, domain.WHTCommission, "0.10", "0.05")
	both(rates, domain.WHTConstruction, "0.05", "0.05")
	both(rates, domain.WHTContractSupply, "0.05", "0.05")
	// Directors are natural persons; there is no company rate.
	rates[taxengine.WHTKey{PaymentType: domain.WHTDirectorFee, RecipientType: domain.RecipientIndividual}] = d("0.10")
	return rates
}

func allowanceRates() map[domain.AssetCategory]taxengine.AllowanceRates {
	return map[domain.AssetCategory]taxengine.AllowanceRates{
		domain.AssetCategoryIndustrialBuilding:    {Initial: d("0.15"), Annual: d("0.10")},
		domain.AssetCategoryNonIndustrialBuilding: {Initial: d("0.15"), Annual: d("0.10")},
		domain.AssetCategoryPlantMachinery:        {Initial: d("0.50"), Annual: d("0.25")},
		domain.AssetCategoryMotorVehicle:          {Initial: d("0.50"), Annual: d("0.25")},
		domain.AssetCategoryFurnitureFittings:     {Initial: d("0.25"), Annual: d("0.20")},
		domain.AssetCategoryRanchingPlantation:    {Initial: d("0.30"), Annual: d("0.50")},
	}
}

// PITATable builds the built-in table for year.
func PITATable(year int) *taxengine.RateTable {
	return &taxengine.RateTable{
		Year: year,
		PIT: taxengine.PITSchedule{
			Brackets:            pitaBrackets(),
			ExemptionThreshold:  MinimumWageThreshold,
			ThresholdReliefRate: ThresholdReliefRate,
		},
		Relief: taxengine.ReliefRules{
			CRAFloor:                 CRAFloor,
			CRAFloorRate:             CRAFloorRate,
			CRAGrossRate:             CRAGrossRate,
			RentReliefRate:           RentReliefRate,
			RentReliefCap:            RentReliefCap,
			CompensationExemptionCap: CompensationExemptionCap,
			PensionCap:               PensionCap,
			NHISCap:                  NHISCap,
			NHFCap:                   NHFCap,
			HousingLoanInterestCap:   HousingLoanInterestCap,
			LifeInsuranceCap:         LifeInsuranceCap,
		},
		CIT: []taxengine.CITBand{
			{Upper: decimal.NewNullDecimal(SmallCompanyTurnover), Rate: d("0")},
			{Upper: decimal.NewNullDecimal(MediumCompanyTurnover), Rate: d("0.20")},
			{Rate: d("0.30")},
		},
		VATRate:                   VATRate,
		WHT:                       whtRates(),
		CapitalAllowance:          allowanceRates(),
		CapitalAllowanceProfitCap: CapitalAllowanceProfitCap,
		Advisory: taxengine.AdvisoryRates{
			Pension: StandardPensionRate,
			NHF:     StandardNHFRate,
			NHIS:    StandardNHISRate,
		},
	}
}

// Builtin returns freshly built tables for every built-in year.
func Builtin() []*taxengine.RateTable {
	tables := make([]*taxengine.RateTable, 0, LastBuiltinYear-FirstBuiltinYear+1)
	for y := FirstBuiltinYear; y <= LastBuiltinYear; y++ {
		tables = append(tables, PITATable(y))
	}
	return tables
}
