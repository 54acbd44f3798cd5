package taxengine_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
)

func individualInput() taxengine.Input {
	return taxengine.Input{
		UserID:      uuid.MustParse("4b0b7b4e-2f5b-4a53-9d7b-2f1c7e0e6b11"),
		Year:        2024,
		AccountType: domain.AccountTypeIndividual,
		Income: []domain.IncomeRecord{
			{Amount: dec("1800000"), TaxYear: 2024},
			{Amount: dec("1200000"), TaxYear: 2024},
		},
		Deductions: &domain.StatutoryDeductions{
			TaxYear:        2024,
			Pension:        dec("200000"),
			AnnualRentPaid: dec("2500000"),
		},
	}
}

func TestComputeTaxSummary_Individual(t *testing.T) {
	s, err := taxengine.ComputeTaxSummary(individualInput(), table2024())

	require.NoError(t, err)
	assertDecimal(t, "3000000", s.GrossIncome)
	assertDecimal(t, "800000", s.Reliefs.CRA)
	assertDecimal(t, "500000", s.Reliefs.RentRelief)
	assertDecimal(t, "1500000", s.TotalReliefs)
	assertDecimal(t, "1500000", s.TaxableIncome)
	require.NotNil(t, s.PIT)
	assert.Nil(t, s.CIT)
	assertDecimal(t, "205000", s.PITOrCITLiability)
	assertDecimal(t, "205000", s.TotalLiability)
	assertDecimal(t, "205000", s.Outstanding)
	assert.Len(t, s.VATPeriods, 12)
}

func TestComputeTaxSummary_RentReliefBelowCap(t *testing.T) {
	in := individualInput()
	in.Deductions.AnnualRentPaid = dec("1000000")

	s, err := taxengine.ComputeTaxSummary(in, table2024())

	require.NoError(t, err)
	assertDecimal(t, "800000", s.Reliefs.CRA)
	// 20% of rent paid, well under the 500,000 cap.
	assertDecimal(t, "200000", s.Reliefs.RentRelief)
	assertDecimal(t, "1200000", s.TotalReliefs)
	assertDecimal(t, "1800000", s.TaxableIncome)
	assertDecimal(t, "266000", s.PITOrCITLiability)
}

func TestComputeTaxSummary_SavingsAreAdvisory(t *testing.T) {
	s, err := taxengine.ComputeTaxSummary(individualInput(), table2024())

	require.NoError(t, err)
	// pension 240,000 eligible vs 200,000 recorded, NHF 75,000, NHIS 150,000
	assertDecimal(t, "265000", s.PotentialUnclaimedSavings)
	require.Len(t, s.SavingsOpportunities, 3)
	assert.Equal(t, "pension", s.SavingsOpportunities[0].Kind)
	assertDecimal(t, "40000", s.SavingsOpportunities[0].Shortfall)
	assertDecimal(t, "50350", s.EstimatedTaxSaving)
	assertDecimal(t, "205000", s.TotalLiability)
}

func TestComputeTaxSummary_PaymentsAndOtherTaxes(t *testing.T) {
	in := individualInput()
	in.VATTransactions = []domain.VATTransaction{
		{Type: domain.VATOutput, Amount: dec("400000"), Year: 2024, Month: 2},
	}
	in.WHTTransactions = []domain.WHTTransaction{
		{PaymentType: domain.WHTProfessionalFee, RecipientType: domain.RecipientIndividual, GrossAmount: dec("1000000"), TaxYear: 2024},
	}
	in.Payments = []domain.TaxPayment{
		{Amount: dec("100000"), Status: domain.TaxPaymentConfirmed},
		{Amount: dec("900000"), Status: domain.TaxPaymentPending},
	}

	s, err := taxengine.ComputeTaxSummary(in, table2024())

	require.NoError(t, err)
	assertDecimal(t, "30000", s.VATLiability)
	assertDecimal(t, "50000", s.WHTWithheld)
	assert.Equal(t, 1, s.WHTTransactionCount)
	assertDecimal(t, "285000", s.TotalLiability)
	assertDecimal(t, "100000", s.TotalPaid)
	assertDecimal(t, "185000", s.Outstanding)
}

func TestComputeTaxSummary_OverpaymentFloorsOutstanding(t *testing.T) {
	in := individualInput()
	in.Payments = []domain.TaxPayment{{Amount: dec("1000000"), Status: domain.TaxPaymentConfirmed}}

	s, err := taxengine.ComputeTaxSummary(in, table2024())

	require.NoError(t, err)
	assertDecimal(t, "0", s.Outstanding)
}

func TestComputeTaxSummary_Business(t *testing.T) {
	in := taxengine.Input{
		Year:        2024,
		AccountType: domain.AccountTypeBusiness,
		Income:      []domain.IncomeRecord{{Amount: dec("30000000"), TaxYear: 2024}},
		Expenses:    []domain.Expense{{Amount: dec("10000000"), TaxYear: 2024}},
		Assets:      []domain.CapitalAsset{asset(domain.AssetCategoryPlantMachinery, "4000000", 2024)},
		Deductions:  &domain.StatutoryDeductions{Pension: dec("500000")},
	}

	s, err := taxengine.ComputeTaxSummary(in, table2024())

	require.NoError(t, err)
	require.NotNil(t, s.CIT)
	assert.Nil(t, s.PIT)
	assertDecimal(t, "20000000", s.AssessableProfit)
	assertDecimal(t, "2000000", s.CapitalAllowance.Claimed)
	assertDecimal(t, "0", s.TotalReliefs)
	assertDecimal(t, "18000000", s.TaxableIncome)
	assertDecimal(t, "0.20", s.CIT.Rate)
	assertDecimal(t, "3600000", s.PITOrCITLiability)
	assert.Empty(t, s.SavingsOpportunities)
}

func TestComputeTaxSummary_Idempotent(t *testing.T) {
	in := individualInput()
	in.Assets = []domain.CapitalAsset{asset(domain.AssetCategoryMotorVehicle, "2000000", 2023)}
	in.PriorYears = []domain.YearTotals{{TaxYear: 2023, Income: dec("2000000"), Expenses: dec("500000")}}
	in.VATTransactions = []domain.VATTransaction{
		{Type: domain.VATOutput, Amount: dec("123456.78"), Year: 2024, Month: 7, TransactionDate: time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)},
	}

	first, err := taxengine.ComputeTaxSummary(in, table2024())
	require.NoError(t, err)
	second, err := taxengine.ComputeTaxSummary(in, table2024())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestComputeTaxSummary_WrongYearTableRejected(t *testing.T) {
	in := individualInput()
	in.Year = 2026

	s, err := taxengine.ComputeTaxSummary(in, ratetable.PITATable(2025))

	assert.Nil(t, s)
	assert.True(t, errors.Is(err, domain.ErrRateTableNotFound))
}

func TestComputeTaxSummary_UnknownWHTPairFails(t *testing.T) {
	in := individualInput()
	in.WHTTransactions = []domain.WHTTransaction{
		{PaymentType: domain.WHTDirectorFee, RecipientType: domain.RecipientCompany, GrossAmount: dec("10000")},
	}

	_, err := taxengine.ComputeTaxSummary(in, table2024())

	assert.True(t, errors.Is(err, domain.ErrUnsupportedCategory))
}

func TestComputeTaxSummary_UnknownAssetCategoryFails(t *testing.T) {
	in := individualInput()
	a := asset(domain.AssetCategoryMotorVehicle, "1000000", 2024)
	a.Category = domain.AssetCategory("spaceship")
	in.Assets = []domain.CapitalAsset{a}

	_, err := taxengine.ComputeTaxSummary(in, table2024())

	var catErr *taxengine.UnsupportedCategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "spaceship", catErr.Value)
}
