package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"naijatax/internal/config"
	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/service"
	"naijatax/mocks"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type taxMocks struct {
	profiles   *mocks.MockProfileRepo
	income     *mocks.MockIncomeRepo
	expenses   *mocks.MockExpenseRepo
	deductions *mocks.MockDeductionsRepo
	assets     *mocks.MockCapitalAssetRepo
	vat        *mocks.MockVATRepo
	wht        *mocks.MockWHTRepo
	payments   *mocks.MockTaxPaymentRepo
	totals     *mocks.MockYearTotalsRepo
}

func newTaxService(t *testing.T) (service.TaxService, *taxMocks) {
	t.Helper()
	m := &taxMocks{
		profiles:   new(mocks.MockProfileRepo),
		income:     new(mocks.MockIncomeRepo),
		expenses:   new(mocks.MockExpenseRepo),
		deductions: new(mocks.MockDeductionsRepo),
		assets:     new(mocks.MockCapitalAssetRepo),
		vat:        new(mocks.MockVATRepo),
		wht:        new(mocks.MockWHTRepo),
		payments:   new(mocks.MockTaxPaymentRepo),
		totals:     new(mocks.MockYearTotalsRepo),
	}
	svc := service.NewTaxService(service.TaxRepos{
		Profiles:   m.profiles,
		Income:     m.income,
		Expenses:   m.expenses,
		Deductions: m.deductions,
		Assets:     m.assets,
		VAT:        m.vat,
		WHT:        m.wht,
		Payments:   m.payments,
		YearTotals: m.totals,
	}, ratetable.NewDefaultProvider(), config.TaxConfig{MaxSummaryYears: 3, SummaryConcurrency: 2})
	return svc, m
}

// expectEmptyYear stubs every record list with nothing for any year.
func (m *taxMocks) expectEmptyYear(userID uuid.UUID) {
	m.income.On("ListByYear", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
	m.expenses.On("ListByYear", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
	m.deductions.On("GetByYear", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	m.assets.On("ListAcquiredBy", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
	m.vat.On("ListTransactionsByYear", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
	m.wht.On("ListByYear", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
	m.payments.On("ListByYear", mock.Anything, userID, mock.Anything).Return(nil, nil).Maybe()
}

func incomeRecord(userID uuid.UUID, amount string, year int) domain.IncomeRecord {
	return domain.IncomeRecord{
		ID:       uuid.New(),
		UserID:   userID,
		Category: "salary",
		Amount:   dec(amount),
		Date:     time.Date(year, 6, 30, 0, 0, 0, 0, time.UTC),
		TaxYear:  year,
	}
}

func TestTaxService_Summary_Individual(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	m.profiles.On("GetByUserID", mock.Anything, userID).
		Return(&domain.Profile{UserID: userID, AccountType: domain.AccountTypeIndividual}, nil)
	m.income.On("ListByYear", mock.Anything, userID, 2024).Return([]domain.IncomeRecord{
		incomeRecord(userID, "1800000", 2024),
		incomeRecord(userID, "1200000", 2024),
	}, nil)
	m.deductions.On("GetByYear", mock.Anything, userID, 2024).Return(&domain.StatutoryDeductions{
		UserID:         userID,
		TaxYear:        2024,
		Pension:        dec("200000"),
		AnnualRentPaid: dec("2500000"),
	}, nil)
	m.expectEmptyYear(userID)

	s, err := svc.Summary(context.Background(), userID, 2024)
	require.NoError(t, err)

	assert.Equal(t, domain.AccountTypeIndividual, s.AccountType)
	assert.True(t, dec("3000000").Equal(s.GrossIncome), s.GrossIncome.String())
	assert.True(t, dec("1500000").Equal(s.TaxableIncome), s.TaxableIncome.String())
	require.NotNil(t, s.PIT)
	assert.True(t, dec("205000").Equal(s.PITOrCITLiability), s.PITOrCITLiability.String())
	m.totals.AssertNotCalled(t, "ListYearTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxService_Summary_MissingProfileDefaultsToIndividual(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	m.profiles.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	m.expectEmptyYear(userID)

	s, err := svc.Summary(context.Background(), userID, 2024)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeIndividual, s.AccountType)
	assert.True(t, s.TotalLiability.IsZero())
}

func TestTaxService_Summary_UnknownYearQueriesNothing(t *testing.T) {
	svc, m := newTaxService(t)

	_, err := svc.Summary(context.Background(), uuid.New(), 2019)
	assert.ErrorIs(t, err, domain.ErrRateTableNotFound)
	m.income.AssertNotCalled(t, "ListByYear", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxService_Summary_MalformedRecordRejected(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	bad := incomeRecord(userID, "-10", 2024)
	m.profiles.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	m.income.On("ListByYear", mock.Anything, userID, 2024).Return([]domain.IncomeRecord{bad}, nil)
	m.expectEmptyYear(userID)

	_, err := svc.Summary(context.Background(), userID, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.Contains(t, err.Error(), bad.ID.String())
}

func TestTaxService_Summary_RepositoryErrorPropagates(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()
	dbErr := errors.New("connection reset")

	m.profiles.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	m.wht.On("ListByYear", mock.Anything, userID, 2024).Return(nil, dbErr)
	m.expectEmptyYear(userID)

	_, err := svc.Summary(context.Background(), userID, 2024)
	assert.ErrorIs(t, err, dbErr)
}

func TestTaxService_Summary_BusinessReplaysPriorYears(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	asset := domain.CapitalAsset{
		ID:                   uuid.New(),
		UserID:               userID,
		Description:          "Delivery van",
		Category:             domain.AssetCategoryMotorVehicle,
		Cost:                 dec("4000000"),
		AcquisitionDate:      time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		YearAcquired:         2023,
		InitialAllowanceRate: dec("0.50"),
		AnnualAllowanceRate:  dec("0.25"),
	}

	m.profiles.On("GetByUserID", mock.Anything, userID).
		Return(&domain.Profile{UserID: userID, AccountType: domain.AccountTypeBusiness}, nil)
	m.income.On("ListByYear", mock.Anything, userID, 2024).
		Return([]domain.IncomeRecord{incomeRecord(userID, "30000000", 2024)}, nil)
	m.assets.On("ListAcquiredBy", mock.Anything, userID, 2024).Return([]domain.CapitalAsset{asset}, nil)
	m.totals.On("ListYearTotals", mock.Anything, userID, 2023, 2023).
		Return([]domain.YearTotals{{TaxYear: 2023, Income: dec("30000000"), Expenses: dec("0")}}, nil)
	m.expectEmptyYear(userID)

	s, err := svc.Summary(context.Background(), userID, 2024)
	require.NoError(t, err)
	require.NotNil(t, s.CIT)
	assert.Nil(t, s.PIT)
	m.totals.AssertExpectations(t)
}

func TestTaxService_Summaries(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	m.profiles.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	m.expectEmptyYear(userID)

	out, err := svc.Summaries(context.Background(), userID, []int{2024, 2022, 2024})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2022, out[0].Year)
	assert.Equal(t, 2024, out[1].Year)
}

func TestTaxService_Summaries_Limits(t *testing.T) {
	svc, _ := newTaxService(t)

	_, err := svc.Summaries(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Summaries(context.Background(), uuid.New(), []int{2021, 2022, 2023, 2024})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxService_Summaries_OneBadYearFailsAll(t *testing.T) {
	svc, m := newTaxService(t)
	userID := uuid.New()

	m.profiles.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrNotFound).Maybe()
	m.expectEmptyYear(userID)

	_, err := svc.Summaries(context.Background(), userID, []int{2019, 2024})
	assert.ErrorIs(t, err, domain.ErrRateTableNotFound)
}

func TestTaxService_CalculatePIT(t *testing.T) {
	svc, _ := newTaxService(t)

	res, err := svc.CalculatePIT(service.PITInput{Year: 2024, TaxableIncome: dec("1500000")})
	require.NoError(t, err)
	assert.True(t, dec("205000").Equal(res.Tax), res.Tax.String())

	_, err = svc.CalculatePIT(service.PITInput{Year: 2024, TaxableIncome: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CalculatePIT(service.PITInput{Year: 2030, TaxableIncome: dec("1")})
	assert.ErrorIs(t, err, domain.ErrRateTableNotFound)
}

func TestTaxService_CalculateCIT(t *testing.T) {
	svc, _ := newTaxService(t)

	res, err := svc.CalculateCIT(service.CITInput{Year: 2024, Turnover: dec("25000000"), Profit: dec("5000000")})
	require.NoError(t, err)
	assert.True(t, res.Tax.IsZero())

	res, err = svc.CalculateCIT(service.CITInput{Year: 2024, Turnover: dec("150000000"), Profit: dec("10000000")})
	require.NoError(t, err)
	assert.True(t, dec("3000000").Equal(res.Tax), res.Tax.String())
}

func TestTaxService_CalculateWHT(t *testing.T) {
	svc, _ := newTaxService(t)

	res, err := svc.CalculateWHT(service.WHTInput{
		Year:          2024,
		GrossAmount:   dec("1000000"),
		PaymentType:   domain.WHTProfessionalFee,
		RecipientType: domain.RecipientIndividual,
	})
	require.NoError(t, err)
	assert.True(t, dec("50000").Equal(res.WHTAmount))
	assert.True(t, dec("950000").Equal(res.NetAmount))

	_, err = svc.CalculateWHT(service.WHTInput{
		Year:          2024,
		GrossAmount:   dec("1000"),
		PaymentType:   domain.WHTDirectorFee,
		RecipientType: domain.RecipientCompany,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedCategory)

	_, err = svc.CalculateWHT(service.WHTInput{Year: 2024, GrossAmount: dec("1000"), PaymentType: domain.WHTRent, RecipientType: "trust"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxService_CalculateReliefs(t *testing.T) {
	svc, _ := newTaxService(t)

	res, err := svc.CalculateReliefs(service.ReliefsInput{
		Year:        2024,
		GrossIncome: dec("3000000"),
		Deductions:  &domain.StatutoryDeductions{Pension: dec("200000"), AnnualRentPaid: dec("2500000")},
	})
	require.NoError(t, err)
	assert.True(t, dec("800000").Equal(res.CRA), res.CRA.String())
	assert.True(t, dec("500000").Equal(res.RentRelief), res.RentRelief.String())
	assert.True(t, dec("1500000").Equal(res.TotalReliefs), res.TotalReliefs.String())

	_, err = svc.CalculateReliefs(service.ReliefsInput{
		Year:        2024,
		GrossIncome: dec("3000000"),
		Deductions:  &domain.StatutoryDeductions{Pension: dec("-5")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxService_CalculateVAT(t *testing.T) {
	svc, _ := newTaxService(t)

	res, err := svc.CalculateVAT(service.VATPeriodInput{
		Year:  2024,
		Month: 3,
		Transactions: []service.VATLine{
			{Type: domain.VATOutput, Amount: dec("1000000")},
			{Type: domain.VATInput, Amount: dec("400000")},
			{Type: domain.VATOutput, Amount: dec("250000"), IsExempt: true},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("75000").Equal(res.OutputVAT))
	assert.True(t, dec("30000").Equal(res.InputVAT))
	assert.True(t, dec("45000").Equal(res.NetPayable))

	_, err = svc.CalculateVAT(service.VATPeriodInput{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxService_RateTable(t *testing.T) {
	svc, _ := newTaxService(t)

	table, err := svc.RateTable(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, table.Year)

	_, err = svc.RateTable(2010)
	assert.ErrorIs(t, err, domain.ErrRateTableNotFound)
}
