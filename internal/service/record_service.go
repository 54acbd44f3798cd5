package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

// CreateIncomeInput is the DTO for recording income. The tax year is the
// calendar year of Date.
type CreateIncomeInput struct {
	UserID      uuid.UUID       `json:"-"`
	Category    string          `json:"category" validate:"required,max=50"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0,kobo"`
	Date        time.Time       `json:"date" validate:"required"`
	ClientName  string          `json:"client_name" validate:"max=200"`
	InvoiceID   *uuid.UUID      `json:"invoice_id"`
}

// CreateExpenseInput is the DTO for recording a business expense.
type CreateExpenseInput struct {
	UserID      uuid.UUID              `json:"-"`
	Category    domain.ExpenseCategory `json:"category" validate:"required"`
	Description string                 `json:"description" validate:"max=500"`
	Amount      decimal.Decimal        `json:"amount" validate:"gte=0,kobo"`
	Date        time.Time              `json:"date" validate:"required"`
	Vendor      string                 `json:"vendor" validate:"max=200"`
	ReceiptRef  string                 `json:"receipt_ref" validate:"max=100"`
}

// CreateTaxPaymentInput is the DTO for recording remittance evidence.
// Status defaults to pending.
type CreateTaxPaymentInput struct {
	UserID      uuid.UUID               `json:"-"`
	TaxYear     int                     `json:"tax_year" validate:"gte=2000"`
	Amount      decimal.Decimal         `json:"amount" validate:"gt=0,kobo"`
	PaymentDate time.Time               `json:"payment_date" validate:"required"`
	PaymentType domain.TaxPaymentType   `json:"payment_type" validate:"required"`
	Reference   string                  `json:"reference" validate:"max=100"`
	Method      string                  `json:"method" validate:"max=50"`
	Status      domain.TaxPaymentStatus `json:"status"`
}

// DeductionsInput is the DTO for saving a year's statutory deductions.
type DeductionsInput struct {
	UserID                 uuid.UUID       `json:"-"`
	TaxYear                int             `json:"-"`
	Pension                decimal.Decimal `json:"pension"`
	NHIS                   decimal.Decimal `json:"nhis"`
	NHF                    decimal.Decimal `json:"nhf"`
	HousingLoanInterest    decimal.Decimal `json:"housing_loan_interest"`
	LifeInsurance          decimal.Decimal `json:"life_insurance"`
	AnnualRentPaid         decimal.Decimal `json:"annual_rent_paid"`
	EmploymentCompensation decimal.Decimal `json:"employment_compensation"`
	GiftsReceived          decimal.Decimal `json:"gifts_received"`
	PensionBenefits        decimal.Decimal `json:"pension_benefits"`
}

// ProfileInput is the DTO for saving account settings.
type ProfileInput struct {
	UserID      uuid.UUID          `json:"-"`
	FullName    string             `json:"full_name" validate:"max=200"`
	Email       string             `json:"email" validate:"omitempty,email"`
	AccountType domain.AccountType `json:"account_type" validate:"required"`
}

// RecordService manages the plain records a tax summary is computed from.
type RecordService interface {
	CreateIncome(ctx context.Context, input *CreateIncomeInput) (*domain.IncomeRecord, error)
	ListIncome(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error)
	DeleteIncome(ctx context.Context, userID, id uuid.UUID) error

	CreateExpense(ctx context.Context, input *CreateExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.Expense, int, error)
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error

	CreatePayment(ctx context.Context, input *CreateTaxPaymentInput) (*domain.TaxPayment, error)
	ListPayments(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error)
	DeletePayment(ctx context.Context, userID, id uuid.UUID) error

	GetDeductions(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error)
	SaveDeductions(ctx context.Context, input *DeductionsInput) (*domain.StatutoryDeductions, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	SaveProfile(ctx context.Context, input *ProfileInput) (*domain.Profile, error)
}

type recordService struct {
	income     port.IncomeRepository
	expenses   port.ExpenseRepository
	payments   port.TaxPaymentRepository
	deductions port.DeductionsRepository
	profiles   port.ProfileRepository
}

// NewRecordService creates a new RecordService implementation.
func NewRecordService(
	income port.IncomeRepository,
	expenses port.ExpenseRepository,
	payments port.TaxPaymentRepository,
	deductions port.DeductionsRepository,
	profiles port.ProfileRepository,
) RecordService {
	return &recordService{
		income:     income,
		expenses:   expenses,
		payments:   payments,
		deductions: deductions,
		profiles:   profiles,
	}
}

func (s *recordService) CreateIncome(ctx context.Context, input *CreateIncomeInput) (*domain.IncomeRecord, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	rec := &domain.IncomeRecord{
		UserID:      input.UserID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		TaxYear:     input.Date.Year(),
		ClientName:  input.ClientName,
		InvoiceID:   input.InvoiceID,
	}
	if err := domain.ValidateInput(rec); err != nil {
		return nil, err
	}
	if err := s.income.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("recordService.CreateIncome: %w", err)
	}
	return rec, nil
}

func (s *recordService) ListIncome(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error) {
	return s.income.List(ctx, userID, year, offset, limit)
}

func (s *recordService) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	return s.income.Delete(ctx, userID, id)
}

func (s *recordService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	exp := &domain.Expense{
		UserID:      input.UserID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		TaxYear:     input.Date.Year(),
		Vendor:      input.Vendor,
		ReceiptRef:  input.ReceiptRef,
	}
	if err := domain.ValidateInput(exp); err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("recordService.CreateExpense: %w", err)
	}
	return exp, nil
}

func (s *recordService) ListExpenses(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.Expense, int, error) {
	return s.expenses.List(ctx, userID, year, offset, limit)
}

func (s *recordService) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	return s.expenses.Delete(ctx, userID, id)
}

func (s *recordService) CreatePayment(ctx context.Context, input *CreateTaxPaymentInput) (*domain.TaxPayment, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = domain.TaxPaymentPending
	}
	p := &domain.TaxPayment{
		UserID:      input.UserID,
		TaxYear:     input.TaxYear,
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		PaymentType: input.PaymentType,
		Reference:   input.Reference,
		Method:      input.Method,
		Status:      status,
	}
	if err := domain.ValidateInput(p); err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("recordService.CreatePayment: %w", err)
	}
	return p, nil
}

func (s *recordService) ListPayments(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error) {
	return s.payments.List(ctx, userID, year, offset, limit)
}

func (s *recordService) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	return s.payments.Delete(ctx, userID, id)
}

func (s *recordService) GetDeductions(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error) {
	return s.deductions.GetByYear(ctx, userID, year)
}

// SaveDeductions replaces the deductions of (user, year) as a whole.
func (s *recordService) SaveDeductions(ctx context.Context, input *DeductionsInput) (*domain.StatutoryDeductions, error) {
	d := &domain.StatutoryDeductions{
		UserID:                 input.UserID,
		TaxYear:                input.TaxYear,
		Pension:                input.Pension,
		NHIS:                   input.NHIS,
		NHF:                    input.NHF,
		HousingLoanInterest:    input.HousingLoanInterest,
		LifeInsurance:          input.LifeInsurance,
		AnnualRentPaid:         input.AnnualRentPaid,
		EmploymentCompensation: input.EmploymentCompensation,
		GiftsReceived:          input.GiftsReceived,
		PensionBenefits:        input.PensionBenefits,
	}
	if err := domain.ValidateInput(d); err != nil {
		return nil, err
	}
	if err := s.deductions.Upsert(ctx, d); err != nil {
		return nil, fmt.Errorf("recordService.SaveDeductions: %w", err)
	}
	return d, nil
}

func (s *recordService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *recordService) SaveProfile(ctx context.Context, input *ProfileInput) (*domain.Profile, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	p := &domain.Profile{
		UserID:      input.UserID,
		FullName:    input.FullName,
		Email:       input.Email,
		AccountType: input.AccountType,
	}
	if err := domain.ValidateInput(p); err != nil {
		return nil, err
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("recordService.SaveProfile: %w", err)
	}
	return p, nil
}
