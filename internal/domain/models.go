package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile carries the account-level flags the tax engine consumes.
type Profile struct {
	UserID      uuid.UUID   `db:"user_id" json:"user_id"`
	FullName    string      `db:"full_name" json:"full_name"`
	Email       string      `db:"email" json:"email"`
	AccountType AccountType `db:"account_type" json:"account_type" validate:"oneof=individual business"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// IncomeRecord is a single amount of income received.
type IncomeRecord struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	Category    string          `db:"category" json:"category" validate:"required"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount" validate:"gte=0,kobo"`
	Date        time.Time       `db:"date" json:"date" validate:"required"`
	TaxYear     int             `db:"tax_year" json:"tax_year" validate:"gte=2000"`
	ClientName  string          `db:"client_name" json:"client_name"`
	InvoiceID   *uuid.UUID      `db:"invoice_id" json:"invoice_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Expense is a single business expense.
type Expense struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	Category    ExpenseCategory `db:"category" json:"category" validate:"oneof=rent salaries utilities transport supplies professional_fees marketing maintenance insurance other"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount" validate:"gte=0,kobo"`
	Date        time.Time       `db:"date" json:"date" validate:"required"`
	TaxYear     int             `db:"tax_year" json:"tax_year" validate:"gte=2000"`
	Vendor      string          `db:"vendor" json:"vendor"`
	ReceiptRef  string          `db:"receipt_ref" json:"receipt_ref"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// StatutoryDeductions holds the yearly relief inputs of one user.
// There is at most one row per (user, year).
type StatutoryDeductions struct {
	ID                     uuid.UUID       `db:"id" json:"id"`
	UserID                 uuid.UUID       `db:"user_id" json:"user_id"`
	TaxYear                int             `db:"tax_year" json:"tax_year" validate:"gte=2000"`
	Pension                decimal.Decimal `db:"pension" json:"pension" validate:"gte=0,kobo"`
	NHIS                   decimal.Decimal `db:"nhis" json:"nhis" validate:"gte=0,kobo"`
	NHF                    decimal.Decimal `db:"nhf" json:"nhf" validate:"gte=0,kobo"`
	HousingLoanInterest    decimal.Decimal `db:"housing_loan_interest" json:"housing_loan_interest" validate:"gte=0,kobo"`
	LifeInsurance          decimal.Decimal `db:"life_insurance" json:"life_insurance" validate:"gte=0,kobo"`
	AnnualRentPaid         decimal.Decimal `db:"annual_rent_paid" json:"annual_rent_paid" validate:"gte=0,kobo"`
	EmploymentCompensation decimal.Decimal `db:"employment_compensation" json:"employment_compensation" validate:"gte=0,kobo"`
	GiftsReceived          decimal.Decimal `db:"gifts_received" json:"gifts_received" validate:"gte=0,kobo"`
	PensionBenefits        decimal.Decimal `db:"pension_benefits" json:"pension_benefits" validate:"gte=0,kobo"`
	CreatedAt              time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at" json:"updated_at"`
}

// CapitalAsset is a qualifying asset. Its allowance rates are fixed from the
// rate table of the acquisition year; written-down value and cumulative
// allowance are recomputed per tax year and never stored.
type CapitalAsset struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	UserID               uuid.UUID       `db:"user_id" json:"user_id"`
	Description          string          `db:"description" json:"description"`
	Category             AssetCategory   `db:"category" json:"category" validate:"required"`
	Cost                 decimal.Decimal `db:"cost" json:"cost" validate:"gt=0,kobo"`
	AcquisitionDate      time.Time       `db:"acquisition_date" json:"acquisition_date" validate:"required"`
	YearAcquired         int             `db:"year_acquired" json:"year_acquired" validate:"gte=2000"`
	InitialAllowanceRate decimal.Decimal `db:"initial_allowance_rate" json:"initial_allowance_rate" validate:"gte=0,lte=1"`
	AnnualAllowanceRate  decimal.Decimal `db:"annual_allowance_rate" json:"annual_allowance_rate" validate:"gte=0,lte=1"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// VATTransaction is a sale (output) or purchase (input) carrying VAT.
// VATAmount is derived from Amount, IsExempt and the year's VAT rate.
type VATTransaction struct {
	ID              uuid.UUID          `db:"id" json:"id"`
	UserID          uuid.UUID          `db:"user_id" json:"user_id"`
	Type            VATTransactionType `db:"type" json:"type" validate:"oneof=output input"`
	Amount          decimal.Decimal    `db:"amount" json:"amount" validate:"gte=0,kobo"`
	VATAmount       decimal.Decimal    `db:"vat_amount" json:"vat_amount" validate:"gte=0"`
	Category        string             `db:"category" json:"category"`
	Description     string             `db:"description" json:"description"`
	IsExempt        bool               `db:"is_exempt" json:"is_exempt"`
	TransactionDate time.Time          `db:"transaction_date" json:"transaction_date" validate:"required"`
	Year            int                `db:"year" json:"year" validate:"gte=2000"`
	Month           int                `db:"month" json:"month" validate:"gte=1,lte=12"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
}

// VATFiling is the filing state of one (user, year, month) VAT period.
type VATFiling struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	UserID           uuid.UUID    `db:"user_id" json:"user_id"`
	Year             int          `db:"year" json:"year" validate:"gte=2000"`
	Month            int          `db:"month" json:"month" validate:"gte=1,lte=12"`
	Status           FilingStatus `db:"status" json:"status" validate:"oneof=pending filed paid"`
	FilingDate       *time.Time   `db:"filing_date" json:"filing_date"`
	FilingReference  string       `db:"filing_reference" json:"filing_reference"`
	PaymentDate      *time.Time   `db:"payment_date" json:"payment_date"`
	PaymentReference string       `db:"payment_reference" json:"payment_reference"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// WHTTransaction is a payment from which tax was withheld at source.
// Rate, WHTAmount and NetAmount are derived; a correction is delete + recreate.
type WHTTransaction struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	PaymentType   WHTPaymentType  `db:"payment_type" json:"payment_type" validate:"required"`
	RecipientType RecipientType   `db:"recipient_type" json:"recipient_type" validate:"oneof=individual company"`
	RecipientName string          `db:"recipient_name" json:"recipient_name"`
	RecipientTIN  string          `db:"recipient_tin" json:"recipient_tin"`
	GrossAmount   decimal.Decimal `db:"gross_amount" json:"gross_amount" validate:"gte=0,kobo"`
	WHTRate       decimal.Decimal `db:"wht_rate" json:"wht_rate" validate:"gte=0,lte=1"`
	WHTAmount     decimal.Decimal `db:"wht_amount" json:"wht_amount" validate:"gte=0"`
	NetAmount     decimal.Decimal `db:"net_amount" json:"net_amount" validate:"gte=0"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date" validate:"required"`
	TaxYear       int             `db:"tax_year" json:"tax_year" validate:"gte=2000"`
	Description   string          `db:"description" json:"description"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// TaxPayment is remittance evidence, not a computed liability.
type TaxPayment struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	UserID      uuid.UUID        `db:"user_id" json:"user_id"`
	TaxYear     int              `db:"tax_year" json:"tax_year" validate:"gte=2000"`
	Amount      decimal.Decimal  `db:"amount" json:"amount" validate:"gt=0,kobo"`
	PaymentDate time.Time        `db:"payment_date" json:"payment_date" validate:"required"`
	PaymentType TaxPaymentType   `db:"payment_type" json:"payment_type" validate:"oneof=pit cit vat wht other"`
	Reference   string           `db:"reference" json:"reference"`
	Method      string           `db:"method" json:"method"`
	Status      TaxPaymentStatus `db:"status" json:"status" validate:"oneof=pending confirmed rejected"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// YearTotals is the income and expense total of one tax year.
type YearTotals struct {
	TaxYear  int             `db:"tax_year" json:"tax_year"`
	Income   decimal.Decimal `db:"income" json:"income"`
	Expenses decimal.Decimal `db:"expenses" json:"expenses"`
}

// MonthlyTotals aggregates one calendar month of recorded activity.
type MonthlyTotals struct {
	Month     int             `db:"month" json:"month"`
	Income    decimal.Decimal `db:"income" json:"income"`
	Expenses  decimal.Decimal `db:"expenses" json:"expenses"`
	OutputVAT decimal.Decimal `db:"output_vat" json:"output_vat"`
	InputVAT  decimal.Decimal `db:"input_vat" json:"input_vat"`
}

// Stats is the dashboard view of one tax year.
type Stats struct {
	Year          int             `json:"year"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetVAT        decimal.Decimal `json:"net_vat"`
	Months        []MonthlyTotals `json:"months"`
}
