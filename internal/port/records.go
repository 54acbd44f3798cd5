package port

import (
	"context"

	"github.com/google/uuid"

	"naijatax/internal/domain"
)

// ProfileRepository persists the account-level settings of a user.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// IncomeRepository defines the contract for income record persistence.
// Every query is scoped to the owning user.
type IncomeRepository interface {
	Create(ctx context.Context, rec *domain.IncomeRecord) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.IncomeRecord, error)
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.IncomeRecord, error)
	List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExpenseRepository defines the contract for expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, exp *domain.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error)
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.Expense, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// DeductionsRepository keeps one statutory deductions row per (user, year).
// GetByYear returns domain.ErrNotFound when nothing was saved for the year.
type DeductionsRepository interface {
	GetByYear(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error)
	Upsert(ctx context.Context, d *domain.StatutoryDeductions) error
}

// CapitalAssetRepository defines the contract for capital asset persistence.
// ListAcquiredBy returns every asset acquired in or before year, since
// allowances are replayed from the first acquisition.
type CapitalAssetRepository interface {
	Create(ctx context.Context, asset *domain.CapitalAsset) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CapitalAsset, error)
	ListAcquiredBy(ctx context.Context, userID uuid.UUID, year int) ([]domain.CapitalAsset, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// VATRepository persists VAT transactions and the filing state of each
// monthly period.
type VATRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.VATTransaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.VATTransaction, error)
	ListTransactionsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATTransaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error

	GetFiling(ctx context.Context, userID uuid.UUID, year, month int) (*domain.VATFiling, error)
	ListFilingsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATFiling, error)
	// UpsertFiling never moves a stored status backwards; it returns
	// domain.ErrInvalidFilingTransition instead.
	UpsertFiling(ctx context.Context, filing *domain.VATFiling) error

	// ListUsersWithTransactions returns the users holding VAT activity in year.
	ListUsersWithTransactions(ctx context.Context, year int) ([]uuid.UUID, error)
}

// WHTRepository persists withholding transactions. Rows are immutable; a
// correction is a delete followed by a new record.
type WHTRepository interface {
	Create(ctx context.Context, tx *domain.WHTTransaction) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WHTTransaction, error)
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.WHTTransaction, error)
	List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TaxPaymentRepository persists remittance evidence.
type TaxPaymentRepository interface {
	Create(ctx context.Context, p *domain.TaxPayment) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.TaxPayment, error)
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.TaxPayment, error)
	List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// YearTotalsRepository aggregates income and expenses per tax year.
type YearTotalsRepository interface {
	ListYearTotals(ctx context.Context, userID uuid.UUID, fromYear, toYear int) ([]domain.YearTotals, error)
}
