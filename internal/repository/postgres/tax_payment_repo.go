package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

type taxPaymentRepo struct {
	db *sqlx.DB
}

// NewTaxPaymentRepo creates a new PostgreSQL-backed TaxPaymentRepository.
func NewTaxPaymentRepo(db *sqlx.DB) port.TaxPaymentRepository {
	return &taxPaymentRepo{db: db}
}

func (r *taxPaymentRepo) Create(ctx context.Context, p *domain.TaxPayment) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO tax_payments (id, user_id, tax_year, amount, payment_date, payment_type,
			reference, method, status, created_at, updated_at)
		 VALUES (:id, :user_id, :tax_year, :amount, :payment_date, :payment_type,
			:reference, :method, :status, :created_at, :updated_at)`, p)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("taxPaymentRepo.Create: %w", err)
	}
	return nil
}

func (r *taxPaymentRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.TaxPayment, error) {
	var p domain.TaxPayment
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM tax_payments WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxPaymentRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *taxPaymentRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.TaxPayment, error) {
	var payments []domain.TaxPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM tax_payments WHERE user_id = $1 AND tax_year = $2 ORDER BY payment_date, id",
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("taxPaymentRepo.ListByYear: %w", err)
	}
	return payments, nil
}

func (r *taxPaymentRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM tax_payments WHERE user_id = $1 AND tax_year = $2", userID, year)
	if err != nil {
		return nil, 0, fmt.Errorf("taxPaymentRepo.List count: %w", err)
	}

	var payments []domain.TaxPayment
	err = r.db.SelectContext(ctx, &payments,
		`SELECT * FROM tax_payments WHERE user_id = $1 AND tax_year = $2
		 ORDER BY payment_date DESC, created_at DESC LIMIT $3 OFFSET $4`,
		userID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("taxPaymentRepo.List: %w", err)
	}
	return payments, total, nil
}

func (r *taxPaymentRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tax_payments WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("taxPaymentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
