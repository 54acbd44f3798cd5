package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

type deductionsRepo struct {
	db *sqlx.DB
}

// NewDeductionsRepo creates a new PostgreSQL-backed DeductionsRepository.
func NewDeductionsRepo(db *sqlx.DB) port.DeductionsRepository {
	return &deductionsRepo{db: db}
}

func (r *deductionsRepo) GetByYear(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error) {
	var d domain.StatutoryDeductions
	err := r.db.GetContext(ctx, &d,
		"SELECT * FROM statutory_deductions WHERE user_id = $1 AND tax_year = $2", userID, year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deductionsRepo.GetByYear: %w", err)
	}
	return &d, nil
}

// Upsert creates the row on first save and overwrites every amount afterwards.
// The stored id and created_at are returned into d.
func (r *deductionsRepo) Upsert(ctx context.Context, d *domain.StatutoryDeductions) error {
	now := time.Now().UTC()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `INSERT INTO statutory_deductions (id, user_id, tax_year, pension, nhis, nhf,
			housing_loan_interest, life_insurance, annual_rent_paid, employment_compensation,
			gifts_received, pension_benefits, created_at, updated_at)
		VALUES (:id, :user_id, :tax_year, :pension, :nhis, :nhf,
			:housing_loan_interest, :life_insurance, :annual_rent_paid, :employment_compensation,
			:gifts_received, :pension_benefits, :created_at, :updated_at)
		ON CONFLICT (user_id, tax_year) DO UPDATE SET
			pension = EXCLUDED.pension,
			nhis = EXCLUDED.nhis,
			nhf = EXCLUDED.nhf,
			housing_loan_interest = EXCLUDED.housing_loan_interest,
			life_insurance = EXCLUDED.life_insurance,
			annual_rent_paid = EXCLUDED.annual_rent_paid,
			employment_compensation = EXCLUDED.employment_compensation,
			gifts_received = EXCLUDED.gifts_received,
			pension_benefits = EXCLUDED.pension_benefits,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, d)
	if err != nil {
		return fmt.Errorf("deductionsRepo.Upsert: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&d.ID, &d.CreatedAt); err != nil {
			return fmt.Errorf("deductionsRepo.Upsert scan: %w", err)
		}
	}
	return rows.Err()
}
