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

type incomeRepo struct {
	db *sqlx.DB
}

// NewIncomeRepo creates a new PostgreSQL-backed IncomeRepository.
func NewIncomeRepo(db *sqlx.DB) port.IncomeRepository {
	return &incomeRepo{db: db}
}

func (r *incomeRepo) Create(ctx context.Context, rec *domain.IncomeRecord) error {
	rec.ID = uuid.New()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO income_records (id, user_id, category, description, amount, date,
		tax_year, client_name, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Category, rec.Description, rec.Amount, rec.Date,
		rec.TaxYear, rec.ClientName, rec.InvoiceID, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("incomeRepo.Create: %w", err)
	}
	return nil
}

func (r *incomeRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.IncomeRecord, error) {
	var rec domain.IncomeRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM income_records WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("incomeRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *incomeRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.IncomeRecord, error) {
	var records []domain.IncomeRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM income_records WHERE user_id = $1 AND tax_year = $2
		 ORDER BY date, id`,
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("incomeRepo.ListByYear: %w", err)
	}
	return records, nil
}

func (r *incomeRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM income_records WHERE user_id = $1 AND tax_year = $2", userID, year)
	if err != nil {
		return nil, 0, fmt.Errorf("incomeRepo.List count: %w", err)
	}

	var records []domain.IncomeRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM income_records WHERE user_id = $1 AND tax_year = $2
		 ORDER BY date DESC, created_at DESC LIMIT $3 OFFSET $4`,
		userID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("incomeRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *incomeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM income_records WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("incomeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
