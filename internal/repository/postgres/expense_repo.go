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

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, exp *domain.Expense) error {
	exp.ID = uuid.New()
	now := time.Now().UTC()
	exp.CreatedAt = now
	exp.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO expenses (id, user_id, category, description, amount, date, tax_year,
			vendor, receipt_ref, created_at, updated_at)
		 VALUES (:id, :user_id, :category, :description, :amount, :date, :tax_year,
			:vendor, :receipt_ref, :created_at, :updated_at)`, exp)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	var exp domain.Expense
	err := r.db.GetContext(ctx, &exp,
		"SELECT * FROM expenses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("expenseRepo.GetByID: %w", err)
	}
	return &exp, nil
}

func (r *expenseRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.SelectContext(ctx, &expenses,
		"SELECT * FROM expenses WHERE user_id = $1 AND tax_year = $2 ORDER BY date, id",
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.ListByYear: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.Expense, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND tax_year = $2", userID, year)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.List count: %w", err)
	}

	var expenses []domain.Expense
	err = r.db.SelectContext(ctx, &expenses,
		`SELECT * FROM expenses WHERE user_id = $1 AND tax_year = $2
		 ORDER BY date DESC, created_at DESC LIMIT $3 OFFSET $4`,
		userID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.List: %w", err)
	}
	return expenses, total, nil
}

func (r *expenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
