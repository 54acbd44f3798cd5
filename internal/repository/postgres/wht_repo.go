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

type whtRepo struct {
	db *sqlx.DB
}

// NewWHTRepo creates a new PostgreSQL-backed WHTRepository.
func NewWHTRepo(db *sqlx.DB) port.WHTRepository {
	return &whtRepo{db: db}
}

func (r *whtRepo) Create(ctx context.Context, tx *domain.WHTTransaction) error {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO wht_transactions (id, user_id, payment_type, recipient_type, recipient_name,
			recipient_tin, gross_amount, wht_rate, wht_amount, net_amount, payment_date, tax_year,
			description, created_at)
		 VALUES (:id, :user_id, :payment_type, :recipient_type, :recipient_name,
			:recipient_tin, :gross_amount, :wht_rate, :wht_amount, :net_amount, :payment_date, :tax_year,
			:description, :created_at)`, tx)
	if err != nil {
		return fmt.Errorf("whtRepo.Create: %w", err)
	}
	return nil
}

func (r *whtRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WHTTransaction, error) {
	var tx domain.WHTTransaction
	err := r.db.GetContext(ctx, &tx,
		"SELECT * FROM wht_transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("whtRepo.GetByID: %w", err)
	}
	return &tx, nil
}

func (r *whtRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.WHTTransaction, error) {
	var txs []domain.WHTTransaction
	err := r.db.SelectContext(ctx, &txs,
		"SELECT * FROM wht_transactions WHERE user_id = $1 AND tax_year = $2 ORDER BY payment_date, id",
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("whtRepo.ListByYear: %w", err)
	}
	return txs, nil
}

func (r *whtRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM wht_transactions WHERE user_id = $1 AND tax_year = $2", userID, year)
	if err != nil {
		return nil, 0, fmt.Errorf("whtRepo.List count: %w", err)
	}

	var txs []domain.WHTTransaction
	err = r.db.SelectContext(ctx, &txs,
		`SELECT * FROM wht_transactions WHERE user_id = $1 AND tax_year = $2
		 ORDER BY payment_date DESC, created_at DESC LIMIT $3 OFFSET $4`,
		userID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("whtRepo.List: %w", err)
	}
	return txs, total, nil
}

func (r *whtRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM wht_transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("whtRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
