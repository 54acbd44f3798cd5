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

type vatRepo struct {
	db *sqlx.DB
}

// NewVATRepo creates a new PostgreSQL-backed VATRepository.
func NewVATRepo(db *sqlx.DB) port.VATRepository {
	return &vatRepo{db: db}
}

func (r *vatRepo) CreateTransaction(ctx context.Context, tx *domain.VATTransaction) error {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO vat_transactions (id, user_id, type, amount, vat_amount, category, description,
			is_exempt, transaction_date, year, month, created_at)
		 VALUES (:id, :user_id, :type, :amount, :vat_amount, :category, :description,
			:is_exempt, :transaction_date, :year, :month, :created_at)`, tx)
	if err != nil {
		return fmt.Errorf("vatRepo.CreateTransaction: %w", err)
	}
	return nil
}

func (r *vatRepo) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.VATTransaction, error) {
	var tx domain.VATTransaction
	err := r.db.GetContext(ctx, &tx,
		"SELECT * FROM vat_transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("vatRepo.GetTransaction: %w", err)
	}
	return &tx, nil
}

func (r *vatRepo) ListTransactionsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATTransaction, error) {
	var txs []domain.VATTransaction
	err := r.db.SelectContext(ctx, &txs,
		`SELECT * FROM vat_transactions WHERE user_id = $1 AND year = $2
		 ORDER BY month, transaction_date, id`,
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("vatRepo.ListTransactionsByYear: %w", err)
	}
	return txs, nil
}

func (r *vatRepo) ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM vat_transactions WHERE user_id = $1 AND year = $2", userID, year)
	if err != nil {
		return nil, 0, fmt.Errorf("vatRepo.ListTransactions count: %w", err)
	}

	var txs []domain.VATTransaction
	err = r.db.SelectContext(ctx, &txs,
		`SELECT * FROM vat_transactions WHERE user_id = $1 AND year = $2
		 ORDER BY transaction_date DESC, created_at DESC LIMIT $3 OFFSET $4`,
		userID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vatRepo.ListTransactions: %w", err)
	}
	return txs, total, nil
}

func (r *vatRepo) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vat_transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("vatRepo.DeleteTransaction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vatRepo) GetFiling(ctx context.Context, userID uuid.UUID, year, month int) (*domain.VATFiling, error) {
	var f domain.VATFiling
	err := r.db.GetContext(ctx, &f,
		"SELECT * FROM vat_filings WHERE user_id = $1 AND year = $2 AND month = $3",
		userID, year, month)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("vatRepo.GetFiling: %w", err)
	}
	return &f, nil
}

func (r *vatRepo) ListFilingsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATFiling, error) {
	var filings []domain.VATFiling
	err := r.db.SelectContext(ctx, &filings,
		"SELECT * FROM vat_filings WHERE user_id = $1 AND year = $2 ORDER BY month",
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("vatRepo.ListFilingsByYear: %w", err)
	}
	return filings, nil
}

// filingRank ranks a status column in lifecycle order.
func filingRank(column string) string {
	quoted := make([]string, 0, 3)
	for _, s := range domain.FilingStatuses() {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return "array_position(ARRAY[" + strings.Join(quoted, ",") + "]::text[], " + column + ")"
}

// upsertFilingQuery only overwrites a row whose stored status is not ahead
// of the new one, so a concurrent writer cannot move a period backwards.
var upsertFilingQuery = `INSERT INTO vat_filings (id, user_id, year, month, status, filing_date, filing_reference,
		payment_date, payment_reference, created_at, updated_at)
	 VALUES (:id, :user_id, :year, :month, :status, :filing_date, :filing_reference,
		:payment_date, :payment_reference, :created_at, :updated_at)
	 ON CONFLICT (user_id, year, month) DO UPDATE SET
		status = EXCLUDED.status,
		filing_date = EXCLUDED.filing_date,
		filing_reference = EXCLUDED.filing_reference,
		payment_date = EXCLUDED.payment_date,
		payment_reference = EXCLUDED.payment_reference,
		updated_at = EXCLUDED.updated_at
	 WHERE ` + filingRank("vat_filings.status") + ` <= ` + filingRank("EXCLUDED.status") + `
	 RETURNING id, created_at`

// UpsertFiling writes the filing state of one period. The caller checks the
// transition first; a row that moved ahead in the meantime is left alone and
// reported as ErrInvalidFilingTransition.
func (r *vatRepo) UpsertFiling(ctx context.Context, f *domain.VATFiling) error {
	now := time.Now().UTC()
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = now
	f.UpdatedAt = now

	rows, err := r.db.NamedQueryContext(ctx, upsertFilingQuery, f)
	if err != nil {
		return fmt.Errorf("vatRepo.UpsertFiling: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("vatRepo.UpsertFiling: %w", err)
		}
		return fmt.Errorf("%w: period %d-%02d moved ahead of %s", domain.ErrInvalidFilingTransition, f.Year, f.Month, f.Status)
	}
	if err := rows.Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("vatRepo.UpsertFiling scan: %w", err)
	}
	return rows.Err()
}

func (r *vatRepo) ListUsersWithTransactions(ctx context.Context, year int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT DISTINCT user_id FROM vat_transactions WHERE year = $1 ORDER BY user_id", year)
	if err != nil {
		return nil, fmt.Errorf("vatRepo.ListUsersWithTransactions: %w", err)
	}
	return ids, nil
}
