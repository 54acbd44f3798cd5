package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

// monthlyTotalsQuery yields all twelve months, zero-filled.
const monthlyTotalsQuery = `SELECT
	m.month,
	COALESCE((SELECT SUM(i.amount) FROM income_records i
		WHERE i.user_id = $1 AND i.tax_year = $2 AND EXTRACT(MONTH FROM i.date) = m.month), 0) AS income,
	COALESCE((SELECT SUM(e.amount) FROM expenses e
		WHERE e.user_id = $1 AND e.tax_year = $2 AND EXTRACT(MONTH FROM e.date) = m.month), 0) AS expenses,
	COALESCE((SELECT SUM(v.vat_amount) FROM vat_transactions v
		WHERE v.user_id = $1 AND v.year = $2 AND v.month = m.month AND v.type = 'output'), 0) AS output_vat,
	COALESCE((SELECT SUM(v.vat_amount) FROM vat_transactions v
		WHERE v.user_id = $1 AND v.year = $2 AND v.month = m.month AND v.type = 'input'), 0) AS input_vat
FROM generate_series(1, 12) AS m(month)
ORDER BY m.month`

func (r *statsRepo) MonthlyTotals(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyTotals, error) {
	var months []domain.MonthlyTotals
	if err := r.db.SelectContext(ctx, &months, monthlyTotalsQuery, userID, year); err != nil {
		return nil, fmt.Errorf("statsRepo.MonthlyTotals: %w", err)
	}
	return months, nil
}
