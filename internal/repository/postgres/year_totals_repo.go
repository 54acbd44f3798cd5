package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

type yearTotalsRepo struct {
	db *sqlx.DB
}

// NewYearTotalsRepo creates a new PostgreSQL-backed YearTotalsRepository.
func NewYearTotalsRepo(db *sqlx.DB) port.YearTotalsRepository {
	return &yearTotalsRepo{db: db}
}

// ListYearTotals returns one row per year in [fromYear, toYear] that has
// either income or expenses, ordered by year.
func (r *yearTotalsRepo) ListYearTotals(ctx context.Context, userID uuid.UUID, fromYear, toYear int) ([]domain.YearTotals, error) {
	var totals []domain.YearTotals
	err := r.db.SelectContext(ctx, &totals,
		`SELECT y.tax_year,
			COALESCE((SELECT SUM(i.amount) FROM income_records i
				WHERE i.user_id = $1 AND i.tax_year = y.tax_year), 0) AS income,
			COALESCE((SELECT SUM(e.amount) FROM expenses e
				WHERE e.user_id = $1 AND e.tax_year = y.tax_year), 0) AS expenses
		 FROM (
			SELECT tax_year FROM income_records WHERE user_id = $1 AND tax_year BETWEEN $2 AND $3
			UNION
			SELECT tax_year FROM expenses WHERE user_id = $1 AND tax_year BETWEEN $2 AND $3
		 ) y
		 ORDER BY y.tax_year`,
		userID, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("yearTotalsRepo.ListYearTotals: %w", err)
	}
	return totals, nil
}
