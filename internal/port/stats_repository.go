package port

import (
	"context"

	"github.com/google/uuid"

	"naijatax/internal/domain"
)

// StatsRepository provides the monthly aggregates behind the dashboard.
type StatsRepository interface {
	MonthlyTotals(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyTotals, error)
}
