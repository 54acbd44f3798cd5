package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
	"naijatax/internal/port"
	"naijatax/internal/taxengine"
)

// StatsService provides the dashboard aggregates of a tax year.
type StatsService interface {
	GetStats(ctx context.Context, userID uuid.UUID, year int) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// GetStats totals the year. NetVAT sums each month's net payable, so an
// excess-input month does not offset another month's liability.
func (s *statsService) GetStats(ctx context.Context, userID uuid.UUID, year int) (*domain.Stats, error) {
	months, err := s.statsRepo.MonthlyTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	stats := &domain.Stats{
		Year:          year,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetVAT:        decimal.Zero,
		Months:        months,
	}
	for _, m := range months {
		stats.TotalIncome = stats.TotalIncome.Add(m.Income)
		stats.TotalExpenses = stats.TotalExpenses.Add(m.Expenses)
		if net := m.OutputVAT.Sub(m.InputVAT); net.IsPositive() {
			stats.NetVAT = stats.NetVAT.Add(net)
		}
	}
	stats.TotalIncome = taxengine.RoundKobo(stats.TotalIncome)
	stats.TotalExpenses = taxengine.RoundKobo(stats.TotalExpenses)
	stats.NetVAT = taxengine.RoundKobo(stats.NetVAT)
	return stats, nil
}
