package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockYearTotalsRepo is a mock implementation of port.YearTotalsRepository.
type MockYearTotalsRepo struct {
	mock.Mock
}

func (m *MockYearTotalsRepo) ListYearTotals(ctx context.Context, userID uuid.UUID, fromYear, toYear int) ([]domain.YearTotals, error) {
	args := m.Called(ctx, userID, fromYear, toYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearTotals), args.Error(1)
}
