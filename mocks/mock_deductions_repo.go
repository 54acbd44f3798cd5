package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockDeductionsRepo is a mock implementation of port.DeductionsRepository.
type MockDeductionsRepo struct {
	mock.Mock
}

func (m *MockDeductionsRepo) GetByYear(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatutoryDeductions), args.Error(1)
}

func (m *MockDeductionsRepo) Upsert(ctx context.Context, d *domain.StatutoryDeductions) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
