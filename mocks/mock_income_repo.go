package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockIncomeRepo is a mock implementation of port.IncomeRepository.
type MockIncomeRepo struct {
	mock.Mock
}

func (m *MockIncomeRepo) Create(ctx context.Context, rec *domain.IncomeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockIncomeRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.IncomeRecord, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeRecord), args.Error(1)
}

func (m *MockIncomeRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.IncomeRecord, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeRecord), args.Error(1)
}

func (m *MockIncomeRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IncomeRecord), args.Int(1), args.Error(2)
}

func (m *MockIncomeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
