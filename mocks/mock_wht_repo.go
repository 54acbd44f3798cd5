package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockWHTRepo is a mock implementation of port.WHTRepository.
type MockWHTRepo struct {
	mock.Mock
}

func (m *MockWHTRepo) Create(ctx context.Context, tx *domain.WHTTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWHTRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WHTTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WHTTransaction), args.Error(1)
}

func (m *MockWHTRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.WHTTransaction, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WHTTransaction), args.Error(1)
}

func (m *MockWHTRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WHTTransaction), args.Int(1), args.Error(2)
}

func (m *MockWHTRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
