package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/service"
)

// MockVATService is a mock implementation of service.VATService.
type MockVATService struct {
	mock.Mock
}

func (m *MockVATService) CreateTransaction(ctx context.Context, input *service.CreateVATTransactionInput) (*domain.VATTransaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATTransaction), args.Error(1)
}

func (m *MockVATService) ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VATTransaction), args.Int(1), args.Error(2)
}

func (m *MockVATService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockVATService) Periods(ctx context.Context, userID uuid.UUID, year int) ([]service.VATPeriod, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.VATPeriod), args.Error(1)
}

func (m *MockVATService) UpdateFiling(ctx context.Context, input *service.UpdateFilingInput) (*domain.VATFiling, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATFiling), args.Error(1)
}

func (m *MockVATService) SendReminders(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	args := m.Called(ctx, userID, year)
	return args.Int(0), args.Error(1)
}
