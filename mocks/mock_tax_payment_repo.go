package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockTaxPaymentRepo is a mock implementation of port.TaxPaymentRepository.
type MockTaxPaymentRepo struct {
	mock.Mock
}

func (m *MockTaxPaymentRepo) Create(ctx context.Context, p *domain.TaxPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTaxPaymentRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.TaxPayment, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxPayment), args.Error(1)
}

func (m *MockTaxPaymentRepo) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.TaxPayment, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxPayment), args.Error(1)
}

func (m *MockTaxPaymentRepo) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxPayment), args.Int(1), args.Error(2)
}

func (m *MockTaxPaymentRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
