package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockVATRepo is a mock implementation of port.VATRepository.
type MockVATRepo struct {
	mock.Mock
}

func (m *MockVATRepo) CreateTransaction(ctx context.Context, tx *domain.VATTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVATRepo) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.VATTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATTransaction), args.Error(1)
}

func (m *MockVATRepo) ListTransactionsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATTransaction, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATTransaction), args.Error(1)
}

func (m *MockVATRepo) ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VATTransaction), args.Int(1), args.Error(2)
}

func (m *MockVATRepo) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockVATRepo) GetFiling(ctx context.Context, userID uuid.UUID, year, month int) (*domain.VATFiling, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATFiling), args.Error(1)
}

func (m *MockVATRepo) ListFilingsByYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.VATFiling, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATFiling), args.Error(1)
}

func (m *MockVATRepo) UpsertFiling(ctx context.Context, filing *domain.VATFiling) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockVATRepo) ListUsersWithTransactions(ctx context.Context, year int) ([]uuid.UUID, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
