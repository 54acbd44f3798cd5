package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
)

// MockCapitalAssetRepo is a mock implementation of port.CapitalAssetRepository.
type MockCapitalAssetRepo struct {
	mock.Mock
}

func (m *MockCapitalAssetRepo) Create(ctx context.Context, asset *domain.CapitalAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockCapitalAssetRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CapitalAsset, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalAsset), args.Error(1)
}

func (m *MockCapitalAssetRepo) ListAcquiredBy(ctx context.Context, userID uuid.UUID, year int) ([]domain.CapitalAsset, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CapitalAsset), args.Error(1)
}

func (m *MockCapitalAssetRepo) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CapitalAsset), args.Int(1), args.Error(2)
}

func (m *MockCapitalAssetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
