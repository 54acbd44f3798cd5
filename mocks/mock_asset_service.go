package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/service"
	"naijatax/internal/taxengine"
)

// MockAssetService is a mock implementation of service.AssetService.
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Create(ctx context.Context, input *service.CreateAssetInput) (*domain.CapitalAsset, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalAsset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CapitalAsset), args.Int(1), args.Error(2)
}

func (m *MockAssetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockAssetService) Schedule(ctx context.Context, userID, id uuid.UUID, throughYear int) ([]taxengine.AssetAllowance, error) {
	args := m.Called(ctx, userID, id, throughYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxengine.AssetAllowance), args.Error(1)
}
