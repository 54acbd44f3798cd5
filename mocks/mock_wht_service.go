package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/service"
)

// MockWHTService is a mock implementation of service.WHTService.
type MockWHTService struct {
	mock.Mock
}

func (m *MockWHTService) Create(ctx context.Context, input *service.CreateWHTInput) (*domain.WHTTransaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WHTTransaction), args.Error(1)
}

func (m *MockWHTService) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WHTTransaction), args.Int(1), args.Error(2)
}

func (m *MockWHTService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
