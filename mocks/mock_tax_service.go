package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/service"
	"naijatax/internal/taxengine"
)

// MockTaxService is a mock implementation of service.TaxService.
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) Summary(ctx context.Context, userID uuid.UUID, year int) (*taxengine.Summary, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.Summary), args.Error(1)
}

func (m *MockTaxService) Summaries(ctx context.Context, userID uuid.UUID, years []int) ([]*taxengine.Summary, error) {
	args := m.Called(ctx, userID, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxengine.Summary), args.Error(1)
}

func (m *MockTaxService) RateTable(year int) (*taxengine.RateTable, error) {
	args := m.Called(year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.RateTable), args.Error(1)
}

func (m *MockTaxService) CalculatePIT(input service.PITInput) (*taxengine.PITResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.PITResult), args.Error(1)
}

func (m *MockTaxService) CalculateCIT(input service.CITInput) (*taxengine.CITResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.CITResult), args.Error(1)
}

func (m *MockTaxService) CalculateWHT(input service.WHTInput) (*taxengine.WHTResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.WHTResult), args.Error(1)
}

func (m *MockTaxService) CalculateReliefs(input service.ReliefsInput) (*taxengine.ReliefResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.ReliefResult), args.Error(1)
}

func (m *MockTaxService) CalculateVAT(input service.VATPeriodInput) (*taxengine.VATPeriodResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.VATPeriodResult), args.Error(1)
}
