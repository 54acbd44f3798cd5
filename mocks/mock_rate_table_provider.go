package mocks

import (
	"github.com/stretchr/testify/mock"

	"naijatax/internal/taxengine"
)

// MockRateTableProvider is a mock implementation of port.RateTableProvider.
type MockRateTableProvider struct {
	mock.Mock
}

func (m *MockRateTableProvider) ForYear(year int) (*taxengine.RateTable, error) {
	args := m.Called(year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxengine.RateTable), args.Error(1)
}

func (m *MockRateTableProvider) Years() []int {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int)
}
