package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/service"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) CreateIncome(ctx context.Context, input *service.CreateIncomeInput) (*domain.IncomeRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeRecord), args.Error(1)
}

func (m *MockRecordService) ListIncome(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.IncomeRecord, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IncomeRecord), args.Int(1), args.Error(2)
}

func (m *MockRecordService) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRecordService) CreateExpense(ctx context.Context, input *service.CreateExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockRecordService) ListExpenses(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.Expense, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockRecordService) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRecordService) CreatePayment(ctx context.Context, input *service.CreateTaxPaymentInput) (*domain.TaxPayment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxPayment), args.Error(1)
}

func (m *MockRecordService) ListPayments(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.TaxPayment, int, error) {
	args := m.Called(ctx, userID, year, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxPayment), args.Int(1), args.Error(2)
}

func (m *MockRecordService) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRecordService) GetDeductions(ctx context.Context, userID uuid.UUID, year int) (*domain.StatutoryDeductions, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatutoryDeductions), args.Error(1)
}

func (m *MockRecordService) SaveDeductions(ctx context.Context, input *service.DeductionsInput) (*domain.StatutoryDeductions, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatutoryDeductions), args.Error(1)
}

func (m *MockRecordService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRecordService) SaveProfile(ctx context.Context, input *service.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
