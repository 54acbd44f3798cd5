package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/service"
	"naijatax/mocks"
)

func TestGetStats_Success(t *testing.T) {
	mockRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(mockRepo)
	userID := uuid.New()

	months := []domain.MonthlyTotals{
		{Month: 1, Income: dec("500000"), Expenses: dec("120000"), OutputVAT: dec("37500"), InputVAT: dec("9000")},
		{Month: 2, Income: dec("250000.505"), Expenses: dec("0"), OutputVAT: dec("0"), InputVAT: dec("4000")},
		{Month: 3, Income: dec("0"), Expenses: dec("80000"), OutputVAT: dec("1500"), InputVAT: dec("0")},
	}
	mockRepo.On("MonthlyTotals", mock.Anything, userID, 2024).Return(months, nil)

	stats, err := svc.GetStats(context.Background(), userID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, stats.Year)
	assert.True(t, dec("750000.51").Equal(stats.TotalIncome), stats.TotalIncome.String())
	assert.True(t, dec("200000").Equal(stats.TotalExpenses))
	// February's excess input does not reduce January or March.
	assert.True(t, dec("30000").Equal(stats.NetVAT), stats.NetVAT.String())
	assert.Len(t, stats.Months, 3)
	mockRepo.AssertExpectations(t)
}

func TestGetStats_Error(t *testing.T) {
	mockRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(mockRepo)
	userID := uuid.New()

	mockRepo.On("MonthlyTotals", mock.Anything, userID, 2024).Return(nil, errors.New("db error"))

	stats, err := svc.GetStats(context.Background(), userID, 2024)
	assert.Error(t, err)
	assert.Nil(t, stats)
}
