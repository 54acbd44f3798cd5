package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/handler"
	"naijatax/internal/taxengine"
	"naijatax/mocks"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		db     fakePinger
		years  []int
		status int
	}{
		{"ready", fakePinger{}, []int{2023, 2024}, http.StatusOK},
		{"db down", fakePinger{err: errors.New("refused")}, []int{2024}, http.StatusServiceUnavailable},
		{"no rate tables", fakePinger{}, nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years := tt.years
			h := handler.NewHealthHandler(tt.db, func() []int { return years })
			c, w := newContext(t, http.MethodGet, "/readyz", nil)

			h.Readiness(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(fakePinger{err: errors.New("down")}, func() []int { return nil })
	c, w := newContext(t, http.MethodGet, "/healthz", nil)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsHandler_GetStats(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)
	userID := uuid.New()

	mockSvc.On("GetStats", mock.Anything, userID, 2024).
		Return(&domain.Stats{Year: 2024, TotalIncome: dec("750000.51"), NetVAT: dec("30000")}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/stats?year=2024", nil)
	setAuthContext(c, userID)

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "750000.51", data["total_income"])
}

func TestStatsHandler_GetStats_BadYear(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)

	c, w := newContext(t, http.MethodGet, "/api/v1/stats?year=twenty", nil)
	setAuthContext(c, uuid.New())

	h.GetStats(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetHandler_Schedule(t *testing.T) {
	mockSvc := new(mocks.MockAssetService)
	h := handler.NewAssetHandler(mockSvc)
	userID := uuid.New()
	id := uuid.New()

	mockSvc.On("Schedule", mock.Anything, userID, id, 2024).Return([]taxengine.AssetAllowance{
		{AssetID: id, Year: 2022, State: domain.AssetStateDepreciating},
		{AssetID: id, Year: 2023, State: domain.AssetStateDepreciating},
		{AssetID: id, Year: 2024, State: domain.AssetStateDepreciating},
	}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/tax/assets/"+id.String()+"/schedule?year=2024", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, userID)

	h.Schedule(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data, 3)
}

func TestAssetHandler_Create_UnsupportedCategory(t *testing.T) {
	mockSvc := new(mocks.MockAssetService)
	h := handler.NewAssetHandler(mockSvc)
	userID := uuid.New()

	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, &taxengine.UnsupportedCategoryError{Kind: "asset", Value: "spaceship", Year: 2024})

	c, w := newContext(t, http.MethodPost, "/api/v1/assets", map[string]interface{}{
		"category": "spaceship", "cost": "1000000", "acquisition_date": "2024-01-15T00:00:00Z",
	})
	setAuthContext(c, userID)

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "UNSUPPORTED_CATEGORY", decodeResponse(t, w).Error.Code)
}

func TestWHTHandler_Create(t *testing.T) {
	mockSvc := new(mocks.MockWHTService)
	h := handler.NewWHTHandler(mockSvc)
	userID := uuid.New()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateWHTInput")).
		Return(&domain.WHTTransaction{ID: uuid.New(), WHTAmount: dec("100000"), NetAmount: dec("900000")}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/wht", map[string]interface{}{
		"payment_type": "rent", "recipient_type": "company", "gross_amount": "1000000",
		"payment_date": "2024-04-01T00:00:00Z",
	})
	setAuthContext(c, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWHTHandler_Create_UnknownPair(t *testing.T) {
	mockSvc := new(mocks.MockWHTService)
	h := handler.NewWHTHandler(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, &taxengine.UnsupportedCategoryError{Kind: "wht", Value: "director_fee/company", Year: 2024})

	c, w := newContext(t, http.MethodPost, "/api/v1/wht", map[string]interface{}{
		"payment_type": "director_fee", "recipient_type": "company", "gross_amount": "1000000",
		"payment_date": "2024-04-01T00:00:00Z",
	})
	setAuthContext(c, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
