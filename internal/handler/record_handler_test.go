package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/domain"
	"naijatax/internal/handler"
	"naijatax/internal/service"
	"naijatax/mocks"
)

func newRecordHandler() (*handler.RecordHandler, *mocks.MockRecordService) {
	mockSvc := new(mocks.MockRecordService)
	return handler.NewRecordHandler(mockSvc), mockSvc
}

func TestRecordHandler_CreateIncome(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("CreateIncome", mock.Anything, mock.MatchedBy(func(in *service.CreateIncomeInput) bool {
		return in.UserID == userID && in.Category == "salary" && in.Amount.Equal(dec("1800000"))
	})).Return(&domain.IncomeRecord{ID: uuid.New(), UserID: userID, TaxYear: 2024}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/income", map[string]interface{}{
		"category": "salary",
		"amount":   "1800000",
		"date":     "2024-06-30T00:00:00Z",
	})
	setAuthContext(c, userID)

	h.CreateIncome(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRecordHandler_CreateIncome_ValidationError(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("CreateIncome", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidInput)

	c, w := newContext(t, http.MethodPost, "/api/v1/income", map[string]interface{}{"amount": "-1"})
	setAuthContext(c, userID)

	h.CreateIncome(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeResponse(t, w).Error.Code)
}

func TestRecordHandler_ListExpenses_Paginated(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("ListExpenses", mock.Anything, userID, 2023, 40, 20).
		Return([]domain.Expense{{ID: uuid.New()}}, 41, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/expenses?year=2023&offset=40&limit=500", nil)
	setAuthContext(c, userID)

	h.ListExpenses(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 41, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestRecordHandler_DeletePayment_NotFound(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()
	id := uuid.New()

	mockSvc.On("DeletePayment", mock.Anything, userID, id).Return(domain.ErrNotFound)

	c, w := newContext(t, http.MethodDelete, "/api/v1/payments/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, userID)

	h.DeletePayment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandler_DeleteIncome_BadID(t *testing.T) {
	h, mockSvc := newRecordHandler()

	c, w := newContext(t, http.MethodDelete, "/api/v1/income/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	setAuthContext(c, uuid.New())

	h.DeleteIncome(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "DeleteIncome", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordHandler_SaveDeductions_UsesPathYear(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("SaveDeductions", mock.Anything, mock.MatchedBy(func(in *service.DeductionsInput) bool {
		return in.UserID == userID && in.TaxYear == 2024 && in.AnnualRentPaid.Equal(dec("2500000"))
	})).Return(&domain.StatutoryDeductions{UserID: userID, TaxYear: 2024}, nil)

	c, w := newContext(t, http.MethodPut, "/api/v1/deductions/2024", map[string]interface{}{
		"annual_rent_paid": "2500000",
		"pension":          "200000",
	})
	c.Params = gin.Params{{Key: "year", Value: "2024"}}
	setAuthContext(c, userID)

	h.SaveDeductions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRecordHandler_GetDeductions_NotSaved(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("GetDeductions", mock.Anything, userID, 2022).Return(nil, domain.ErrNotFound)

	c, w := newContext(t, http.MethodGet, "/api/v1/deductions/2022", nil)
	c.Params = gin.Params{{Key: "year", Value: "2022"}}
	setAuthContext(c, userID)

	h.GetDeductions(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandler_SaveProfile_DefaultsEmailFromToken(t *testing.T) {
	h, mockSvc := newRecordHandler()
	userID := uuid.New()

	mockSvc.On("SaveProfile", mock.Anything, mock.MatchedBy(func(in *service.ProfileInput) bool {
		return in.UserID == userID && in.Email == "user@example.com" && in.AccountType == domain.AccountTypeBusiness
	})).Return(&domain.Profile{UserID: userID, AccountType: domain.AccountTypeBusiness}, nil)

	c, w := newContext(t, http.MethodPut, "/api/v1/profile", map[string]interface{}{"account_type": "business"})
	setAuthContext(c, userID)

	h.SaveProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
