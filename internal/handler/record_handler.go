package handler

import (
	"github.com/gin-gonic/gin"

	"naijatax/internal/middleware"
	"naijatax/internal/service"
)

// RecordHandler handles income, expense, payment, deduction and profile
// endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// CreateIncome handles POST /api/v1/income
// @Summary Record income
// @Tags income
// @Accept json
// @Produce json
// @Param body body service.CreateIncomeInput true "Income record"
// @Success 201 {object} APIResponse{data=domain.IncomeRecord}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /income [post]
func (h *RecordHandler) CreateIncome(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateIncomeInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	rec, err := h.recordService.CreateIncome(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// ListIncome handles GET /api/v1/income
// @Summary List income of a tax year
// @Tags income
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.IncomeRecord,meta=PagMeta}
// @Security BearerAuth
// @Router /income [get]
func (h *RecordHandler) ListIncome(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	records, total, err := h.recordService.ListIncome(c.Request.Context(), userID, year, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DeleteIncome handles DELETE /api/v1/income/:id
// @Summary Delete an income record
// @Tags income
// @Param id path string true "Income record ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /income/{id} [delete]
func (h *RecordHandler) DeleteIncome(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.recordService.DeleteIncome(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "income record deleted"})
}

// CreateExpense handles POST /api/v1/expenses
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param body body service.CreateExpenseInput true "Expense"
// @Success 201 {object} APIResponse{data=domain.Expense}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *RecordHandler) CreateExpense(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateExpenseInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	exp, err := h.recordService.CreateExpense(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, exp)
}

// ListExpenses handles GET /api/v1/expenses
// @Summary List expenses of a tax year
// @Tags expenses
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Expense,meta=PagMeta}
// @Security BearerAuth
// @Router /expenses [get]
func (h *RecordHandler) ListExpenses(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	expenses, total, err := h.recordService.ListExpenses(c.Request.Context(), userID, year, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, expenses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *RecordHandler) DeleteExpense(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.recordService.DeleteExpense(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "expense deleted"})
}

// CreatePayment handles POST /api/v1/payments
// @Summary Record a tax payment
// @Tags payments
// @Accept json
// @Produce json
// @Param body body service.CreateTaxPaymentInput true "Payment evidence"
// @Success 201 {object} APIResponse{data=domain.TaxPayment}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *RecordHandler) CreatePayment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateTaxPaymentInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	p, err := h.recordService.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// ListPayments handles GET /api/v1/payments
// @Summary List tax payments of a tax year
// @Tags payments
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.TaxPayment,meta=PagMeta}
// @Security BearerAuth
// @Router /payments [get]
func (h *RecordHandler) ListPayments(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	payments, total, err := h.recordService.ListPayments(c.Request.Context(), userID, year, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DeletePayment handles DELETE /api/v1/payments/:id
// @Summary Delete a tax payment
// @Tags payments
// @Param id path string true "Payment ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *RecordHandler) DeletePayment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.recordService.DeletePayment(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "payment deleted"})
}

// GetDeductions handles GET /api/v1/deductions/:year
// @Summary Statutory deductions of a year
// @Tags deductions
// @Produce json
// @Param year path int true "Tax year"
// @Success 200 {object} APIResponse{data=domain.StatutoryDeductions}
// @Failure 404 {object} APIResponse "Nothing saved for the year"
// @Security BearerAuth
// @Router /deductions/{year} [get]
func (h *RecordHandler) GetDeductions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearParam(c, "year")
	if !ok {
		return
	}
	d, err := h.recordService.GetDeductions(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, d)
}

// SaveDeductions handles PUT /api/v1/deductions/:year
// @Summary Replace the statutory deductions of a year
// @Tags deductions
// @Accept json
// @Produce json
// @Param year path int true "Tax year"
// @Param body body service.DeductionsInput true "Deductions"
// @Success 200 {object} APIResponse{data=domain.StatutoryDeductions}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /deductions/{year} [put]
func (h *RecordHandler) SaveDeductions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearParam(c, "year")
	if !ok {
		return
	}
	var input service.DeductionsInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID
	input.TaxYear = year

	d, err := h.recordService.SaveDeductions(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, d)
}

// GetProfile handles GET /api/v1/profile
// @Summary Account settings
// @Tags profile
// @Produce json
// @Success 200 {object} APIResponse{data=domain.Profile}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *RecordHandler) GetProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	p, err := h.recordService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// SaveProfile handles PUT /api/v1/profile
// @Summary Save account settings
// @Tags profile
// @Accept json
// @Produce json
// @Param body body service.ProfileInput true "Profile"
// @Success 200 {object} APIResponse{data=domain.Profile}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /profile [put]
func (h *RecordHandler) SaveProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.ProfileInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID
	if input.Email == "" {
		input.Email = middleware.GetEmail(c)
	}

	p, err := h.recordService.SaveProfile(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}
