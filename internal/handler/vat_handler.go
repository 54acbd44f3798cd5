package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"naijatax/internal/service"
)

// VATHandler handles VAT transaction, period and filing endpoints.
type VATHandler struct {
	vatService service.VATService
}

// NewVATHandler creates a new VATHandler.
func NewVATHandler(vatService service.VATService) *VATHandler {
	return &VATHandler{vatService: vatService}
}

// CreateTransaction handles POST /api/v1/vat/transactions
// @Summary Record a VAT-bearing sale or purchase
// @Tags vat
// @Accept json
// @Produce json
// @Param body body service.CreateVATTransactionInput true "Transaction"
// @Success 201 {object} APIResponse{data=domain.VATTransaction}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /vat/transactions [post]
func (h *VATHandler) CreateTransaction(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateVATTransactionInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	tx, err := h.vatService.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, tx)
}

// ListTransactions handles GET /api/v1/vat/transactions
// @Summary List VAT transactions of a year
// @Tags vat
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.VATTransaction,meta=PagMeta}
// @Security BearerAuth
// @Router /vat/transactions [get]
func (h *VATHandler) ListTransactions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	txs, total, err := h.vatService.ListTransactions(c.Request.Context(), userID, year, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, txs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DeleteTransaction handles DELETE /api/v1/vat/transactions/:id
// @Summary Delete a VAT transaction
// @Tags vat
// @Param id path string true "Transaction ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /vat/transactions/{id} [delete]
func (h *VATHandler) DeleteTransaction(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.vatService.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "vat transaction deleted"})
}

// Periods handles GET /api/v1/vat/periods
// @Summary Monthly VAT positions of a year
// @Tags vat
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Success 200 {object} APIResponse{data=[]service.VATPeriod}
// @Security BearerAuth
// @Router /vat/periods [get]
func (h *VATHandler) Periods(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	periods, err := h.vatService.Periods(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, periods)
}

// UpdateFiling handles PUT /api/v1/vat/filings/:year/:month
// @Summary Update the filing status of a VAT period
// @Description Status moves forward only: pending, filed, paid.
// @Tags vat
// @Accept json
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param body body service.UpdateFilingInput true "Filing"
// @Success 200 {object} APIResponse{data=domain.VATFiling}
// @Failure 409 {object} APIResponse "Backwards transition"
// @Security BearerAuth
// @Router /vat/filings/{year}/{month} [put]
func (h *VATHandler) UpdateFiling(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearParam(c, "year")
	if !ok {
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "month must be between 1 and 12")
		return
	}
	var input service.UpdateFilingInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID
	input.Year = year
	input.Month = month

	filing, err := h.vatService.UpdateFiling(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// SendReminders handles POST /api/v1/vat/reminders
// @Summary Email a reminder of unfiled VAT periods
// @Tags vat
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "No email on the profile"
// @Security BearerAuth
// @Router /vat/reminders [post]
func (h *VATHandler) SendReminders(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	n, err := h.vatService.SendReminders(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"periods_reminded": n})
}
