package handler

import (
	"github.com/gin-gonic/gin"

	"naijatax/internal/service"
)

// WHTHandler handles withholding tax transaction endpoints.
type WHTHandler struct {
	whtService service.WHTService
}

// NewWHTHandler creates a new WHTHandler.
func NewWHTHandler(whtService service.WHTService) *WHTHandler {
	return &WHTHandler{whtService: whtService}
}

// Create handles POST /api/v1/wht
// @Summary Record a payment subject to WHT
// @Description Rate, withheld amount and net amount are derived; a correction is delete then create.
// @Tags wht
// @Accept json
// @Produce json
// @Param body body service.CreateWHTInput true "Payment"
// @Success 201 {object} APIResponse{data=domain.WHTTransaction}
// @Failure 422 {object} APIResponse "Unknown payment/recipient pair"
// @Security BearerAuth
// @Router /wht [post]
func (h *WHTHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateWHTInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	tx, err := h.whtService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, tx)
}

// List handles GET /api/v1/wht
// @Summary List WHT transactions of a tax year
// @Tags wht
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.WHTTransaction,meta=PagMeta}
// @Security BearerAuth
// @Router /wht [get]
func (h *WHTHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	txs, total, err := h.whtService.List(c.Request.Context(), userID, year, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, txs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/wht/:id
// @Summary Delete a WHT transaction
// @Tags wht
// @Param id path string true "Transaction ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /wht/{id} [delete]
func (h *WHTHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.whtService.Delete(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "wht transaction deleted"})
}
