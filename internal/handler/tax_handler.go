package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naijatax/internal/service"
	"naijatax/internal/taxengine"
)

// TaxHandler handles summary, calculator and rate table endpoints.
type TaxHandler struct {
	taxService service.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// RateTableView is the JSON form of a rate table with the WHT map flattened.
type RateTableView struct {
	*taxengine.RateTable
	WHT []taxengine.WHTEntry `json:"wht"`
}

// Summary handles GET /api/v1/tax/summary
// @Summary Tax summary for a year
// @Description Computes PIT or CIT, VAT, WHT, payments and advisory savings from the caller's stored records.
// @Tags tax
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Success 200 {object} APIResponse{data=taxengine.Summary}
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /tax/summary [get]
func (h *TaxHandler) Summary(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	summary, err := h.taxService.Summary(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Summaries handles GET /api/v1/tax/summaries
// @Summary Tax summaries for several years
// @Tags tax
// @Produce json
// @Param years query string true "Comma-separated tax years, e.g. 2023,2024"
// @Success 200 {object} APIResponse{data=[]taxengine.Summary}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /tax/summaries [get]
func (h *TaxHandler) Summaries(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	years, err := parseYearList(c.Query("years"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	summaries, err := h.taxService.Summaries(c.Request.Context(), userID, years)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summaries)
}

// RateTable handles GET /api/v1/tax/rate-tables/:year
// @Summary Effective rate table of a year
// @Tags tax
// @Produce json
// @Param year path int true "Tax year"
// @Success 200 {object} APIResponse{data=RateTableView}
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /tax/rate-tables/{year} [get]
func (h *TaxHandler) RateTable(c *gin.Context) {
	year, ok := parseYearParam(c, "year")
	if !ok {
		return
	}
	table, err := h.taxService.RateTable(year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, RateTableView{RateTable: table, WHT: table.WHTEntries()})
}

// CalculatePIT handles POST /api/v1/tax/calculate/pit
// @Summary Standalone PIT calculation
// @Tags tax
// @Accept json
// @Produce json
// @Param body body service.PITInput true "Taxable income and year"
// @Success 200 {object} APIResponse{data=taxengine.PITResult}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /tax/calculate/pit [post]
func (h *TaxHandler) CalculatePIT(c *gin.Context) {
	var input service.PITInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.taxService.CalculatePIT(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// CalculateCIT handles POST /api/v1/tax/calculate/cit
// @Summary Standalone CIT calculation
// @Tags tax
// @Accept json
// @Produce json
// @Param body body service.CITInput true "Turnover, profit and year"
// @Success 200 {object} APIResponse{data=taxengine.CITResult}
// @Security BearerAuth
// @Router /tax/calculate/cit [post]
func (h *TaxHandler) CalculateCIT(c *gin.Context) {
	var input service.CITInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.taxService.CalculateCIT(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// CalculateWHT handles POST /api/v1/tax/calculate/wht
// @Summary Standalone WHT calculation
// @Tags tax
// @Accept json
// @Produce json
// @Param body body service.WHTInput true "Payment details"
// @Success 200 {object} APIResponse{data=taxengine.WHTResult}
// @Failure 422 {object} APIResponse "Unknown payment/recipient pair"
// @Security BearerAuth
// @Router /tax/calculate/wht [post]
func (h *TaxHandler) CalculateWHT(c *gin.Context) {
	var input service.WHTInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.taxService.CalculateWHT(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// CalculateReliefs handles POST /api/v1/tax/calculate/reliefs
// @Summary Standalone relief calculation
// @Tags tax
// @Accept json
// @Produce json
// @Param body body service.ReliefsInput true "Gross income and deductions"
// @Success 200 {object} APIResponse{data=taxengine.ReliefResult}
// @Security BearerAuth
// @Router /tax/calculate/reliefs [post]
func (h *TaxHandler) CalculateReliefs(c *gin.Context) {
	var input service.ReliefsInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.taxService.CalculateReliefs(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// CalculateVAT handles POST /api/v1/tax/calculate/vat
// @Summary Standalone VAT period calculation
// @Tags tax
// @Accept json
// @Produce json
// @Param body body service.VATPeriodInput true "Period and transactions"
// @Success 200 {object} APIResponse{data=taxengine.VATPeriodResult}
// @Security BearerAuth
// @Router /tax/calculate/vat [post]
func (h *TaxHandler) CalculateVAT(c *gin.Context) {
	var input service.VATPeriodInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.taxService.CalculateVAT(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
