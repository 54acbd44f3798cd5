package handler

import (
	"github.com/gin-gonic/gin"

	"naijatax/internal/service"
)

// AssetHandler handles capital asset endpoints.
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create handles POST /api/v1/assets
// @Summary Register a capital asset
// @Description Allowance rates are fixed from the rate table of the acquisition year.
// @Tags assets
// @Accept json
// @Produce json
// @Param body body service.CreateAssetInput true "Asset"
// @Success 201 {object} APIResponse{data=domain.CapitalAsset}
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse "Unknown asset category or year"
// @Security BearerAuth
// @Router /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var input service.CreateAssetInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserID = userID

	asset, err := h.assetService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, asset)
}

// List handles GET /api/v1/assets
// @Summary List capital assets
// @Tags assets
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.CapitalAsset,meta=PagMeta}
// @Security BearerAuth
// @Router /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	assets, total, err := h.assetService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, assets, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/assets/:id
// @Summary Delete a capital asset
// @Tags assets
// @Param id path string true "Asset ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.assetService.Delete(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "asset deleted"})
}

// Schedule handles GET /api/v1/tax/assets/:id/schedule
// @Summary Allowance schedule of an asset
// @Description Year-by-year allowance and written-down value from acquisition through the given year, before the profit cap.
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Param year query int false "Last year of the schedule (defaults to the current year)"
// @Success 200 {object} APIResponse{data=[]taxengine.AssetAllowance}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/assets/{id}/schedule [get]
func (h *AssetHandler) Schedule(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	schedule, err := h.assetService.Schedule(c.Request.Context(), userID, id, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, schedule)
}
