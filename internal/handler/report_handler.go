package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"naijatax/internal/csvexport"
	"naijatax/internal/pdfexport"
	"naijatax/internal/service"
	"naijatax/internal/xlsxexport"
)

// ReportHandler handles summary export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SummaryCSV handles GET /api/v1/reports/summary.csv
// @Summary Download the year summary as CSV
// @Tags reports
// @Produce text/csv
// @Param year query int false "Tax year (defaults to the current year)"
// @Success 200 {file} file
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /reports/summary.csv [get]
func (h *ReportHandler) SummaryCSV(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	// Render fully before writing headers so a failure still gets a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.WriteSummaryCSV(c.Request.Context(), userID, year, &buf); err != nil {
		HandleError(c, err)
		return
	}
	filename := csvexport.BuildFilename("tax_summary", year, "csv", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// SummaryXLSX handles GET /api/v1/reports/summary.xlsx
// @Summary Download the year summary as an Excel workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Tax year (defaults to the current year)"
// @Success 200 {file} file
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /reports/summary.xlsx [get]
func (h *ReportHandler) SummaryXLSX(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteSummaryXLSX(c.Request.Context(), userID, year, &buf); err != nil {
		HandleError(c, err)
		return
	}
	filename := csvexport.BuildFilename("tax_summary", year, "xlsx", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxexport.ContentType, buf.Bytes())
}

// SummaryPDF handles GET /api/v1/reports/summary.pdf
// @Summary Download the year summary as a PDF statement
// @Tags reports
// @Produce application/pdf
// @Param year query int false "Tax year (defaults to the current year)"
// @Success 200 {file} file
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /reports/summary.pdf [get]
func (h *ReportHandler) SummaryPDF(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteSummaryPDF(c.Request.Context(), userID, year, &buf); err != nil {
		HandleError(c, err)
		return
	}
	filename := csvexport.BuildFilename("tax_summary", year, "pdf", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, pdfexport.ContentType, buf.Bytes())
}

// Archive handles POST /api/v1/reports/archive
// @Summary Archive the year summary workbook
// @Description Stores the XLSX summary in object storage and returns a time-limited download link.
// @Tags reports
// @Produce json
// @Param year query int false "Tax year (defaults to the current year)"
// @Success 201 {object} APIResponse{data=service.ReportArchive}
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /reports/archive [post]
func (h *ReportHandler) Archive(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	archive, err := h.reportService.ArchiveSummary(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, archive)
}
