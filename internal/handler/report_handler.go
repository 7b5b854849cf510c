package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/service"
)

// ReportHandler handles reporting endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dashboard)
}

// DeveloperSummary handles GET /api/v1/reports/developers/:id/summary
func (h *ReportHandler) DeveloperSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer id")
		return
	}

	summary, err := h.reportService.DeveloperSummary(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Outstanding handles GET /api/v1/reports/outstanding
func (h *ReportHandler) Outstanding(c *gin.Context) {
	rows, err := h.reportService.Outstanding(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Monthly handles GET /api/v1/reports/monthly?month=&year=
func (h *ReportHandler) Monthly(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "month must be 1-12")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid year")
		return
	}

	report, err := h.reportService.Monthly(c.Request.Context(), year, time.Month(month))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ExportInvoices handles GET /api/v1/reports/invoices/export?format= and
// streams the register as a download. Format defaults to xlsx; csv is also
// supported.
func (h *ReportHandler) ExportInvoices(c *gin.Context) {
	stamp := time.Now().Format("2006-01-02")

	if c.DefaultQuery("format", "xlsx") == "csv" {
		buf, err := h.reportService.ExportInvoicesCSV(c.Request.Context(), &domain.InvoiceFilters{})
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-register-%s.csv"`, stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	buf, err := h.reportService.ExportInvoices(c.Request.Context(), &domain.InvoiceFilters{})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-register-%s.xlsx"`, stamp))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
