package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/service"
)

// DeveloperHandler handles developer endpoints.
type DeveloperHandler struct {
	devService    service.DeveloperService
	reportService service.ReportService
}

// NewDeveloperHandler creates a new DeveloperHandler.
func NewDeveloperHandler(devService service.DeveloperService, reportService service.ReportService) *DeveloperHandler {
	return &DeveloperHandler{devService: devService, reportService: reportService}
}

// Create handles POST /api/v1/developers
func (h *DeveloperHandler) Create(c *gin.Context) {
	var input service.DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	dev, err := h.devService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, dev)
}

// List handles GET /api/v1/developers
func (h *DeveloperHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	devs, total, err := h.devService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, devs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/developers/:id
func (h *DeveloperHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer id")
		return
	}

	dev, err := h.devService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dev)
}

// Summary handles GET /api/v1/developers/:id/summary
func (h *DeveloperHandler) Summary(c *gin.Context) {
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

// Update handles PUT /api/v1/developers/:id
func (h *DeveloperHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer id")
		return
	}

	var input service.DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	dev, err := h.devService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dev)
}

// Delete handles DELETE /api/v1/developers/:id
func (h *DeveloperHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer id")
		return
	}

	if err := h.devService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "developer deleted"})
}
