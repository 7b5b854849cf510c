package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/middleware"
	"crbill/internal/service"
)

// AdvanceHandler handles advance ledger endpoints.
type AdvanceHandler struct {
	advanceService service.AdvanceService
}

// NewAdvanceHandler creates a new AdvanceHandler.
func NewAdvanceHandler(advanceService service.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{advanceService: advanceService}
}

// Create handles POST /api/v1/advances
func (h *AdvanceHandler) Create(c *gin.Context) {
	var input service.CreateAdvanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	advance, err := h.advanceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, advance)
}

// List handles GET /api/v1/advances
func (h *AdvanceHandler) List(c *gin.Context) {
	filters := &domain.AdvanceFilters{}
	if s := c.Query("developer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer_id")
			return
		}
		filters.DeveloperID = &id
	}
	if s := c.Query("status"); s != "" {
		status := domain.AdvanceStatus(s)
		filters.Status = &status
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	if claims.Role == domain.RoleDeveloper {
		filters.DeveloperID = claims.DeveloperID
	}

	advances, err := h.advanceService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, advances)
}

// Adjust handles POST /api/v1/advances/:id/adjust
func (h *AdvanceHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid advance id")
		return
	}

	var input service.AdjustAdvanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	advance, err := h.advanceService.Adjust(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, advance)
}
