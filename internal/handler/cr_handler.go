package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/middleware"
	"crbill/internal/service"
)

// CRHandler handles change request endpoints.
type CRHandler struct {
	crService service.CRService
}

// NewCRHandler creates a new CRHandler.
func NewCRHandler(crService service.CRService) *CRHandler {
	return &CRHandler{crService: crService}
}

// Create handles POST /api/v1/crs
func (h *CRHandler) Create(c *gin.Context) {
	var input service.CreateCRInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, cr)
}

// List handles GET /api/v1/crs
func (h *CRHandler) List(c *gin.Context) {
	filters, ok := h.buildFilters(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	crs, total, err := h.crService.List(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, crs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// buildFilters merges query filters with the caller's role scope: client and
// developer accounts only ever see their own CRs.
func (h *CRHandler) buildFilters(c *gin.Context) (*domain.CRFilters, bool) {
	filters := &domain.CRFilters{}

	if s := c.Query("status"); s != "" {
		status := domain.CRStatus(s)
		filters.Status = &status
	}
	if s := c.Query("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid client_id")
			return nil, false
		}
		filters.ClientID = &id
	}
	if s := c.Query("developer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer_id")
			return nil, false
		}
		filters.DeveloperID = &id
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return nil, false
	}
	switch claims.Role {
	case domain.RoleClient:
		filters.ClientID = claims.ClientID
	case domain.RoleDeveloper:
		filters.DeveloperID = claims.DeveloperID
	}

	return filters, true
}

// Get handles GET /api/v1/crs/:number
func (h *CRHandler) Get(c *gin.Context) {
	cr, err := h.crService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if !h.canSee(c, cr) {
		HandleError(c, domain.ErrForbidden)
		return
	}

	RespondOK(c, cr)
}

func (h *CRHandler) canSee(c *gin.Context, cr *domain.ChangeRequest) bool {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return false
	}
	switch claims.Role {
	case domain.RoleClient:
		return claims.ClientID != nil && *claims.ClientID == cr.ClientID
	case domain.RoleDeveloper:
		return claims.DeveloperID != nil && *claims.DeveloperID == cr.DeveloperID
	default:
		return true
	}
}

// Update handles PUT /api/v1/crs/:number
func (h *CRHandler) Update(c *gin.Context) {
	var input service.UpdateCRInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.Update(c.Request.Context(), c.Param("number"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cr)
}

// Estimate handles POST /api/v1/crs/:number/estimate
func (h *CRHandler) Estimate(c *gin.Context) {
	var input service.EstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.Estimate(c.Request.Context(), c.Param("number"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cr)
}

// Decide handles POST /api/v1/crs/:number/approve
func (h *CRHandler) Decide(c *gin.Context) {
	var input service.ApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.Decide(c.Request.Context(), c.Param("number"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cr)
}

// UpdateStatus handles POST /api/v1/crs/:number/status
func (h *CRHandler) UpdateStatus(c *gin.Context) {
	var input service.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.UpdateStatus(c.Request.Context(), c.Param("number"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cr)
}

// ReadyForBilling handles POST /api/v1/crs/:number/ready-for-billing
func (h *CRHandler) ReadyForBilling(c *gin.Context) {
	var input service.ReadyForBillingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cr, err := h.crService.ReadyForBilling(c.Request.Context(), c.Param("number"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cr)
}
