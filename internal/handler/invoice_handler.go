package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/middleware"
	"crbill/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate handles POST /api/v1/invoices
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var input service.GenerateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := h.invoiceService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	filters, ok := h.buildFilters(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoices)
}

func (h *InvoiceHandler) buildFilters(c *gin.Context) (*domain.InvoiceFilters, bool) {
	filters := &domain.InvoiceFilters{
		UnpaidOnly: c.Query("unpaid_only") == "true",
	}

	if s := c.Query("status"); s != "" {
		status := domain.InvoiceStatus(s)
		filters.Status = &status
	}
	if s := c.Query("cr_number"); s != "" {
		filters.CRNumber = &s
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

// Get handles GET /api/v1/invoices/:number
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if !h.canSee(c, inv) {
		HandleError(c, domain.ErrForbidden)
		return
	}

	RespondOK(c, inv)
}

func (h *InvoiceHandler) canSee(c *gin.Context, inv *domain.Invoice) bool {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return false
	}
	switch claims.Role {
	case domain.RoleClient:
		return claims.ClientID != nil && *claims.ClientID == inv.ClientID
	case domain.RoleDeveloper:
		return claims.DeveloperID != nil && *claims.DeveloperID == inv.DeveloperID
	default:
		return true
	}
}

// UpdateStatus handles PUT /api/v1/invoices/:number/status.
// Only Generated to Sent moves through here; paid states are derived from
// payments.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status domain.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if input.Status != domain.InvoiceStatusSent {
		HandleError(c, domain.ErrInvalidStatusTransition)
		return
	}

	inv, err := h.invoiceService.MarkSent(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Document handles GET /api/v1/invoices/:number/document
func (h *InvoiceHandler) Document(c *gin.Context) {
	inv, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if !h.canSee(c, inv) {
		HandleError(c, domain.ErrForbidden)
		return
	}

	url, err := h.invoiceService.DocumentURL(c.Request.Context(), inv.InvoiceNumber)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
