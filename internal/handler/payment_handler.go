package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/middleware"
	"crbill/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	payments, err := h.paymentService.Record(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payments)
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	filters := &domain.PaymentFilters{}
	if s := c.Query("developer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid developer_id")
			return
		}
		filters.DeveloperID = &id
	}
	if s := c.Query("invoice_number"); s != "" {
		filters.InvoiceNumber = &s
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	if claims.Role == domain.RoleDeveloper {
		filters.DeveloperID = claims.DeveloperID
	}

	payments, err := h.paymentService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// Delete handles DELETE /api/v1/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid payment id")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "payment deleted"})
}
