package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crbill/internal/domain"
	"crbill/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION", "status transition is not allowed"
	case errors.Is(err, domain.ErrCRNotBillable):
		return http.StatusConflict, "CR_NOT_BILLABLE", "change request is not ready for billing"
	case errors.Is(err, domain.ErrNoApplicableTDSRate):
		return http.StatusUnprocessableEntity, "NO_TDS_RATE", "no TDS rate effective on or before the invoice date"
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "amount must be positive"
	case errors.Is(err, domain.ErrInvalidPercentage):
		return http.StatusBadRequest, "INVALID_PERCENTAGE", "percentage must be between 0 and 100"
	case errors.Is(err, domain.ErrAdvanceExceedsAvailable):
		return http.StatusUnprocessableEntity, "ADVANCE_EXCEEDS_AVAILABLE", "advance adjustment exceeds available advance balance"
	case errors.Is(err, domain.ErrAdvanceAlreadyAdjusted):
		return http.StatusConflict, "ADVANCE_ALREADY_ADJUSTED", "advance has already been adjusted"
	case errors.Is(err, domain.ErrPaymentExceedsBalance):
		return http.StatusUnprocessableEntity, "PAYMENT_EXCEEDS_BALANCE", "payment amount exceeds outstanding balance"
	case errors.Is(err, domain.ErrInvoiceAlreadyPaid):
		return http.StatusConflict, "INVOICE_ALREADY_PAID", "invoice is already fully paid"
	case errors.Is(err, domain.ErrInvalidPaymentMode):
		return http.StatusBadRequest, "INVALID_PAYMENT_MODE", "invalid payment mode"
	case errors.Is(err, domain.ErrInvalidPriority):
		return http.StatusBadRequest, "INVALID_PRIORITY", "invalid priority"
	case errors.Is(err, domain.ErrDocumentNotArchived):
		return http.StatusNotFound, "DOCUMENT_NOT_ARCHIVED", "invoice document has not been archived"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// extractAuthContext extracts user ID and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (userID uuid.UUID, role domain.UserRole, ok bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return userID, role, true
}
