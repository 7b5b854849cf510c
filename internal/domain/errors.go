package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserInactive            = errors.New("user is inactive")
	ErrDuplicateEmail          = errors.New("email already exists")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCRNotBillable           = errors.New("change request is not ready for billing")
	ErrNoApplicableTDSRate     = errors.New("no TDS rate effective on or before the invoice date")
	ErrNegativeAmount          = errors.New("amount must not be negative")
	ErrInvalidPercentage       = errors.New("percentage must be between 0 and 100")
	ErrAdvanceExceedsAvailable = errors.New("advance adjustment exceeds available advance balance")
	ErrAdvanceAlreadyAdjusted  = errors.New("advance has already been adjusted")
	ErrPaymentExceedsBalance   = errors.New("payment amount exceeds outstanding balance")
	ErrInvoiceAlreadyPaid      = errors.New("invoice is already fully paid")
	ErrInvalidPaymentMode      = errors.New("invalid payment mode")
	ErrInvalidPriority         = errors.New("invalid priority")
	ErrDocumentNotArchived     = errors.New("invoice document has not been archived")
)
