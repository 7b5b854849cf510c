package domain

import "github.com/google/uuid"

// CRFilters narrows change request listings.
type CRFilters struct {
	ClientID    *uuid.UUID
	DeveloperID *uuid.UUID
	Status      *CRStatus
}

// InvoiceFilters narrows invoice listings.
type InvoiceFilters struct {
	ClientID    *uuid.UUID
	DeveloperID *uuid.UUID
	Status      *InvoiceStatus
	CRNumber    *string
	UnpaidOnly  bool
}

// PaymentFilters narrows payment listings.
type PaymentFilters struct {
	DeveloperID   *uuid.UUID
	InvoiceNumber *string
}

// AdvanceFilters narrows advance listings.
type AdvanceFilters struct {
	DeveloperID *uuid.UUID
	Status      *AdvanceStatus
}
