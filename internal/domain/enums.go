package domain

// UserRole defines the role of an authenticated user.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleClient    UserRole = "client"
	RoleDeveloper UserRole = "developer"
)

// CRStatus represents the workflow state of a change request.
type CRStatus string

const (
	CRStatusEstimationPending CRStatus = "Estimation Pending"
	CRStatusApprovalPending   CRStatus = "Approval Pending"
	CRStatusInDevelopment     CRStatus = "Approved - In Development"
	CRStatusInProgress        CRStatus = "In Progress"
	CRStatusUnderUAT          CRStatus = "Under UAT"
	CRStatusInProduction      CRStatus = "In Production"
	CRStatusReadyForBilling   CRStatus = "Ready for Billing"
	CRStatusBilled            CRStatus = "Billed"
	CRStatusClosed            CRStatus = "Closed"
	CRStatusRejected          CRStatus = "Rejected"
)

// CRStatusTransitions maps each CR status to the statuses it may move to.
// Rejected and Closed are terminal.
var CRStatusTransitions = map[CRStatus][]CRStatus{
	CRStatusEstimationPending: {CRStatusApprovalPending},
	CRStatusApprovalPending:   {CRStatusInDevelopment, CRStatusRejected},
	CRStatusInDevelopment:     {CRStatusInProgress},
	CRStatusInProgress:        {CRStatusUnderUAT},
	CRStatusUnderUAT:          {CRStatusInProduction},
	CRStatusInProduction:      {CRStatusReadyForBilling},
	CRStatusReadyForBilling:   {CRStatusBilled},
	CRStatusBilled:            {CRStatusClosed},
}

// CanTransition reports whether a CR may move from one status to another.
func CanTransition(from, to CRStatus) bool {
	for _, next := range CRStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CRPriority represents the priority of a change request.
type CRPriority string

const (
	PriorityLow      CRPriority = "Low"
	PriorityMedium   CRPriority = "Medium"
	PriorityHigh     CRPriority = "High"
	PriorityCritical CRPriority = "Critical"
)

// ValidPriorities lists the accepted CR priorities.
var ValidPriorities = map[CRPriority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// InvoiceStatus represents the lifecycle of an invoice.
// Generated and Sent are workflow states; Partially Paid and Paid are
// derived from recorded payments and never set directly.
type InvoiceStatus string

const (
	InvoiceStatusGenerated     InvoiceStatus = "Generated"
	InvoiceStatusSent          InvoiceStatus = "Sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
)

// AdvanceStatus represents the state of an advance payment to a developer.
type AdvanceStatus string

const (
	AdvanceStatusPending  AdvanceStatus = "Pending"
	AdvanceStatusAdjusted AdvanceStatus = "Adjusted"
)

// PaymentMode represents how a payment was made.
type PaymentMode string

const (
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeCheque       PaymentMode = "Cheque"
	PaymentModeOnline       PaymentMode = "Online"
)

// ValidPaymentModes lists the accepted payment modes.
var ValidPaymentModes = map[PaymentMode]bool{
	PaymentModeBankTransfer: true,
	PaymentModeUPI:          true,
	PaymentModeCash:         true,
	PaymentModeCheque:       true,
	PaymentModeOnline:       true,
}
