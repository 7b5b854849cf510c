package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated user of the console.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	ClientID     *uuid.UUID `db:"client_id" json:"client_id"`
	DeveloperID  *uuid.UUID `db:"developer_id" json:"developer_id"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Client represents an organization that raises change requests.
type Client struct {
	ID               uuid.UUID `db:"id" json:"id"`
	OrganizationName string    `db:"organization_name" json:"organization_name"`
	ContactName      string    `db:"contact_name" json:"contact_name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	Address          string    `db:"address" json:"address"`
	GSTIN            string    `db:"gstin" json:"gstin"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Developer represents a developer who estimates and executes change requests.
type Developer struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Email       string          `db:"email" json:"email"`
	Phone       string          `db:"phone" json:"phone"`
	HourlyRate  decimal.Decimal `db:"hourly_rate" json:"hourly_rate"`
	PAN         string          `db:"pan" json:"pan"`
	BankName    string          `db:"bank_name" json:"bank_name"`
	BankAccount string          `db:"bank_account" json:"bank_account"`
	IFSC        string          `db:"ifsc" json:"ifsc"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ChangeRequest represents a unit of billable work tracked through the
// CR status lifecycle. CRNumber is the human-facing identity.
type ChangeRequest struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	CRNumber        string           `db:"cr_number" json:"cr_number"`
	Title           string           `db:"title" json:"title"`
	Description     string           `db:"description" json:"description"`
	ClientID        uuid.UUID        `db:"client_id" json:"client_id"`
	DeveloperID     uuid.UUID        `db:"developer_id" json:"developer_id"`
	Priority        CRPriority       `db:"priority" json:"priority"`
	Status          CRStatus         `db:"status" json:"status"`
	EstimatedHours  *decimal.Decimal `db:"estimated_hours" json:"estimated_hours"`
	EstimatedAmount *decimal.Decimal `db:"estimated_amount" json:"estimated_amount"`
	ActualHours     *decimal.Decimal `db:"actual_hours" json:"actual_hours"`
	TargetDate      *time.Time       `db:"target_date" json:"target_date"`
	Remarks         string           `db:"remarks" json:"remarks"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Invoice represents a bill raised against a single change request.
// TDSPercentage is frozen at generation time from the rate history; it is
// never re-resolved when the rate table changes later.
type Invoice struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	InvoiceNumber   string          `db:"invoice_number" json:"invoice_number"`
	CRNumber        string          `db:"cr_number" json:"cr_number"`
	ClientID        uuid.UUID       `db:"client_id" json:"client_id"`
	DeveloperID     uuid.UUID       `db:"developer_id" json:"developer_id"`
	InvoiceDate     time.Time       `db:"invoice_date" json:"invoice_date"`
	HoursBilled     decimal.Decimal `db:"hours_billed" json:"hours_billed"`
	GrossAmount     decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	TDSPercentage   decimal.Decimal `db:"tds_percentage" json:"tds_percentage"`
	TDSAmount       decimal.Decimal `db:"tds_amount" json:"tds_amount"`
	AdvanceAdjusted decimal.Decimal `db:"advance_adjusted" json:"advance_adjusted"`
	NetAmount       decimal.Decimal `db:"net_amount" json:"net_amount"`
	BalanceAmount   decimal.Decimal `db:"balance_amount" json:"balance_amount"`
	Status          InvoiceStatus   `db:"status" json:"status"`
	DocumentKey     string          `db:"document_key" json:"document_key"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Payment represents an amount received against an invoice. A single
// submission may be split across several invoices; each split is stored as
// its own Payment row sharing a batch ID so deletion reverses exactly one
// invoice's balance.
type Payment struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	BatchID              uuid.UUID       `db:"batch_id" json:"batch_id"`
	InvoiceNumber        string          `db:"invoice_number" json:"invoice_number"`
	DeveloperID          uuid.UUID       `db:"developer_id" json:"developer_id"`
	Amount               decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate          time.Time       `db:"payment_date" json:"payment_date"`
	PaymentMode          PaymentMode     `db:"payment_mode" json:"payment_mode"`
	TransactionReference string          `db:"transaction_reference" json:"transaction_reference"`
	Remarks              string          `db:"remarks" json:"remarks"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
}

// Advance represents a pre-payment to a developer, later offset against a
// specific invoice's net amount.
type Advance struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	DeveloperID   uuid.UUID       `db:"developer_id" json:"developer_id"`
	AdvanceDate   time.Time       `db:"advance_date" json:"advance_date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Purpose       string          `db:"purpose" json:"purpose"`
	Status        AdvanceStatus   `db:"status" json:"status"`
	InvoiceNumber *string         `db:"invoice_number" json:"invoice_number"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// TDSRate is one entry in the append-only, effective-dated TDS rate history.
// Updates add a new dated row; existing rows are never mutated.
type TDSRate struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	EffectiveDate time.Time       `db:"effective_date" json:"effective_date"`
	Percentage    decimal.Decimal `db:"percentage" json:"percentage"`
	CreatedBy     uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
