package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// ClientRepository defines the contract for client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeveloperRepository defines the contract for developer persistence.
type DeveloperRepository interface {
	Create(ctx context.Context, dev *domain.Developer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Developer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Developer, int, error)
	Update(ctx context.Context, dev *domain.Developer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CRRepository defines the contract for change request persistence.
type CRRepository interface {
	Create(ctx context.Context, cr *domain.ChangeRequest) error
	GetByNumber(ctx context.Context, crNumber string) (*domain.ChangeRequest, error)
	List(ctx context.Context, filters *domain.CRFilters, offset, limit int) ([]domain.ChangeRequest, int, error)
	Update(ctx context.Context, cr *domain.ChangeRequest) error
	NextSequence(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]domain.CRStatusCount, error)
}

// InvoiceRepository defines the contract for invoice persistence.
// CreateWithBilling inserts the invoice, moves its CR to Billed, and applies
// the advance consumption in one transaction.
type InvoiceRepository interface {
	CreateWithBilling(ctx context.Context, inv *domain.Invoice, consumed []domain.Advance, remainder *domain.Advance) error
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, filters *domain.InvoiceFilters) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) error
	SetDocumentKey(ctx context.Context, invoiceNumber, key string) error
	NextSequence(ctx context.Context) (int64, error)
}

// PaymentRepository defines the contract for payment persistence.
// RecordBatch inserts the split payment rows and writes the reconciled
// invoice balances/statuses in one transaction; DeleteWithReversal removes
// one payment row and restores its invoice in one transaction.
type PaymentRepository interface {
	RecordBatch(ctx context.Context, payments []domain.Payment, invoices []domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, filters *domain.PaymentFilters) ([]domain.Payment, error)
	DeleteWithReversal(ctx context.Context, id uuid.UUID, invoice *domain.Invoice) error
}

// AdvanceRepository defines the contract for advance persistence.
type AdvanceRepository interface {
	Create(ctx context.Context, advance *domain.Advance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Advance, error)
	List(ctx context.Context, filters *domain.AdvanceFilters) ([]domain.Advance, error)
	MarkAdjusted(ctx context.Context, id uuid.UUID, invoiceNumber string) error
	PendingTotal(ctx context.Context, developerID uuid.UUID) (decimal.Decimal, error)
	PendingOldestFirst(ctx context.Context, developerID uuid.UUID) ([]domain.Advance, error)
}

// TDSRepository defines the contract for the append-only TDS rate history.
type TDSRepository interface {
	Append(ctx context.Context, rate *domain.TDSRate) error
	History(ctx context.Context) ([]domain.TDSRate, error)
	Current(ctx context.Context) (*domain.TDSRate, error)
}

// ReportRepository runs the aggregate queries that back the reports.
type ReportRepository interface {
	Outstanding(ctx context.Context) ([]domain.OutstandingRow, error)
}
