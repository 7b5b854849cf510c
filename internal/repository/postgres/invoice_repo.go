package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crbill/internal/domain"
	"crbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const insertInvoiceQuery = `INSERT INTO invoices (id, invoice_number, cr_number, client_id, developer_id,
	invoice_date, hours_billed, gross_amount, tds_percentage, tds_amount, advance_adjusted,
	net_amount, balance_amount, status, document_key, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// CreateWithBilling inserts the invoice, marks its CR as Billed, and records
// the advance consumption, all in one transaction. The consumed advances are
// marked Adjusted against the new invoice; a non-nil remainder re-inserts
// the unconsumed part of a split advance as a fresh Pending row.
func (r *invoiceRepo) CreateWithBilling(ctx context.Context, inv *domain.Invoice, consumed []domain.Advance, remainder *domain.Advance) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithBilling begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertInvoiceQuery,
		inv.ID, inv.InvoiceNumber, inv.CRNumber, inv.ClientID, inv.DeveloperID,
		inv.InvoiceDate, inv.HoursBilled, inv.GrossAmount, inv.TDSPercentage,
		inv.TDSAmount, inv.AdvanceAdjusted, inv.NetAmount, inv.BalanceAmount,
		inv.Status, inv.DocumentKey, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithBilling insert: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE change_requests SET status = $1, updated_at = $2 WHERE cr_number = $3 AND status = $4",
		domain.CRStatusBilled, now, inv.CRNumber, domain.CRStatusReadyForBilling)
	if err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithBilling cr update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrCRNotBillable
	}

	for i := range consumed {
		a := &consumed[i]
		result, err = tx.ExecContext(ctx,
			`UPDATE advances SET amount = $1, status = $2, invoice_number = $3, updated_at = $4
			 WHERE id = $5 AND status = $6`,
			a.Amount, domain.AdvanceStatusAdjusted, inv.InvoiceNumber, now,
			a.ID, domain.AdvanceStatusPending)
		if err != nil {
			return fmt.Errorf("invoiceRepo.CreateWithBilling advance: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrAdvanceAlreadyAdjusted
		}
	}

	if remainder != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO advances (id, developer_id, advance_date, amount, purpose, status, invoice_number, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			remainder.ID, remainder.DeveloperID, remainder.AdvanceDate, remainder.Amount,
			remainder.Purpose, domain.AdvanceStatusPending, nil, now, now)
		if err != nil {
			return fmt.Errorf("invoiceRepo.CreateWithBilling remainder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.CreateWithBilling commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE invoice_number = $1", invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filters *domain.InvoiceFilters) ([]domain.Invoice, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	n := 0

	if filters != nil {
		if filters.ClientID != nil {
			n++
			where += " AND client_id = $" + strconv.Itoa(n)
			args = append(args, *filters.ClientID)
		}
		if filters.DeveloperID != nil {
			n++
			where += " AND developer_id = $" + strconv.Itoa(n)
			args = append(args, *filters.DeveloperID)
		}
		if filters.Status != nil {
			n++
			where += " AND status = $" + strconv.Itoa(n)
			args = append(args, *filters.Status)
		}
		if filters.CRNumber != nil {
			n++
			where += " AND cr_number = $" + strconv.Itoa(n)
			args = append(args, *filters.CRNumber)
		}
		if filters.UnpaidOnly {
			where += " AND balance_amount > 0"
		}
	}

	var invoices []domain.Invoice
	query := "SELECT * FROM invoices" + where + " ORDER BY invoice_date ASC, invoice_number ASC"
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE invoice_number = $3",
		status, time.Now().UTC(), invoiceNumber)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) SetDocumentKey(ctx context.Context, invoiceNumber, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET document_key = $1, updated_at = $2 WHERE invoice_number = $3",
		key, time.Now().UTC(), invoiceNumber)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SetDocumentKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.GetContext(ctx, &seq, "SELECT nextval('invoice_number_seq')"); err != nil {
		return 0, fmt.Errorf("invoiceRepo.NextSequence: %w", err)
	}
	return seq, nil
}
