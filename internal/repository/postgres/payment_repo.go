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

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

const insertPaymentQuery = `INSERT INTO payments (id, batch_id, invoice_number, developer_id, amount,
	payment_date, payment_mode, transaction_reference, remarks, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const updateInvoiceBalanceQuery = `UPDATE invoices SET balance_amount = $1, status = $2, updated_at = $3
	WHERE invoice_number = $4`

// RecordBatch inserts the split payment rows and the reconciled invoice
// balances in one transaction. The payments and invoices slices are already
// reconciled by the caller; this method only persists them atomically.
func (r *paymentRepo) RecordBatch(ctx context.Context, payments []domain.Payment, invoices []domain.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentRepo.RecordBatch begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range payments {
		p := &payments[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.CreatedAt = now
		_, err = tx.ExecContext(ctx, insertPaymentQuery,
			p.ID, p.BatchID, p.InvoiceNumber, p.DeveloperID, p.Amount,
			p.PaymentDate, p.PaymentMode, p.TransactionReference, p.Remarks, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("paymentRepo.RecordBatch insert: %w", err)
		}
	}

	for i := range invoices {
		inv := &invoices[i]
		result, err := tx.ExecContext(ctx, updateInvoiceBalanceQuery,
			inv.BalanceAmount, inv.Status, now, inv.InvoiceNumber)
		if err != nil {
			return fmt.Errorf("paymentRepo.RecordBatch invoice update: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("paymentRepo.RecordBatch commit: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.GetContext(ctx, &p, "SELECT * FROM payments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *paymentRepo) List(ctx context.Context, filters *domain.PaymentFilters) ([]domain.Payment, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	n := 0

	if filters != nil {
		if filters.DeveloperID != nil {
			n++
			where += " AND developer_id = $" + strconv.Itoa(n)
			args = append(args, *filters.DeveloperID)
		}
		if filters.InvoiceNumber != nil {
			n++
			where += " AND invoice_number = $" + strconv.Itoa(n)
			args = append(args, *filters.InvoiceNumber)
		}
	}

	var payments []domain.Payment
	query := "SELECT * FROM payments" + where + " ORDER BY payment_date DESC, created_at DESC"
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("paymentRepo.List: %w", err)
	}
	return payments, nil
}

// DeleteWithReversal removes one payment row and writes the restored invoice
// balance/status in the same transaction.
func (r *paymentRepo) DeleteWithReversal(ctx context.Context, id uuid.UUID, invoice *domain.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentRepo.DeleteWithReversal begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("paymentRepo.DeleteWithReversal delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	result, err = tx.ExecContext(ctx, updateInvoiceBalanceQuery,
		invoice.BalanceAmount, invoice.Status, time.Now().UTC(), invoice.InvoiceNumber)
	if err != nil {
		return fmt.Errorf("paymentRepo.DeleteWithReversal invoice update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("paymentRepo.DeleteWithReversal commit: %w", err)
	}
	return nil
}
