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
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
	"crbill/internal/port"
)

type advanceRepo struct {
	db *sqlx.DB
}

// NewAdvanceRepo creates a new PostgreSQL-backed AdvanceRepository.
func NewAdvanceRepo(db *sqlx.DB) port.AdvanceRepository {
	return &advanceRepo{db: db}
}

func (r *advanceRepo) Create(ctx context.Context, advance *domain.Advance) error {
	advance.ID = uuid.New()
	now := time.Now().UTC()
	advance.CreatedAt = now
	advance.UpdatedAt = now

	query := `INSERT INTO advances (id, developer_id, advance_date, amount, purpose, status, invoice_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		advance.ID, advance.DeveloperID, advance.AdvanceDate, advance.Amount,
		advance.Purpose, advance.Status, advance.InvoiceNumber,
		advance.CreatedAt, advance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("advanceRepo.Create: %w", err)
	}
	return nil
}

func (r *advanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Advance, error) {
	var a domain.Advance
	err := r.db.GetContext(ctx, &a, "SELECT * FROM advances WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("advanceRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *advanceRepo) List(ctx context.Context, filters *domain.AdvanceFilters) ([]domain.Advance, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	n := 0

	if filters != nil {
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
	}

	var advances []domain.Advance
	query := "SELECT * FROM advances" + where + " ORDER BY advance_date DESC, created_at DESC"
	if err := r.db.SelectContext(ctx, &advances, query, args...); err != nil {
		return nil, fmt.Errorf("advanceRepo.List: %w", err)
	}
	return advances, nil
}

func (r *advanceRepo) MarkAdjusted(ctx context.Context, id uuid.UUID, invoiceNumber string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE advances SET status = $1, invoice_number = $2, updated_at = $3
		 WHERE id = $4 AND status = $5`,
		domain.AdvanceStatusAdjusted, invoiceNumber, time.Now().UTC(),
		id, domain.AdvanceStatusPending)
	if err != nil {
		return fmt.Errorf("advanceRepo.MarkAdjusted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAdvanceAlreadyAdjusted
	}
	return nil
}

func (r *advanceRepo) PendingTotal(ctx context.Context, developerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(amount), 0) FROM advances WHERE developer_id = $1 AND status = $2",
		developerID, domain.AdvanceStatusPending)
	if err != nil {
		return decimal.Zero, fmt.Errorf("advanceRepo.PendingTotal: %w", err)
	}
	return total, nil
}

func (r *advanceRepo) PendingOldestFirst(ctx context.Context, developerID uuid.UUID) ([]domain.Advance, error) {
	var advances []domain.Advance
	err := r.db.SelectContext(ctx, &advances,
		`SELECT * FROM advances WHERE developer_id = $1 AND status = $2
		 ORDER BY advance_date ASC, created_at ASC`,
		developerID, domain.AdvanceStatusPending)
	if err != nil {
		return nil, fmt.Errorf("advanceRepo.PendingOldestFirst: %w", err)
	}
	return advances, nil
}
