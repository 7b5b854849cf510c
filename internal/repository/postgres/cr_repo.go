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

type crRepo struct {
	db *sqlx.DB
}

// NewCRRepo creates a new PostgreSQL-backed CRRepository.
func NewCRRepo(db *sqlx.DB) port.CRRepository {
	return &crRepo{db: db}
}

func (r *crRepo) Create(ctx context.Context, cr *domain.ChangeRequest) error {
	cr.ID = uuid.New()
	now := time.Now().UTC()
	cr.CreatedAt = now
	cr.UpdatedAt = now

	query := `INSERT INTO change_requests (id, cr_number, title, description, client_id, developer_id,
		priority, status, estimated_hours, estimated_amount, actual_hours, target_date, remarks,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		cr.ID, cr.CRNumber, cr.Title, cr.Description, cr.ClientID, cr.DeveloperID,
		cr.Priority, cr.Status, cr.EstimatedHours, cr.EstimatedAmount, cr.ActualHours,
		cr.TargetDate, cr.Remarks, cr.CreatedAt, cr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("crRepo.Create: %w", err)
	}
	return nil
}

func (r *crRepo) GetByNumber(ctx context.Context, crNumber string) (*domain.ChangeRequest, error) {
	var cr domain.ChangeRequest
	err := r.db.GetContext(ctx, &cr, "SELECT * FROM change_requests WHERE cr_number = $1", crNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("crRepo.GetByNumber: %w", err)
	}
	return &cr, nil
}

func (r *crRepo) List(ctx context.Context, filters *domain.CRFilters, offset, limit int) ([]domain.ChangeRequest, int, error) {
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
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM change_requests"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("crRepo.List count: %w", err)
	}

	query := "SELECT * FROM change_requests" + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	var crs []domain.ChangeRequest
	if err := r.db.SelectContext(ctx, &crs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("crRepo.List: %w", err)
	}
	return crs, total, nil
}

func (r *crRepo) Update(ctx context.Context, cr *domain.ChangeRequest) error {
	cr.UpdatedAt = time.Now().UTC()
	query := `UPDATE change_requests SET title = $1, description = $2, priority = $3, status = $4,
		estimated_hours = $5, estimated_amount = $6, actual_hours = $7, target_date = $8,
		remarks = $9, updated_at = $10 WHERE cr_number = $11`
	result, err := r.db.ExecContext(ctx, query,
		cr.Title, cr.Description, cr.Priority, cr.Status, cr.EstimatedHours,
		cr.EstimatedAmount, cr.ActualHours, cr.TargetDate, cr.Remarks, cr.UpdatedAt, cr.CRNumber)
	if err != nil {
		return fmt.Errorf("crRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *crRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.GetContext(ctx, &seq, "SELECT nextval('cr_number_seq')"); err != nil {
		return 0, fmt.Errorf("crRepo.NextSequence: %w", err)
	}
	return seq, nil
}

func (r *crRepo) CountByStatus(ctx context.Context) ([]domain.CRStatusCount, error) {
	var counts []domain.CRStatusCount
	err := r.db.SelectContext(ctx, &counts,
		"SELECT status, COUNT(*) AS count FROM change_requests GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("crRepo.CountByStatus: %w", err)
	}
	return counts, nil
}
