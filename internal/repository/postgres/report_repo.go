package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"crbill/internal/domain"
	"crbill/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

const outstandingQuery = `SELECT
	d.id AS developer_id,
	d.name AS developer_name,
	COALESCE(SUM(i.net_amount), 0) AS total_billed,
	COALESCE(SUM(i.net_amount - i.balance_amount), 0) AS total_paid,
	COALESCE(SUM(i.balance_amount), 0) AS outstanding_balance
FROM developers d
INNER JOIN invoices i ON i.developer_id = d.id
GROUP BY d.id, d.name
HAVING SUM(i.balance_amount) > 0
ORDER BY SUM(i.balance_amount) DESC`

func (r *reportRepo) Outstanding(ctx context.Context) ([]domain.OutstandingRow, error) {
	var rows []domain.OutstandingRow
	if err := r.db.SelectContext(ctx, &rows, outstandingQuery); err != nil {
		return nil, fmt.Errorf("reportRepo.Outstanding: %w", err)
	}
	return rows, nil
}
