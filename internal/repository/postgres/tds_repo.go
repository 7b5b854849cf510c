package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crbill/internal/domain"
	"crbill/internal/port"
)

type tdsRepo struct {
	db *sqlx.DB
}

// NewTDSRepo creates a new PostgreSQL-backed TDSRepository.
func NewTDSRepo(db *sqlx.DB) port.TDSRepository {
	return &tdsRepo{db: db}
}

// Append adds a new dated rate. Existing rows are never updated; the history
// is the audit trail.
func (r *tdsRepo) Append(ctx context.Context, rate *domain.TDSRate) error {
	rate.ID = uuid.New()
	rate.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tds_rates (id, effective_date, percentage, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rate.ID, rate.EffectiveDate, rate.Percentage, rate.CreatedBy, rate.CreatedAt)
	if err != nil {
		return fmt.Errorf("tdsRepo.Append: %w", err)
	}
	return nil
}

func (r *tdsRepo) History(ctx context.Context) ([]domain.TDSRate, error) {
	var rates []domain.TDSRate
	err := r.db.SelectContext(ctx, &rates,
		"SELECT * FROM tds_rates ORDER BY effective_date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("tdsRepo.History: %w", err)
	}
	return rates, nil
}

// Current returns the rate in effect today: greatest effective date not in
// the future, ties broken by insertion order.
func (r *tdsRepo) Current(ctx context.Context) (*domain.TDSRate, error) {
	var rate domain.TDSRate
	err := r.db.GetContext(ctx, &rate,
		`SELECT * FROM tds_rates WHERE effective_date <= NOW()
		 ORDER BY effective_date DESC, created_at DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoApplicableTDSRate
		}
		return nil, fmt.Errorf("tdsRepo.Current: %w", err)
	}
	return &rate, nil
}
