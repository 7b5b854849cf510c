package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crbill/internal/domain"
	"crbill/internal/port"
)

type developerRepo struct {
	db *sqlx.DB
}

// NewDeveloperRepo creates a new PostgreSQL-backed DeveloperRepository.
func NewDeveloperRepo(db *sqlx.DB) port.DeveloperRepository {
	return &developerRepo{db: db}
}

func (r *developerRepo) Create(ctx context.Context, dev *domain.Developer) error {
	dev.ID = uuid.New()
	now := time.Now().UTC()
	dev.CreatedAt = now
	dev.UpdatedAt = now

	query := `INSERT INTO developers (id, name, email, phone, hourly_rate, pan, bank_name, bank_account, ifsc, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		dev.ID, dev.Name, dev.Email, dev.Phone, dev.HourlyRate, dev.PAN,
		dev.BankName, dev.BankAccount, dev.IFSC, dev.IsActive,
		dev.CreatedAt, dev.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("developerRepo.Create: %w", err)
	}
	return nil
}

func (r *developerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Developer, error) {
	var dev domain.Developer
	err := r.db.GetContext(ctx, &dev, "SELECT * FROM developers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("developerRepo.GetByID: %w", err)
	}
	return &dev, nil
}

func (r *developerRepo) List(ctx context.Context, offset, limit int) ([]domain.Developer, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM developers"); err != nil {
		return nil, 0, fmt.Errorf("developerRepo.List count: %w", err)
	}

	var devs []domain.Developer
	err := r.db.SelectContext(ctx, &devs,
		"SELECT * FROM developers ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("developerRepo.List: %w", err)
	}
	return devs, total, nil
}

func (r *developerRepo) Update(ctx context.Context, dev *domain.Developer) error {
	dev.UpdatedAt = time.Now().UTC()
	query := `UPDATE developers SET name = $1, email = $2, phone = $3, hourly_rate = $4,
		pan = $5, bank_name = $6, bank_account = $7, ifsc = $8, is_active = $9, updated_at = $10
		WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		dev.Name, dev.Email, dev.Phone, dev.HourlyRate, dev.PAN,
		dev.BankName, dev.BankAccount, dev.IFSC, dev.IsActive, dev.UpdatedAt, dev.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("developerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *developerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM developers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("developerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
