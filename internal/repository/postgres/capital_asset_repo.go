package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"naijatax/internal/domain"
	"naijatax/internal/port"
)

type capitalAssetRepo struct {
	db *sqlx.DB
}

// NewCapitalAssetRepo creates a new PostgreSQL-backed CapitalAssetRepository.
func NewCapitalAssetRepo(db *sqlx.DB) port.CapitalAssetRepository {
	return &capitalAssetRepo{db: db}
}

func (r *capitalAssetRepo) Create(ctx context.Context, a *domain.CapitalAsset) error {
	a.ID = uuid.New()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO capital_assets (id, user_id, description, category, cost, acquisition_date,
			year_acquired, initial_allowance_rate, annual_allowance_rate, created_at, updated_at)
		 VALUES (:id, :user_id, :description, :category, :cost, :acquisition_date,
			:year_acquired, :initial_allowance_rate, :annual_allowance_rate, :created_at, :updated_at)`, a)
	if err != nil {
		return fmt.Errorf("capitalAssetRepo.Create: %w", err)
	}
	return nil
}

func (r *capitalAssetRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CapitalAsset, error) {
	var a domain.CapitalAsset
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM capital_assets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("capitalAssetRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *capitalAssetRepo) ListAcquiredBy(ctx context.Context, userID uuid.UUID, year int) ([]domain.CapitalAsset, error) {
	var assets []domain.CapitalAsset
	err := r.db.SelectContext(ctx, &assets,
		`SELECT * FROM capital_assets WHERE user_id = $1 AND year_acquired <= $2
		 ORDER BY acquisition_date, id`,
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("capitalAssetRepo.ListAcquiredBy: %w", err)
	}
	return assets, nil
}

func (r *capitalAssetRepo) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM capital_assets WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("capitalAssetRepo.List count: %w", err)
	}

	var assets []domain.CapitalAsset
	err = r.db.SelectContext(ctx, &assets,
		`SELECT * FROM capital_assets WHERE user_id = $1
		 ORDER BY acquisition_date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("capitalAssetRepo.List: %w", err)
	}
	return assets, total, nil
}

func (r *capitalAssetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM capital_assets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("capitalAssetRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
