package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
	"naijatax/internal/port"
	"naijatax/internal/taxengine"
)

// CreateAssetInput is the DTO for registering a qualifying capital asset.
type CreateAssetInput struct {
	UserID          uuid.UUID            `json:"-"`
	Description     string               `json:"description" validate:"max=500"`
	Category        domain.AssetCategory `json:"category" validate:"required"`
	Cost            decimal.Decimal      `json:"cost" validate:"gt=0,kobo"`
	AcquisitionDate time.Time            `json:"acquisition_date" validate:"required"`
}

// AssetService manages capital assets and their allowance schedules.
type AssetService interface {
	Create(ctx context.Context, input *CreateAssetInput) (*domain.CapitalAsset, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Schedule(ctx context.Context, userID, id uuid.UUID, throughYear int) ([]taxengine.AssetAllowance, error)
}

type assetService struct {
	assets port.CapitalAssetRepository
	tables port.RateTableProvider
}

// NewAssetService creates a new AssetService implementation.
func NewAssetService(assets port.CapitalAssetRepository, tables port.RateTableProvider) AssetService {
	return &assetService{assets: assets, tables: tables}
}

// Create fixes the allowance rates from the acquisition year's table. Later
// table changes never alter an existing asset.
func (s *assetService) Create(ctx context.Context, input *CreateAssetInput) (*domain.CapitalAsset, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	year := input.AcquisitionDate.Year()
	table, err := s.tables.ForYear(year)
	if err != nil {
		return nil, err
	}
	rates, err := table.AllowanceRatesFor(input.Category)
	if err != nil {
		return nil, err
	}

	asset := &domain.CapitalAsset{
		UserID:               input.UserID,
		Description:          input.Description,
		Category:             input.Category,
		Cost:                 input.Cost,
		AcquisitionDate:      input.AcquisitionDate,
		YearAcquired:         year,
		InitialAllowanceRate: rates.Initial,
		AnnualAllowanceRate:  rates.Annual,
	}
	if err := domain.ValidateInput(asset); err != nil {
		return nil, err
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("assetService.Create: %w", err)
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.CapitalAsset, int, error) {
	return s.assets.List(ctx, userID, offset, limit)
}

func (s *assetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.assets.Delete(ctx, userID, id)
}

// Schedule returns the uncapped allowance of each year from acquisition
// through throughYear.
func (s *assetService) Schedule(ctx context.Context, userID, id uuid.UUID, throughYear int) ([]taxengine.AssetAllowance, error) {
	asset, err := s.assets.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateRecord(asset); err != nil {
		return nil, err
	}
	if throughYear < asset.YearAcquired {
		return nil, fmt.Errorf("%w: year %d is before the asset was acquired in %d",
			domain.ErrInvalidInput, throughYear, asset.YearAcquired)
	}
	return taxengine.AssetSchedule(*asset, throughYear), nil
}
