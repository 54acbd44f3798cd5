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

// CreateWHTInput is the DTO for recording a payment subject to withholding.
// Rate, withheld amount and net amount are always derived.
type CreateWHTInput struct {
	UserID        uuid.UUID             `json:"-"`
	PaymentType   domain.WHTPaymentType `json:"payment_type" validate:"required"`
	RecipientType domain.RecipientType  `json:"recipient_type" validate:"required"`
	RecipientName string                `json:"recipient_name" validate:"max=200"`
	RecipientTIN  string                `json:"recipient_tin" validate:"max=50"`
	GrossAmount   decimal.Decimal       `json:"gross_amount" validate:"gte=0,kobo"`
	PaymentDate   time.Time             `json:"payment_date" validate:"required"`
	Description   string                `json:"description" validate:"max=500"`
}

// WHTService manages withholding tax transactions.
type WHTService interface {
	Create(ctx context.Context, input *CreateWHTInput) (*domain.WHTTransaction, error)
	List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type whtService struct {
	wht    port.WHTRepository
	tables port.RateTableProvider
}

// NewWHTService creates a new WHTService implementation.
func NewWHTService(wht port.WHTRepository, tables port.RateTableProvider) WHTService {
	return &whtService{wht: wht, tables: tables}
}

func (s *whtService) Create(ctx context.Context, input *CreateWHTInput) (*domain.WHTTransaction, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	year := input.PaymentDate.Year()
	table, err := s.tables.ForYear(year)
	if err != nil {
		return nil, err
	}
	res, err := taxengine.ComputeWHT(year, input.GrossAmount, input.PaymentType, input.RecipientType, table.WHT)
	if err != nil {
		return nil, err
	}

	tx := &domain.WHTTransaction{
		UserID:        input.UserID,
		PaymentType:   input.PaymentType,
		RecipientType: input.RecipientType,
		RecipientName: input.RecipientName,
		RecipientTIN:  input.RecipientTIN,
		GrossAmount:   res.GrossAmount,
		WHTRate:       res.Rate,
		WHTAmount:     res.WHTAmount,
		NetAmount:     res.NetAmount,
		PaymentDate:   input.PaymentDate,
		TaxYear:       year,
		Description:   input.Description,
	}
	if err := domain.ValidateInput(tx); err != nil {
		return nil, err
	}
	if err := s.wht.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("whtService.Create: %w", err)
	}
	return tx, nil
}

func (s *whtService) List(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.WHTTransaction, int, error) {
	return s.wht.List(ctx, userID, year, offset, limit)
}

func (s *whtService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.wht.Delete(ctx, userID, id)
}
