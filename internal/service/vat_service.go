package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
	"naijatax/internal/port"
	"naijatax/internal/taxengine"
)

// vatFilingDueDay is the day of the following month a monthly return is due.
const vatFilingDueDay = 21

// CreateVATTransactionInput is the DTO for recording a VAT-bearing sale or
// purchase. The period and VAT amount are derived.
type CreateVATTransactionInput struct {
	UserID          uuid.UUID                 `json:"-"`
	Type            domain.VATTransactionType `json:"type" validate:"oneof=output input"`
	Amount          decimal.Decimal           `json:"amount" validate:"gte=0,kobo"`
	Category        string                    `json:"category" validate:"max=50"`
	Description     string                    `json:"description" validate:"max=500"`
	IsExempt        bool                      `json:"is_exempt"`
	TransactionDate time.Time                 `json:"transaction_date" validate:"required"`
}

// UpdateFilingInput is the DTO for moving a VAT period through its filing states.
type UpdateFilingInput struct {
	UserID           uuid.UUID           `json:"-"`
	Year             int                 `json:"-" validate:"gte=2000"`
	Month            int                 `json:"-" validate:"gte=1,lte=12"`
	Status           domain.FilingStatus `json:"status" validate:"oneof=pending filed paid"`
	FilingDate       *time.Time          `json:"filing_date"`
	FilingReference  string              `json:"filing_reference" validate:"max=100"`
	PaymentDate      *time.Time          `json:"payment_date"`
	PaymentReference string              `json:"payment_reference" validate:"max=100"`
}

// VATPeriod is a computed monthly VAT position with its filing state.
type VATPeriod struct {
	taxengine.VATPeriodResult
	Status  domain.FilingStatus `json:"status"`
	DueDate time.Time           `json:"due_date"`
	Overdue bool                `json:"overdue"`
	Filing  *domain.VATFiling   `json:"filing,omitempty"`
}

// VATService manages VAT transactions, monthly filing state and reminders.
type VATService interface {
	CreateTransaction(ctx context.Context, input *CreateVATTransactionInput) (*domain.VATTransaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
	Periods(ctx context.Context, userID uuid.UUID, year int) ([]VATPeriod, error)
	UpdateFiling(ctx context.Context, input *UpdateFilingInput) (*domain.VATFiling, error)
	SendReminders(ctx context.Context, userID uuid.UUID, year int) (int, error)
}

type vatService struct {
	vat      port.VATRepository
	profiles port.ProfileRepository
	tables   port.RateTableProvider
	email    port.EmailSender
	now      func() time.Time
}

// NewVATService creates a new VATService implementation.
func NewVATService(
	vat port.VATRepository,
	profiles port.ProfileRepository,
	tables port.RateTableProvider,
	email port.EmailSender,
) VATService {
	return newVATService(vat, profiles, tables, email, time.Now)
}

func newVATService(
	vat port.VATRepository,
	profiles port.ProfileRepository,
	tables port.RateTableProvider,
	email port.EmailSender,
	now func() time.Time,
) *vatService {
	return &vatService{vat: vat, profiles: profiles, tables: tables, email: email, now: now}
}

// DueDate returns the filing deadline of a monthly VAT period.
func DueDate(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, vatFilingDueDay, 0, 0, 0, 0, time.UTC)
}

// periodClosed reports whether the calendar month has ended at now.
func periodClosed(year, month int, now time.Time) bool {
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.Before(end)
}

func (s *vatService) CreateTransaction(ctx context.Context, input *CreateVATTransactionInput) (*domain.VATTransaction, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	year := input.TransactionDate.Year()
	table, err := s.tables.ForYear(year)
	if err != nil {
		return nil, err
	}

	tx := &domain.VATTransaction{
		UserID:          input.UserID,
		Type:            input.Type,
		Amount:          input.Amount,
		Category:        input.Category,
		Description:     input.Description,
		IsExempt:        input.IsExempt,
		TransactionDate: input.TransactionDate,
		Year:            year,
		Month:           int(input.TransactionDate.Month()),
	}
	tx.VATAmount = taxengine.TransactionVAT(*tx, table.VATRate)
	if err := domain.ValidateInput(tx); err != nil {
		return nil, err
	}
	if err := s.vat.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("vatService.CreateTransaction: %w", err)
	}
	return tx, nil
}

func (s *vatService) ListTransactions(ctx context.Context, userID uuid.UUID, year, offset, limit int) ([]domain.VATTransaction, int, error) {
	return s.vat.ListTransactions(ctx, userID, year, offset, limit)
}

func (s *vatService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return s.vat.DeleteTransaction(ctx, userID, id)
}

// Periods returns all twelve months of year. A month without a filing row is
// pending.
func (s *vatService) Periods(ctx context.Context, userID uuid.UUID, year int) ([]VATPeriod, error) {
	table, err := s.tables.ForYear(year)
	if err != nil {
		return nil, err
	}
	txs, err := s.vat.ListTransactionsByYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("vatService.Periods: %w", err)
	}
	for i := range txs {
		if err := domain.ValidateRecord(&txs[i]); err != nil {
			return nil, fmt.Errorf("vat transaction %s: %w", txs[i].ID, err)
		}
	}
	filings, err := s.vat.ListFilingsByYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("vatService.Periods: %w", err)
	}
	byMonth := make(map[int]*domain.VATFiling, len(filings))
	for i := range filings {
		byMonth[filings[i].Month] = &filings[i]
	}

	now := s.now()
	results := taxengine.ComputeVATForYear(txs, year, table.VATRate)
	periods := make([]VATPeriod, len(results))
	for i, r := range results {
		p := VATPeriod{
			VATPeriodResult: r,
			Status:          domain.FilingStatusPending,
			DueDate:         DueDate(r.Year, r.Month),
		}
		if f, ok := byMonth[r.Month]; ok {
			p.Status = f.Status
			p.Filing = f
		}
		p.Overdue = p.Status == domain.FilingStatusPending && r.NetPayable.IsPositive() && now.After(p.DueDate)
		periods[i] = p
	}
	return periods, nil
}

// UpdateFiling saves a period's filing state. Status only moves forward
// from pending to filed to paid.
func (s *vatService) UpdateFiling(ctx context.Context, input *UpdateFilingInput) (*domain.VATFiling, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}

	current := domain.FilingStatusPending
	var id uuid.UUID
	existing, err := s.vat.GetFiling(ctx, input.UserID, input.Year, input.Month)
	switch {
	case err == nil:
		current = existing.Status
		id = existing.ID
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("vatService.UpdateFiling: %w", err)
	}
	if !current.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidFilingTransition, current, input.Status)
	}

	filing := &domain.VATFiling{
		ID:               id,
		UserID:           input.UserID,
		Year:             input.Year,
		Month:            input.Month,
		Status:           input.Status,
		FilingDate:       input.FilingDate,
		FilingReference:  input.FilingReference,
		PaymentDate:      input.PaymentDate,
		PaymentReference: input.PaymentReference,
	}
	if existing != nil {
		if filing.FilingDate == nil {
			filing.FilingDate = existing.FilingDate
		}
		if filing.FilingReference == "" {
			filing.FilingReference = existing.FilingReference
		}
		if filing.PaymentDate == nil {
			filing.PaymentDate = existing.PaymentDate
		}
		if filing.PaymentReference == "" {
			filing.PaymentReference = existing.PaymentReference
		}
	}
	if err := s.vat.UpsertFiling(ctx, filing); err != nil {
		return nil, fmt.Errorf("vatService.UpdateFiling: %w", err)
	}
	return filing, nil
}

// SendReminders emails the user the closed periods of year that still owe
// VAT and are not filed. It returns how many periods were included.
func (s *vatService) SendReminders(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	periods, err := s.Periods(ctx, userID, year)
	if err != nil {
		return 0, err
	}
	now := s.now()
	var due []port.VATReminderPeriod
	for _, p := range periods {
		if p.Status != domain.FilingStatusPending || !p.NetPayable.IsPositive() || !periodClosed(p.Year, p.Month, now) {
			continue
		}
		due = append(due, port.VATReminderPeriod{
			Year:       p.Year,
			Month:      p.Month,
			NetPayable: p.NetPayable,
			DueDate:    p.DueDate,
		})
	}
	if len(due) == 0 {
		return 0, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("%w: no profile email to remind", domain.ErrInvalidInput)
		}
		return 0, fmt.Errorf("vatService.SendReminders: %w", err)
	}
	if profile.Email == "" {
		return 0, fmt.Errorf("%w: no profile email to remind", domain.ErrInvalidInput)
	}

	if err := s.email.SendVATFilingReminder(ctx, port.VATReminder{
		ToEmail: profile.Email,
		ToName:  profile.FullName,
		Periods: due,
	}); err != nil {
		return 0, fmt.Errorf("vatService.SendReminders: %w", err)
	}
	log.Printf("vatService.SendReminders: reminded user %s of %d period(s) in %d", userID, len(due), year)
	return len(due), nil
}
