package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"naijatax/internal/config"
	"naijatax/internal/domain"
	"naijatax/internal/port"
	"naijatax/internal/taxengine"
)

// TaxRepos groups the record stores a tax summary is assembled from.
type TaxRepos struct {
	Profiles   port.ProfileRepository
	Income     port.IncomeRepository
	Expenses   port.ExpenseRepository
	Deductions port.DeductionsRepository
	Assets     port.CapitalAssetRepository
	VAT        port.VATRepository
	WHT        port.WHTRepository
	Payments   port.TaxPaymentRepository
	YearTotals port.YearTotalsRepository
}

// PITInput is the DTO for a standalone PIT calculation.
type PITInput struct {
	Year          int             `json:"year" validate:"gte=2000"`
	TaxableIncome decimal.Decimal `json:"taxable_income" validate:"gte=0"`
}

// CITInput is the DTO for a standalone CIT calculation. Profit may be negative.
type CITInput struct {
	Year     int             `json:"year" validate:"gte=2000"`
	Turnover decimal.Decimal `json:"turnover" validate:"gte=0"`
	Profit   decimal.Decimal `json:"profit"`
}

// WHTInput is the DTO for a standalone WHT calculation.
type WHTInput struct {
	Year          int                   `json:"year" validate:"gte=2000"`
	GrossAmount   decimal.Decimal       `json:"gross_amount" validate:"gte=0"`
	PaymentType   domain.WHTPaymentType `json:"payment_type" validate:"required"`
	RecipientType domain.RecipientType  `json:"recipient_type" validate:"oneof=individual company"`
}

// ReliefsInput is the DTO for a standalone relief calculation.
type ReliefsInput struct {
	Year        int                         `json:"year" validate:"gte=2000"`
	GrossIncome decimal.Decimal             `json:"gross_income" validate:"gte=0"`
	AccountType domain.AccountType          `json:"account_type" validate:"omitempty,oneof=individual business"`
	Deductions  *domain.StatutoryDeductions `json:"deductions"`
}

// VATLine is one transaction of a standalone VAT period calculation.
type VATLine struct {
	Type     domain.VATTransactionType `json:"type" validate:"oneof=output input"`
	Amount   decimal.Decimal           `json:"amount" validate:"gte=0"`
	IsExempt bool                      `json:"is_exempt"`
}

// VATPeriodInput is the DTO for a standalone VAT period calculation.
type VATPeriodInput struct {
	Year         int       `json:"year" validate:"gte=2000"`
	Month        int       `json:"month" validate:"gte=1,lte=12"`
	Transactions []VATLine `json:"transactions" validate:"dive"`
}

// TaxService computes liabilities from stored records and exposes each
// engine as a standalone calculator.
type TaxService interface {
	Summary(ctx context.Context, userID uuid.UUID, year int) (*taxengine.Summary, error)
	Summaries(ctx context.Context, userID uuid.UUID, years []int) ([]*taxengine.Summary, error)
	RateTable(year int) (*taxengine.RateTable, error)
	CalculatePIT(input PITInput) (*taxengine.PITResult, error)
	CalculateCIT(input CITInput) (*taxengine.CITResult, error)
	CalculateWHT(input WHTInput) (*taxengine.WHTResult, error)
	CalculateReliefs(input ReliefsInput) (*taxengine.ReliefResult, error)
	CalculateVAT(input VATPeriodInput) (*taxengine.VATPeriodResult, error)
}

type taxService struct {
	repos  TaxRepos
	tables port.RateTableProvider
	cfg    config.TaxConfig
}

// NewTaxService creates a new TaxService implementation.
func NewTaxService(repos TaxRepos, tables port.RateTableProvider, cfg config.TaxConfig) TaxService {
	if cfg.MaxSummaryYears < 1 {
		cfg.MaxSummaryYears = 1
	}
	if cfg.SummaryConcurrency < 1 {
		cfg.SummaryConcurrency = 1
	}
	return &taxService{repos: repos, tables: tables, cfg: cfg}
}

func (s *taxService) Summary(ctx context.Context, userID uuid.UUID, year int) (*taxengine.Summary, error) {
	// Resolve the table first so an unknown year fails before any query runs.
	table, err := s.tables.ForYear(year)
	if err != nil {
		return nil, err
	}
	in, err := s.loadInput(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	summary, err := taxengine.ComputeTaxSummary(*in, table)
	if err != nil {
		return nil, fmt.Errorf("taxService.Summary %d: %w", year, err)
	}
	return summary, nil
}

// Summaries computes several years concurrently. Each year is independent;
// the first failure cancels the rest.
func (s *taxService) Summaries(ctx context.Context, userID uuid.UUID, years []int) ([]*taxengine.Summary, error) {
	years = uniqueSorted(years)
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: at least one year is required", domain.ErrInvalidInput)
	}
	if len(years) > s.cfg.MaxSummaryYears {
		return nil, fmt.Errorf("%w: at most %d years per request", domain.ErrInvalidInput, s.cfg.MaxSummaryYears)
	}

	results := make([]*taxengine.Summary, len(years))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SummaryConcurrency)
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			summary, err := s.Summary(gctx, userID, year)
			if err != nil {
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *taxService) RateTable(year int) (*taxengine.RateTable, error) {
	return s.tables.ForYear(year)
}

func (s *taxService) CalculatePIT(input PITInput) (*taxengine.PITResult, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	table, err := s.tables.ForYear(input.Year)
	if err != nil {
		return nil, err
	}
	res := taxengine.ComputePIT(input.TaxableIncome, table.PIT)
	return &res, nil
}

func (s *taxService) CalculateCIT(input CITInput) (*taxengine.CITResult, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	table, err := s.tables.ForYear(input.Year)
	if err != nil {
		return nil, err
	}
	res, err := taxengine.ComputeCIT(input.Year, input.Turnover, input.Profit, table.CIT)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *taxService) CalculateWHT(input WHTInput) (*taxengine.WHTResult, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	table, err := s.tables.ForYear(input.Year)
	if err != nil {
		return nil, err
	}
	res, err := taxengine.ComputeWHT(input.Year, input.GrossAmount, input.PaymentType, input.RecipientType, table.WHT)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *taxService) CalculateReliefs(input ReliefsInput) (*taxengine.ReliefResult, error) {
	if input.Deductions != nil {
		input.Deductions.TaxYear = input.Year
	}
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	table, err := s.tables.ForYear(input.Year)
	if err != nil {
		return nil, err
	}
	accountType := input.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeIndividual
	}
	res := taxengine.ComputeReliefs(taxengine.ReliefInput{
		GrossIncome: input.GrossIncome,
		Deductions:  input.Deductions,
		AccountType: accountType,
	}, table.Relief)
	return &res, nil
}

func (s *taxService) CalculateVAT(input VATPeriodInput) (*taxengine.VATPeriodResult, error) {
	if err := domain.ValidateInput(input); err != nil {
		return nil, err
	}
	table, err := s.tables.ForYear(input.Year)
	if err != nil {
		return nil, err
	}
	txs := make([]domain.VATTransaction, len(input.Transactions))
	for i, line := range input.Transactions {
		txs[i] = domain.VATTransaction{
			Type:     line.Type,
			Amount:   line.Amount,
			IsExempt: line.IsExempt,
			Year:     input.Year,
			Month:    input.Month,
		}
	}
	res := taxengine.ComputeVATForPeriod(txs, input.Year, input.Month, table.VATRate)
	return &res, nil
}

// loadInput fetches the year's records concurrently and re-validates every
// row before it reaches the engine.
func (s *taxService) loadInput(ctx context.Context, userID uuid.UUID, year int) (*taxengine.Input, error) {
	in := &taxengine.Input{UserID: userID, Year: year, AccountType: domain.AccountTypeIndividual}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.repos.Profiles.GetByUserID(gctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("taxService.loadInput: no profile for user %s, assuming individual", userID)
			return nil
		}
		if err != nil {
			return err
		}
		in.AccountType = profile.AccountType
		return nil
	})
	g.Go(func() (err error) {
		in.Income, err = s.repos.Income.ListByYear(gctx, userID, year)
		return err
	})
	g.Go(func() (err error) {
		in.Expenses, err = s.repos.Expenses.ListByYear(gctx, userID, year)
		return err
	})
	g.Go(func() error {
		d, err := s.repos.Deductions.GetByYear(gctx, userID, year)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		in.Deductions = d
		return nil
	})
	g.Go(func() (err error) {
		in.Assets, err = s.repos.Assets.ListAcquiredBy(gctx, userID, year)
		return err
	})
	g.Go(func() (err error) {
		in.VATTransactions, err = s.repos.VAT.ListTransactionsByYear(gctx, userID, year)
		return err
	})
	g.Go(func() (err error) {
		in.WHTTransactions, err = s.repos.WHT.ListByYear(gctx, userID, year)
		return err
	})
	g.Go(func() (err error) {
		in.Payments, err = s.repos.Payments.ListByYear(gctx, userID, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("taxService.loadInput: %w", err)
	}

	if first, ok := earliestAcquisition(in.Assets); ok && first < year {
		prior, err := s.repos.YearTotals.ListYearTotals(ctx, userID, first, year-1)
		if err != nil {
			return nil, fmt.Errorf("taxService.loadInput: %w", err)
		}
		in.PriorYears = prior
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}
	return in, nil
}

// validateInput rejects malformed stored rows instead of letting the engine
// coerce them.
func validateInput(in *taxengine.Input) error {
	check := func(kind string, id uuid.UUID, v interface{}) error {
		if err := domain.ValidateRecord(v); err != nil {
			return fmt.Errorf("%s %s: %w", kind, id, err)
		}
		return nil
	}
	for i := range in.Income {
		if err := check("income", in.Income[i].ID, &in.Income[i]); err != nil {
			return err
		}
	}
	for i := range in.Expenses {
		if err := check("expense", in.Expenses[i].ID, &in.Expenses[i]); err != nil {
			return err
		}
	}
	if in.Deductions != nil {
		if err := check("deductions", in.Deductions.ID, in.Deductions); err != nil {
			return err
		}
	}
	for i := range in.Assets {
		if err := check("asset", in.Assets[i].ID, &in.Assets[i]); err != nil {
			return err
		}
	}
	for i := range in.VATTransactions {
		if err := check("vat transaction", in.VATTransactions[i].ID, &in.VATTransactions[i]); err != nil {
			return err
		}
	}
	for i := range in.WHTTransactions {
		if err := check("wht transaction", in.WHTTransactions[i].ID, &in.WHTTransactions[i]); err != nil {
			return err
		}
	}
	for i := range in.Payments {
		if err := check("tax payment", in.Payments[i].ID, &in.Payments[i]); err != nil {
			return err
		}
	}
	return nil
}

func earliestAcquisition(assets []domain.CapitalAsset) (int, bool) {
	if len(assets) == 0 {
		return 0, false
	}
	first := assets[0].YearAcquired
	for _, a := range assets[1:] {
		if a.YearAcquired < first {
			first = a.YearAcquired
		}
	}
	return first, true
}

func uniqueSorted(years []int) []int {
	seen := make(map[int]bool, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}
