package taxengine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// Input is an already-fetched, validated snapshot of one user's records for a
// tax year. PriorYears carries income and expense totals of earlier years so
// capital allowances can be replayed; it may be empty.
type Input struct {
	UserID          uuid.UUID
	Year            int
	AccountType     domain.AccountType
	Income          []domain.IncomeRecord
	Expenses        []domain.Expense
	Deductions      *domain.StatutoryDeductions
	Assets          []domain.CapitalAsset
	PriorYears      []domain.YearTotals
	VATTransactions []domain.VATTransaction
	WHTTransactions []domain.WHTTransaction
	Payments        []domain.TaxPayment
}

// SavingsOpportunity is an advisory estimate of a relief the user appears
// eligible for but has not recorded.
type SavingsOpportunity struct {
	Kind      string          `json:"kind"`
	Recorded  decimal.Decimal `json:"recorded"`
	Eligible  decimal.Decimal `json:"eligible"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// Summary is the liability summary of one user for one tax year.
type Summary struct {
	UserID      uuid.UUID          `json:"user_id"`
	Year        int                `json:"year"`
	AccountType domain.AccountType `json:"account_type"`

	GrossIncome      decimal.Decimal `json:"gross_income"`
	ExemptIncome     decimal.Decimal `json:"exempt_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	AssessableProfit decimal.Decimal `json:"assessable_profit"`

	Reliefs          ReliefResult           `json:"reliefs"`
	CapitalAllowance CapitalAllowanceResult `json:"capital_allowance"`
	TotalReliefs     decimal.Decimal        `json:"total_reliefs"`
	TaxableIncome    decimal.Decimal        `json:"taxable_income"`

	PIT               *PITResult      `json:"pit,omitempty"`
	CIT               *CITResult      `json:"cit,omitempty"`
	PITOrCITLiability decimal.Decimal `json:"pit_or_cit_liability"`

	VATPeriods   []VATPeriodResult `json:"vat_periods"`
	VATLiability decimal.Decimal   `json:"vat_liability"`

	WHTTransactionCount int             `json:"wht_transaction_count"`
	WHTWithheld         decimal.Decimal `json:"wht_withheld"`

	TotalLiability decimal.Decimal `json:"total_liability"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Outstanding    decimal.Decimal `json:"outstanding"`

	PotentialUnclaimedSavings decimal.Decimal      `json:"potential_unclaimed_savings"`
	EstimatedTaxSaving        decimal.Decimal      `json:"estimated_tax_saving"`
	SavingsOpportunities      []SavingsOpportunity `json:"savings_opportunities"`
}

// ComputeTaxSummary runs every engine for in.Year in dependency order:
// reliefs and capital allowances first, then PIT or CIT on the resulting
// profit, then VAT and WHT. The table must be the one for in.Year; a table of
// any other year is rejected rather than applied.
func ComputeTaxSummary(in Input, table *RateTable) (*Summary, error) {
	if table == nil || table.Year != in.Year {
		return nil, &RateTableError{Year: in.Year, Err: domain.ErrRateTableNotFound}
	}

	s := &Summary{
		UserID:      in.UserID,
		Year:        in.Year,
		AccountType: in.AccountType,
	}

	s.GrossIncome = sumIncome(in.Income)
	s.TotalExpenses = sumExpenses(in.Expenses)

	s.Reliefs = ComputeReliefs(ReliefInput{
		GrossIncome: s.GrossIncome,
		Deductions:  in.Deductions,
		AccountType: in.AccountType,
	}, table.Relief)
	s.ExemptIncome = s.Reliefs.ExemptIncome
	s.AssessableProfit = s.Reliefs.RelievableIncome.Sub(s.TotalExpenses)

	for i := range in.Assets {
		if _, err := table.AllowanceRatesFor(in.Assets[i].Category); err != nil {
			return nil, err
		}
	}
	profits := make(map[int]decimal.Decimal, len(in.PriorYears)+1)
	for _, py := range in.PriorYears {
		if py.TaxYear < in.Year {
			profits[py.TaxYear] = py.Income.Sub(py.Expenses)
		}
	}
	profits[in.Year] = s.AssessableProfit
	s.CapitalAllowance = ComputeCapitalAllowances(in.Assets, in.Year, profits, table.CapitalAllowanceProfitCap)

	profitAfterAllowance := s.AssessableProfit.Sub(s.CapitalAllowance.Claimed)

	if in.AccountType == domain.AccountTypeBusiness {
		cit, err := ComputeCIT(in.Year, s.GrossIncome, profitAfterAllowance, table.CIT)
		if err != nil {
			return nil, err
		}
		s.CIT = &cit
		s.TotalReliefs = decimal.Zero
		s.TaxableIncome = nonNegative(profitAfterAllowance)
		s.PITOrCITLiability = cit.Tax
	} else {
		s.TotalReliefs = s.Reliefs.TotalReliefs
		s.TaxableIncome = nonNegative(profitAfterAllowance.Sub(s.TotalReliefs))
		pit := ComputePIT(s.TaxableIncome, table.PIT)
		s.PIT = &pit
		s.PITOrCITLiability = pit.Tax
	}

	s.VATPeriods = ComputeVATForYear(in.VATTransactions, in.Year, table.VATRate)
	s.VATLiability = decimal.Zero
	for _, p := range s.VATPeriods {
		s.VATLiability = s.VATLiability.Add(p.NetPayable)
	}

	s.WHTWithheld = decimal.Zero
	for i := range in.WHTTransactions {
		tx := &in.WHTTransactions[i]
		res, err := ComputeWHT(in.Year, tx.GrossAmount, tx.PaymentType, tx.RecipientType, table.WHT)
		if err != nil {
			return nil, err
		}
		s.WHTWithheld = s.WHTWithheld.Add(res.WHTAmount)
		s.WHTTransactionCount++
	}

	s.TotalLiability = s.PITOrCITLiability.Add(s.VATLiability).Add(s.WHTWithheld)
	s.TotalPaid = decimal.Zero
	for i := range in.Payments {
		if in.Payments[i].Status == domain.TaxPaymentConfirmed {
			s.TotalPaid = s.TotalPaid.Add(nonNegative(in.Payments[i].Amount))
		}
	}
	s.Outstanding = nonNegative(s.TotalLiability.Sub(s.TotalPaid))

	s.SavingsOpportunities = estimateSavings(s, in.Deductions, table)
	s.PotentialUnclaimedSavings = decimal.Zero
	for _, o := range s.SavingsOpportunities {
		s.PotentialUnclaimedSavings = s.PotentialUnclaimedSavings.Add(o.Shortfall)
	}
	s.EstimatedTaxSaving = decimal.Zero
	if s.PIT != nil && s.PotentialUnclaimedSavings.IsPositive() {
		reduced := ComputePIT(s.TaxableIncome.Sub(s.PotentialUnclaimedSavings), table.PIT)
		s.EstimatedTaxSaving = s.PIT.Tax.Sub(reduced.Tax)
	}
	return s, nil
}

// estimateSavings compares recorded pension, NHF and NHIS contributions with
// the standard contribution rates applied to relievable income. It is
// advisory only and never feeds back into the liability.
func estimateSavings(s *Summary, d *domain.StatutoryDeductions, table *RateTable) []SavingsOpportunity {
	out := []SavingsOpportunity{}
	if s.AccountType == domain.AccountTypeBusiness || !s.Reliefs.RelievableIncome.IsPositive() {
		return out
	}
	var recorded domain.StatutoryDeductions
	if d != nil {
		recorded = *d
	}
	base := s.Reliefs.RelievableIncome
	rules := table.Relief
	candidates := []struct {
		kind     string
		rate     decimal.Decimal
		recorded decimal.Decimal
		limit    decimal.NullDecimal
	}{
		{"pension", table.Advisory.Pension, nonNegative(recorded.Pension), rules.PensionCap},
		{"nhf", table.Advisory.NHF, nonNegative(recorded.NHF), rules.NHFCap},
		{"nhis", table.Advisory.NHIS, nonNegative(recorded.NHIS), rules.NHISCap},
	}
	for _, c := range candidates {
		eligible := capAt(RoundKobo(base.Mul(c.rate)), c.limit)
		if !eligible.GreaterThan(c.recorded) {
			continue
		}
		out = append(out, SavingsOpportunity{
			Kind:      c.kind,
			Recorded:  c.recorded,
			Eligible:  eligible,
			Shortfall: eligible.Sub(c.recorded),
		})
	}
	return out
}

func sumIncome(records []domain.IncomeRecord) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(nonNegative(records[i].Amount))
	}
	return total
}

func sumExpenses(records []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(nonNegative(records[i].Amount))
	}
	return total
}
