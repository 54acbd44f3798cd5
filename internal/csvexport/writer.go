package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"naijatax/internal/taxengine"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{"Section", "Item", "Period", "Amount"}

// Writer wraps csv.Writer for exporting tax summaries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSummary writes one summary as section/item/amount rows. Amounts are
// plain two-decimal numbers so spreadsheets can sum them.
func (w *Writer) WriteSummary(s *taxengine.Summary) error {
	for _, row := range summaryRows(s) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func summaryRows(s *taxengine.Summary) [][]string {
	year := strconv.Itoa(s.Year)
	var rows [][]string
	add := func(section, item, period string, amount decimal.Decimal) {
		rows = append(rows, []string{section, item, period, FormatMoney(amount)})
	}

	add("Income", "Gross income", year, s.GrossIncome)
	add("Income", "Exempt income", year, s.ExemptIncome)
	add("Income", "Total expenses", year, s.TotalExpenses)
	add("Income", "Assessable profit", year, s.AssessableProfit)

	r := s.Reliefs
	add("Reliefs", "Consolidated relief allowance", year, r.CRA)
	add("Reliefs", "Rent relief", year, r.RentRelief)
	add("Reliefs", "Pension", year, r.Pension)
	add("Reliefs", "NHIS", year, r.NHIS)
	add("Reliefs", "NHF", year, r.NHF)
	add("Reliefs", "Housing loan interest", year, r.HousingLoanInterest)
	add("Reliefs", "Life insurance", year, r.LifeInsurance)
	add("Reliefs", "Total reliefs", year, s.TotalReliefs)

	ca := s.CapitalAllowance
	add("Capital allowance", "Allowance for year", year, ca.YearAllowance)
	add("Capital allowance", "Brought forward", year, ca.BroughtForward)
	add("Capital allowance", "Claimed", year, ca.Claimed)
	add("Capital allowance", "Carried forward", year, ca.CarriedForward)

	add("Income tax", "Taxable income", year, s.TaxableIncome)
	if s.PIT != nil {
		for _, b := range s.PIT.Bands {
			add("PIT", bandLabel(b), year, b.Tax)
		}
		if s.PIT.ThresholdRelief.IsPositive() {
			add("PIT", "Threshold relief", year, s.PIT.ThresholdRelief.Neg())
		}
	}
	if s.CIT != nil {
		add("CIT", "Rate "+FormatRate(s.CIT.Rate), year, s.CIT.Tax)
	}
	add("Income tax", "Liability", year, s.PITOrCITLiability)

	for _, p := range s.VATPeriods {
		period := fmt.Sprintf("%d-%02d", p.Year, p.Month)
		add("VAT", "Output VAT", period, p.OutputVAT)
		add("VAT", "Input VAT", period, p.InputVAT)
		add("VAT", "Net payable", period, p.NetPayable)
	}
	add("VAT", "Liability", year, s.VATLiability)

	add("WHT", fmt.Sprintf("Withheld (%d transactions)", s.WHTTransactionCount), year, s.WHTWithheld)

	add("Totals", "Total liability", year, s.TotalLiability)
	add("Totals", "Total paid", year, s.TotalPaid)
	add("Totals", "Outstanding", year, s.Outstanding)

	for _, o := range s.SavingsOpportunities {
		add("Advisory", "Unclaimed "+o.Kind, year, o.Shortfall)
	}
	add("Advisory", "Estimated tax saving", year, s.EstimatedTaxSaving)
	return rows
}

func bandLabel(b taxengine.BandTax) string {
	upper := "and above"
	if b.Upper.Valid {
		upper = "to " + FormatMoney(b.Upper.Decimal)
	}
	return fmt.Sprintf("%s from %s %s", FormatRate(b.Rate), FormatMoney(b.Lower), upper)
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage.
func FormatRate(r decimal.Decimal) string {
	return r.Shift(2).String() + "%"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{year}_{YYYY-MM-DD}.{ext}
func BuildFilename(name string, year int, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s.%s", SanitizeFilename(name), year, now.Format("2006-01-02"), ext)
}
