// Package xlsxexport renders tax summaries and rate tables as XLSX workbooks.
package xlsxexport

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"naijatax/internal/domain"
	"naijatax/internal/taxengine"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetSummary = "Summary"
	SheetVAT     = "VAT"
	SheetAssets  = "Capital Allowance"
	SheetPIT     = "PIT"
	SheetCIT     = "CIT"
	SheetWHT     = "WHT"
	SheetRates   = "Asset Rates"
)

// sheet appends rows to one worksheet.
type sheet struct {
	f     *excelize.File
	name  string
	row   int
	money int
	err   error
}

func newSheet(f *excelize.File, name string, first bool, money int) (*sheet, error) {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	return &sheet{f: f, name: name, money: money}, nil
}

// add writes one row. Decimals become numbers; everything else is written as is.
func (s *sheet) add(values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if dv, ok := v.(decimal.Decimal); ok {
			cells[i] = dv.InexactFloat64()
			continue
		}
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.name, cell, &cells)
}

// finish styles the header row and formats money columns from firstMoneyCol on.
func (s *sheet) finish(header int, widths []float64, firstMoneyCol int) error {
	if s.err != nil {
		return s.err
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.f.SetColWidth(s.name, col, col, w); err != nil {
			return err
		}
		if i+1 >= firstMoneyCol && s.row > 1 {
			from, _ := excelize.CoordinatesToCellName(i+1, 2)
			to, _ := excelize.CoordinatesToCellName(i+1, s.row)
			if err := s.f.SetCellStyle(s.name, from, to, s.money); err != nil {
				return err
			}
		}
	}
	if s.row == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(widths), 1)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, "A1", last, header)
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, err
	}
	// 4 is the built-in "#,##0.00" format.
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, money: money}, nil
}

// WriteSummary writes a workbook with the summary, its VAT periods and its
// capital allowance schedule to w.
func WriteSummary(w io.Writer, s *taxengine.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	sum, err := newSheet(f, SheetSummary, true, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	sum.add("Item", "Amount")
	sum.add("Tax year", s.Year)
	sum.add("Account type", string(s.AccountType))
	sum.add("Gross income", s.GrossIncome)
	sum.add("Exempt income", s.ExemptIncome)
	sum.add("Total expenses", s.TotalExpenses)
	sum.add("Assessable profit", s.AssessableProfit)
	sum.add("Total reliefs", s.TotalReliefs)
	sum.add("Capital allowance claimed", s.CapitalAllowance.Claimed)
	sum.add("Taxable income", s.TaxableIncome)
	if s.PIT != nil {
		for _, b := range s.PIT.Bands {
			sum.add(fmt.Sprintf("PIT at %s", rateLabel(b.Rate)), b.Tax)
		}
		if s.PIT.ThresholdRelief.IsPositive() {
			sum.add("PIT threshold relief", s.PIT.ThresholdRelief.Neg())
		}
	}
	if s.CIT != nil {
		sum.add(fmt.Sprintf("CIT at %s", rateLabel(s.CIT.Rate)), s.CIT.Tax)
	}
	sum.add("Income tax liability", s.PITOrCITLiability)
	sum.add("VAT liability", s.VATLiability)
	sum.add("WHT withheld", s.WHTWithheld)
	sum.add("Total liability", s.TotalLiability)
	sum.add("Total paid", s.TotalPaid)
	sum.add("Outstanding", s.Outstanding)
	sum.add("Potential unclaimed savings", s.PotentialUnclaimedSavings)
	sum.add("Estimated tax saving", s.EstimatedTaxSaving)
	if err := sum.finish(st.header, []float64{34, 18}, 2); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	vat, err := newSheet(f, SheetVAT, false, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	vat.add("Month", "Output VAT", "Input VAT", "Net payable", "Excess input VAT", "Exempt volume")
	for _, p := range s.VATPeriods {
		vat.add(fmt.Sprintf("%d-%02d", p.Year, p.Month), p.OutputVAT, p.InputVAT, p.NetPayable, p.ExcessInputVAT, p.ExemptVolume)
	}
	if err := vat.finish(st.header, []float64{12, 16, 16, 16, 18, 16}, 2); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	ca, err := newSheet(f, SheetAssets, false, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	ca.add("Asset", "Category", "State", "Cost", "Opening WDV", "Allowance", "Closing WDV")
	for _, a := range s.CapitalAllowance.Assets {
		ca.add(a.Description, string(a.Category), string(a.State), a.Cost, a.OpeningWDV, a.Allowance, a.ClosingWDV)
	}
	if err := ca.finish(st.header, []float64{28, 24, 20, 16, 16, 16, 16}, 4); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport: writing workbook: %w", err)
	}
	return nil
}

// WriteRateTables writes one sheet per rate kind, with a row per year.
func WriteRateTables(w io.Writer, tables []*taxengine.RateTable) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	pit, err := newSheet(f, SheetPIT, true, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	pit.add("Year", "Rate", "Lower", "Upper", "Exemption threshold")
	for _, t := range tables {
		for _, b := range t.PIT.Brackets {
			pit.add(t.Year, rateLabel(b.Rate), b.Lower, bound(b.Upper), t.PIT.ExemptionThreshold)
		}
	}
	if err := pit.finish(st.header, []float64{8, 10, 18, 18, 20}, 3); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	cit, err := newSheet(f, SheetCIT, false, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	cit.add("Year", "Rate", "Turnover up to")
	for _, t := range tables {
		for _, b := range t.CIT {
			cit.add(t.Year, rateLabel(b.Rate), bound(b.Upper))
		}
	}
	if err := cit.finish(st.header, []float64{8, 10, 20}, 3); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	wht, err := newSheet(f, SheetWHT, false, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	wht.add("Year", "Payment type", "Recipient type", "Rate")
	for _, t := range tables {
		for _, e := range t.WHTEntries() {
			wht.add(t.Year, string(e.PaymentType), string(e.RecipientType), rateLabel(e.Rate))
		}
	}
	if err := wht.finish(st.header, []float64{8, 20, 16, 10}, 5); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	rates, err := newSheet(f, SheetRates, false, st.money)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	rates.add("Year", "Category", "Initial", "Annual", "VAT rate", "Profit cap")
	for _, t := range tables {
		for _, c := range sortedCategories(t) {
			r := t.CapitalAllowance[c]
			rates.add(t.Year, string(c), rateLabel(r.Initial), rateLabel(r.Annual), rateLabel(t.VATRate), t.CapitalAllowanceProfitCap.StringFixed(4))
		}
	}
	if err := rates.finish(st.header, []float64{8, 26, 10, 10, 10, 12}, 7); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport: writing workbook: %w", err)
	}
	return nil
}

func rateLabel(r decimal.Decimal) string {
	return r.Shift(2).String() + "%"
}

// bound renders an optional upper limit; unbounded is left blank.
func bound(u decimal.NullDecimal) interface{} {
	if !u.Valid {
		return ""
	}
	return u.Decimal
}

func sortedCategories(t *taxengine.RateTable) []domain.AssetCategory {
	out := make([]domain.AssetCategory, 0, len(t.CapitalAllowance))
	for c := range t.CapitalAllowance {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
