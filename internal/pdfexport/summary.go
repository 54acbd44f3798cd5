// Package pdfexport renders a tax summary as a one-document PDF statement.
package pdfexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"naijatax/internal/taxengine"
)

// ContentType is the MIME type of the documents written here.
const ContentType = "application/pdf"

const (
	labelWidth  = 120.0
	amountWidth = 60.0
	rowHeight   = 7.0
)

type statement struct {
	pdf *gofpdf.Fpdf
}

func (s *statement) heading(text string) {
	s.pdf.Ln(3)
	s.pdf.SetFont("Arial", "B", 12)
	s.pdf.CellFormat(labelWidth+amountWidth, rowHeight+1, text, "B", 1, "L", false, 0, "")
	s.pdf.SetFont("Arial", "", 10)
}

func (s *statement) row(label string, amount decimal.Decimal) {
	s.pdf.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	s.pdf.CellFormat(amountWidth, rowHeight, Amount(amount), "", 1, "R", false, 0, "")
}

func (s *statement) total(label string, amount decimal.Decimal) {
	s.pdf.SetFont("Arial", "B", 10)
	s.pdf.SetFillColor(235, 235, 235)
	s.pdf.CellFormat(labelWidth, rowHeight, label, "T", 0, "L", true, 0, "")
	s.pdf.CellFormat(amountWidth, rowHeight, Amount(amount), "T", 1, "R", true, 0, "")
	s.pdf.SetFont("Arial", "", 10)
}

// WriteSummary writes the summary statement for one tax year to w.
func WriteSummary(w io.Writer, sum *taxengine.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Tax summary %d", sum.Year), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Tax summary for %d", sum.Year), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, rowHeight, "Account type: "+string(sum.AccountType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, rowHeight, "Amounts in NGN", "", 1, "L", false, 0, "")

	s := &statement{pdf: pdf}

	s.heading("Income")
	s.row("Gross income", sum.GrossIncome)
	s.row("Exempt income", sum.ExemptIncome)
	s.row("Total expenses", sum.TotalExpenses)
	s.total("Assessable profit", sum.AssessableProfit)

	s.heading("Reliefs and allowances")
	s.row("Total reliefs", sum.TotalReliefs)
	s.row("Capital allowance claimed", sum.CapitalAllowance.Claimed)
	s.total("Taxable income", sum.TaxableIncome)

	s.heading("Liability")
	if sum.PIT != nil {
		for _, b := range sum.PIT.Bands {
			s.row("PIT at "+Rate(b.Rate), b.Tax)
		}
		if sum.PIT.ThresholdRelief.IsPositive() {
			s.row("Threshold relief", sum.PIT.ThresholdRelief.Neg())
		}
	}
	if sum.CIT != nil {
		s.row("CIT at "+Rate(sum.CIT.Rate), sum.CIT.Tax)
	}
	s.row("Income tax", sum.PITOrCITLiability)
	s.row("VAT", sum.VATLiability)
	s.row("WHT withheld", sum.WHTWithheld)
	s.total("Total liability", sum.TotalLiability)
	s.row("Total paid", sum.TotalPaid)
	s.total("Outstanding", sum.Outstanding)

	if sum.PotentialUnclaimedSavings.IsPositive() {
		s.heading("Unclaimed deductions")
		s.row("Potential unclaimed deductions", sum.PotentialUnclaimedSavings)
		s.row("Estimated tax saving", sum.EstimatedTaxSaving)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdfexport: %w", err)
	}
	return nil
}

// Amount formats d with two decimals and thousands separators.
func Amount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// Rate formats a fractional rate as a percentage, e.g. 0.075 as "7.5%".
func Rate(r decimal.Decimal) string {
	return r.Shift(2).String() + "%"
}
