package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
	"naijatax/internal/xlsxexport"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func open(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	out, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return out
}

func lookup(rs [][]string, label string) string {
	for _, r := range rs {
		if len(r) >= 2 && r[0] == label {
			return r[1]
		}
	}
	return ""
}

func TestWriteSummary(t *testing.T) {
	s := &taxengine.Summary{
		Year:              2024,
		AccountType:       domain.AccountTypeIndividual,
		GrossIncome:       d("3000000"),
		TaxableIncome:     d("1500000"),
		PITOrCITLiability: d("205000"),
		PIT: &taxengine.PITResult{Bands: []taxengine.BandTax{
			{Rate: d("0.07"), Tax: d("21000")},
		}},
		VATPeriods: []taxengine.VATPeriodResult{
			{Year: 2024, Month: 3, OutputVAT: d("75000"), InputVAT: d("30000"), NetPayable: d("45000")},
		},
		CapitalAllowance: taxengine.CapitalAllowanceResult{
			Assets: []taxengine.AssetAllowance{
				{Description: "Generator", Category: domain.AssetCategoryPlantMachinery, State: domain.AssetStateAcquired, Cost: d("1000000"), Allowance: d("500000")},
			},
		},
		TotalLiability: d("250000.75"),
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteSummary(&buf, s))

	f := open(t, &buf)
	assert.Equal(t, []string{xlsxexport.SheetSummary, xlsxexport.SheetVAT, xlsxexport.SheetAssets}, f.GetSheetList())

	sum := rows(t, f, xlsxexport.SheetSummary)
	assert.Equal(t, []string{"Item", "Amount"}, sum[0])
	assert.Equal(t, "2024", lookup(sum, "Tax year"))
	assert.Equal(t, "individual", lookup(sum, "Account type"))
	assert.Equal(t, "3000000", lookup(sum, "Gross income"))
	assert.Equal(t, "21000", lookup(sum, "PIT at 7%"))
	assert.Equal(t, "205000", lookup(sum, "Income tax liability"))
	assert.Equal(t, "250000.75", lookup(sum, "Total liability"))

	vat := rows(t, f, xlsxexport.SheetVAT)
	require.Len(t, vat, 2)
	assert.Equal(t, "2024-03", vat[1][0])
	assert.Equal(t, "45000", vat[1][3])

	ca := rows(t, f, xlsxexport.SheetAssets)
	require.Len(t, ca, 2)
	assert.Equal(t, "Generator", ca[1][0])
	assert.Equal(t, "plant_machinery", ca[1][1])
	assert.Equal(t, "500000", ca[1][5])
}

func TestWriteRateTables(t *testing.T) {
	tables := []*taxengine.RateTable{ratetable.PITATable(2024), ratetable.PITATable(2025)}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteRateTables(&buf, tables))

	f := open(t, &buf)
	assert.Equal(t, []string{xlsxexport.SheetPIT, xlsxexport.SheetCIT, xlsxexport.SheetWHT, xlsxexport.SheetRates}, f.GetSheetList())

	pit := rows(t, f, xlsxexport.SheetPIT)
	assert.Len(t, pit, 1+2*len(tables[0].PIT.Brackets))
	assert.Equal(t, "2024", pit[1][0])
	assert.Equal(t, "7%", pit[1][1])

	wht := rows(t, f, xlsxexport.SheetWHT)
	assert.Len(t, wht, 1+len(tables[0].WHTEntries())+len(tables[1].WHTEntries()))

	cit := rows(t, f, xlsxexport.SheetCIT)
	assert.Len(t, cit, 1+len(tables[0].CIT)+len(tables[1].CIT))
}
