package ratetable_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ratetables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyPathIsBuiltin(t *testing.T) {
	p, err := ratetable.Load("")

	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022, 2023, 2024, 2025}, p.Years())
}

func TestLoad_ExampleFile(t *testing.T) {
	p, err := ratetable.Load(filepath.Join("..", "..", "configs", "ratetables.example.yaml"))
	require.NoError(t, err)

	table, err := p.ForYear(2026)
	require.NoError(t, err)

	pit := taxengine.ComputePIT(dec("1500000"), table.PIT)
	assert.True(t, dec("105000").Equal(pit.Tax), "got %s", pit.Tax)
	assert.True(t, table.Relief.CRAFloor.IsZero())
	// Inherited from 2025.
	assert.True(t, dec("0.075").Equal(table.VATRate))
	rate, err := table.WHTRate(domain.WHTDirectorFee, domain.RecipientIndividual)
	require.NoError(t, err)
	assert.True(t, dec("0.15").Equal(rate))
	rate, err = table.WHTRate(domain.WHTDividend, domain.RecipientCompany)
	require.NoError(t, err)
	assert.True(t, dec("0.10").Equal(rate))

	// The built-in 2025 table is untouched by the extension.
	base, err := p.ForYear(2025)
	require.NoError(t, err)
	rate, err = base.WHTRate(domain.WHTDirectorFee, domain.RecipientIndividual)
	require.NoError(t, err)
	assert.True(t, dec("0.10").Equal(rate))
}

func TestLoad_OverridesBuiltinYear(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2024
    extends: 2024
    vat_rate: "0.10"
    relief:
      pension_cap: "300000"
`)

	p, err := ratetable.Load(path)
	require.NoError(t, err)
	table, err := p.ForYear(2024)
	require.NoError(t, err)

	assert.True(t, dec("0.10").Equal(table.VATRate))
	require.True(t, table.Relief.PensionCap.Valid)
	assert.True(t, dec("300000").Equal(table.Relief.PensionCap.Decimal))
	assert.False(t, table.Relief.NHFCap.Valid)
}

func TestLoad_UnknownExtendsYear(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2030
    extends: 2029
`)

	_, err := ratetable.Load(path)

	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable))
}

func TestLoad_MalformedAmount(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2026
    extends: 2025
    vat_rate: "seven point five"
`)

	_, err := ratetable.Load(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable))
	assert.Contains(t, err.Error(), "vat_rate")
}

func TestLoad_IncompleteStandaloneTable(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2027
    vat_rate: "0.075"
`)

	_, err := ratetable.Load(path)

	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := ratetable.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoad_ThresholdReliefRate(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2024
    extends: 2024
    pit:
      threshold_relief_rate: "0.30"
`)

	p, err := ratetable.Load(path)
	require.NoError(t, err)
	table, err := p.ForYear(2024)
	require.NoError(t, err)
	assert.True(t, dec("0.30").Equal(table.PIT.ThresholdReliefRate))

	builtin := ratetable.PITATable(2025)
	assert.True(t, dec("0.50").Equal(builtin.PIT.ThresholdReliefRate))
}

func TestLoad_ThresholdReliefRateOutOfRange(t *testing.T) {
	path := writeYAML(t, `
tables:
  - year: 2024
    extends: 2024
    pit:
      threshold_relief_rate: "1.5"
`)

	_, err := ratetable.Load(path)
	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable), "got %v", err)
}
