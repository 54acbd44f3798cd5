package ratetable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
)

func TestNewDefaultProvider_BuiltinYears(t *testing.T) {
	p := ratetable.NewDefaultProvider()

	assert.Equal(t, []int{2021, 2022, 2023, 2024, 2025}, p.Years())
	for _, y := range p.Years() {
		table, err := p.ForYear(y)
		require.NoError(t, err)
		assert.Equal(t, y, table.Year)
		assert.NoError(t, table.Validate())
	}
}

func TestProvider_ForYear_NoFallback(t *testing.T) {
	p := ratetable.NewDefaultProvider()

	table, err := p.ForYear(2019)

	assert.Nil(t, table)
	assert.True(t, errors.Is(err, domain.ErrRateTableNotFound))
	var rtErr *taxengine.RateTableError
	require.True(t, errors.As(err, &rtErr))
	assert.Equal(t, 2019, rtErr.Year)
}

func TestNewProvider_RejectsDuplicateYear(t *testing.T) {
	_, err := ratetable.NewProvider(ratetable.PITATable(2024), ratetable.PITATable(2024))

	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable))
}

func TestNewProvider_RejectsInvalidTable(t *testing.T) {
	table := ratetable.PITATable(2024)
	table.VATRate = dec("1.5")

	_, err := ratetable.NewProvider(table)

	assert.True(t, errors.Is(err, domain.ErrInvalidRateTable))
}

func TestNewProvider_RejectsGapInBrackets(t *testing.T) {
	table := ratetable.PITATable(2024)
	table.PIT.Brackets[1].Lower = dec("350000")

	_, err := ratetable.NewProvider(table)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ends at")
}

func TestPITATable_FreshCopies(t *testing.T) {
	a := ratetable.PITATable(2024)
	b := ratetable.PITATable(2024)
	a.WHT[taxengine.WHTKey{PaymentType: domain.WHTDirectorFee, RecipientType: domain.RecipientCompany}] = dec("0.2")

	_, err := b.WHTRate(domain.WHTDirectorFee, domain.RecipientCompany)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedCategory))
}
