package taxengine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/taxengine"
)

func TestComputeWHT_ProfessionalFeeToIndividual(t *testing.T) {
	res, err := taxengine.ComputeWHT(2024, dec("1000000"), domain.WHTProfessionalFee, domain.RecipientIndividual, table2024().WHT)

	require.NoError(t, err)
	assertDecimal(t, "0.05", res.Rate)
	assertDecimal(t, "50000", res.WHTAmount)
	assertDecimal(t, "950000", res.NetAmount)
}

func TestComputeWHT_Rates(t *testing.T) {
	tests := []struct {
		pt   domain.WHTPaymentType
		rt   domain.RecipientType
		rate string
	}{
		{domain.WHTDividend, domain.RecipientCompany, "0.10"},
		{domain.WHTRent, domain.RecipientIndividual, "0.10"},
		{domain.WHTConsultancy, domain.RecipientCompany, "0.10"},
		{domain.WHTConsultancy, domain.RecipientIndividual, "0.05"},
		{domain.WHTConstruction, domain.RecipientCompany, "0.05"},
	}
	for _, tt := range tests {
		res, err := taxengine.ComputeWHT(2024, dec("200000"), tt.pt, tt.rt, table2024().WHT)
		require.NoError(t, err)
		assertDecimal(t, tt.rate, res.Rate, "%s/%s", tt.pt, tt.rt)
	}
}

func TestComputeWHT_NetPlusWHTEqualsGross(t *testing.T) {
	for _, gross := range []string{"0", "0.01", "1234567.89", "999.99", "33333.33"} {
		res, err := taxengine.ComputeWHT(2024, dec(gross), domain.WHTConstruction, domain.RecipientIndividual, table2024().WHT)
		require.NoError(t, err)
		assert.True(t, res.NetAmount.Add(res.WHTAmount).Equal(dec(gross)), "gross %s", gross)
	}
}

func TestComputeWHT_UnknownPairFails(t *testing.T) {
	_, err := taxengine.ComputeWHT(2024, dec("100000"), domain.WHTDirectorFee, domain.RecipientCompany, table2024().WHT)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedCategory))
	var catErr *taxengine.UnsupportedCategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "director_fee/company", catErr.Value)
	assert.Equal(t, 2024, catErr.Year)
}
