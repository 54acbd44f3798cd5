package taxengine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/domain"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
)

func asset(category domain.AssetCategory, cost string, year int) domain.CapitalAsset {
	rates := table2024().CapitalAllowance[category]
	return domain.CapitalAsset{
		ID:                   uuid.New(),
		Category:             category,
		Cost:                 dec(cost),
		AcquisitionDate:      time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
		YearAcquired:         year,
		InitialAllowanceRate: rates.Initial,
		AnnualAllowanceRate:  rates.Annual,
	}
}

func TestAssetSchedule_PlantMachinery(t *testing.T) {
	a := asset(domain.AssetCategoryPlantMachinery, "1000000", 2022)

	schedule := taxengine.AssetSchedule(a, 2025)

	require.Len(t, schedule, 4)
	assert.Equal(t, domain.AssetStateAcquired, schedule[0].State)
	assertDecimal(t, "500000", schedule[0].InitialAllowance)
	assertDecimal(t, "250000", schedule[1].AnnualAllowance)
	assertDecimal(t, "250000", schedule[2].AnnualAllowance)
	assertDecimal(t, "0", schedule[2].ClosingWDV)
	assert.Equal(t, domain.AssetStateFullyWrittenDown, schedule[2].State)
	assertDecimal(t, "0", schedule[3].Allowance)
	assert.Equal(t, domain.AssetStateFullyWrittenDown, schedule[3].State)
}

func TestAssetSchedule_NeverExceedsCost(t *testing.T) {
	for _, category := range []domain.AssetCategory{
		domain.AssetCategoryIndustrialBuilding,
		domain.AssetCategoryNonIndustrialBuilding,
		domain.AssetCategoryPlantMachinery,
		domain.AssetCategoryMotorVehicle,
		domain.AssetCategoryFurnitureFittings,
		domain.AssetCategoryRanchingPlantation,
	} {
		a := asset(category, "1234567.89", 2010)
		total := decimal.Zero
		for _, row := range taxengine.AssetSchedule(a, 2030) {
			assert.False(t, row.ClosingWDV.IsNegative(), "%s %d", category, row.Year)
			total = total.Add(row.Allowance)
		}
		assert.True(t, total.LessThanOrEqual(a.Cost), "%s total %s", category, total)
	}
}

func TestAssetSchedule_ClipsToRemainingValue(t *testing.T) {
	a := asset(domain.AssetCategoryRanchingPlantation, "1000000", 2022)

	schedule := taxengine.AssetSchedule(a, 2024)

	require.Len(t, schedule, 3)
	assertDecimal(t, "300000", schedule[0].Allowance)
	assertDecimal(t, "500000", schedule[1].Allowance)
	assertDecimal(t, "200000", schedule[2].Allowance)
	assertDecimal(t, "1000000", schedule[2].CumulativeAllowance)
}

func TestComputeCapitalAllowance_BeforeAcquisition(t *testing.T) {
	a := asset(domain.AssetCategoryMotorVehicle, "5000000", 2025)

	row := taxengine.ComputeCapitalAllowance(a, 2024, decimal.Zero)

	assert.Equal(t, domain.AssetStateNotYetAcquired, row.State)
	assert.True(t, row.Allowance.IsZero())
	assert.Nil(t, taxengine.AssetSchedule(a, 2024))
}

func TestApplyAllowanceCap(t *testing.T) {
	claimed, carried, limit := taxengine.ApplyAllowanceCap(dec("900000"), decimal.Zero, dec("600000"), ratetable.CapitalAllowanceProfitCap)

	assertDecimal(t, "400000", limit)
	assertDecimal(t, "400000", claimed)
	assertDecimal(t, "500000", carried)
}

func TestApplyAllowanceCap_LossYearClaimsNothing(t *testing.T) {
	claimed, carried, _ := taxengine.ApplyAllowanceCap(dec("100000"), dec("50000"), dec("-300000"), ratetable.CapitalAllowanceProfitCap)

	assertDecimal(t, "0", claimed)
	assertDecimal(t, "150000", carried)
}

func TestComputeCapitalAllowances_CarriesForwardAcrossYears(t *testing.T) {
	assets := []domain.CapitalAsset{asset(domain.AssetCategoryPlantMachinery, "1000000", 2023)}
	profits := map[int]decimal.Decimal{2023: dec("300000"), 2024: dec("3000000")}

	first := taxengine.ComputeCapitalAllowances(assets, 2023, profits, ratetable.CapitalAllowanceProfitCap)
	assertDecimal(t, "500000", first.YearAllowance)
	assertDecimal(t, "200000", first.Claimed)
	assertDecimal(t, "300000", first.CarriedForward)

	second := taxengine.ComputeCapitalAllowances(assets, 2024, profits, ratetable.CapitalAllowanceProfitCap)
	assertDecimal(t, "250000", second.YearAllowance)
	assertDecimal(t, "300000", second.BroughtForward)
	assertDecimal(t, "550000", second.Claimed)
	assertDecimal(t, "0", second.CarriedForward)
	require.Len(t, second.Assets, 1)
}

func TestComputeCapitalAllowances_NoAssets(t *testing.T) {
	res := taxengine.ComputeCapitalAllowances(nil, 2024, map[int]decimal.Decimal{2024: dec("1000")}, ratetable.CapitalAllowanceProfitCap)

	assert.Empty(t, res.Assets)
	assert.True(t, res.Claimed.IsZero())
}
