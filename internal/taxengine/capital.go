package taxengine

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"naijatax/internal/domain"
)

// AssetAllowance is the allowance position of one asset in one year.
type AssetAllowance struct {
	AssetID             uuid.UUID            `json:"asset_id"`
	Description         string               `json:"description"`
	Category            domain.AssetCategory `json:"category"`
	Year                int                  `json:"year"`
	State               domain.AssetState    `json:"state"`
	Cost                decimal.Decimal      `json:"cost"`
	OpeningWDV          decimal.Decimal      `json:"opening_written_down_value"`
	InitialAllowance    decimal.Decimal      `json:"initial_allowance"`
	AnnualAllowance     decimal.Decimal      `json:"annual_allowance"`
	Allowance           decimal.Decimal      `json:"allowance"`
	ClosingWDV          decimal.Decimal      `json:"closing_written_down_value"`
	CumulativeAllowance decimal.Decimal      `json:"cumulative_allowance"`
}

// CapitalAllowanceResult is the year's allowance across all assets after the
// assessable-profit cap.
type CapitalAllowanceResult struct {
	Year             int              `json:"year"`
	Assets           []AssetAllowance `json:"assets"`
	YearAllowance    decimal.Decimal  `json:"year_allowance"`
	BroughtForward   decimal.Decimal  `json:"brought_forward"`
	Available        decimal.Decimal  `json:"available"`
	AssessableProfit decimal.Decimal  `json:"assessable_profit"`
	Cap              decimal.Decimal  `json:"cap"`
	Claimed          decimal.Decimal  `json:"claimed"`
	CarriedForward   decimal.Decimal  `json:"carried_forward"`
}

// ComputeCapitalAllowance computes one asset's allowance for year given the
// allowance already granted in earlier years. The initial allowance is granted
// in the year of acquisition and the annual allowance, straight-line on cost,
// in each later year. No allowance ever takes the written-down value below
// zero, and none is granted once it reaches zero.
func ComputeCapitalAllowance(asset domain.CapitalAsset, year int, claimedToDate decimal.Decimal) AssetAllowance {
	cost := nonNegative(asset.Cost)
	cumulative := decimal.Min(nonNegative(claimedToDate), cost)
	res := AssetAllowance{
		AssetID:             asset.ID,
		Description:         asset.Description,
		Category:            asset.Category,
		Year:                year,
		Cost:                cost,
		OpeningWDV:          cost.Sub(cumulative),
		InitialAllowance:    decimal.Zero,
		AnnualAllowance:     decimal.Zero,
		Allowance:           decimal.Zero,
		CumulativeAllowance: cumulative,
	}
	res.ClosingWDV = res.OpeningWDV

	switch {
	case year < asset.YearAcquired:
		res.State = domain.AssetStateNotYetAcquired
		res.OpeningWDV = decimal.Zero
		res.ClosingWDV = decimal.Zero
		return res
	case year == asset.YearAcquired:
		res.State = domain.AssetStateAcquired
		res.InitialAllowance = decimal.Min(RoundKobo(cost.Mul(asset.InitialAllowanceRate)), res.OpeningWDV)
		res.Allowance = res.InitialAllowance
	case !res.OpeningWDV.IsPositive():
		res.State = domain.AssetStateFullyWrittenDown
		return res
	default:
		res.State = domain.AssetStateDepreciating
		res.AnnualAllowance = decimal.Min(RoundKobo(cost.Mul(asset.AnnualAllowanceRate)), res.OpeningWDV)
		res.Allowance = res.AnnualAllowance
	}

	res.ClosingWDV = res.OpeningWDV.Sub(res.Allowance)
	res.CumulativeAllowance = cumulative.Add(res.Allowance)
	if !res.ClosingWDV.IsPositive() && res.State == domain.AssetStateDepreciating {
		res.State = domain.AssetStateFullyWrittenDown
	}
	return res
}

// AssetSchedule replays an asset's allowances from its acquisition year up
// to and including throughYear.
func AssetSchedule(asset domain.CapitalAsset, throughYear int) []AssetAllowance {
	if throughYear < asset.YearAcquired {
		return nil
	}
	schedule := make([]AssetAllowance, 0, throughYear-asset.YearAcquired+1)
	cumulative := decimal.Zero
	for y := asset.YearAcquired; y <= throughYear; y++ {
		a := ComputeCapitalAllowance(asset, y, cumulative)
		cumulative = a.CumulativeAllowance
		schedule = append(schedule, a)
	}
	return schedule
}

// ApplyAllowanceCap limits the allowance claimable in a year to capFraction of
// the assessable profit. Whatever is not claimed is carried forward.
func ApplyAllowanceCap(yearAllowance, broughtForward, assessableProfit, capFraction decimal.Decimal) (claimed, carriedForward, limit decimal.Decimal) {
	available := nonNegative(yearAllowance).Add(nonNegative(broughtForward))
	limit = RoundKobo(nonNegative(assessableProfit).Mul(capFraction))
	claimed = decimal.Min(available, limit)
	return claimed, available.Sub(claimed), limit
}

// ComputeCapitalAllowances replays every asset year by year from the earliest
// acquisition up to year, applying the profit cap each year, so unabsorbed
// allowance is carried forward without any stored state. profits maps a tax
// year to its assessable profit; a missing year counts as zero profit.
func ComputeCapitalAllowances(assets []domain.CapitalAsset, year int, profits map[int]decimal.Decimal, capFraction decimal.Decimal) CapitalAllowanceResult {
	res := CapitalAllowanceResult{
		Year:             year,
		Assets:           []AssetAllowance{},
		YearAllowance:    decimal.Zero,
		BroughtForward:   decimal.Zero,
		Available:        decimal.Zero,
		AssessableProfit: profits[year],
		Cap:              decimal.Zero,
		Claimed:          decimal.Zero,
		CarriedForward:   decimal.Zero,
	}

	ordered := make([]domain.CapitalAsset, 0, len(assets))
	for i := range assets {
		if assets[i].YearAcquired <= year {
			ordered = append(ordered, assets[i])
		}
	}
	if len(ordered) == 0 {
		return res
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].AcquisitionDate.Equal(ordered[j].AcquisitionDate) {
			return ordered[i].AcquisitionDate.Before(ordered[j].AcquisitionDate)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	start := ordered[0].YearAcquired
	for _, a := range ordered {
		if a.YearAcquired < start {
			start = a.YearAcquired
		}
	}

	cumulative := make([]decimal.Decimal, len(ordered))
	broughtForward := decimal.Zero
	for y := start; y <= year; y++ {
		yearTotal := decimal.Zero
		var rows []AssetAllowance
		for i := range ordered {
			a := ComputeCapitalAllowance(ordered[i], y, cumulative[i])
			cumulative[i] = a.CumulativeAllowance
			yearTotal = yearTotal.Add(a.Allowance)
			if y == year {
				rows = append(rows, a)
			}
		}
		claimed, carried, limit := ApplyAllowanceCap(yearTotal, broughtForward, profits[y], capFraction)
		if y == year {
			res.Assets = rows
			res.YearAllowance = yearTotal
			res.BroughtForward = broughtForward
			res.Available = yearTotal.Add(broughtForward)
			res.Cap = limit
			res.Claimed = claimed
			res.CarriedForward = carried
		}
		broughtForward = carried
	}
	return res
}
