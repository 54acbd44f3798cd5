package ratetable

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"naijatax/internal/domain"
	"naijatax/internal/taxengine"
)

// fileDoc is the layout of a rate table YAML file. Amounts and rates are kept
// as strings so they reach decimal.Decimal without passing through float64.
type fileDoc struct {
	Tables []fileTable `mapstructure:"tables"`
}

type fileTable struct {
	Year                      int                      `mapstructure:"year"`
	Extends                   int                      `mapstructure:"extends"`
	VATRate                   string                   `mapstructure:"vat_rate"`
	CapitalAllowanceProfitCap string                   `mapstructure:"capital_allowance_profit_cap"`
	PIT                       filePIT                  `mapstructure:"pit"`
	Relief                    fileRelief               `mapstructure:"relief"`
	CIT                       []fileCITBand            `mapstructure:"cit"`
	WHT                       []fileWHT                `mapstructure:"wht"`
	CapitalAllowance          map[string]fileAllowance `mapstructure:"capital_allowance"`
	Advisory                  map[string]string        `mapstructure:"advisory"`
}

type filePIT struct {
	ExemptionThreshold  string        `mapstructure:"exemption_threshold"`
	ThresholdReliefRate string        `mapstructure:"threshold_relief_rate"`
	Brackets            []fileBracket `mapstructure:"brackets"`
}

type fileBracket struct {
	Lower string `mapstructure:"lower"`
	Upper string `mapstructure:"upper"`
	Rate  string `mapstructure:"rate"`
}

type fileRelief struct {
	CRAFloor                 string `mapstructure:"cra_floor"`
	CRAFloorRate             string `mapstructure:"cra_floor_rate"`
	CRAGrossRate             string `mapstructure:"cra_gross_rate"`
	RentReliefRate           string `mapstructure:"rent_relief_rate"`
	RentReliefCap            string `mapstructure:"rent_relief_cap"`
	CompensationExemptionCap string `mapstructure:"compensation_exemption_cap"`
	PensionCap               string `mapstructure:"pension_cap"`
	NHISCap                  string `mapstructure:"nhis_cap"`
	NHFCap                   string `mapstructure:"nhf_cap"`
	HousingLoanInterestCap   string `mapstructure:"housing_loan_interest_cap"`
	LifeInsuranceCap         string `mapstructure:"life_insurance_cap"`
}

type fileCITBand struct {
	Upper string `mapstructure:"upper"`
	Rate  string `mapstructure:"rate"`
}

type fileWHT struct {
	PaymentType   string `mapstructure:"payment_type"`
	RecipientType string `mapstructure:"recipient_type"`
	Rate          string `mapstructure:"rate"`
}

type fileAllowance struct {
	Initial string `mapstructure:"initial"`
	Annual  string `mapstructure:"annual"`
}

// Load builds a provider from the built-in tables plus those defined in the
// YAML file at path. A file table replaces the built-in table of the same
// year. With extends set, fields left out of the file are inherited from the
// table of that year. An empty path yields the built-in tables only.
func Load(path string) (*Provider, error) {
	tables := make(map[int]*taxengine.RateTable)
	for _, t := range Builtin() {
		tables[t.Year] = t
	}
	if path == "" {
		return NewProvider(sortedTables(tables)...)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading rate tables %s: %w", path, err)
	}
	var doc fileDoc
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("decoding rate tables %s: %w", path, err)
	}

	for i := range doc.Tables {
		ft := &doc.Tables[i]
		var base *taxengine.RateTable
		if ft.Extends != 0 {
			b, ok := tables[ft.Extends]
			if !ok {
				return nil, &taxengine.RateTableError{
					Year:   ft.Year,
					Reason: fmt.Sprintf("extends unknown year %d", ft.Extends),
					Err:    domain.ErrInvalidRateTable,
				}
			}
			base = b
		}
		t, err := ft.build(base)
		if err != nil {
			return nil, err
		}
		if _, replaced := tables[t.Year]; replaced {
			log.Printf("ratetable: %s overrides table for %d", path, t.Year)
		}
		tables[t.Year] = t
	}
	return NewProvider(sortedTables(tables)...)
}

func sortedTables(m map[int]*taxengine.RateTable) []*taxengine.RateTable {
	p := &Provider{tables: m}
	out := make([]*taxengine.RateTable, 0, len(m))
	for _, y := range p.Years() {
		out = append(out, m[y])
	}
	return out
}

// build converts a file table into a rate table, starting from a copy of base
// when one is given.
func (ft *fileTable) build(base *taxengine.RateTable) (*taxengine.RateTable, error) {
	t := &taxengine.RateTable{}
	if base != nil {
		t = clone(base)
	}
	t.Year = ft.Year
	p := parser{year: ft.Year}

	p.amount(&t.VATRate, "vat_rate", ft.VATRate)
	p.amount(&t.CapitalAllowanceProfitCap, "capital_allowance_profit_cap", ft.CapitalAllowanceProfitCap)
	p.amount(&t.PIT.ExemptionThreshold, "pit.exemption_threshold", ft.PIT.ExemptionThreshold)
	p.amount(&t.PIT.ThresholdReliefRate, "pit.threshold_relief_rate", ft.PIT.ThresholdReliefRate)

	if len(ft.PIT.Brackets) > 0 {
		t.PIT.Brackets = make([]taxengine.Bracket, len(ft.PIT.Brackets))
		for i, fb := range ft.PIT.Brackets {
			p.amount(&t.PIT.Brackets[i].Lower, "pit.brackets.lower", fb.Lower)
			p.limit(&t.PIT.Brackets[i].Upper, "pit.brackets.upper", fb.Upper)
			p.amount(&t.PIT.Brackets[i].Rate, "pit.brackets.rate", fb.Rate)
		}
	}

	r := &t.Relief
	p.amount(&r.CRAFloor, "relief.cra_floor", ft.Relief.CRAFloor)
	p.amount(&r.CRAFloorRate, "relief.cra_floor_rate", ft.Relief.CRAFloorRate)
	p.amount(&r.CRAGrossRate, "relief.cra_gross_rate", ft.Relief.CRAGrossRate)
	p.amount(&r.RentReliefRate, "relief.rent_relief_rate", ft.Relief.RentReliefRate)
	p.amount(&r.RentReliefCap, "relief.rent_relief_cap", ft.Relief.RentReliefCap)
	p.amount(&r.CompensationExemptionCap, "relief.compensation_exemption_cap", ft.Relief.CompensationExemptionCap)
	p.limit(&r.PensionCap, "relief.pension_cap", ft.Relief.PensionCap)
	p.limit(&r.NHISCap, "relief.nhis_cap", ft.Relief.NHISCap)
	p.limit(&r.NHFCap, "relief.nhf_cap", ft.Relief.NHFCap)
	p.limit(&r.HousingLoanInterestCap, "relief.housing_loan_interest_cap", ft.Relief.HousingLoanInterestCap)
	p.limit(&r.LifeInsuranceCap, "relief.life_insurance_cap", ft.Relief.LifeInsuranceCap)

	if len(ft.CIT) > 0 {
		t.CIT = make([]taxengine.CITBand, len(ft.CIT))
		for i, fb := range ft.CIT {
			p.limit(&t.CIT[i].Upper, "cit.upper", fb.Upper)
			p.amount(&t.CIT[i].Rate, "cit.rate", fb.Rate)
		}
	}

	if t.WHT == nil {
		t.WHT = taxengine.WHTRates{}
	}
	for _, fw := range ft.WHT {
		var rate decimal.Decimal
		p.amount(&rate, "wht.rate", fw.Rate)
		key := taxengine.WHTKey{
			PaymentType:   domain.WHTPaymentType(fw.PaymentType),
			RecipientType: domain.RecipientType(fw.RecipientType),
		}
		t.WHT[key] = rate
	}

	if t.CapitalAllowance == nil {
		t.CapitalAllowance = map[domain.AssetCategory]taxengine.AllowanceRates{}
	}
	for category, fa := range ft.CapitalAllowance {
		rates := t.CapitalAllowance[domain.AssetCategory(category)]
		p.amount(&rates.Initial, "capital_allowance."+category+".initial", fa.Initial)
		p.amount(&rates.Annual, "capital_allowance."+category+".annual", fa.Annual)
		t.CapitalAllowance[domain.AssetCategory(category)] = rates
	}

	p.amount(&t.Advisory.Pension, "advisory.pension", ft.Advisory["pension"])
	p.amount(&t.Advisory.NHF, "advisory.nhf", ft.Advisory["nhf"])
	p.amount(&t.Advisory.NHIS, "advisory.nhis", ft.Advisory["nhis"])

	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

// parser records the first malformed value and ignores the rest.
type parser struct {
	year int
	err  error
}

func (p *parser) amount(dst *decimal.Decimal, field, raw string) {
	if raw == "" || p.err != nil {
		return
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.err = &taxengine.RateTableError{
			Year:   p.year,
			Reason: fmt.Sprintf("%s: %q is not a number", field, raw),
			Err:    domain.ErrInvalidRateTable,
		}
		return
	}
	*dst = v
}

// limit parses an optional bound; "none" clears an inherited one.
func (p *parser) limit(dst *decimal.NullDecimal, field, raw string) {
	if raw == "none" {
		*dst = decimal.NullDecimal{}
		return
	}
	var v decimal.Decimal
	before := p.err
	p.amount(&v, field, raw)
	if raw != "" && p.err == before {
		*dst = decimal.NewNullDecimal(v)
	}
}

func clone(t *taxengine.RateTable) *taxengine.RateTable {
	c := *t
	c.PIT.Brackets = append([]taxengine.Bracket(nil), t.PIT.Brackets...)
	c.CIT = append([]taxengine.CITBand(nil), t.CIT...)
	c.WHT = make(taxengine.WHTRates, len(t.WHT))
	for k, v := range t.WHT {
		c.WHT[k] = v
	}
	c.CapitalAllowance = make(map[domain.AssetCategory]taxengine.AllowanceRates, len(t.CapitalAllowance))
	for k, v := range t.CapitalAllowance {
		c.CapitalAllowance[k] = v
	}
	return &c
}
