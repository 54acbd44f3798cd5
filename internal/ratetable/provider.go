package ratetable

import (
	"sort"

	"naijatax/internal/domain"
	"naijatax/internal/taxengine"
)

// Provider resolves the rate table of a tax year. Tables are validated once
// on construction and are read-only afterwards.
type Provider struct {
	tables map[int]*taxengine.RateTable
}

// NewProvider validates each table and indexes it by year. Two tables for the
// same year are rejected.
func NewProvider(tables ...*taxengine.RateTable) (*Provider, error) {
	p := &Provider{tables: make(map[int]*taxengine.RateTable, len(tables))}
	for _, t := range tables {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := p.tables[t.Year]; dup {
			return nil, &taxengine.RateTableError{Year: t.Year, Reason: "duplicate table", Err: domain.ErrInvalidRateTable}
		}
		p.tables[t.Year] = t
	}
	return p, nil
}

// NewDefaultProvider serves the built-in tables only.
func NewDefaultProvider() *Provider {
	p, err := NewProvider(Builtin()...)
	if err != nil {
		panic("ratetable: invalid built-in table: " + err.Error())
	}
	return p
}

// ForYear returns the table for year. A year without a table is an error;
// the nearest year is never substituted.
func (p *Provider) ForYear(year int) (*taxengine.RateTable, error) {
	t, ok := p.tables[year]
	if !ok {
		return nil, &taxengine.RateTableError{Year: year, Err: domain.ErrRateTableNotFound}
	}
	return t, nil
}

// Years lists the years with a table, ascending.
func (p *Provider) Years() []int {
	years := make([]int, 0, len(p.tables))
	for y := range p.tables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
