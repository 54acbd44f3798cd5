package port

import "naijatax/internal/taxengine"

// RateTableProvider resolves the rate table of a tax year. Implementations
// must fail for a year they do not know rather than substitute another year.
type RateTableProvider interface {
	ForYear(year int) (*taxengine.RateTable, error)
	Years() []int
}
