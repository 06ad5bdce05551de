// Package country resolves ISO 3166-1 alpha-3 codes to English country names.
package country

import (
	"strings"

	"github.com/biter777/countries"
)

// Resolver implements domain.CountryResolver. The zero value is ready to use.
type Resolver struct{}

func New() Resolver { return Resolver{} }

// Resolve returns the country name for an alpha-3 code, or code itself when
// it is not a known alpha-3 code.
func (Resolver) Resolve(code string) string {
	up := strings.ToUpper(strings.TrimSpace(code))
	if len(up) != 3 {
		return code
	}
	c := countries.ByName(up)
	if c == countries.Unknown || c.Alpha3() != up {
		return code
	}
	return c.String()
}
