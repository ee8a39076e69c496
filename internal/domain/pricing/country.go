package pricing

import (
	"strings"

	"github.com/storelaunch/backend/internal/domain/shared"
)

// DefaultCountryCode is used when a template is created without a country
const DefaultCountryCode = "CA"

// Country is a market with its own currency and timezone
type Country struct {
	shared.BaseEntity
	Code     string
	Name     string
	Currency string
	Timezone string
}

// NewCountry creates a country, upper-casing the code and currency
func NewCountry(code, name, currency, timezone string) (*Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.InvalidInput("Country code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.InvalidInput("Country name is required")
	}
	return &Country{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       strings.TrimSpace(name),
		Currency:   strings.ToUpper(strings.TrimSpace(currency)),
		Timezone:   strings.TrimSpace(timezone),
	}, nil
}

// DefaultCountries returns the markets every installation starts with
func DefaultCountries() []*Country {
	seeds := []struct{ code, name, currency, tz string }{
		{"CA", "Canada", "CAD", "America/Toronto"},
		{"US", "United States", "USD", "America/New_York"},
		{"KR", "South Korea", "KRW", "Asia/Seoul"},
	}
	out := make([]*Country, 0, len(seeds))
	for _, s := range seeds {
		c, _ := NewCountry(s.code, s.name, s.currency, s.tz)
		out = append(out, c)
	}
	return out
}
