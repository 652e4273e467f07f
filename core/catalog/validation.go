// Package catalog - Catalog validation
// Ensures catalog integrity before any simulation runs against it.
package catalog

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateCountryCodes,
		validateUniqueIDs,
		validateBundles,
		validateRates,
		validatePresets,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error

	for _, rule := range rules {
		errors = append(errors, rule(c)...)
	}

	return errors
}

// validateCountryCodes ensures every country has an ISO 3166-1 alpha-2 code
func validateCountryCodes(c *Catalog) []error {
	var errs []error
	for _, country := range c.Countries {
		if !govalidator.IsISO3166Alpha2(country.Code) {
			errs = append(errs, fmt.Errorf("country %q: not an ISO 3166-1 alpha-2 code", country.Code))
		}
		if country.Name == "" {
			errs = append(errs, fmt.Errorf("country %q: missing name", country.Code))
		}
	}
	return errs
}

// validateUniqueIDs ensures countries, bundles, rates and subscribers are
// not declared twice
func validateUniqueIDs(c *Catalog) []error {
	var errs []error
	check := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				errs = append(errs, fmt.Errorf("%s %q: declared more than once", kind, id))
			}
			seen[id] = true
		}
	}

	var ids []string
	for _, x := range c.Countries {
		ids = append(ids, x.Code)
	}
	check("country", ids)

	ids = ids[:0]
	for _, x := range c.Bundles {
		ids = append(ids, x.ID)
	}
	check("bundle", ids)

	ids = ids[:0]
	for _, x := range c.Rates {
		ids = append(ids, x.Country)
	}
	check("rate", ids)

	ids = ids[:0]
	for _, x := range c.Subscribers {
		ids = append(ids, x.ID)
	}
	check("subscriber", ids)

	return errs
}

// validateBundles ensures bundles are priceable and reference known countries
func validateBundles(c *Catalog) []error {
	var errs []error
	for _, b := range c.Bundles {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("bundle %q: missing id", b.Name))
		}
		if !b.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("bundle %q: unknown coverage kind %q", b.ID, b.Kind))
		}
		if b.ValidityDays < 1 {
			errs = append(errs, fmt.Errorf("bundle %q: validity must be at least one day", b.ID))
		}
		amounts := []struct {
			name  string
			value decimal.Decimal
		}{
			{"price", b.Price}, {"data", b.DataGB}, {"voice", b.VoiceMinutes}, {"sms", b.SMS},
		}
		for _, a := range amounts {
			if a.value.IsNegative() {
				errs = append(errs, fmt.Errorf("bundle %q: negative %s", b.ID, a.name))
			}
		}
		if len(b.Countries) == 0 {
			errs = append(errs, fmt.Errorf("bundle %q: covers no countries", b.ID))
		}
		for _, code := range b.Countries {
			if _, ok := c.Country(code); !ok {
				errs = append(errs, fmt.Errorf("bundle %q: unknown country %q", b.ID, code))
			}
		}
	}
	return errs
}

// validateRates ensures metered rates are non-negative and reference known
// countries
func validateRates(c *Catalog) []error {
	var errs []error
	for _, r := range c.Rates {
		if _, ok := c.Country(r.Country); !ok {
			errs = append(errs, fmt.Errorf("rate %q: unknown country", r.Country))
		}
		if r.DataPerMB.IsNegative() || r.VoicePerMin.IsNegative() || r.SMSPerUnit.IsNegative() {
			errs = append(errs, fmt.Errorf("rate %q: negative price", r.Country))
		}
	}
	return errs
}

// validatePresets ensures presets are known kinds with non-negative amounts
func validatePresets(c *Catalog) []error {
	var errs []error
	for _, p := range c.Presets {
		if !p.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("preset %q: unknown kind", p.Kind))
		}
		if p.DailyDataMB.IsNegative() || p.DailyVoiceMin.IsNegative() || p.DailySMS.IsNegative() {
			errs = append(errs, fmt.Errorf("preset %q: negative usage", p.Kind))
		}
	}
	return errs
}
