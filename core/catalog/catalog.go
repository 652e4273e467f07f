// Package catalog - Reference data for simulations
// Holds the countries, bundles, metered rates, usage presets and
// subscribers that simulations are run against. Catalogs are read-only
// once built and are passed explicitly to the engine.
package catalog

import (
	"strings"

	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

// Catalog is a set of reference tables
type Catalog struct {
	Countries   []types.Country      `json:"countries"`
	Bundles     []types.BundleOffer  `json:"bundles"`
	Rates       []types.MeteredRate  `json:"rates"`
	Presets     []types.UsageProfile `json:"presets"`
	Subscribers []types.Subscriber   `json:"subscribers"`
}

// RegionGroup is a region and its countries
type RegionGroup struct {
	Region    types.Region    `json:"region"`
	Countries []types.Country `json:"countries"`
}

// Country returns a country by code (case-insensitive)
func (c *Catalog) Country(code string) (types.Country, bool) {
	code = normalizeCode(code)
	for _, country := range c.Countries {
		if country.Code == code {
			return country, true
		}
	}
	return types.Country{}, false
}

// Rate returns the metered rate for a country code
func (c *Catalog) Rate(code string) (types.MeteredRate, bool) {
	return types.FindRate(c.Rates, normalizeCode(code))
}

// Bundle returns a bundle by ID
func (c *Catalog) Bundle(id string) (types.BundleOffer, bool) {
	for _, b := range c.Bundles {
		if b.ID == id {
			return b, true
		}
	}
	return types.BundleOffer{}, false
}

// Subscriber returns a subscriber by ID
func (c *Catalog) Subscriber(id string) (types.Subscriber, bool) {
	for _, s := range c.Subscribers {
		if s.ID == id {
			return s, true
		}
	}
	return types.Subscriber{}, false
}

// Preset returns a usage preset by kind. Catalog presets take precedence
// over the built-in ones.
func (c *Catalog) Preset(kind types.ProfileKind) (types.UsageProfile, bool) {
	for _, p := range c.Presets {
		if p.Kind == kind {
			return p, true
		}
	}
	return usage.Preset(kind)
}

// ResolveCountries maps codes to catalog countries, keeping the given
// order and dropping duplicates
func (c *Catalog) ResolveCountries(codes []string) ([]types.Country, error) {
	var countries []types.Country
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = normalizeCode(code)
		if code == "" || seen[code] {
			continue
		}
		country, ok := c.Country(code)
		if !ok {
			return nil, errors.NotFound("country", code)
		}
		seen[code] = true
		countries = append(countries, country)
	}
	if len(countries) == 0 {
		return nil, errors.Input("at least one destination country is required")
	}
	return countries, nil
}

// CountriesByRegion groups countries by region, in order of each region's
// first appearance
func (c *Catalog) CountriesByRegion() []RegionGroup {
	var groups []RegionGroup
	index := make(map[types.Region]int)
	for _, country := range c.Countries {
		i, ok := index[country.Region]
		if !ok {
			i = len(groups)
			index[country.Region] = i
			groups = append(groups, RegionGroup{Region: country.Region})
		}
		groups[i].Countries = append(groups[i].Countries, country)
	}
	return groups
}

// BundlesFor returns the bundles covering at least one of the given codes
func (c *Catalog) BundlesFor(codes []string) []types.BundleOffer {
	var out []types.BundleOffer
	for _, b := range c.Bundles {
		for _, code := range codes {
			if b.Covers(normalizeCode(code)) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
