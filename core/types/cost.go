// Package types - Cost estimate types
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// IsValid checks if the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyTRY, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

// FormatAmount renders an amount with two decimals and an optional
// currency suffix
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	s := amount.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + string(currency)
}

// CostBreakdown splits a cost into data, voice and SMS shares
type CostBreakdown struct {
	Data  decimal.Decimal `json:"data"`
	Voice decimal.Decimal `json:"voice"`
	SMS   decimal.Decimal `json:"sms"`
}

// Total sums the three shares
func (b CostBreakdown) Total() decimal.Decimal {
	return b.Data.Add(b.Voice).Add(b.SMS)
}

// Add returns the share-wise sum of two breakdowns
func (b CostBreakdown) Add(o CostBreakdown) CostBreakdown {
	return CostBreakdown{
		Data:  b.Data.Add(o.Data),
		Voice: b.Voice.Add(o.Voice),
		SMS:   b.SMS.Add(o.SMS),
	}
}

// CostEstimate is the result of pricing one option (a bundle or the
// metered baseline) against a trip and usage profile
type CostEstimate struct {
	// BundleID is empty for the metered baseline
	BundleID string `json:"bundle_id,omitempty"`

	// Name is the display name of the option
	Name string `json:"name"`

	// BaseCost is the upfront cost (bundle price times units)
	BaseCost decimal.Decimal `json:"base_cost"`

	// OverageCost is everything billed on top of the base cost
	OverageCost decimal.Decimal `json:"overage_cost"`

	// TotalCost is BaseCost + OverageCost
	TotalCost decimal.Decimal `json:"total_cost"`

	// Surcharge is the part of OverageCost caused by uncovered countries
	Surcharge decimal.Decimal `json:"surcharge"`

	// Breakdown attributes the base cost to data, voice and SMS
	Breakdown CostBreakdown `json:"breakdown"`

	// Warnings are human-readable notes about this option
	Warnings []string `json:"warnings"`

	// Recommended is set on the single cheapest option of a simulation
	Recommended bool `json:"recommended"`

	// ValidityIssue is set when the bundle expires before the trip ends
	ValidityIssue bool `json:"validity_issue,omitempty"`

	// RequiredUnits is how many bundle units are bought back-to-back
	RequiredUnits int `json:"required_units,omitempty"`

	// CoveredCountries are the trip countries the option applies to
	CoveredCountries []string `json:"covered_countries,omitempty"`

	// UncoveredCountries are the trip countries billed at metered rates
	UncoveredCountries []string `json:"uncovered_countries,omitempty"`
}

// IsMetered reports whether this estimate is the pay-as-you-go baseline
func (e CostEstimate) IsMetered() bool {
	return e.BundleID == ""
}

// HasWarning reports whether any warning contains the given text
func (e CostEstimate) HasWarning(substr string) bool {
	for _, w := range e.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
