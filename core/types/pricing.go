// Package types - Bundle and metered rate types
package types

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MBPerGB converts bundle data quotas (GB) to usage units (MB)
var MBPerGB = decimal.NewFromInt(1024)

// CoverageKind classifies a bundle's footprint
type CoverageKind string

const (
	CoverageRegional CoverageKind = "regional"
	CoverageCountry  CoverageKind = "country"
	CoverageGlobal   CoverageKind = "global"
)

// String returns the string representation
func (k CoverageKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known kind
func (k CoverageKind) IsValid() bool {
	switch k {
	case CoverageRegional, CoverageCountry, CoverageGlobal:
		return true
	default:
		return false
	}
}

// BundleOffer is a fixed-price, fixed-quota roaming package
type BundleOffer struct {
	// ID uniquely identifies the bundle (e.g. "eu-weekly")
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Kind is the coverage classification
	Kind CoverageKind `json:"kind"`

	// Regions lists the covered region names
	Regions []Region `json:"regions"`

	// Countries lists the covered country codes
	Countries []string `json:"countries"`

	// DataGB is the included data quota in GB
	DataGB decimal.Decimal `json:"data_gb"`

	// VoiceMinutes is the included voice quota
	VoiceMinutes decimal.Decimal `json:"voice_minutes"`

	// SMS is the included SMS count
	SMS decimal.Decimal `json:"sms"`

	// Price is the cost of one unit of the bundle
	Price decimal.Decimal `json:"price"`

	// ValidityDays is how long one unit stays active
	ValidityDays int `json:"validity_days"`

	// Description is a short marketing description
	Description string `json:"description,omitempty"`

	// Features are display bullet points
	Features []string `json:"features,omitempty"`
}

// Covers reports whether the bundle's quotas apply in a country
func (b BundleOffer) Covers(code string) bool {
	return slices.Contains(b.Countries, code)
}

// DataMB returns the included data quota in MB
func (b BundleOffer) DataMB() decimal.Decimal {
	return b.DataGB.Mul(MBPerGB)
}

// MeteredRate is the pay-per-use price list for one country
type MeteredRate struct {
	// Country is the country code the rate applies to
	Country string `json:"country"`

	// DataPerMB is the price of one MB of data
	DataPerMB decimal.Decimal `json:"data_per_mb"`

	// VoicePerMin is the price of one voice minute
	VoicePerMin decimal.Decimal `json:"voice_per_min"`

	// SMSPerUnit is the price of one SMS
	SMSPerUnit decimal.Decimal `json:"sms_per_unit"`
}

// DailyCost prices one day of the given usage at this rate
func (r MeteredRate) DailyCost(u UsageProfile) decimal.Decimal {
	return u.DailyDataMB.Mul(r.DataPerMB).
		Add(u.DailyVoiceMin.Mul(r.VoicePerMin)).
		Add(u.DailySMS.Mul(r.SMSPerUnit))
}

// FindRate returns the rate for a country code
func FindRate(rates []MeteredRate, code string) (MeteredRate, bool) {
	for _, r := range rates {
		if r.Country == code {
			return r, true
		}
	}
	return MeteredRate{}, false
}
