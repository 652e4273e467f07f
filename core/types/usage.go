// Package types - Usage profile types
package types

import "github.com/shopspring/decimal"

// ProfileKind tags how a usage profile was produced
type ProfileKind string

const (
	ProfileLight  ProfileKind = "light"
	ProfileMedium ProfileKind = "medium"
	ProfileHeavy  ProfileKind = "heavy"

	// ProfileCustom is any profile that was edited or topped up
	ProfileCustom ProfileKind = "custom"
)

// String returns the string representation
func (k ProfileKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known kind
func (k ProfileKind) IsValid() bool {
	switch k {
	case ProfileLight, ProfileMedium, ProfileHeavy, ProfileCustom:
		return true
	default:
		return false
	}
}

// UsageProfile is the planned daily consumption while abroad
type UsageProfile struct {
	// DailyDataMB is the data volume per day in MB
	DailyDataMB decimal.Decimal `json:"daily_data_mb"`

	// DailyVoiceMin is the voice minutes per day
	DailyVoiceMin decimal.Decimal `json:"daily_voice_min"`

	// DailySMS is the number of SMS per day
	DailySMS decimal.Decimal `json:"daily_sms"`

	// Kind is the preset this profile came from, or custom
	Kind ProfileKind `json:"kind"`
}

// NewUsageProfile creates a profile from whole-number daily amounts
func NewUsageProfile(dataMB, voiceMin, sms int64, kind ProfileKind) UsageProfile {
	return UsageProfile{
		DailyDataMB:   decimal.NewFromInt(dataMB),
		DailyVoiceMin: decimal.NewFromInt(voiceMin),
		DailySMS:      decimal.NewFromInt(sms),
		Kind:          kind,
	}
}

// UsageTotals is the planned consumption over a whole trip
type UsageTotals struct {
	DataMB   decimal.Decimal `json:"data_mb"`
	VoiceMin decimal.Decimal `json:"voice_min"`
	SMS      decimal.Decimal `json:"sms"`
}

// Totals scales daily usage linearly over the given number of days
func (u UsageProfile) Totals(days int) UsageTotals {
	d := decimal.NewFromInt(int64(days))
	return UsageTotals{
		DataMB:   u.DailyDataMB.Mul(d),
		VoiceMin: u.DailyVoiceMin.Mul(d),
		SMS:      u.DailySMS.Mul(d),
	}
}

// DataGB returns the data total in GB
func (t UsageTotals) DataGB() decimal.Decimal {
	return t.DataMB.Div(MBPerGB)
}
