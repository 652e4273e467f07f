// Package simulation turns a simulation request into a rendered-ready report.
// It resolves catalog references, builds the usage profile and runs the
// engine. It contains no pricing logic of its own.
package simulation

import (
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

// Request is a simulation request from the CLI or the HTTP API
type Request struct {
	// SubscriberID optionally names a catalog subscriber
	SubscriberID string `json:"subscriber_id,omitempty"`

	// Countries are ISO 3166-1 alpha-2 codes in visit order
	Countries []string `json:"countries"`

	// StartDate is the first trip day (2006-01-02)
	StartDate string `json:"start_date"`

	// EndDate is the last trip day (2006-01-02)
	EndDate string `json:"end_date"`

	// Profile is a preset kind; empty means medium
	Profile string `json:"profile,omitempty"`

	// Usage overrides individual daily amounts
	Usage *UsageOverrides `json:"usage,omitempty"`

	// TopUp adds trip-total extra usage
	TopUp *usage.TopUp `json:"top_up,omitempty"`
}

// UsageOverrides replaces individual daily amounts of the profile.
// Any override turns the profile into a custom one.
type UsageOverrides struct {
	DailyDataMB   *decimal.Decimal `json:"daily_data_mb,omitempty"`
	DailyVoiceMin *decimal.Decimal `json:"daily_voice_min,omitempty"`
	DailySMS      *decimal.Decimal `json:"daily_sms,omitempty"`
}

// IsEmpty reports whether no override is set
func (u *UsageOverrides) IsEmpty() bool {
	return u == nil || (u.DailyDataMB == nil && u.DailyVoiceMin == nil && u.DailySMS == nil)
}

// Normalize trims and upper-cases country codes
func (r *Request) Normalize() {
	codes := make([]string, 0, len(r.Countries))
	for _, code := range r.Countries {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			codes = append(codes, code)
		}
	}
	r.Countries = codes
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Profile = strings.ToLower(strings.TrimSpace(r.Profile))
	r.SubscriberID = strings.TrimSpace(r.SubscriberID)
}

// Validate checks the request shape. Catalog references are checked when
// the request runs.
func (r *Request) Validate() error {
	for _, code := range r.Countries {
		if !govalidator.IsISO3166Alpha2(code) {
			return errors.Inputf("invalid country code %q", code).WithContext("field", "countries")
		}
	}

	if r.StartDate == "" || r.EndDate == "" {
		return errors.Input("start_date and end_date are required")
	}
	for _, f := range []struct{ name, value string }{
		{"start_date", r.StartDate},
		{"end_date", r.EndDate},
	} {
		if !govalidator.IsTime(f.value, types.DateLayout) {
			return errors.Inputf("%s must be a date like 2006-01-02, got %q", f.name, f.value).WithContext("field", f.name)
		}
	}
	start, end, err := types.ParseTripDates(r.StartDate, r.EndDate)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid trip dates", err)
	}
	if end.Before(start) {
		return errors.Input("end_date must not be before start_date")
	}

	if r.Profile != "" {
		kind, err := usage.ParseKind(r.Profile)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "invalid profile", err).WithContext("field", "profile")
		}
		if kind == types.ProfileCustom && r.Usage.IsEmpty() {
			return errors.Input("a custom profile needs at least one usage value")
		}
	}

	if !r.Usage.IsEmpty() {
		for _, f := range []struct {
			name  string
			value *decimal.Decimal
		}{
			{"daily_data_mb", r.Usage.DailyDataMB},
			{"daily_voice_min", r.Usage.DailyVoiceMin},
			{"daily_sms", r.Usage.DailySMS},
		} {
			if f.value != nil && f.value.IsNegative() {
				return errors.Inputf("usage.%s must not be negative", f.name).WithContext("field", f.name)
			}
		}
	}

	if t := r.TopUp; t != nil {
		if t.DataMB.IsNegative() || t.VoiceMin.IsNegative() || t.SMS.IsNegative() {
			return errors.Input("top_up values must not be negative").WithContext("field", "top_up")
		}
	}

	return nil
}
