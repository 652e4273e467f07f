// Package usage - Top-up merging
package usage

import (
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

// TopUp is extra usage for the whole trip, on top of the daily profile
type TopUp struct {
	DataMB   decimal.Decimal `json:"data_mb"`
	VoiceMin decimal.Decimal `json:"voice_min"`
	SMS      decimal.Decimal `json:"sms"`
}

// IsZero reports whether the top-up adds nothing
func (t TopUp) IsZero() bool {
	return t.DataMB.IsZero() && t.VoiceMin.IsZero() && t.SMS.IsZero()
}

// ApplyTopUp spreads trip-total extra usage evenly over the trip days and
// adds it to the daily profile. The result is always custom. With a zero
// duration there are no days to spread over and the amounts are unchanged.
func ApplyTopUp(p types.UsageProfile, topUp TopUp, duration int) types.UsageProfile {
	p.Kind = types.ProfileCustom
	if duration <= 0 {
		return p
	}
	days := decimal.NewFromInt(int64(duration))
	p.DailyDataMB = p.DailyDataMB.Add(topUp.DataMB.Div(days))
	p.DailyVoiceMin = p.DailyVoiceMin.Add(topUp.VoiceMin.Div(days))
	p.DailySMS = p.DailySMS.Add(topUp.SMS.Div(days))
	return p
}

// Comparison shows trip totals before and after a change to the profile
type Comparison struct {
	Before types.UsageTotals `json:"before"`
	After  types.UsageTotals `json:"after"`
}

// Compare computes trip totals for two profiles over the same duration
func Compare(before, after types.UsageProfile, duration int) Comparison {
	return Comparison{
		Before: before.Totals(duration),
		After:  after.Totals(duration),
	}
}
