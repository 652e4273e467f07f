package engine

import (
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

// MeteredName is the display name of the pay-as-you-go baseline
const MeteredName = "Pay-as-you-go (metered rates)"

// MeteredWarning is attached to every metered baseline
const MeteredWarning = "Paying metered rates without a bundle carries a high bill risk."

// evaluateMetered prices the trip without any bundle.
//
// Every country is assumed to take ceil(duration / countries) days. The
// per-country days do not sum to the duration when there are two or more
// countries; that is a property of the model, not a rounding bug.
func (e *Engine) evaluateMetered(trip types.TripPlan, usage types.UsageProfile, rates []types.MeteredRate) types.CostEstimate {
	var breakdown types.CostBreakdown

	countries := len(trip.Countries)
	for _, code := range trip.CountryCodes() {
		rate, ok := types.FindRate(rates, code)
		if !ok {
			continue
		}
		days := decimal.NewFromInt(int64(ceilDiv(trip.Duration, countries)))
		breakdown = breakdown.Add(types.CostBreakdown{
			Data:  usage.DailyDataMB.Mul(days).Mul(rate.DataPerMB),
			Voice: usage.DailyVoiceMin.Mul(days).Mul(rate.VoicePerMin),
			SMS:   usage.DailySMS.Mul(days).Mul(rate.SMSPerUnit),
		})
	}

	total := breakdown.Total()
	return types.CostEstimate{
		Name:             MeteredName,
		BaseCost:         total,
		OverageCost:      decimal.Zero,
		TotalCost:        total,
		Surcharge:        decimal.Zero,
		Breakdown:        breakdown,
		Warnings:         []string{MeteredWarning},
		CoveredCountries: trip.CountryCodes(),
	}
}
