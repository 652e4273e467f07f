package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

// evaluateBundle prices one bundle for the trip. It returns false when the
// bundle covers none of the trip countries.
func (e *Engine) evaluateBundle(trip types.TripPlan, usage types.UsageProfile, bundle types.BundleOffer, rates []types.MeteredRate) (types.CostEstimate, bool) {
	var covered, uncovered []string
	for _, code := range trip.CountryCodes() {
		if bundle.Covers(code) {
			covered = append(covered, code)
		} else {
			uncovered = append(uncovered, code)
		}
	}
	if len(covered) == 0 {
		return types.CostEstimate{}, false
	}

	totals := usage.Totals(trip.Duration)
	var warnings []string

	validity := bundle.ValidityDays
	if validity <= 0 {
		validity = 1
	}
	units := 1
	validityIssue := false
	if validity < trip.Duration {
		validityIssue = true
		units = ceilDiv(trip.Duration, validity)
		warnings = append(warnings, fmt.Sprintf(
			"Bundle validity (%d days) is shorter than the trip (%d days). %d bundles must be purchased back-to-back.",
			bundle.ValidityDays, trip.Duration, units))
	}

	n := decimal.NewFromInt(int64(units))
	baseCost := bundle.Price.Mul(n)
	quotaDataMB := bundle.DataMB().Mul(n)
	quotaVoice := bundle.VoiceMinutes.Mul(n)
	quotaSMS := bundle.SMS.Mul(n)

	overage := decimal.Zero
	avg := e.averageRate(covered, rates)

	if totals.DataMB.GreaterThan(quotaDataMB) {
		excess := totals.DataMB.Sub(quotaDataMB)
		overage = overage.Add(excess.Mul(avg.DataPerMB))
		warnings = append(warnings, fmt.Sprintf("%s GB data overage.",
			excess.Div(types.MBPerGB).StringFixed(2)))
	}
	if totals.VoiceMin.GreaterThan(quotaVoice) {
		excess := totals.VoiceMin.Sub(quotaVoice)
		overage = overage.Add(excess.Mul(avg.VoicePerMin))
		warnings = append(warnings, fmt.Sprintf("%s minutes voice overage.", excess.Round(2).String()))
	}
	if totals.SMS.GreaterThan(quotaSMS) {
		excess := totals.SMS.Sub(quotaSMS)
		overage = overage.Add(excess.Mul(avg.SMSPerUnit))
		warnings = append(warnings, fmt.Sprintf("%s SMS overage.", excess.Round(2).String()))
	}

	surcharge := decimal.Zero
	if len(uncovered) > 0 {
		days := uncoveredDays(trip, len(uncovered))
		surcharge = uncoveredCost(uncovered, usage, rates, days)
		overage = overage.Add(surcharge)

		names := make([]string, len(uncovered))
		for i, code := range uncovered {
			names[i] = trip.CountryName(code)
		}
		warnings = append(warnings, fmt.Sprintf("%s not covered. Extra charge: %s",
			strings.Join(names, ", "), types.FormatAmount(surcharge, e.config.Currency)))
	}

	return types.CostEstimate{
		BundleID:    bundle.ID,
		Name:        bundle.Name,
		BaseCost:    baseCost,
		OverageCost: overage,
		TotalCost:   baseCost.Add(overage),
		Surcharge:   surcharge,
		Breakdown: types.CostBreakdown{
			Data:  baseCost.Mul(e.config.Shares.Data),
			Voice: baseCost.Mul(e.config.Shares.Voice),
			SMS:   baseCost.Mul(e.config.Shares.SMS),
		},
		Warnings:           warnings,
		Recommended:        false,
		ValidityIssue:      validityIssue,
		RequiredUnits:      units,
		CoveredCountries:   covered,
		UncoveredCountries: uncovered,
	}, true
}

// averageRate is the arithmetic mean of the metered rates of the given
// countries. Countries without a rate do not count towards the mean.
func (e *Engine) averageRate(codes []string, rates []types.MeteredRate) types.MeteredRate {
	var found []types.MeteredRate
	for _, code := range codes {
		if r, ok := types.FindRate(rates, code); ok {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return e.config.FallbackRate
	}

	var avg types.MeteredRate
	for _, r := range found {
		avg.DataPerMB = avg.DataPerMB.Add(r.DataPerMB)
		avg.VoicePerMin = avg.VoicePerMin.Add(r.VoicePerMin)
		avg.SMSPerUnit = avg.SMSPerUnit.Add(r.SMSPerUnit)
	}
	count := decimal.NewFromInt(int64(len(found)))
	avg.DataPerMB = avg.DataPerMB.Div(count)
	avg.VoicePerMin = avg.VoicePerMin.Div(count)
	avg.SMSPerUnit = avg.SMSPerUnit.Div(count)
	return avg
}

// uncoveredDays allocates trip days to uncovered countries in proportion
// to their share of the country list. This is an approximation: the trip
// carries no per-country dates.
func uncoveredDays(trip types.TripPlan, uncovered int) int {
	total := len(trip.Countries)
	if total == 0 {
		return 0
	}
	return ceilDiv(trip.Duration*uncovered, total)
}

// uncoveredCost bills the full daily usage at each uncovered country's
// metered rate for the given number of days. Countries without a rate are
// skipped.
func uncoveredCost(codes []string, usage types.UsageProfile, rates []types.MeteredRate, days int) decimal.Decimal {
	d := decimal.NewFromInt(int64(days))
	total := decimal.Zero
	for _, code := range codes {
		rate, ok := types.FindRate(rates, code)
		if !ok {
			continue
		}
		total = total.Add(rate.DailyCost(usage).Mul(d))
	}
	return total
}
