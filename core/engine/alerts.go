package engine

import (
	"fmt"

	"roaming-cost/core/types"
)

// generateAlerts derives advisory notices from the trip and usage shape
// alone. They are independent of any bundle costing.
func (e *Engine) generateAlerts(trip types.TripPlan, usage types.UsageProfile) []types.Alert {
	alerts := []types.Alert{}

	if trip.Duration > e.config.LongTripDays {
		alerts = append(alerts, types.Alert{
			Severity: types.SeverityWarning,
			Title:    "Long trip",
			Message:  fmt.Sprintf("Your trip is longer than %d days. Consider monthly bundles.", e.config.LongTripDays),
			Action:   "Show monthly bundles",
		})
	}

	if usage.DailyDataMB.GreaterThan(e.config.HeavyDailyDataMB) {
		alerts = append(alerts, types.Alert{
			Severity: types.SeverityInfo,
			Title:    "Heavy usage",
			Message:  fmt.Sprintf("You plan more than %s MB of data per day. Bundles with a large data quota are recommended.", e.config.HeavyDailyDataMB.String()),
			Action:   "Show large bundles",
		})
	}

	if trip.IsMultiCountry() {
		alerts = append(alerts, types.Alert{
			Severity: types.SeverityInfo,
			Title:    "Multi-country trip",
			Message:  "You are visiting more than one country. Regional bundles may be cheaper.",
			Action:   "Show regional bundles",
		})
	}

	return alerts
}
