// Package types - Simulation result types
package types

import "github.com/shopspring/decimal"

// Severity grades an advisory alert
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is an advisory notice derived from the trip and usage shape.
// Alerts never change cost numbers.
type Alert struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`

	// Action is an optional suggested follow-up label
	Action string `json:"action,omitempty"`
}

// SimulationResult is the full output of one evaluation
type SimulationResult struct {
	// Estimates are all options sorted ascending by total cost
	Estimates []CostEstimate `json:"estimates"`

	// Alerts are advisory notices for the trip
	Alerts []Alert `json:"alerts"`

	// BestIndex points at the recommended estimate, -1 when there is none
	BestIndex int `json:"best_index"`

	// RecommendationCount is how many leading estimates are recommendations
	RecommendationCount int `json:"-"`
}

// Best returns the cheapest estimate
func (r SimulationResult) Best() (CostEstimate, bool) {
	if r.BestIndex < 0 || r.BestIndex >= len(r.Estimates) {
		return CostEstimate{}, false
	}
	return r.Estimates[r.BestIndex], true
}

// Recommendations returns copies of the leading estimates
func (r SimulationResult) Recommendations() []CostEstimate {
	n := r.RecommendationCount
	if n <= 0 {
		n = 3
	}
	if n > len(r.Estimates) {
		n = len(r.Estimates)
	}
	out := make([]CostEstimate, n)
	copy(out, r.Estimates[:n])
	return out
}

// Metered returns the pay-as-you-go baseline estimate
func (r SimulationResult) Metered() (CostEstimate, bool) {
	for _, e := range r.Estimates {
		if e.IsMetered() {
			return e, true
		}
	}
	return CostEstimate{}, false
}

// SavingsVsMetered returns how much cheaper estimate i is than the
// metered baseline. Negative values mean the option costs more.
func (r SimulationResult) SavingsVsMetered(i int) decimal.Decimal {
	metered, ok := r.Metered()
	if !ok || i < 0 || i >= len(r.Estimates) {
		return decimal.Zero
	}
	return metered.TotalCost.Sub(r.Estimates[i].TotalCost)
}

// AlertsBySeverity filters alerts by severity
func (r SimulationResult) AlertsBySeverity(s Severity) []Alert {
	var out []Alert
	for _, a := range r.Alerts {
		if a.Severity == s {
			out = append(out, a)
		}
	}
	return out
}
