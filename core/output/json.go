// Package output - JSON formatter
package output

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
	"roaming-cost/internal/errors"
)

// Document is the machine-readable form of a report
type Document struct {
	// Subscriber is present when the simulation was run for one
	Subscriber *types.Subscriber `json:"subscriber,omitempty"`

	// Trip describes the simulated trip
	Trip TripDocument `json:"trip"`

	// Usage is the priced profile and its trip totals
	Usage UsageDocument `json:"usage"`

	// Estimates are all options sorted ascending by total cost
	Estimates []types.CostEstimate `json:"estimates"`

	// Recommendations are the leading estimates
	Recommendations []types.CostEstimate `json:"recommendations"`

	// BestOption is the cheapest estimate, null when there is none
	BestOption *types.CostEstimate `json:"best_option"`

	// SavingsVsMetered is the best option's saving against metered rates
	SavingsVsMetered *decimal.Decimal `json:"savings_vs_metered,omitempty"`

	// Alerts are advisory notices for the trip
	Alerts []types.Alert `json:"alerts"`

	// TopUp is present for top-up simulations
	TopUp *TopUpDocument `json:"top_up,omitempty"`

	// Currency labels every amount
	Currency types.Currency `json:"currency"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// TripDocument describes the trip
type TripDocument struct {
	Countries []types.Country `json:"countries"`
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	Duration  int             `json:"duration"`
}

// UsageDocument is the priced profile and its trip totals
type UsageDocument struct {
	Profile types.UsageProfile `json:"profile"`
	Totals  types.UsageTotals  `json:"totals"`
}

// TopUpDocument describes a top-up simulation
type TopUpDocument struct {
	TopUpSection

	// BestBefore is the cheapest option without the top-up
	BestBefore *types.CostEstimate `json:"best_before,omitempty"`
}

// NewDocument builds the machine-readable form of a report
func NewDocument(r *Report) Document {
	doc := Document{
		Subscriber: r.Subscriber,
		Trip: TripDocument{
			Countries: r.Trip.Countries,
			StartDate: formatDate(r.Trip.StartDate),
			EndDate:   formatDate(r.Trip.EndDate),
			Duration:  r.Trip.Duration,
		},
		Usage: UsageDocument{
			Profile: r.Usage,
			Totals:  r.Usage.Totals(r.Trip.Duration),
		},
		Estimates:       r.Result.Estimates,
		Recommendations: r.Result.Recommendations(),
		Alerts:          r.Result.Alerts,
		Currency:        r.Currency,
		Metadata:        r.Metadata,
	}

	if doc.Trip.Countries == nil {
		doc.Trip.Countries = []types.Country{}
	}
	if doc.Estimates == nil {
		doc.Estimates = []types.CostEstimate{}
	}
	if doc.Alerts == nil {
		doc.Alerts = []types.Alert{}
	}

	if best, ok := r.Result.Best(); ok {
		doc.BestOption = &best
	}
	if savings, ok := r.Savings(); ok {
		doc.SavingsVsMetered = &savings
	}

	if r.TopUp != nil {
		doc.TopUp = &TopUpDocument{TopUpSection: *r.TopUp}
		if before, ok := r.TopUp.Before.Best(); ok {
			doc.TopUp.BestBefore = &before
		}
	}

	return doc
}

// JSONFormatter renders reports as JSON
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report document
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewDocument(report)); err != nil {
		return errors.Wrap(errors.TypeOutput, "failed to encode json report", err)
	}
	return nil
}
