// Package output - CLI formatter
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"roaming-cost/core/determinism"
	"roaming-cost/core/types"
	"roaming-cost/core/ui"
)

// CLIFormatter renders reports as terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report as tables
func (f *CLIFormatter) Render(w io.Writer, r *Report) error {
	out := ui.NewWriter(w, f.noColor)

	out.Header("Roaming Cost Simulation")

	if s := r.Subscriber; s != nil {
		out.Println("Subscriber: %s (%s), plan %s", s.Name, s.Phone, s.CurrentPlan)
	}
	out.Println("Countries:  %s", countryList(r.Trip))
	out.Println("Dates:      %s", dateRange(r.Trip))
	out.Println("Usage:      %s", profileLine(r.Usage))
	out.Println("Trip total: %s", totalsLine(r.Usage.Totals(r.Trip.Duration)))

	if len(r.Result.Estimates) == 0 {
		out.Println("")
		out.Warning("No countries selected, nothing to price.")
		renderAlerts(out, r.Result.Alerts)
		return nil
	}

	out.Println("")
	best, _ := r.Result.Best()
	summary := out.NewSummary()
	summary.Option = best.Name
	summary.Total = r.Amount(best.TotalCost)
	if savings, ok := r.Savings(); ok && savings.IsPositive() {
		summary.Savings = r.Amount(savings)
	}
	summary.Warnings = len(best.Warnings)
	summary.Alerts = len(r.Result.Alerts)
	summary.Render()

	out.Header("Options")
	table := out.NewTable("#", "Option", "Base", "Overage", "Total", "vs metered")
	for i, e := range r.Result.Estimates {
		vsMetered := "-"
		if !e.IsMetered() {
			vsMetered = signedAmount(r.Result.SavingsVsMetered(i).Neg(), r.Currency)
		}
		name := e.Name
		if e.RequiredUnits > 1 {
			name = fmt.Sprintf("%s x%d", name, e.RequiredUnits)
		}
		table.AddRow(fmt.Sprint(i+1), name, r.Amount(e.BaseCost), r.Amount(e.OverageCost.Add(e.Surcharge)), r.Amount(e.TotalCost), vsMetered)
		if e.Recommended {
			table.Highlight()
		}
	}
	table.Render()

	for _, e := range r.Result.Recommendations() {
		if len(e.Warnings) == 0 {
			continue
		}
		out.Println("")
		out.SubHeader(e.Name)
		for _, warning := range e.Warnings {
			out.Warning("%s", warning)
		}
	}

	if r.TopUp != nil {
		renderTopUp(out, r)
	}

	renderAlerts(out, r.Result.Alerts)

	if r.Metadata.SimulationID != "" {
		out.Println("")
		out.Muted("Simulation %s", r.Metadata.SimulationID)
	}
	return nil
}

func renderTopUp(out *ui.Writer, r *Report) {
	out.Header("Top-up")
	c := r.TopUp.Comparison
	changes := out.NewChangeList()
	changes.Add("Data", quantity(c.Before.DataGB())+" GB", quantity(c.After.DataGB())+" GB")
	changes.Add("Voice", quantity(c.Before.VoiceMin)+" min", quantity(c.After.VoiceMin)+" min")
	changes.Add("SMS", quantity(c.Before.SMS), quantity(c.After.SMS))
	changes.Render()

	before, okBefore := r.TopUp.Before.Best()
	after, okAfter := r.Result.Best()
	if okBefore && okAfter {
		out.Println("")
		out.Println("Best option: %s (%s) → %s (%s)",
			before.Name, r.Amount(before.TotalCost), after.Name, r.Amount(after.TotalCost))
	}
}

func renderAlerts(out *ui.Writer, alerts []types.Alert) {
	if len(alerts) == 0 {
		return
	}
	out.Header("Alerts")

	counts := make(map[types.Severity]int)
	for _, a := range alerts {
		counts[a.Severity]++
	}
	var parts []string
	for _, s := range determinism.SortedKeys(counts) {
		parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
	}
	out.Muted("%s", strings.Join(parts, ", "))

	for _, a := range alerts {
		switch a.Severity {
		case types.SeverityError:
			out.Error("%s: %s", a.Title, a.Message)
		case types.SeverityWarning:
			out.Warning("%s: %s", a.Title, a.Message)
		default:
			out.Info("%s: %s", a.Title, a.Message)
		}
		if a.Action != "" {
			out.Muted("  → %s", a.Action)
		}
	}
}

func countryList(t types.TripPlan) string {
	if len(t.Countries) == 0 {
		return "none"
	}
	names := make([]string, len(t.Countries))
	for i, c := range t.Countries {
		names[i] = c.Name
		if c.Flag != "" {
			names[i] = c.Flag + " " + c.Name
		}
	}
	return strings.Join(names, ", ")
}

func dateRange(t types.TripPlan) string {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Sprintf("not set (%d days)", t.Duration)
	}
	return fmt.Sprintf("%s to %s (%d days)", formatDate(t.StartDate), formatDate(t.EndDate), t.Duration)
}

func profileLine(p types.UsageProfile) string {
	return fmt.Sprintf("%s, %s MB/day, %s min/day, %s SMS/day",
		p.Kind, quantity(p.DailyDataMB), quantity(p.DailyVoiceMin), quantity(p.DailySMS))
}

func totalsLine(t types.UsageTotals) string {
	return fmt.Sprintf("%s GB, %s min, %s SMS", quantity(t.DataGB()), quantity(t.VoiceMin), quantity(t.SMS))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.DateLayout)
}

// quantity renders a usage amount with at most two decimals
func quantity(d decimal.Decimal) string {
	return d.Round(2).String()
}

func signedAmount(d decimal.Decimal, currency types.Currency) string {
	s := types.FormatAmount(d, currency)
	if d.IsPositive() {
		s = "+" + s
	}
	return s
}
