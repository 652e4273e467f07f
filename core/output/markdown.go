// Package output - Markdown formatter
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"roaming-cost/internal/errors"
)

// MarkdownFormatter renders reports as a markdown document
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, r *Report) error {
	b := bufio.NewWriter(w)
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(b, format+"\n", args...)
	}

	p("# Roaming Cost Simulation")
	p("")
	if s := r.Subscriber; s != nil {
		p("- **Subscriber:** %s (%s), plan %s", s.Name, s.Phone, s.CurrentPlan)
	}
	p("- **Countries:** %s", countryList(r.Trip))
	p("- **Dates:** %s", dateRange(r.Trip))
	p("- **Usage:** %s", profileLine(r.Usage))
	p("- **Trip total:** %s", totalsLine(r.Usage.Totals(r.Trip.Duration)))
	p("")

	if best, ok := r.Result.Best(); ok {
		line := fmt.Sprintf("**Best option:** %s, %s", best.Name, r.Amount(best.TotalCost))
		if savings, ok := r.Savings(); ok && savings.IsPositive() {
			line += fmt.Sprintf(" (saves %s against metered rates)", r.Amount(savings))
		}
		p("%s", line)
		p("")

		p("## Options")
		p("")
		p("| # | Option | Base | Overage | Surcharge | Total | |")
		p("|---|---|---:|---:|---:|---:|---|")
		for i, e := range r.Result.Estimates {
			mark := ""
			if e.Recommended {
				mark = "recommended"
			}
			p("| %d | %s | %s | %s | %s | %s | %s |", i+1, escapeCell(e.Name),
				r.Amount(e.BaseCost), r.Amount(e.OverageCost), r.Amount(e.Surcharge), r.Amount(e.TotalCost), mark)
		}
		p("")

		var warned bool
		for _, e := range r.Result.Estimates {
			if len(e.Warnings) == 0 {
				continue
			}
			if !warned {
				p("## Warnings")
				p("")
				warned = true
			}
			p("### %s", e.Name)
			p("")
			for _, warning := range e.Warnings {
				p("- %s", warning)
			}
			p("")
		}
	} else {
		p("_No countries selected, nothing to price._")
		p("")
	}

	if r.TopUp != nil {
		c := r.TopUp.Comparison
		p("## Top-up")
		p("")
		p("| | Before | After |")
		p("|---|---:|---:|")
		p("| Data | %s GB | %s GB |", quantity(c.Before.DataGB()), quantity(c.After.DataGB()))
		p("| Voice | %s min | %s min |", quantity(c.Before.VoiceMin), quantity(c.After.VoiceMin))
		p("| SMS | %s | %s |", quantity(c.Before.SMS), quantity(c.After.SMS))
		p("")
	}

	if len(r.Result.Alerts) > 0 {
		p("## Alerts")
		p("")
		for _, a := range r.Result.Alerts {
			line := fmt.Sprintf("- **%s** (%s): %s", a.Title, a.Severity, a.Message)
			if a.Action != "" {
				line += " _" + a.Action + "_"
			}
			p("%s", line)
		}
		p("")
	}

	if r.Metadata.SimulationID != "" {
		p("<sub>Simulation %s</sub>", r.Metadata.SimulationID)
	}

	if err := b.Flush(); err != nil {
		return errors.Wrap(errors.TypeOutput, "failed to write markdown report", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
