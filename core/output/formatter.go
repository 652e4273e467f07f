// Package output provides output formatting interfaces.
// This package produces human and machine-readable simulation reports.
package output

import (
	"io"
	"sync"

	"github.com/shopspring/decimal"

	"roaming-cost/core/determinism"
	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatPDF is a printable PDF report
	FormatPDF Format = "pdf"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report contains everything a formatter renders
type Report struct {
	// Trip is the simulated trip
	Trip types.TripPlan

	// Usage is the daily usage profile that was priced
	Usage types.UsageProfile

	// Result is the engine output
	Result types.SimulationResult

	// Currency labels every amount
	Currency types.Currency

	// Subscriber is the optional subscriber the simulation was run for
	Subscriber *types.Subscriber

	// TopUp is set when extra usage was added to the profile
	TopUp *TopUpSection

	// Metadata contains execution context
	Metadata Metadata
}

// TopUpSection describes a top-up simulation
type TopUpSection struct {
	// TopUp is the trip-total extra usage
	TopUp usage.TopUp `json:"top_up"`

	// Comparison holds trip totals before and after the top-up
	Comparison usage.Comparison `json:"comparison"`

	// Before is the result for the profile without the top-up
	Before types.SimulationResult `json:"-"`
}

// Metadata contains execution context
type Metadata struct {
	// RequestID identifies the HTTP request, if any
	RequestID string `json:"request_id,omitempty"`

	// SimulationID is a stable ID derived from the input
	SimulationID string `json:"simulation_id,omitempty"`

	// InputHash is a hash of the input
	InputHash string `json:"input_hash,omitempty"`

	// GeneratedAt is when the report was produced (RFC 3339)
	GeneratedAt string `json:"generated_at,omitempty"`

	// DurationMS is how long the simulation took
	DurationMS float64 `json:"duration_ms,omitempty"`

	// Version is the tool version
	Version string `json:"version,omitempty"`
}

// Amount formats an amount in the report currency
func (r *Report) Amount(d decimal.Decimal) string {
	return types.FormatAmount(d, r.Currency)
}

// Savings returns the saving of the best option against metered rates
func (r *Report) Savings() (decimal.Decimal, bool) {
	best, ok := r.Result.Best()
	if !ok || best.IsMetered() {
		return decimal.Zero, false
	}
	if _, ok := r.Result.Metered(); !ok {
		return decimal.Zero, false
	}
	return r.Result.SavingsVsMetered(r.Result.BestIndex), true
}

// Registry holds formatters by format
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Options configures the default formatters
type Options struct {
	// NoColor disables ANSI colors in cli output
	NoColor bool
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewCLIFormatter(opts.NoColor),
		NewJSONFormatter(true),
		NewMarkdownFormatter(),
		NewPDFFormatter(),
	} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeOutput, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.Newf(errors.TypeNotSupported, "unsupported output format %q", format).
			WithContext("available", r.formatsLocked())
	}
	return f, nil
}

// Formats lists the registered formats in sorted order
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formatsLocked()
}

func (r *Registry) formatsLocked() []Format {
	return determinism.SortedKeys(r.formatters)
}
