package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"roaming-cost/core/catalog"
	"roaming-cost/core/engine"
	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

func date(s string) time.Time {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// germanyReport prices a light week in Germany against the built-in catalog:
// Europe Weekly 149, Europe Monthly 399, metered 420, Global Monthly 599.
func germanyReport(t *testing.T) *Report {
	t.Helper()
	c := catalog.Default()
	countries, err := c.ResolveCountries([]string{"DE"})
	if err != nil {
		t.Fatal(err)
	}
	trip := types.NewTripPlan(countries, date("2026-07-01"), date("2026-07-07"))
	profile, _ := usage.Preset(types.ProfileLight)

	return &Report{
		Trip:     trip,
		Usage:    profile,
		Result:   engine.Evaluate(trip, profile, c.Bundles, c.Rates),
		Currency: types.CurrencyTRY,
		Metadata: Metadata{SimulationID: "abc123"},
	}
}

func emptyReport() *Report {
	profile, _ := usage.Preset(types.ProfileMedium)
	trip := types.NewTripPlan(nil, date("2026-07-01"), date("2026-08-15"))
	return &Report{
		Trip:     trip,
		Usage:    profile,
		Result:   engine.Evaluate(trip, profile, nil, nil),
		Currency: types.CurrencyTRY,
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(Options{NoColor: true})

	var names []string
	for _, f := range r.Formats() {
		names = append(names, string(f))
	}
	if got := strings.Join(names, ","); got != "cli,json,markdown,pdf" {
		t.Errorf("formats = %s", got)
	}

	if err := r.Register(NewJSONFormatter(false)); !errors.IsType(err, errors.TypeOutput) {
		t.Errorf("duplicate register = %v, want OUTPUT_ERROR", err)
	}
	if _, err := r.Get("html"); !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("Get(html) = %v, want NOT_SUPPORTED", err)
	}
	if f, err := r.Get(FormatPDF); err != nil || f.Format() != FormatPDF {
		t.Errorf("Get(pdf) = %v, %v", f, err)
	}
}

func TestJSONDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(false).Render(&buf, germanyReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		Estimates []struct {
			Name        string `json:"name"`
			TotalCost   string `json:"total_cost"`
			Recommended bool   `json:"recommended"`
		} `json:"estimates"`
		Recommendations []json.RawMessage `json:"recommendations"`
		BestOption      struct {
			BundleID string `json:"bundle_id"`
		} `json:"best_option"`
		SavingsVsMetered string `json:"savings_vs_metered"`
		Trip             struct {
			StartDate string `json:"start_date"`
			Duration  int    `json:"duration"`
		} `json:"trip"`
		Metadata Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}

	if len(doc.Estimates) != 4 || !doc.Estimates[0].Recommended || doc.Estimates[1].Recommended {
		t.Errorf("estimates = %+v", doc.Estimates)
	}
	if doc.BestOption.BundleID != "eu-weekly" {
		t.Errorf("best option = %s, want eu-weekly", doc.BestOption.BundleID)
	}
	if len(doc.Recommendations) != 3 {
		t.Errorf("recommendations = %d, want 3", len(doc.Recommendations))
	}
	if !decimal.RequireFromString(doc.SavingsVsMetered).Equal(decimal.NewFromInt(271)) {
		t.Errorf("savings = %s, want 271", doc.SavingsVsMetered)
	}
	if doc.Trip.StartDate != "2026-07-01" || doc.Trip.Duration != 7 {
		t.Errorf("trip = %+v", doc.Trip)
	}
	if doc.Metadata.SimulationID != "abc123" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
}

func TestJSONDocumentEmptyTrip(t *testing.T) {
	doc := NewDocument(emptyReport())

	if doc.BestOption != nil || doc.SavingsVsMetered != nil {
		t.Errorf("empty trip must have no best option, got %+v", doc.BestOption)
	}
	if doc.Estimates == nil || doc.Trip.Countries == nil || len(doc.Recommendations) != 0 {
		t.Errorf("empty trip must encode empty lists, got %+v", doc)
	}
	if len(doc.Alerts) != 1 || doc.Alerts[0].Title != "Long trip" {
		t.Errorf("alerts = %+v", doc.Alerts)
	}
}

func TestCLIFormatter(t *testing.T) {
	r := germanyReport(t)
	r.Subscriber = &types.Subscriber{ID: "1", Name: "Ahmet Yilmaz", Phone: "0532 123 45 67", CurrentPlan: "Platinum 50GB"}

	var buf bytes.Buffer
	if err := NewCLIFormatter(true).Render(&buf, r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Subscriber: Ahmet Yilmaz",
		"Germany",
		"2026-07-01 to 2026-07-07 (7 days)",
		"light, 200 MB/day, 10 min/day, 5 SMS/day",
		"Best option:  Europe Weekly",
		"You save:     271.00 TRY",
		"-271.00 TRY",
		"Pay-as-you-go (metered rates)",
		"Simulation abc123",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("no-color output contains escape codes")
	}
}

func TestCLIFormatterEmptyTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter(true).Render(&buf, emptyReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"No countries selected", "Long trip", "1 warning"} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q:\n%s", want, out)
		}
	}
}

func TestTopUpSections(t *testing.T) {
	r := germanyReport(t)
	before := r.Usage
	topUp := usage.TopUp{DataMB: decimal.NewFromInt(2048)}
	after := usage.ApplyTopUp(before, topUp, r.Trip.Duration)

	c := catalog.Default()
	r.TopUp = &TopUpSection{
		TopUp:      topUp,
		Comparison: usage.Compare(before, after, r.Trip.Duration),
		Before:     r.Result,
	}
	r.Usage = after
	r.Result = engine.Evaluate(r.Trip, after, c.Bundles, c.Rates)

	var cli, md bytes.Buffer
	if err := NewCLIFormatter(true).Render(&cli, r); err != nil {
		t.Fatal(err)
	}
	if err := NewMarkdownFormatter().Render(&md, r); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(cli.String(), "1.37 GB → 3.37 GB") {
		t.Errorf("cli top-up section missing data change:\n%s", cli.String())
	}
	if !strings.Contains(md.String(), "| Data | 1.37 GB | 3.37 GB |") {
		t.Errorf("markdown top-up section missing data change:\n%s", md.String())
	}

	doc := NewDocument(r)
	if doc.TopUp == nil || doc.TopUp.BestBefore == nil || doc.TopUp.BestBefore.BundleID != "eu-weekly" {
		t.Errorf("json top-up = %+v", doc.TopUp)
	}
	if doc.Usage.Profile.Kind != types.ProfileCustom {
		t.Errorf("topped-up profile kind = %s, want custom", doc.Usage.Profile.Kind)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Render(&buf, germanyReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Roaming Cost Simulation",
		"**Best option:** Europe Weekly, 149.00 TRY (saves 271.00 TRY against metered rates)",
		"| 1 | Europe Weekly | 149.00 TRY | 0.00 TRY | 0.00 TRY | 149.00 TRY | recommended |",
		"| 3 | Pay-as-you-go (metered rates) |",
		"Paying metered rates without a bundle carries a high bill risk.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestPDFFormatter(t *testing.T) {
	for name, r := range map[string]*Report{"germany": germanyReport(t), "empty": emptyReport()} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewPDFFormatter().Render(&buf, r); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
			}
		})
	}
}
