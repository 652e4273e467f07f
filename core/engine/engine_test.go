package engine

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

var (
	germany = types.Country{Code: "DE", Name: "Germany", Region: "Europe"}
	britain = types.Country{Code: "GB", Name: "United Kingdom", Region: "Europe"}
	usa     = types.Country{Code: "US", Name: "United States", Region: "Americas"}
	japan   = types.Country{Code: "JP", Name: "Japan", Region: "Asia"}
	nowhere = types.Country{Code: "XX", Name: "Nowhere", Region: "Nowhere"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRates() []types.MeteredRate {
	return []types.MeteredRate{
		{Country: "DE", DataPerMB: dec("0.15"), VoicePerMin: dec("2.5"), SMSPerUnit: dec("1.0")},
		{Country: "GB", DataPerMB: dec("0.18"), VoicePerMin: dec("3.0"), SMSPerUnit: dec("1.2")},
		{Country: "US", DataPerMB: dec("0.25"), VoicePerMin: dec("4.0"), SMSPerUnit: dec("1.5")},
		{Country: "JP", DataPerMB: dec("0.30"), VoicePerMin: dec("5.0"), SMSPerUnit: dec("2.0")},
	}
}

func euWeekly() types.BundleOffer {
	return types.BundleOffer{
		ID:           "eu-weekly",
		Name:         "Europe Weekly",
		Kind:         types.CoverageRegional,
		Regions:      []types.Region{"Europe"},
		Countries:    []string{"DE", "FR", "IT", "ES", "GB"},
		DataGB:       dec("5"),
		VoiceMinutes: dec("100"),
		SMS:          dec("50"),
		Price:        dec("149"),
		ValidityDays: 7,
	}
}

func usaWeekly() types.BundleOffer {
	return types.BundleOffer{
		ID:           "usa-weekly",
		Name:         "USA Weekly",
		Kind:         types.CoverageCountry,
		Countries:    []string{"US"},
		DataGB:       dec("3"),
		VoiceMinutes: dec("60"),
		SMS:          dec("30"),
		Price:        dec("199"),
		ValidityDays: 7,
	}
}

func globalMonthly() types.BundleOffer {
	return types.BundleOffer{
		ID:           "global-monthly",
		Name:         "Global Monthly",
		Kind:         types.CoverageGlobal,
		Countries:    []string{"DE", "FR", "IT", "ES", "GB", "US", "AE", "SA", "JP"},
		DataGB:       dec("15"),
		VoiceMinutes: dec("200"),
		SMS:          dec("100"),
		Price:        dec("599"),
		ValidityDays: 30,
	}
}

func light() types.UsageProfile {
	return types.NewUsageProfile(200, 10, 5, types.ProfileLight)
}

func heavy() types.UsageProfile {
	return types.NewUsageProfile(1000, 40, 15, types.ProfileHeavy)
}

func trip(days int, countries ...types.Country) types.TripPlan {
	return types.TripPlan{Countries: countries, Duration: days}
}

func findEstimate(t *testing.T, result types.SimulationResult, bundleID string) types.CostEstimate {
	t.Helper()
	for _, e := range result.Estimates {
		if e.BundleID == bundleID {
			return e
		}
	}
	t.Fatalf("estimate for %q not found", bundleID)
	return types.CostEstimate{}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", label, got.String(), want)
	}
}

// TestSingleCountryWithinQuota covers a week in Germany on a light profile
func TestSingleCountryWithinQuota(t *testing.T) {
	result := Evaluate(trip(7, germany), light(), []types.BundleOffer{euWeekly()}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	if est.ValidityIssue {
		t.Error("expected no validity issue for a 7-day bundle on a 7-day trip")
	}
	assertAmount(t, "overage", est.OverageCost, "0")
	assertAmount(t, "total", est.TotalCost, "149")
	assertAmount(t, "breakdown.data", est.Breakdown.Data, "104.3")
	assertAmount(t, "breakdown.voice", est.Breakdown.Voice, "29.8")
	assertAmount(t, "breakdown.sms", est.Breakdown.SMS, "14.9")
	if len(est.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", est.Warnings)
	}
	if est.RequiredUnits != 1 {
		t.Errorf("required units = %d, want 1", est.RequiredUnits)
	}
}

// TestShortValidityRequiresRepeatPurchases covers a 3-day bundle on a 7-day trip
func TestShortValidityRequiresRepeatPurchases(t *testing.T) {
	bundle := euWeekly()
	bundle.ValidityDays = 3

	result := Evaluate(trip(7, germany), light(), []types.BundleOffer{bundle}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	if !est.ValidityIssue {
		t.Fatal("expected validity issue")
	}
	if est.RequiredUnits != 3 {
		t.Errorf("required units = %d, want 3", est.RequiredUnits)
	}
	assertAmount(t, "base", est.BaseCost, "447")
	assertAmount(t, "overage", est.OverageCost, "0")
	if !est.HasWarning("3 bundles must be purchased back-to-back") {
		t.Errorf("expected repeat purchase warning, got %v", est.Warnings)
	}
}

// TestUncoveredCountrySurcharge covers Germany + USA with a Europe-only bundle
func TestUncoveredCountrySurcharge(t *testing.T) {
	result := Evaluate(trip(7, germany, usa), light(), []types.BundleOffer{euWeekly()}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	// ceil(7 * 1/2) = 4 days in the US at (200*0.25 + 10*4.0 + 5*1.5) per day
	assertAmount(t, "surcharge", est.Surcharge, "390")
	assertAmount(t, "overage", est.OverageCost, "390")
	assertAmount(t, "total", est.TotalCost, "539")

	if len(est.UncoveredCountries) != 1 || est.UncoveredCountries[0] != "US" {
		t.Errorf("uncovered = %v, want [US]", est.UncoveredCountries)
	}
	if !est.HasWarning("United States not covered") || !est.HasWarning("390.00") {
		t.Errorf("expected surcharge warning naming United States, got %v", est.Warnings)
	}

	metered, ok := result.Metered()
	if !ok {
		t.Fatal("metered baseline missing")
	}
	// 4 days each: DE 240 + US 390
	assertAmount(t, "metered total", metered.TotalCost, "630")
	if best, _ := result.Best(); best.BundleID != "eu-weekly" {
		t.Errorf("best = %q, want eu-weekly", best.Name)
	}
}

// TestUncoveredCountryWithoutRateIsSkipped checks silent omission
func TestUncoveredCountryWithoutRateIsSkipped(t *testing.T) {
	result := Evaluate(trip(4, germany, nowhere), light(), []types.BundleOffer{euWeekly()}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	assertAmount(t, "surcharge", est.Surcharge, "0")
	if !est.HasWarning("Nowhere not covered") {
		t.Errorf("expected warning naming the uncovered country, got %v", est.Warnings)
	}
}

func TestOverageBilledAtAverageCoveredRate(t *testing.T) {
	result := Evaluate(trip(7, germany), heavy(), []types.BundleOffer{euWeekly()}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	// data 7000-5120=1880MB*0.15, voice 280-100=180*2.5, sms 105-50=55*1.0
	assertAmount(t, "overage", est.OverageCost, "787")
	assertAmount(t, "total", est.TotalCost, "936")

	for _, want := range []string{"1.84 GB data overage", "180 minutes voice overage", "55 SMS overage"} {
		if !est.HasWarning(want) {
			t.Errorf("missing warning %q in %v", want, est.Warnings)
		}
	}
}

func TestOverageAveragesAcrossCoveredCountries(t *testing.T) {
	usage := types.NewUsageProfile(0, 0, 0, types.ProfileCustom)
	usage.DailyDataMB = dec("1000")
	bundle := euWeekly()
	bundle.DataGB = dec("0")

	result := Evaluate(trip(2, germany, britain), usage, []types.BundleOffer{bundle}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	// 2000MB at (0.15+0.18)/2
	assertAmount(t, "overage", est.OverageCost, "330")
}

func TestOverageFallsBackToDefaultRate(t *testing.T) {
	bundle := types.BundleOffer{
		ID:           "xx-daily",
		Name:         "XX Daily",
		Countries:    []string{"XX"},
		DataGB:       dec("0"),
		VoiceMinutes: dec("0"),
		SMS:          dec("0"),
		Price:        dec("10"),
		ValidityDays: 1,
	}

	result := Evaluate(trip(1, nowhere), light(), []types.BundleOffer{bundle}, testRates())

	est := findEstimate(t, result, "xx-daily")
	// 200*0.20 + 10*3.0 + 5*1.0
	assertAmount(t, "overage", est.OverageCost, "75")
	assertAmount(t, "total", est.TotalCost, "85")

	metered, _ := result.Metered()
	assertAmount(t, "metered", metered.TotalCost, "0")
	if !result.Estimates[0].IsMetered() {
		t.Error("zero-cost metered baseline should rank first")
	}
}

// TestAlerts covers the advisory notices
func TestAlerts(t *testing.T) {
	tests := []struct {
		name     string
		trip     types.TripPlan
		usage    types.UsageProfile
		expected []string
	}{
		{
			name:     "short light single country",
			trip:     trip(7, germany),
			usage:    light(),
			expected: nil,
		},
		{
			name:     "heavy data",
			trip:     trip(7, germany),
			usage:    types.NewUsageProfile(1500, 10, 5, types.ProfileCustom),
			expected: []string{"Heavy usage"},
		},
		{
			name:     "exactly 1000MB is not heavy",
			trip:     trip(7, germany),
			usage:    heavy(),
			expected: nil,
		},
		{
			name:     "long trip and heavy data",
			trip:     trip(45, germany),
			usage:    types.NewUsageProfile(1500, 10, 5, types.ProfileCustom),
			expected: []string{"Long trip", "Heavy usage"},
		},
		{
			name:     "exactly 30 days is not long",
			trip:     trip(30, germany),
			usage:    light(),
			expected: nil,
		},
		{
			name:     "multi country",
			trip:     trip(7, germany, usa),
			usage:    light(),
			expected: []string{"Multi-country trip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.trip, tt.usage, []types.BundleOffer{euWeekly()}, testRates())
			if len(result.Alerts) != len(tt.expected) {
				t.Fatalf("got %d alerts %v, want %v", len(result.Alerts), result.Alerts, tt.expected)
			}
			for i, title := range tt.expected {
				if result.Alerts[i].Title != title {
					t.Errorf("alert[%d] = %q, want %q", i, result.Alerts[i].Title, title)
				}
			}
		})
	}
}

func TestAlertSeverities(t *testing.T) {
	result := Evaluate(trip(45, germany), types.NewUsageProfile(1500, 10, 5, types.ProfileCustom), nil, testRates())

	if got := len(result.AlertsBySeverity(types.SeverityInfo)); got != 1 {
		t.Errorf("info alerts = %d, want 1", got)
	}
	warnings := result.AlertsBySeverity(types.SeverityWarning)
	if len(warnings) != 1 || warnings[0].Title != "Long trip" {
		t.Errorf("warning alerts = %v, want the long trip alert", warnings)
	}
}

// TestNoCoveringBundle leaves only the metered baseline
func TestNoCoveringBundle(t *testing.T) {
	result := Evaluate(trip(5, japan), light(), []types.BundleOffer{euWeekly(), usaWeekly()}, testRates())

	if len(result.Estimates) != 1 {
		t.Fatalf("expected only the metered baseline, got %d estimates", len(result.Estimates))
	}
	best, ok := result.Best()
	if !ok || !best.IsMetered() || !best.Recommended {
		t.Errorf("best = %+v, want recommended metered baseline", best)
	}
	if best.Warnings[0] != MeteredWarning {
		t.Errorf("metered warning = %q", best.Warnings[0])
	}
}

func TestEmptyTripYieldsNoEstimates(t *testing.T) {
	result := Evaluate(trip(0), light(), []types.BundleOffer{euWeekly()}, testRates())

	if len(result.Estimates) != 0 {
		t.Errorf("expected no estimates, got %d", len(result.Estimates))
	}
	if _, ok := result.Best(); ok {
		t.Error("expected no best option")
	}
	if result.BestIndex != -1 {
		t.Errorf("best index = %d, want -1", result.BestIndex)
	}
	if len(result.Recommendations()) != 0 {
		t.Error("expected no recommendations")
	}
}

func TestZeroDurationMeteredIsFree(t *testing.T) {
	result := Evaluate(trip(0, germany), light(), nil, testRates())

	metered, ok := result.Metered()
	if !ok {
		t.Fatal("metered baseline missing")
	}
	assertAmount(t, "metered", metered.TotalCost, "0")
}

func TestMeteredEvenDayAllocation(t *testing.T) {
	// 5 days over 2 countries: each country gets ceil(5/2) = 3 days
	result := Evaluate(trip(5, germany, usa), types.NewUsageProfile(0, 1, 0, types.ProfileCustom), nil, testRates())

	metered, _ := result.Metered()
	// voice only: 3*2.5 + 3*4.0
	assertAmount(t, "metered voice", metered.Breakdown.Voice, "19.5")
	assertAmount(t, "metered total", metered.TotalCost, "19.5")
	assertAmount(t, "metered data", metered.Breakdown.Data, "0")
}

func TestStableOrderForEqualTotals(t *testing.T) {
	a := euWeekly()
	b := euWeekly()
	b.ID = "eu-weekly-copy"
	b.Name = "Europe Weekly Copy"

	result := Evaluate(trip(7, germany), light(), []types.BundleOffer{a, b}, testRates())

	if result.Estimates[0].BundleID != "eu-weekly" || result.Estimates[1].BundleID != "eu-weekly-copy" {
		t.Errorf("tie order = %s, %s; want catalog order", result.Estimates[0].BundleID, result.Estimates[1].BundleID)
	}
}

func TestRecommendationsAreCopies(t *testing.T) {
	result := Evaluate(trip(7, germany, usa), light(), []types.BundleOffer{euWeekly(), usaWeekly(), globalMonthly()}, testRates())

	recs := result.Recommendations()
	if len(recs) != 3 {
		t.Fatalf("recommendations = %d, want 3", len(recs))
	}
	recs[0].Name = "changed"
	if result.Estimates[0].Name == "changed" {
		t.Error("recommendations must not alias the estimates")
	}
	if !recs[0].Recommended {
		t.Error("first recommendation should carry the recommended flag")
	}
}

func TestWarningAmountsUseConfiguredCurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Currency = types.CurrencyTRY
	e := New(cfg, nil)

	result := e.Evaluate(trip(7, germany, usa), light(), []types.BundleOffer{euWeekly()}, testRates())

	est := findEstimate(t, result, "eu-weekly")
	if !est.HasWarning("390.00 TRY") {
		t.Errorf("expected currency in surcharge warning, got %v", est.Warnings)
	}
}

// TestSimulationInvariants checks ordering, recommendation and coverage
// rules across a grid of trips, profiles and bundles
func TestSimulationInvariants(t *testing.T) {
	bundles := []types.BundleOffer{euWeekly(), usaWeekly(), globalMonthly()}
	short := euWeekly()
	short.ID = "eu-3day"
	short.ValidityDays = 3
	bundles = append(bundles, short)

	trips := [][]types.Country{
		{germany},
		{usa},
		{japan},
		{nowhere},
		{germany, usa},
		{germany, britain, japan},
		{usa, nowhere},
	}
	profiles := []types.UsageProfile{
		light(),
		heavy(),
		types.NewUsageProfile(0, 0, 0, types.ProfileCustom),
		types.NewUsageProfile(3000, 120, 40, types.ProfileCustom),
	}
	durations := []int{1, 3, 7, 10, 31, 45}

	for _, countries := range trips {
		for _, usage := range profiles {
			for _, days := range durations {
				tp := trip(days, countries...)
				result := Evaluate(tp, usage, bundles, testRates())
				checkInvariants(t, tp, usage, bundles, result)
			}
		}
	}
}

func checkInvariants(t *testing.T, tp types.TripPlan, usage types.UsageProfile, bundles []types.BundleOffer, result types.SimulationResult) {
	t.Helper()
	label := strings.Join(tp.CountryCodes(), "+")

	for i := 1; i < len(result.Estimates); i++ {
		if result.Estimates[i].TotalCost.LessThan(result.Estimates[i-1].TotalCost) {
			t.Fatalf("%s/%dd: estimates not sorted at %d", label, tp.Duration, i)
		}
	}

	recommended := 0
	for i, e := range result.Estimates {
		if e.Recommended {
			recommended++
			if i != result.BestIndex {
				t.Fatalf("%s/%dd: recommended estimate at %d, best index %d", label, tp.Duration, i, result.BestIndex)
			}
		}
		if !e.TotalCost.Equal(e.BaseCost.Add(e.OverageCost)) {
			t.Fatalf("%s/%dd: %s total != base + overage", label, tp.Duration, e.Name)
		}
	}
	if recommended != 1 {
		t.Fatalf("%s/%dd: %d recommended estimates, want 1", label, tp.Duration, recommended)
	}

	best, _ := result.Best()
	if recs := result.Recommendations(); recs[0].Name != best.Name || !recs[0].TotalCost.Equal(best.TotalCost) {
		t.Fatalf("%s/%dd: first recommendation differs from best option", label, tp.Duration)
	}

	if _, ok := result.Metered(); !ok {
		t.Fatalf("%s/%dd: metered baseline missing", label, tp.Duration)
	}

	totals := usage.Totals(tp.Duration)
	for _, b := range bundles {
		coversAny := false
		for _, code := range tp.CountryCodes() {
			if b.Covers(code) {
				coversAny = true
			}
		}

		var est *types.CostEstimate
		for i := range result.Estimates {
			if result.Estimates[i].BundleID == b.ID {
				est = &result.Estimates[i]
			}
		}
		if !coversAny {
			if est != nil {
				t.Fatalf("%s/%dd: disjoint bundle %s present", label, tp.Duration, b.ID)
			}
			continue
		}
		if est == nil {
			t.Fatalf("%s/%dd: covering bundle %s missing", label, tp.Duration, b.ID)
		}

		if b.ValidityDays < tp.Duration {
			if !est.ValidityIssue || !est.HasWarning("must be purchased back-to-back") {
				t.Fatalf("%s/%dd: %s should flag validity", label, tp.Duration, b.ID)
			}
		}

		units := decimal.NewFromInt(int64(est.RequiredUnits))
		withinQuota := totals.DataMB.LessThanOrEqual(b.DataMB().Mul(units)) &&
			totals.VoiceMin.LessThanOrEqual(b.VoiceMinutes.Mul(units)) &&
			totals.SMS.LessThanOrEqual(b.SMS.Mul(units))
		if withinQuota && len(est.UncoveredCountries) == 0 && !est.OverageCost.IsZero() {
			t.Fatalf("%s/%dd: %s has overage within quota", label, tp.Duration, b.ID)
		}
	}
}
