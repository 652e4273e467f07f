package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"roaming-cost/core/catalog"
	"roaming-cost/core/engine"
	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

func newTestService() *Service {
	cfg := engine.DefaultConfig()
	cfg.Currency = types.CurrencyTRY
	s := NewService(catalog.Default(), engine.New(cfg, nil), "test", nil)
	fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRequestValidate(t *testing.T) {
	valid := func() Request {
		return Request{Countries: []string{"DE"}, StartDate: "2026-07-01", EndDate: "2026-07-07"}
	}

	tests := []struct {
		name   string
		mutate func(*Request)
		ok     bool
	}{
		{"valid", func(*Request) {}, true},
		{"no countries", func(r *Request) { r.Countries = nil }, true},
		{"bad country", func(r *Request) { r.Countries = []string{"DEU"} }, false},
		{"missing end", func(r *Request) { r.EndDate = "" }, false},
		{"bad date", func(r *Request) { r.StartDate = "01/07/2026" }, false},
		{"end before start", func(r *Request) { r.EndDate = "2026-06-30" }, false},
		{"unknown profile", func(r *Request) { r.Profile = "extreme" }, false},
		{"custom without usage", func(r *Request) { r.Profile = "custom" }, false},
		{"custom with usage", func(r *Request) {
			r.Profile = "custom"
			r.Usage = &UsageOverrides{DailyDataMB: decPtr(300)}
		}, true},
		{"negative usage", func(r *Request) { r.Usage = &UsageOverrides{DailySMS: decPtr(-1)} }, false},
		{"negative top-up", func(r *Request) { r.TopUp = &usage.TopUp{DataMB: decimal.NewFromInt(-5)} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			req.Normalize()
			err := req.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.IsType(err, errors.TypeInput) {
				t.Errorf("Validate() = %v, want INPUT_ERROR", err)
			}
		})
	}
}

func TestRunGermanyWeek(t *testing.T) {
	s := newTestService()
	report, err := s.Run(context.Background(), Request{
		Countries: []string{" de "},
		StartDate: "2026-07-01",
		EndDate:   "2026-07-07",
		Profile:   "Light",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Trip.Duration != 7 || report.Usage.Kind != types.ProfileLight {
		t.Errorf("trip = %+v, usage = %+v", report.Trip, report.Usage)
	}
	best, ok := report.Result.Best()
	if !ok || best.BundleID != "eu-weekly" || !best.TotalCost.Equal(decimal.NewFromInt(149)) {
		t.Errorf("best = %+v", best)
	}
	if report.Currency != types.CurrencyTRY {
		t.Errorf("currency = %s", report.Currency)
	}
	if report.Metadata.SimulationID == "" || len(report.Metadata.InputHash) != 64 {
		t.Errorf("metadata = %+v", report.Metadata)
	}
	if report.Metadata.GeneratedAt != "2026-06-01T12:00:00Z" || report.Metadata.Version != "test" {
		t.Errorf("metadata = %+v", report.Metadata)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	s := newTestService()
	req := Request{Countries: []string{"DE", "US"}, StartDate: "2026-07-01", EndDate: "2026-07-10"}

	a, err := s.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := s.Run(context.Background(), req)
	if a.Metadata.SimulationID != b.Metadata.SimulationID || a.Metadata.InputHash != b.Metadata.InputHash {
		t.Error("same request must yield the same simulation id")
	}

	req.EndDate = "2026-07-11"
	c, _ := s.Run(context.Background(), req)
	if c.Metadata.SimulationID == a.Metadata.SimulationID {
		t.Error("different request must yield a different simulation id")
	}
}

func TestRunCatalogReferences(t *testing.T) {
	s := newTestService()

	report, err := s.Run(context.Background(), Request{
		SubscriberID: "2",
		Countries:    []string{"US"},
		StartDate:    "2026-07-01",
		EndDate:      "2026-07-07",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Subscriber == nil || report.Subscriber.Name != "Ayse Demir" {
		t.Errorf("subscriber = %+v", report.Subscriber)
	}
	if report.Usage.Kind != DefaultProfile {
		t.Errorf("profile = %s, want %s", report.Usage.Kind, DefaultProfile)
	}

	tests := []struct {
		name string
		req  Request
		want errors.Type
	}{
		{"unknown subscriber", Request{SubscriberID: "99", StartDate: "2026-07-01", EndDate: "2026-07-02"}, errors.TypeNotFound},
		{"unknown country", Request{Countries: []string{"BR"}, StartDate: "2026-07-01", EndDate: "2026-07-02"}, errors.TypeNotFound},
		{"invalid input", Request{Countries: []string{"DE"}}, errors.TypeInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.req)
			if !errors.IsType(err, tt.want) {
				t.Errorf("Run = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestRunEmptyTrip(t *testing.T) {
	report, err := newTestService().Run(context.Background(), Request{StartDate: "2026-07-01", EndDate: "2026-08-15"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Result.Estimates) != 0 || report.Result.BestIndex != -1 {
		t.Errorf("result = %+v", report.Result)
	}
	if len(report.Result.Alerts) != 1 {
		t.Errorf("alerts = %+v, want the long trip alert", report.Result.Alerts)
	}
}

func TestRunCustomProfile(t *testing.T) {
	report, err := newTestService().Run(context.Background(), Request{
		Countries: []string{"DE"},
		StartDate: "2026-07-01",
		EndDate:   "2026-07-07",
		Profile:   "custom",
		Usage:     &UsageOverrides{DailyDataMB: decPtr(2000)},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	p := report.Usage
	if p.Kind != types.ProfileCustom || !p.DailyDataMB.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("profile = %+v", p)
	}
	medium, _ := usage.Preset(types.ProfileMedium)
	if !p.DailyVoiceMin.Equal(medium.DailyVoiceMin) {
		t.Errorf("voice = %s, want medium default %s", p.DailyVoiceMin, medium.DailyVoiceMin)
	}

	var heavy bool
	for _, a := range report.Result.Alerts {
		heavy = heavy || a.Title == "Heavy usage"
	}
	if !heavy {
		t.Errorf("2000 MB/day should raise the heavy usage alert, got %+v", report.Result.Alerts)
	}
}

func TestRunTopUp(t *testing.T) {
	report, err := newTestService().Run(context.Background(), Request{
		Countries: []string{"DE"},
		StartDate: "2026-07-01",
		EndDate:   "2026-07-07",
		Profile:   "light",
		TopUp:     &usage.TopUp{DataMB: decimal.NewFromInt(7000)},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.TopUp == nil {
		t.Fatal("top-up section missing")
	}
	if report.Usage.Kind != types.ProfileCustom || !report.Usage.DailyDataMB.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("topped-up profile = %+v, want 1200 MB/day custom", report.Usage)
	}
	if !report.TopUp.Comparison.After.DataMB.Equal(decimal.NewFromInt(8400)) {
		t.Errorf("after total = %s, want 8400", report.TopUp.Comparison.After.DataMB)
	}

	before, _ := report.TopUp.Before.Best()
	after, _ := report.Result.Best()
	if before.TotalCost.GreaterThan(after.TotalCost) {
		t.Errorf("extra usage cannot make the best option cheaper: %s -> %s", before.TotalCost, after.TotalCost)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestService().Run(ctx, Request{}); !errors.IsType(err, errors.TypeInternal) {
		t.Errorf("Run(cancelled) = %v, want INTERNAL_ERROR", err)
	}
}
