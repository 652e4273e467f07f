// Package engine provides the cost simulation engine.
// CLI and HTTP surfaces are thin wrappers around Evaluate.
package engine

import (
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"roaming-cost/core/types"
)

// Engine prices roaming options for a trip.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	config Config
	logger *zap.Logger
}

// Config configures the simulation engine
type Config struct {
	// LongTripDays is the duration above which a long-trip alert is raised
	LongTripDays int

	// HeavyDailyDataMB is the daily data above which a heavy-usage alert is raised
	HeavyDailyDataMB decimal.Decimal

	// RecommendationCount is how many leading estimates are recommendations
	RecommendationCount int

	// FallbackRate prices overage when no covered country has a metered rate
	FallbackRate types.MeteredRate

	// Shares splits a bundle's base cost for display
	Shares BreakdownShares

	// Currency is only used to label amounts inside warning text
	Currency types.Currency
}

// BreakdownShares is a fixed allocation of a bundle's base cost across
// data, voice and SMS. It is cosmetic and does not follow the usage mix.
type BreakdownShares struct {
	Data  decimal.Decimal
	Voice decimal.Decimal
	SMS   decimal.Decimal
}

// DefaultBreakdownShares attributes 70% of a bundle price to data, 20% to
// voice and 10% to SMS.
var DefaultBreakdownShares = BreakdownShares{
	Data:  decimal.RequireFromString("0.70"),
	Voice: decimal.RequireFromString("0.20"),
	SMS:   decimal.RequireFromString("0.10"),
}

// DefaultFallbackRate is used for overage when none of the covered
// countries has a metered rate.
var DefaultFallbackRate = types.MeteredRate{
	DataPerMB:   decimal.RequireFromString("0.20"),
	VoicePerMin: decimal.RequireFromString("3.0"),
	SMSPerUnit:  decimal.RequireFromString("1.0"),
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		LongTripDays:        30,
		HeavyDailyDataMB:    decimal.NewFromInt(1000),
		RecommendationCount: 3,
		FallbackRate:        DefaultFallbackRate,
		Shares:              DefaultBreakdownShares,
	}
}

// New creates an engine. A nil logger disables logging.
func New(config Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.RecommendationCount <= 0 {
		config.RecommendationCount = 3
	}
	return &Engine{config: config, logger: logger}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.config
}

// Evaluate runs a simulation with the default configuration
func Evaluate(trip types.TripPlan, usage types.UsageProfile, bundles []types.BundleOffer, rates []types.MeteredRate) types.SimulationResult {
	return New(DefaultConfig(), nil).Evaluate(trip, usage, bundles, rates)
}

// Evaluate prices every bundle that covers at least one trip country plus
// the metered baseline, and returns them sorted ascending by total cost.
// The cheapest estimate is marked recommended and referenced by BestIndex.
func (e *Engine) Evaluate(trip types.TripPlan, usage types.UsageProfile, bundles []types.BundleOffer, rates []types.MeteredRate) types.SimulationResult {
	result := types.SimulationResult{
		Estimates:           []types.CostEstimate{},
		Alerts:              e.generateAlerts(trip, usage),
		BestIndex:           -1,
		RecommendationCount: e.config.RecommendationCount,
	}

	if len(trip.Countries) == 0 {
		e.logger.Debug("trip has no countries, nothing to price")
		return result
	}

	estimates := make([]types.CostEstimate, 0, len(bundles)+1)
	for _, bundle := range bundles {
		estimate, ok := e.evaluateBundle(trip, usage, bundle, rates)
		if !ok {
			e.logger.Debug("bundle excluded, no trip country covered",
				zap.String("bundle", bundle.ID))
			continue
		}
		estimates = append(estimates, estimate)
	}
	estimates = append(estimates, e.evaluateMetered(trip, usage, rates))

	slices.SortStableFunc(estimates, func(a, b types.CostEstimate) int {
		return a.TotalCost.Cmp(b.TotalCost)
	})

	estimates[0].Recommended = true
	result.Estimates = estimates
	result.BestIndex = 0

	e.logger.Debug("simulation evaluated",
		zap.Int("duration_days", trip.Duration),
		zap.Int("countries", len(trip.Countries)),
		zap.Int("estimates", len(estimates)),
		zap.String("best", estimates[0].Name),
		zap.String("best_total", estimates[0].TotalCost.StringFixed(2)))

	return result
}

// ceilDiv returns ceil(a / b) for a >= 0, b > 0
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
