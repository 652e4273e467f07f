package simulation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"roaming-cost/core/catalog"
	"roaming-cost/core/determinism"
	"roaming-cost/core/engine"
	"roaming-cost/core/output"
	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

// DefaultProfile is used when a request names no profile
const DefaultProfile = types.ProfileMedium

// Service runs simulation requests against one catalog
type Service struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
	ids     *determinism.IDGenerator
	version string
	logger  *zap.Logger

	// now is replaced in tests
	now func() time.Time
}

// NewService creates a service. A nil logger disables logging.
func NewService(c *catalog.Catalog, e *engine.Engine, version string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog: c,
		engine:  e,
		ids:     determinism.NewIDGenerator("roaming-simulation"),
		version: version,
		logger:  logger,
		now:     time.Now,
	}
}

// Catalog returns the catalog the service simulates against
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Currency returns the currency amounts are labelled with
func (s *Service) Currency() types.Currency {
	return s.engine.Config().Currency
}

// Run validates the request, resolves catalog references and evaluates the
// trip. With a non-zero top-up the trip is evaluated twice, before and
// after the extra usage is applied.
func (s *Service) Run(ctx context.Context, req Request) (*output.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "simulation cancelled", err)
	}
	start := s.now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := &output.Report{Currency: s.Currency()}

	if req.SubscriberID != "" {
		sub, ok := s.catalog.Subscriber(req.SubscriberID)
		if !ok {
			return nil, errors.NotFound("subscriber", req.SubscriberID)
		}
		report.Subscriber = &sub
	}

	var countries []types.Country
	if len(req.Countries) > 0 {
		var err error
		if countries, err = s.catalog.ResolveCountries(req.Countries); err != nil {
			return nil, err
		}
	}
	startDate, endDate, err := types.ParseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid trip dates", err)
	}
	report.Trip = types.NewTripPlan(countries, startDate, endDate)

	profile, err := s.profile(req)
	if err != nil {
		return nil, err
	}

	bundles := s.catalog.Bundles
	rates := s.catalog.Rates

	if req.TopUp != nil && !req.TopUp.IsZero() {
		before := s.engine.Evaluate(report.Trip, profile, bundles, rates)
		topped := usage.ApplyTopUp(profile, *req.TopUp, report.Trip.Duration)
		report.TopUp = &output.TopUpSection{
			TopUp:      *req.TopUp,
			Comparison: usage.Compare(profile, topped, report.Trip.Duration),
			Before:     before,
		}
		profile = topped
	}

	report.Usage = profile
	report.Result = s.engine.Evaluate(report.Trip, profile, bundles, rates)

	hash, err := determinism.HashValue(req)
	if err != nil {
		return nil, errors.Internal("failed to hash request", err)
	}
	finished := s.now()
	report.Metadata = output.Metadata{
		SimulationID: string(s.ids.Generate(hash.Hex())),
		InputHash:    hash.Hex(),
		GeneratedAt:  finished.UTC().Format(time.RFC3339),
		DurationMS:   float64(finished.Sub(start).Microseconds()) / 1000,
		Version:      s.version,
	}

	s.logger.Debug("simulation finished",
		zap.String("simulation_id", report.Metadata.SimulationID),
		zap.Strings("countries", report.Trip.CountryCodes()),
		zap.Int("duration_days", report.Trip.Duration),
		zap.String("profile", profile.Kind.String()),
		zap.Int("estimates", len(report.Result.Estimates)),
		zap.Bool("top_up", report.TopUp != nil))

	return report, nil
}

// profile builds the daily usage profile for a validated request. A
// custom profile starts from the default preset and takes the overrides.
func (s *Service) profile(req Request) (types.UsageProfile, error) {
	kind := DefaultProfile
	if req.Profile != "" {
		parsed, err := usage.ParseKind(req.Profile)
		if err != nil {
			return types.UsageProfile{}, errors.Wrap(errors.TypeInput, "invalid profile", err)
		}
		kind = parsed
	}

	base := kind
	if base == types.ProfileCustom {
		base = DefaultProfile
	}
	profile, ok := s.catalog.Preset(base)
	if !ok {
		return types.UsageProfile{}, errors.NotFound("usage profile", string(base))
	}
	if kind == types.ProfileCustom {
		profile.Kind = types.ProfileCustom
	}

	if o := req.Usage; !o.IsEmpty() {
		if o.DailyDataMB != nil {
			profile = usage.WithDailyData(profile, *o.DailyDataMB)
		}
		if o.DailyVoiceMin != nil {
			profile = usage.WithDailyVoice(profile, *o.DailyVoiceMin)
		}
		if o.DailySMS != nil {
			profile = usage.WithDailySMS(profile, *o.DailySMS)
		}
	}
	return profile, nil
}
