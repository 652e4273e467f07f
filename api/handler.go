// Package api - HTTP handlers
// Handlers decode, delegate to the simulation service and encode.
package api

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"roaming-cost/core/catalog"
	"roaming-cost/core/output"
	"roaming-cost/core/types"
	"roaming-cost/internal/errors"
)

// handleSimulate handles POST /simulate
func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	var req SimulateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.collector.ObserveFailure()
		s.writeError(ctx, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	// RequestCtx is the request's context.Context
	report, err := s.service.Run(ctx, req)
	if err != nil {
		s.collector.ObserveFailure()
		s.logger.Debug("simulation rejected",
			append(errors.Fields(err), zap.String("request_id", requestID(ctx)))...)
		s.writeError(ctx, err)
		return
	}
	s.collector.ObserveSimulation(&report.Result, time.Since(start))

	report.Metadata.RequestID = requestID(ctx)
	s.writeJSON(ctx, output.NewDocument(report), fasthttp.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, fasthttp.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, VersionResponse{
		Version:    s.version,
		Engine:     "roaming-cost",
		APIVersion: "v1",
		Currency:   string(s.service.Currency()),
	}, fasthttp.StatusOK)
}

// handleCountries handles GET /catalog/countries[?region=Europe]
func (s *Server) handleCountries(ctx *fasthttp.RequestCtx) {
	groups := s.service.Catalog().CountriesByRegion()

	if region := strings.TrimSpace(string(ctx.QueryArgs().Peek("region"))); region != "" {
		var filtered []catalog.RegionGroup
		for _, g := range groups {
			if strings.EqualFold(string(g.Region), region) {
				filtered = append(filtered, g)
			}
		}
		if len(filtered) == 0 {
			s.writeError(ctx, errors.NotFound("region", region))
			return
		}
		groups = filtered
	}

	count := 0
	for _, g := range groups {
		count += len(g.Countries)
	}
	s.writeJSON(ctx, CountriesResponse{Regions: groups, Count: count}, fasthttp.StatusOK)
}

// handleBundles handles GET /catalog/bundles[?country=DE,US]
func (s *Server) handleBundles(ctx *fasthttp.RequestCtx) {
	c := s.service.Catalog()
	bundles := c.Bundles

	if raw := strings.TrimSpace(string(ctx.QueryArgs().Peek("country"))); raw != "" {
		countries, err := c.ResolveCountries(strings.Split(raw, ","))
		if err != nil {
			s.writeError(ctx, err)
			return
		}
		codes := make([]string, len(countries))
		for i, country := range countries {
			codes[i] = country.Code
		}
		bundles = c.BundlesFor(codes)
	}
	if bundles == nil {
		bundles = []types.BundleOffer{}
	}

	s.writeJSON(ctx, BundlesResponse{Bundles: bundles, Count: len(bundles)}, fasthttp.StatusOK)
}

// handleRates handles GET /catalog/rates
func (s *Server) handleRates(ctx *fasthttp.RequestCtx) {
	rates := s.service.Catalog().Rates
	s.writeJSON(ctx, RatesResponse{Rates: rates, Count: len(rates)}, fasthttp.StatusOK)
}

// handlePresets handles GET /catalog/presets
func (s *Server) handlePresets(ctx *fasthttp.RequestCtx) {
	presets := s.service.Catalog().Presets
	s.writeJSON(ctx, PresetsResponse{Presets: presets, Count: len(presets)}, fasthttp.StatusOK)
}

// handleSubscribers handles GET /catalog/subscribers
func (s *Server) handleSubscribers(ctx *fasthttp.RequestCtx) {
	subscribers := s.service.Catalog().Subscribers
	s.writeJSON(ctx, SubscribersResponse{Subscribers: subscribers, Count: len(subscribers)}, fasthttp.StatusOK)
}
