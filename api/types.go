// Package api - Request and response types
package api

import (
	"roaming-cost/core/catalog"
	"roaming-cost/core/output"
	"roaming-cost/core/simulation"
	"roaming-cost/core/types"
)

// SimulateRequest is the body of POST /simulate
type SimulateRequest = simulation.Request

// SimulateResponse is the body returned by POST /simulate
type SimulateResponse = output.Document

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes an API error
type ErrorBody struct {
	// Code is the error type, e.g. INPUT_ERROR
	Code string `json:"code"`

	// Message is a human-readable description
	Message string `json:"message"`

	// RequestID correlates the error with server logs
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
	Currency   string `json:"currency"`
}

// CountriesResponse is the body of GET /catalog/countries
type CountriesResponse struct {
	Regions []catalog.RegionGroup `json:"regions"`
	Count   int                   `json:"count"`
}

// BundlesResponse is the body of GET /catalog/bundles
type BundlesResponse struct {
	Bundles []types.BundleOffer `json:"bundles"`
	Count   int                 `json:"count"`
}

// RatesResponse is the body of GET /catalog/rates
type RatesResponse struct {
	Rates []types.MeteredRate `json:"rates"`
	Count int                 `json:"count"`
}

// PresetsResponse is the body of GET /catalog/presets
type PresetsResponse struct {
	Presets []types.UsageProfile `json:"presets"`
	Count   int                  `json:"count"`
}

// SubscribersResponse is the body of GET /catalog/subscribers
type SubscribersResponse struct {
	Subscribers []types.Subscriber `json:"subscribers"`
	Count       int                `json:"count"`
}
