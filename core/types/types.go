// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Region is a display region used to group countries (e.g. "Europe")
type Region string

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// Country is a destination a subscriber can travel to
type Country struct {
	// Code is the ISO 3166-1 alpha-2 code (e.g. "DE")
	Code string `json:"code"`

	// Name is the display name
	Name string `json:"name"`

	// Region groups countries for display and for regional bundles
	Region Region `json:"region"`

	// Flag is an optional emoji flag
	Flag string `json:"flag,omitempty"`
}

// Subscriber is a mobile line the simulation is run for.
// Reference data only; the engine never reads it.
type Subscriber struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CurrentPlan string `json:"current_plan"`
}
