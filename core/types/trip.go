// Package types - Trip plan types
package types

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the accepted format for trip dates
const DateLayout = "2006-01-02"

// TripPlan describes where and when the subscriber travels
type TripPlan struct {
	// Countries are the destinations, in the order they were chosen
	Countries []Country `json:"countries"`

	// StartDate is the first day of the trip
	StartDate time.Time `json:"start_date"`

	// EndDate is the last day of the trip
	EndDate time.Time `json:"end_date"`

	// Duration is the inclusive number of days
	Duration int `json:"duration"`
}

// NewTripPlan builds a trip and derives its duration from the dates
func NewTripPlan(countries []Country, start, end time.Time) TripPlan {
	return TripPlan{
		Countries: countries,
		StartDate: start,
		EndDate:   end,
		Duration:  TripDuration(start, end),
	}
}

// TripDuration returns the inclusive day count between two dates.
// Either date being zero yields 0.
func TripDuration(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := math.Ceil(diff.Hours() / 24)
	return int(days) + 1
}

// ParseTripDates parses start and end dates in DateLayout
func ParseTripDates(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return s, e, nil
}

// CountryCodes returns the destination codes in trip order
func (t TripPlan) CountryCodes() []string {
	codes := make([]string, len(t.Countries))
	for i, c := range t.Countries {
		codes[i] = c.Code
	}
	return codes
}

// CountryName returns the display name for a destination code, falling
// back to the code itself
func (t TripPlan) CountryName(code string) string {
	for _, c := range t.Countries {
		if c.Code == code {
			return c.Name
		}
	}
	return code
}

// IsMultiCountry reports whether the trip visits more than one country
func (t TripPlan) IsMultiCountry() bool {
	return len(t.Countries) > 1
}
