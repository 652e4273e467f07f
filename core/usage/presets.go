// Package usage provides usage profile presets and edits.
// Any edit to a profile turns it into a custom profile.
package usage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

var presets = map[types.ProfileKind]types.UsageProfile{
	types.ProfileLight:  types.NewUsageProfile(200, 10, 5, types.ProfileLight),
	types.ProfileMedium: types.NewUsageProfile(500, 20, 10, types.ProfileMedium),
	types.ProfileHeavy:  types.NewUsageProfile(1000, 40, 15, types.ProfileHeavy),
}

// PresetKinds lists the preset kinds in display order
var PresetKinds = []types.ProfileKind{
	types.ProfileLight,
	types.ProfileMedium,
	types.ProfileHeavy,
}

// Preset returns a preset profile by kind
func Preset(kind types.ProfileKind) (types.UsageProfile, bool) {
	p, ok := presets[kind]
	return p, ok
}

// Presets returns all preset profiles in display order
func Presets() []types.UsageProfile {
	out := make([]types.UsageProfile, 0, len(PresetKinds))
	for _, k := range PresetKinds {
		out = append(out, presets[k])
	}
	return out
}

// ParseKind parses a profile kind name
func ParseKind(s string) (types.ProfileKind, error) {
	kind := types.ProfileKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown usage profile %q (want light, medium, heavy or custom)", s)
	}
	return kind, nil
}

// IsPreset reports whether a profile is an unmodified preset
func IsPreset(p types.UsageProfile) bool {
	preset, ok := presets[p.Kind]
	if !ok {
		return false
	}
	return p.DailyDataMB.Equal(preset.DailyDataMB) &&
		p.DailyVoiceMin.Equal(preset.DailyVoiceMin) &&
		p.DailySMS.Equal(preset.DailySMS)
}

// Custom builds a custom profile from daily amounts
func Custom(dataMB, voiceMin, sms decimal.Decimal) types.UsageProfile {
	return types.UsageProfile{
		DailyDataMB:   dataMB,
		DailyVoiceMin: voiceMin,
		DailySMS:      sms,
		Kind:          types.ProfileCustom,
	}
}

// WithDailyData returns a custom copy with a new daily data volume
func WithDailyData(p types.UsageProfile, mb decimal.Decimal) types.UsageProfile {
	p.DailyDataMB = mb
	p.Kind = types.ProfileCustom
	return p
}

// WithDailyVoice returns a custom copy with new daily voice minutes
func WithDailyVoice(p types.UsageProfile, minutes decimal.Decimal) types.UsageProfile {
	p.DailyVoiceMin = minutes
	p.Kind = types.ProfileCustom
	return p
}

// WithDailySMS returns a custom copy with a new daily SMS count
func WithDailySMS(p types.UsageProfile, count decimal.Decimal) types.UsageProfile {
	p.DailySMS = count
	p.Kind = types.ProfileCustom
	return p
}
