package usage

import (
	"testing"

	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		kind  types.ProfileKind
		data  int64
		voice int64
		sms   int64
	}{
		{types.ProfileLight, 200, 10, 5},
		{types.ProfileMedium, 500, 20, 10},
		{types.ProfileHeavy, 1000, 40, 15},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p, ok := Preset(tt.kind)
			if !ok {
				t.Fatalf("preset %s missing", tt.kind)
			}
			if !p.DailyDataMB.Equal(decimal.NewFromInt(tt.data)) ||
				!p.DailyVoiceMin.Equal(decimal.NewFromInt(tt.voice)) ||
				!p.DailySMS.Equal(decimal.NewFromInt(tt.sms)) {
				t.Errorf("preset %s = %+v", tt.kind, p)
			}
			if !IsPreset(p) {
				t.Errorf("IsPreset(%s) = false", tt.kind)
			}
		})
	}

	if _, ok := Preset(types.ProfileCustom); ok {
		t.Error("custom must not be a preset")
	}
	if len(Presets()) != 3 {
		t.Errorf("Presets() = %d entries, want 3", len(Presets()))
	}
}

func TestEditsForceCustom(t *testing.T) {
	light, _ := Preset(types.ProfileLight)

	edits := map[string]types.UsageProfile{
		"data":  WithDailyData(light, decimal.NewFromInt(300)),
		"voice": WithDailyVoice(light, decimal.NewFromInt(15)),
		"sms":   WithDailySMS(light, decimal.NewFromInt(7)),
	}
	for name, p := range edits {
		if p.Kind != types.ProfileCustom {
			t.Errorf("%s edit kind = %s, want custom", name, p.Kind)
		}
		if IsPreset(p) {
			t.Errorf("%s edit still reported as preset", name)
		}
	}

	if again, _ := Preset(types.ProfileLight); !again.DailyDataMB.Equal(decimal.NewFromInt(200)) {
		t.Error("editing a copy must not change the preset")
	}

	// same values as a preset but tagged custom is not the preset
	same := WithDailyData(light, decimal.NewFromInt(200))
	if IsPreset(same) {
		t.Error("custom-tagged profile must not match a preset")
	}
}

func TestApplyTopUp(t *testing.T) {
	medium, _ := Preset(types.ProfileMedium)
	topUp := TopUp{
		DataMB:   decimal.NewFromInt(700),
		VoiceMin: decimal.NewFromInt(70),
		SMS:      decimal.NewFromInt(7),
	}

	got := ApplyTopUp(medium, topUp, 7)

	if got.Kind != types.ProfileCustom {
		t.Errorf("kind = %s, want custom", got.Kind)
	}
	if !got.DailyDataMB.Equal(decimal.NewFromInt(600)) {
		t.Errorf("daily data = %s, want 600", got.DailyDataMB)
	}
	if !got.DailyVoiceMin.Equal(decimal.NewFromInt(30)) {
		t.Errorf("daily voice = %s, want 30", got.DailyVoiceMin)
	}
	if !got.DailySMS.Equal(decimal.NewFromInt(11)) {
		t.Errorf("daily sms = %s, want 11", got.DailySMS)
	}

	cmp := Compare(medium, got, 7)
	if !cmp.Before.DataMB.Equal(decimal.NewFromInt(3500)) || !cmp.After.DataMB.Equal(decimal.NewFromInt(4200)) {
		t.Errorf("comparison data = %s -> %s, want 3500 -> 4200", cmp.Before.DataMB, cmp.After.DataMB)
	}
}

func TestApplyTopUpZeroDuration(t *testing.T) {
	light, _ := Preset(types.ProfileLight)
	got := ApplyTopUp(light, TopUp{DataMB: decimal.NewFromInt(500)}, 0)

	if got.Kind != types.ProfileCustom {
		t.Errorf("kind = %s, want custom", got.Kind)
	}
	if !got.DailyDataMB.Equal(light.DailyDataMB) {
		t.Errorf("daily data changed to %s with zero duration", got.DailyDataMB)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Heavy "); err != nil || k != types.ProfileHeavy {
		t.Errorf("ParseKind(Heavy) = %s, %v", k, err)
	}
	if _, err := ParseKind("extreme"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
