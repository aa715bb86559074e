package automation

import (
	"reflect"
	"testing"
	"time"

	"jobmatch-backend/internal/roles"
)

var patchNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func baseConfig() Config {
	return DefaultConfig("user-1", "", "", patchNow.Add(-time.Hour))
}

func TestApplyPatchClampsDailyLimit(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "above ceiling", value: float64(500), want: 100},
		{name: "below floor", value: float64(0), want: 1},
		{name: "negative", value: float64(-3), want: 1},
		{name: "in range", value: float64(25), want: 25},
		{name: "wrong shape keeps base", value: "lots", want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPatch(baseConfig(), map[string]any{"dailyLimit": tt.value}, patchNow)
			if got.DailyLimit != tt.want {
				t.Errorf("DailyLimit = %d, want %d", got.DailyLimit, tt.want)
			}
		})
	}
}

func TestApplyPatchClampsMinMatchScore(t *testing.T) {
	got := ApplyPatch(baseConfig(), map[string]any{"minMatchScore": float64(20)}, patchNow)
	if got.MinMatchScore != 40 {
		t.Errorf("MinMatchScore = %d, want 40", got.MinMatchScore)
	}
	got = ApplyPatch(baseConfig(), map[string]any{"minMatchScore": float64(150)}, patchNow)
	if got.MinMatchScore != 100 {
		t.Errorf("MinMatchScore = %d, want 100", got.MinMatchScore)
	}
}

func TestApplyPatchNeverEmptiesWorkModes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "empty list falls back to all", value: []any{}, want: roles.AllWorkModes()},
		{name: "all-unknown entries fall back to all", value: []any{"telepathic"}, want: roles.AllWorkModes()},
		{name: "valid subset kept and deduped", value: []any{"Remote", "remote", "hybrid"}, want: []string{"remote", "hybrid"}},
		{name: "mixed types keep base", value: []any{"remote", 7}, want: roles.AllWorkModes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPatch(baseConfig(), map[string]any{"workModes": tt.value}, patchNow)
			if !reflect.DeepEqual(got.WorkModes, tt.want) {
				t.Errorf("WorkModes = %v, want %v", got.WorkModes, tt.want)
			}
			if len(got.WorkModes) == 0 {
				t.Error("WorkModes must never be empty")
			}
		})
	}
}

func TestApplyPatchInvalidModeKept(t *testing.T) {
	got := ApplyPatch(baseConfig(), map[string]any{"applyMode": "yolo"}, patchNow)
	if got.ApplyMode != ModePreview {
		t.Errorf("ApplyMode = %s, want %s", got.ApplyMode, ModePreview)
	}
	got = ApplyPatch(baseConfig(), map[string]any{"applyMode": "Auto"}, patchNow)
	if got.ApplyMode != ModeAuto {
		t.Errorf("ApplyMode = %s, want %s", got.ApplyMode, ModeAuto)
	}
}

func TestApplyPatchStampsUpdatedAt(t *testing.T) {
	got := ApplyPatch(baseConfig(), map[string]any{}, patchNow)
	if !got.UpdatedAt.Equal(patchNow) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, patchNow)
	}
}

func TestApplyPatchExcludedKeywordsNormalized(t *testing.T) {
	got := ApplyPatch(baseConfig(), map[string]any{
		"excludedKeywords": []any{" Sales ", "sales", "COLD-CALLING"},
	}, patchNow)
	want := []string{"sales", "cold-calling"}
	if !reflect.DeepEqual(got.ExcludedKeywords, want) {
		t.Errorf("ExcludedKeywords = %v, want %v", got.ExcludedKeywords, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("user-1", "remote", "Drone Pilot", patchNow)
	if cfg.ApplyMode != ModePreview || cfg.DailyLimit != 12 || cfg.MinMatchScore != 70 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.WorkModes, []string{"remote"}) {
		t.Errorf("WorkModes = %v, want profile hint", cfg.WorkModes)
	}
	if !reflect.DeepEqual(cfg.TitleTargets, []string{"Drone Pilot"}) {
		t.Errorf("TitleTargets = %v", cfg.TitleTargets)
	}
	if cfg.OnboardingCompleted {
		t.Error("OnboardingCompleted should default to false")
	}

	cfg = DefaultConfig("user-1", "spaceship", "", patchNow)
	if !reflect.DeepEqual(cfg.WorkModes, roles.AllWorkModes()) {
		t.Errorf("unknown hint should fall back to all modes, got %v", cfg.WorkModes)
	}
	if !reflect.DeepEqual(cfg.Domains, roles.AllDomains()) {
		t.Errorf("Domains = %v, want all", cfg.Domains)
	}
	if len(cfg.TitleTargets) != 0 {
		t.Errorf("TitleTargets = %v, want empty", cfg.TitleTargets)
	}
}
