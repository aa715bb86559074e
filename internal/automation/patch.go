package automation

import (
	"math"
	"strings"
	"time"

	"jobmatch-backend/internal/roles"
)

// ApplyPatch merges an untrusted partial payload into base. Each field
// is taken only when it has the right shape and passes its constraint;
// anything else silently keeps the base value, so a malformed payload
// always degrades to a valid config. UpdatedAt is stamped with now.
func ApplyPatch(base Config, raw map[string]any, now time.Time) Config {
	out := base

	if mode, ok := stringField(raw, "applyMode"); ok {
		if mode == ModePreview || mode == ModeAuto {
			out.ApplyMode = mode
		}
	}
	if limit, ok := intField(raw, "dailyLimit"); ok {
		out.DailyLimit = clamp(limit, DailyLimitMin, DailyLimitMax)
	}
	if score, ok := intField(raw, "minMatchScore"); ok {
		out.MinMatchScore = clamp(score, MinMatchScoreFloor, MinMatchScoreCeil)
	}
	if modes, ok := stringListField(raw, "workModes"); ok {
		filtered := filterLower(modes, roles.IsWorkMode)
		if len(filtered) == 0 {
			filtered = roles.AllWorkModes()
		}
		out.WorkModes = filtered
	}
	if domains, ok := stringListField(raw, "domains"); ok {
		filtered := filterLower(domains, roles.IsDomain)
		if len(filtered) == 0 {
			filtered = roles.AllDomains()
		}
		out.Domains = filtered
	}
	if keywords, ok := stringListField(raw, "excludedKeywords"); ok {
		out.ExcludedKeywords = filterLower(keywords, func(string) bool { return true })
	}
	if titles, ok := stringListField(raw, "titleTargets"); ok {
		out.TitleTargets = dedupeTrimmed(titles)
	}
	if done, ok := raw["onboardingCompleted"].(bool); ok {
		out.OnboardingCompleted = done
	}

	out.UpdatedAt = now
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func stringField(raw map[string]any, key string) (string, bool) {
	v, ok := raw[key].(string)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(v)), true
}

// intField accepts JSON numbers (decoded as float64) and ints.
func intField(raw map[string]any, key string) (int, bool) {
	switch v := raw[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func stringListField(raw map[string]any, key string) ([]string, bool) {
	v, present := raw[key]
	if !present {
		return nil, false
	}
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				// Mixed-type lists are malformed; keep the base value.
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func filterLower(values []string, valid func(string) bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || !valid(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dedupeTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
