package workout

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/claude/plansync/internal/models"
)

// durationUnits maps raw platform length units (and their aliases) to
// canonical kinds and units.
var durationUnits = map[string]Duration{
	"second":     {Kind: DurationTime, Unit: UnitSeconds},
	"seconds":    {Kind: DurationTime, Unit: UnitSeconds},
	"minute":     {Kind: DurationTime, Unit: UnitMinutes},
	"minutes":    {Kind: DurationTime, Unit: UnitMinutes},
	"hour":       {Kind: DurationTime, Unit: UnitHours},
	"hours":      {Kind: DurationTime, Unit: UnitHours},
	"meter":      {Kind: DurationDistance, Unit: UnitMeters},
	"meters":     {Kind: DurationDistance, Unit: UnitMeters},
	"kilometer":  {Kind: DurationDistance, Unit: UnitKilometers},
	"kilometers": {Kind: DurationDistance, Unit: UnitKilometers},
	"yard":       {Kind: DurationDistance, Unit: UnitYards},
	"yards":      {Kind: DurationDistance, Unit: UnitYards},
	"mile":       {Kind: DurationDistance, Unit: UnitMiles},
	"miles":      {Kind: DurationDistance, Unit: UnitMiles},
}

// ParseDuration maps a raw unit/value pair to a canonical duration.
// Unrecognized units and non-positive or non-finite values report false,
// which drops the owning step.
func ParseDuration(unit string, value float64) (Duration, bool) {
	key := strings.ToLower(strings.TrimSpace(unit))
	if key == "lapbutton" {
		return Duration{Kind: DurationPressLap}, true
	}
	d, ok := durationUnits[key]
	if !ok {
		return Duration{}, false
	}
	if !isFinite(value) || value <= 0 {
		return Duration{}, false
	}
	d.Value = value
	return d, true
}

// PrimaryTarget builds a step's primary intensity target from the raw targets
// array and the workout's declared intensity metric. The first object-shaped
// entry wins; min falls back to the scalar value field, max falls back to
// min. Reports false when no usable numbers are present.
func PrimaryTarget(targets []json.RawMessage, intensityMetric string) (Target, bool) {
	var obj map[string]any
	for _, raw := range targets {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err == nil && m != nil {
			obj = m
			break
		}
	}
	if obj == nil {
		return Target{}, false
	}

	min, minOK := numberField(obj, "minValue")
	if !minOK {
		min, minOK = numberField(obj, "value")
	}
	max, maxOK := numberField(obj, "maxValue")
	if !maxOK {
		max, maxOK = min, minOK
	}
	if !minOK && !maxOK {
		return Target{}, false
	}
	if !minOK {
		min = max
	}
	if !isFinite(min) || !isFinite(max) || min > max {
		return Target{}, false
	}

	kind, suffix := kindForMetric(intensityMetric)
	t := Target{Kind: kind, Min: min, Max: max}
	if kind == TargetFreeText {
		t.Text = rangeText(min, max) + suffix
	}
	return t, true
}

// kindForMetric selects the primary target kind from the workout's declared
// intensity metric. Unknown percent-style metrics become free text with a
// "%" suffix; anything else becomes unsuffixed free text.
func kindForMetric(metric string) (TargetKind, string) {
	switch metric {
	case "percentOfFtp":
		return TargetPowerPercentFTP, ""
	case "percentOfThresholdPace":
		return TargetPacePercentThreshold, ""
	case "percentOfThresholdHr", "percentOfThresholdHeartRate":
		return TargetHRPercentLTHR, ""
	}
	if strings.HasPrefix(strings.ToLower(metric), "percent") {
		return TargetFreeText, "%"
	}
	return TargetFreeText, ""
}

func rangeText(min, max float64) string {
	if min == max {
		return FormatValue(min)
	}
	return FormatValue(min) + "-" + FormatValue(max)
}

// CadenceTarget scans a raw step for a secondary cadence target. Detection is
// heuristic across platform export versions, so every fallback lives here, in
// order:
//
//  1. a nested cadence-shaped object on the step,
//  2. flat rpm aliases (cadenceRpm, cadenceTargetRpm, targetCadenceRpm),
//  3. any secondary-targets entry whose type/metric/unit/name mentions
//     cadence or rpm, or whose keys include rpm/minRpm/maxRpm/cadenceRpm.
//
// The first rule that matches wins. Values round to whole rpm and are
// ordered min <= max.
func CadenceTarget(step *models.StructureNode) (Target, bool) {
	if len(step.CadenceTarget) > 0 {
		var m map[string]any
		if err := json.Unmarshal(step.CadenceTarget, &m); err == nil {
			if t, ok := cadenceFromObject(m); ok {
				return t, true
			}
		}
	}

	for _, p := range []*float64{step.CadenceRPM, step.CadenceTargetRPM, step.TargetCadenceRPM} {
		if p != nil && isFinite(*p) && *p > 0 {
			return cadence(*p, *p), true
		}
	}

	for _, raw := range step.SecondaryTargets {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil || m == nil {
			continue
		}
		if !mentionsCadence(m) {
			continue
		}
		if t, ok := cadenceFromObject(m); ok {
			return t, true
		}
	}

	return Target{}, false
}

// mentionsCadence reports whether an object's descriptive text fields contain
// "cadence"/"rpm" or whether it carries rpm-style keys.
func mentionsCadence(m map[string]any) bool {
	for _, key := range []string{"type", "metric", "unit", "name"} {
		if s, ok := m[key].(string); ok {
			ls := strings.ToLower(s)
			if strings.Contains(ls, "cadence") || strings.Contains(ls, "rpm") {
				return true
			}
		}
	}
	for _, key := range []string{"rpm", "minRpm", "maxRpm", "cadenceRpm"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// cadenceFromObject extracts a cadence min/max pair from an object using the
// known key spellings, preferring explicit ranges over scalars.
func cadenceFromObject(m map[string]any) (Target, bool) {
	min, minOK := numberField(m, "minRpm")
	if !minOK {
		min, minOK = numberField(m, "minValue")
	}
	max, maxOK := numberField(m, "maxRpm")
	if !maxOK {
		max, maxOK = numberField(m, "maxValue")
	}
	if !minOK && !maxOK {
		for _, key := range []string{"rpm", "cadenceRpm", "value"} {
			if v, ok := numberField(m, key); ok {
				min, max = v, v
				minOK, maxOK = true, true
				break
			}
		}
	}
	if !minOK && !maxOK {
		return Target{}, false
	}
	if !minOK {
		min = max
	}
	if !maxOK {
		max = min
	}
	if !isFinite(min) || !isFinite(max) || min <= 0 || max <= 0 {
		return Target{}, false
	}
	return cadence(min, max), true
}

func cadence(min, max float64) Target {
	min = math.Round(min)
	max = math.Round(max)
	if min > max {
		min, max = max, min
	}
	return Target{Kind: TargetCadenceRPM, Min: min, Max: max}
}

func numberField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}
