// Package workout defines the canonical, destination-agnostic representation
// of interval-workout steps: durations, intensity classes, and targets. Both
// destination builders consume these types instead of the raw platform JSON.
package workout

import (
	"math"
	"strconv"
	"strings"
)

// DurationKind discriminates the canonical duration variants.
type DurationKind string

const (
	DurationTime     DurationKind = "time"
	DurationDistance DurationKind = "distance"
	DurationPressLap DurationKind = "press_lap"
)

// Unit is a canonical duration unit.
type Unit string

const (
	UnitSeconds    Unit = "seconds"
	UnitMinutes    Unit = "minutes"
	UnitHours      Unit = "hours"
	UnitMeters     Unit = "meters"
	UnitKilometers Unit = "kilometers"
	UnitYards      Unit = "yards"
	UnitMiles      Unit = "miles"
)

// Duration is a tagged duration variant. Value and Unit are unused for
// press-lap durations.
type Duration struct {
	Kind  DurationKind
	Value float64
	Unit  Unit
}

// Seconds converts a time duration to seconds. Distance and press-lap
// durations report zero.
func (d Duration) Seconds() float64 {
	if d.Kind != DurationTime {
		return 0
	}
	switch d.Unit {
	case UnitMinutes:
		return d.Value * 60
	case UnitHours:
		return d.Value * 3600
	default:
		return d.Value
	}
}

// IntensityClass is the reduced intensity enumeration.
type IntensityClass string

const (
	IntensityWarmup   IntensityClass = "warmup"
	IntensityActive   IntensityClass = "active"
	IntensityRest     IntensityClass = "rest"
	IntensityCooldown IntensityClass = "cooldown"
)

// ClassifyIntensity reduces a raw platform intensity class to the canonical
// enumeration. Anything unrecognized counts as active.
func ClassifyIntensity(raw string) IntensityClass {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "warmup", "warm up":
		return IntensityWarmup
	case "cooldown", "cool down":
		return IntensityCooldown
	case "rest", "recovery":
		return IntensityRest
	default:
		return IntensityActive
	}
}

// TargetKind discriminates the canonical target variants.
type TargetKind string

const (
	TargetPowerPercentFTP      TargetKind = "power_percent_ftp"
	TargetPowerWatts           TargetKind = "power_watts"
	TargetHRPercentMax         TargetKind = "hr_percent_max"
	TargetHRPercentLTHR        TargetKind = "hr_percent_lthr"
	TargetPacePercentThreshold TargetKind = "pace_percent_threshold"
	TargetPaceAbsolute         TargetKind = "pace_absolute"
	TargetZone                 TargetKind = "zone"
	TargetCadenceRPM           TargetKind = "cadence_rpm"
	TargetFreeText             TargetKind = "free_text"
)

// Target is a tagged target variant. Numeric kinds carry Min/Max (equal for
// scalars); zone targets carry Zone and ZoneMetric; free-text targets carry
// Text; absolute-pace targets additionally carry the denominator unit.
//
// Min <= Max holds for every numeric kind except absolute pace, where a
// faster pace is the smaller number.
type Target struct {
	Kind            TargetKind
	Min             float64
	Max             float64
	Text            string
	Zone            string
	ZoneMetric      string // "hr", "pace", or "" for power
	DenominatorUnit string // absolute pace: "km", "mi", ...
}

// FormatValue renders a float with no trailing zeros ("50", "7.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
