// Package blocks builds the second destination's nested workout-structure
// JSON: a non-flattening copy of the source tree with explicitly typed
// targets, plus workout-level metadata inferred from the planned intensity
// factor.
package blocks

// Workout is the destination workout document.
type Workout struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Intensity   string   `json:"intensity"`
	Phases      []string `json:"suitablePhases"`
	DurationMin float64  `json:"durationMinutes"`
	Load        float64  `json:"load,omitempty"`
	Steps       []Node   `json:"steps,omitempty"`
}

// Node mirrors the source container/step nesting. Containers keep their
// exact type ("step" or "repetition") and child list; the source tree's
// transient begin/end offsets are never copied.
type Node struct {
	Type           string   `json:"type,omitempty"`
	Length         *Length  `json:"length,omitempty"`
	Steps          []Node   `json:"steps,omitempty"`
	Name           string   `json:"name,omitempty"`
	IntensityClass string   `json:"intensityClass,omitempty"`
	OpenDuration   bool     `json:"openDuration,omitempty"`
	Targets        []Target `json:"targets,omitempty"`
}

// Length is a unit/value pair. For repetition containers the value is the
// repeat count.
type Length struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// Target always carries an explicit type and unit in the destination format.
type Target struct {
	Type     string   `json:"type"`
	Unit     string   `json:"unit,omitempty"`
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`
}
