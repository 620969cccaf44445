package models

import "encoding/json"

// Workout is one workout record from the source platform's calendar API.
// Planned metrics are pointers because the platform omits them for rest days
// and unstructured sessions.
type Workout struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	CoachComments string `json:"coachComments"`
	WorkoutDay    string `json:"workoutDay"` // "2026-03-02"
	SportType     string `json:"sportType"`

	TotalTimePlanned *float64 `json:"totalTimePlanned"` // hours
	TSSPlanned       *float64 `json:"tssPlanned"`
	IFPlanned        *float64 `json:"ifPlanned"`
	DistancePlanned  *float64 `json:"distancePlanned"` // meters

	// Optional destination metadata overrides. When present they replace the
	// values inferred from the planned intensity factor.
	TypeOverride      string   `json:"type,omitempty"`
	IntensityOverride string   `json:"intensity,omitempty"`
	PhaseOverrides    []string `json:"phases,omitempty"`

	Structure *Structure `json:"structure"`
}

// Structure is the platform's interval-structure envelope. The node list is
// nested under a second "structure" key in the API response.
type Structure struct {
	PrimaryIntensityMetric string          `json:"primaryIntensityMetric"`
	PrimaryLengthMetric    string          `json:"primaryLengthMetric"`
	Nodes                  []StructureNode `json:"structure"`
}

// StructureNode is either a leaf step or a container. Containers carry a
// Type of "step" or "repetition" and a non-empty Steps list; leaves carry
// the step fields. A repetition container's length value is the repeat count.
type StructureNode struct {
	Type   string          `json:"type"`
	Length *Length         `json:"length"`
	Steps  []StructureNode `json:"steps"`

	// Leaf step fields.
	Name           string `json:"name"`
	IntensityClass string `json:"intensityClass"`
	OpenDuration   bool   `json:"openDuration"`
	TargetMode     string `json:"targetMode"` // "ramp" for ramped steps

	// Targets are kept raw: entries are heterogeneous and the cadence
	// detection rules sniff arbitrary keys.
	Targets          []json.RawMessage `json:"targets"`
	SecondaryTargets []json.RawMessage `json:"secondaryTargets"`
	CadenceTarget    json.RawMessage   `json:"cadenceTarget"`

	// Flat cadence aliases seen across platform export versions.
	CadenceRPM       *float64 `json:"cadenceRpm"`
	CadenceTargetRPM *float64 `json:"cadenceTargetRpm"`
	TargetCadenceRPM *float64 `json:"targetCadenceRpm"`

	// Transient offsets into the workout timeline. Dropped by both converters.
	Begin *float64 `json:"begin"`
	End   *float64 `json:"end"`
}

// Length is a raw unit/value pair.
type Length struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// IsContainer reports whether the node holds child steps.
func (n *StructureNode) IsContainer() bool { return len(n.Steps) > 0 }

// IsRepetition reports whether the node is a repeat container.
func (n *StructureNode) IsRepetition() bool { return n.Type == "repetition" }
