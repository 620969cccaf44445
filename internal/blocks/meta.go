package blocks

// Workout type tiers, highest intensity first.
const (
	TypeAnaerobic = "anaerobic"
	TypeThreshold = "threshold"
	TypeTempo     = "tempo"
	TypeEndurance = "endurance"
	TypeRecovery  = "recovery"
)

// Intensity labels matching the type tiers.
const (
	IntensityVeryHard = "very_hard"
	IntensityHard     = "hard"
	IntensityModerate = "moderate"
	IntensityEasy     = "easy"
	IntensityVeryEasy = "very_easy"
)

// Training phase tags.
const (
	PhaseBase     = "Base"
	PhaseBuild    = "Build"
	PhasePeak     = "Peak"
	PhaseRecovery = "Recovery"
)

// Meta is the workout-level metadata inferred from the intensity factor.
type Meta struct {
	Type      string
	Intensity string
	Phases    []string
}

// InferMeta maps a planned intensity factor to workout metadata using fixed
// breakpoints, highest tier first.
func InferMeta(intensityFactor float64) Meta {
	switch {
	case intensityFactor >= 1.05:
		return Meta{TypeAnaerobic, IntensityVeryHard, []string{PhaseBuild, PhasePeak}}
	case intensityFactor >= 0.95:
		return Meta{TypeThreshold, IntensityHard, []string{PhaseBuild, PhasePeak}}
	case intensityFactor >= 0.85:
		return Meta{TypeTempo, IntensityModerate, []string{PhaseBase, PhaseBuild}}
	case intensityFactor >= 0.70:
		return Meta{TypeEndurance, IntensityEasy, nil}
	default:
		return Meta{TypeRecovery, IntensityVeryEasy, []string{PhaseRecovery}}
	}
}

// Overrides are explicitly supplied metadata values. A non-zero field
// replaces the inferred value unconditionally.
type Overrides struct {
	Type      string
	Intensity string
	Phases    []string
}

// Apply merges overrides into inferred metadata.
func (m Meta) Apply(o Overrides) Meta {
	if o.Type != "" {
		m.Type = o.Type
	}
	if o.Intensity != "" {
		m.Intensity = o.Intensity
	}
	if o.Phases != nil {
		m.Phases = o.Phases
	}
	return m
}
