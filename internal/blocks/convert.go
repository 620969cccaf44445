package blocks

import (
	"encoding/json"
	"math"

	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/workout"
)

// Convert builds the destination workout document from a source record. The
// structure is copied without flattening; metadata comes from the planned
// intensity factor unless the record carries explicit overrides. Duration is
// taken from the platform's planned total time (hours, converted to minutes)
// when present, else summed from the structure tree.
func Convert(w *models.Workout) *Workout {
	var steps []Node
	var metric string
	if w.Structure != nil {
		metric = w.Structure.PrimaryIntensityMetric
		steps = convertNodes(w.Structure.Nodes, metric)
	}

	meta := InferMeta(deref(w.IFPlanned)).Apply(Overrides{
		Type:      w.TypeOverride,
		Intensity: w.IntensityOverride,
		Phases:    w.PhaseOverrides,
	})

	duration := deref(w.TotalTimePlanned) * 60
	if duration <= 0 {
		duration = sumSeconds(steps) / 60
	}

	return &Workout{
		Name:        w.Title,
		Type:        meta.Type,
		Intensity:   meta.Intensity,
		Phases:      meta.Phases,
		DurationMin: duration,
		Load:        deref(w.TSSPlanned),
		Steps:       steps,
	}
}

func convertNodes(nodes []models.StructureNode, metric string) []Node {
	var out []Node
	for i := range nodes {
		if n, ok := convertNode(&nodes[i], metric); ok {
			out = append(out, n)
		}
	}
	return out
}

// convertNode copies one node. Containers that end up with no surviving
// children, and leaf steps without a usable duration, are dropped.
func convertNode(n *models.StructureNode, metric string) (Node, bool) {
	if n.IsContainer() {
		children := convertNodes(n.Steps, metric)
		if len(children) == 0 {
			return Node{}, false
		}
		out := Node{Type: n.Type, Steps: children}
		if out.Type == "" {
			out.Type = "step"
		}
		if n.Length != nil {
			out.Length = &Length{Unit: n.Length.Unit, Value: n.Length.Value}
		}
		return out, true
	}

	if n.Length == nil {
		return Node{}, false
	}
	if _, ok := workout.ParseDuration(n.Length.Unit, n.Length.Value); !ok {
		return Node{}, false
	}

	return Node{
		Type:           "step",
		Name:           n.Name,
		IntensityClass: n.IntensityClass,
		OpenDuration:   n.OpenDuration,
		Length:         &Length{Unit: n.Length.Unit, Value: n.Length.Value},
		Targets:        convertTargets(n.Targets, metric),
	}, true
}

// convertTargets gives every object-shaped raw target an explicit type and
// unit. Power targets default their unit to percent-of-FTP when absent.
func convertTargets(raw []json.RawMessage, metric string) []Target {
	var out []Target
	for _, r := range raw {
		var m map[string]any
		if err := json.Unmarshal(r, &m); err != nil || m == nil {
			continue
		}
		t := Target{}
		if s, ok := m["type"].(string); ok {
			t.Type = s
		} else {
			t.Type = typeForMetric(metric)
		}
		if s, ok := m["unit"].(string); ok {
			t.Unit = s
		} else if t.Type == "power" {
			t.Unit = "percentOfFtp"
		}

		min, minOK := number(m, "minValue")
		if !minOK {
			min, minOK = number(m, "value")
		}
		max, maxOK := number(m, "maxValue")
		if minOK {
			t.MinValue = &min
		}
		if maxOK {
			t.MaxValue = &max
		} else if minOK {
			t.MaxValue = &min
		}
		if t.MinValue == nil && t.MaxValue == nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

func typeForMetric(metric string) string {
	switch metric {
	case "percentOfThresholdPace":
		return "pace"
	case "percentOfThresholdHr", "percentOfThresholdHeartRate":
		return "heartRate"
	default:
		return "power"
	}
}

// sumSeconds totals the time-based step durations of a converted tree,
// multiplying repeat bodies by their count. Distance and press-lap steps
// contribute nothing.
func sumSeconds(nodes []Node) float64 {
	var total float64
	for i := range nodes {
		n := &nodes[i]
		if len(n.Steps) > 0 {
			body := sumSeconds(n.Steps)
			if n.Type == "repetition" && n.Length != nil {
				if count := math.Round(n.Length.Value); count > 1 {
					body *= count
				}
			}
			total += body
			continue
		}
		if n.Length == nil {
			continue
		}
		if d, ok := workout.ParseDuration(n.Length.Unit, n.Length.Value); ok {
			total += d.Seconds()
		}
	}
	return total
}

func number(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
