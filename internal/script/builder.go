package script

import (
	"math"
	"strings"

	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/workout"
)

// Build rewrites a source structure tree into a line-script document.
// Malformed input never fails: steps without a usable duration are dropped,
// and a nil or empty structure yields a document with no sections.
func Build(st *models.Structure) Script {
	if st == nil || len(st.Nodes) == 0 {
		return Script{}
	}
	root := models.StructureNode{Steps: st.Nodes}
	return Script{Sections: buildContainer(&root, st.PrimaryIntensityMetric)}
}

func buildNode(n *models.StructureNode, metric string) []Section {
	switch {
	case n.IsContainer() && n.IsRepetition():
		return buildRepetition(n, metric)
	case n.IsContainer():
		return buildContainer(n, metric)
	default:
		step, ok := buildStep(n, metric)
		if !ok {
			return nil
		}
		return []Section{{Items: []Item{{Step: step}}}}
	}
}

// buildStep converts a leaf node into one step line. The label is suppressed
// when it only restates the intensity tag ("Warm Up" vs warmup).
func buildStep(n *models.StructureNode, metric string) (*Step, bool) {
	if n.Length == nil {
		return nil, false
	}
	d, ok := workout.ParseDuration(n.Length.Unit, n.Length.Value)
	if !ok {
		return nil, false
	}

	cls := workout.ClassifyIntensity(n.IntensityClass)
	label := strings.TrimSpace(n.Name)
	if foldLabel(label) == foldLabel(string(cls)) {
		label = ""
	}

	var targets []workout.Target
	if t, ok := workout.PrimaryTarget(n.Targets, metric); ok {
		targets = append(targets, t)
	}
	if t, ok := workout.CadenceTarget(n); ok {
		targets = append(targets, t)
	}

	return &Step{
		Label:     label,
		Duration:  d,
		Ramp:      strings.EqualFold(n.TargetMode, "ramp"),
		Targets:   targets,
		Intensity: cls,
	}, true
}

// foldLabel normalizes a step name for the redundant-label comparison:
// lower case, letters and digits only.
func foldLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildRepetition emits one section whose items are the flattened leaf steps
// of the repeat body. Nested section boundaries never survive inside a
// repeat; every descendant item merges into one flat list.
func buildRepetition(n *models.StructureNode, metric string) []Section {
	count := 1
	if n.Length != nil {
		if r := int(math.Round(n.Length.Value)); r > 1 {
			count = r
		}
	}

	var items []Item
	for i := range n.Steps {
		for _, cs := range buildNode(&n.Steps[i], metric) {
			items = append(items, cs.Items...)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return []Section{{RepeatCount: count, Items: items}}
}

// buildContainer groups a non-repetition container's children into sections:
// consecutive plain steps accumulate into one section, and every
// repeat-bearing child section flushes that run first so an "<N>x" header
// always starts a fresh section. A container whose only child yields a
// single section passes it through unchanged.
func buildContainer(n *models.StructureNode, metric string) []Section {
	childSections := make([][]Section, 0, len(n.Steps))
	produced := 0
	for i := range n.Steps {
		cs := buildNode(&n.Steps[i], metric)
		if len(cs) > 0 {
			produced++
		}
		childSections = append(childSections, cs)
	}

	if produced == 1 {
		for _, cs := range childSections {
			if len(cs) == 1 {
				return cs
			}
		}
	}

	var out []Section
	var pending []Item
	flush := func() {
		if len(pending) > 0 {
			out = append(out, Section{Items: pending})
			pending = nil
		}
	}
	for _, cs := range childSections {
		for _, s := range cs {
			if s.RepeatCount > 0 {
				flush()
				out = append(out, s)
			} else {
				pending = append(pending, s.Items...)
			}
		}
	}
	flush()
	return out
}
