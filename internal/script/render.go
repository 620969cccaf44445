package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/claude/plansync/internal/workout"
)

var repeatHeader = regexp.MustCompile(`^\d+x$`)

// Render walks the document into final multi-line text. Rendering is pure:
// the same document always yields byte-identical output.
func Render(doc Script) string {
	var blocks [][]string
	for _, s := range doc.Sections {
		if lines := renderSection(s); len(lines) > 0 {
			blocks = append(blocks, lines)
		}
	}

	// Sections join directly; a blank line separates neighbors only when
	// either side opens with an "<N>x" repeat header.
	var lines []string
	for i, b := range blocks {
		if i > 0 && (opensWithRepeat(blocks[i-1]) || opensWithRepeat(b)) {
			lines = append(lines, "")
		}
		lines = append(lines, b...)
	}
	return collapseBlank(lines)
}

func renderSection(s Section) []string {
	var lines []string
	if h := strings.TrimSpace(s.Heading); h != "" {
		lines = append(lines, h)
	}
	if s.RepeatCount > 0 {
		lines = append(lines, fmt.Sprintf("%dx", s.RepeatCount))
	}
	for _, it := range s.Items {
		switch {
		case it.Step != nil:
			lines = append(lines, renderStep(*it.Step))
		case strings.TrimSpace(it.Text) != "":
			lines = append(lines, it.Text)
		}
	}
	return lines
}

func opensWithRepeat(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		return repeatHeader.MatchString(l)
	}
	return false
}

// collapseBlank trims leading/trailing blank lines and squeezes every run of
// blank lines down to a single one.
func collapseBlank(lines []string) string {
	var out []string
	blank := true // swallow leading blanks
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		out = append(out, l)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// renderStep emits one step line: "-", optional label, duration, optional
// "ramp", targets in order, and an intensity tag unless the step is plain
// active (the implicit default is never shown).
func renderStep(st Step) string {
	tokens := []string{"-"}
	if st.Label != "" {
		tokens = append(tokens, st.Label)
	}
	tokens = append(tokens, formatDuration(st.Duration))
	if st.Ramp {
		tokens = append(tokens, "ramp")
	}
	for _, t := range st.Targets {
		tokens = append(tokens, formatTarget(t))
	}
	if st.Intensity != "" && st.Intensity != workout.IntensityActive {
		tokens = append(tokens, "intensity="+string(st.Intensity))
	}
	return strings.Join(tokens, " ")
}

var distanceSuffix = map[workout.Unit]string{
	workout.UnitMeters:     "m",
	workout.UnitKilometers: "km",
	workout.UnitYards:      "yd",
	workout.UnitMiles:      "mi",
}

// formatDuration renders a duration token. Time durations collapse to whole
// hours or minutes when they divide evenly (3600s -> "1h", 300s -> "5m"),
// otherwise they render as seconds.
func formatDuration(d workout.Duration) string {
	switch d.Kind {
	case workout.DurationPressLap:
		return "lap"
	case workout.DurationDistance:
		return workout.FormatValue(d.Value) + distanceSuffix[d.Unit]
	default:
		secs := d.Seconds()
		whole := int64(secs)
		if float64(whole) == secs {
			switch {
			case whole%3600 == 0:
				return fmt.Sprintf("%dh", whole/3600)
			case whole%60 == 0:
				return fmt.Sprintf("%dm", whole/60)
			default:
				return fmt.Sprintf("%ds", whole)
			}
		}
		return workout.FormatValue(secs) + "s"
	}
}

var targetSuffix = map[workout.TargetKind]string{
	workout.TargetPowerPercentFTP:      "%",
	workout.TargetPowerWatts:           "w",
	workout.TargetPacePercentThreshold: "% Pace",
	workout.TargetHRPercentMax:         "% HR",
	workout.TargetHRPercentLTHR:        "% LTHR",
	workout.TargetCadenceRPM:           "rpm",
}

// formatTarget renders one target token. Ranges collapse to a single number
// when min equals max.
func formatTarget(t workout.Target) string {
	switch t.Kind {
	case workout.TargetFreeText:
		return t.Text
	case workout.TargetZone:
		z := strings.ToUpper(t.Zone)
		switch t.ZoneMetric {
		case "hr":
			z += " HR"
		case "pace":
			z += " Pace"
		}
		return z
	case workout.TargetPaceAbsolute:
		return rangeText(t) + " Pace /" + t.DenominatorUnit
	default:
		return rangeText(t) + targetSuffix[t.Kind]
	}
}

func rangeText(t workout.Target) string {
	if t.Min == t.Max {
		return workout.FormatValue(t.Min)
	}
	return workout.FormatValue(t.Min) + "-" + workout.FormatValue(t.Max)
}
