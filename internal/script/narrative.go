package script

import "strings"

// Delimiter separates rendered script from narrative text in the final
// destination description.
const Delimiter = "- - - -"

// Placeholder is returned when a workout has neither structure nor narrative.
const Placeholder = "No workout details available."

// Narrative joins the platform description and coach notes, script-safe:
// lines that would otherwise parse as step lines are escaped.
func Narrative(description, coachNotes string) string {
	var parts []string
	if d := strings.TrimSpace(description); d != "" {
		parts = append(parts, d)
	}
	if c := strings.TrimSpace(coachNotes); c != "" {
		parts = append(parts, c)
	}
	if len(parts) == 0 {
		return ""
	}
	return escapeNarrative(strings.Join(parts, "\n\n"))
}

// escapeNarrative prefixes a backslash to any line whose first non-space
// character is "-" or "*", so free text cannot collide with step-line syntax.
func escapeNarrative(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + `\` + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// Compose assembles the final destination text. Script and narrative are
// joined script-first with the fixed delimiter; either alone is returned
// as-is; with neither, a fixed placeholder is returned.
func Compose(scriptText, description, coachNotes string) string {
	narrative := Narrative(description, coachNotes)
	switch {
	case scriptText != "" && narrative != "":
		return scriptText + "\n\n" + Delimiter + "\n" + narrative
	case scriptText != "":
		return scriptText
	case narrative != "":
		return narrative
	default:
		return Placeholder
	}
}
