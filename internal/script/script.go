// Package script rewrites a source structure tree into the destination's
// line-oriented workout scripting text: a sectioned intermediate document is
// built first, then rendered line by line.
package script

import "github.com/claude/plansync/internal/workout"

// Script is the line-script document for one workout.
type Script struct {
	SportHint string
	Sections  []Section
}

// Section is one visual group of lines. A positive RepeatCount renders an
// "<N>x" header before the items.
type Section struct {
	Heading     string
	RepeatCount int
	Items       []Item
}

// Item is either a step line or a free-text line. Exactly one field is set.
type Item struct {
	Step *Step
	Text string
}

// Step is one renderable step line.
type Step struct {
	Label     string
	Duration  workout.Duration
	Ramp      bool
	Targets   []workout.Target
	Intensity workout.IntensityClass
	Prompts   []string
}
