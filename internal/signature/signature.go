// Package signature computes a stable content identity for converted
// workouts so that recurring workouts in a multi-week plan upload once and
// are referenced by every placement.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/claude/plansync/internal/blocks"
)

// Compute returns a hex digest over the normalized structure tree and the
// workout's scalar fields. Two workouts share a signature iff their
// structures and scalars are equal; calendar placement never contributes.
func Compute(steps []blocks.Node, durationMin, load float64) string {
	payload := struct {
		Steps    []blocks.Node `json:"steps"`
		Duration float64       `json:"duration"`
		Load     float64       `json:"load"`
	}{steps, durationMin, load}

	h := sha256.New()
	// Struct field order is fixed, so encoding/json is deterministic here.
	if err := json.NewEncoder(h).Encode(payload); err != nil {
		// Only unsupported types can fail, and the payload has none.
		panic(err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeWorkout is a convenience over Compute for a full destination
// document.
func ComputeWorkout(w *blocks.Workout) string {
	return Compute(w.Steps, w.DurationMin, w.Load)
}
