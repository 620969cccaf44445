// Package export drives plan and library exports: workouts are converted,
// deduplicated by structural signature, and uploaded sequentially to the
// destination platform.
package export

import (
	"fmt"
	"log/slog"

	"github.com/claude/plansync/internal/blocks"
	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/script"
	"github.com/claude/plansync/internal/signature"
)

// Stats tracks export progress.
type Stats struct {
	WorkoutsTotal        int
	WorkoutsUploaded     int
	WorkoutsDeduplicated int
	WorkoutsSkipped      int
	WorkoutsErrored      int
}

// Uploader is the destination upload contract.
type Uploader interface {
	Upload(w *blocks.Workout) (refKey string, err error)
}

// SignatureStore persists signature-to-reference-key mappings across runs.
type SignatureStore interface {
	LookupBySignature(signature string) (string, error)
	MarkUploaded(signature, refKey string) error
}

// Progress is called after each workout is processed. A nil Progress is
// allowed.
type Progress func(done, total int)

// Placement records where an uploaded (or deduplicated) workout lands in the
// destination calendar.
type Placement struct {
	Day    string
	Title  string
	RefKey string
}

// Exporter converts and uploads workouts one at a time. Uploads are issued
// sequentially so per-item failures stay attributable and destination rate
// limits are respected.
type Exporter struct {
	client   Uploader
	store    SignatureStore
	dryRun   bool
	log      *slog.Logger
	progress Progress

	stats Stats
	seen  map[string]string // signature -> reference key, this run
}

// New creates an Exporter. store and progress may be nil.
func New(client Uploader, store SignatureStore, dryRun bool, progress Progress, log *slog.Logger) *Exporter {
	return &Exporter{
		client:   client,
		store:    store,
		dryRun:   dryRun,
		log:      log,
		progress: progress,
		seen:     map[string]string{},
	}
}

// ExportPlan uploads every workout in a multi-week plan. Recurring workouts
// whose structures normalize identically upload once; later placements reuse
// the recorded reference key. The plan flow is all-or-nothing: the first
// failed upload aborts the remaining batch.
func (e *Exporter) ExportPlan(plan *models.Plan) ([]Placement, *Stats, error) {
	total := 0
	for _, wk := range plan.Weeks {
		for _, d := range wk.Days {
			total += len(d.Workouts)
		}
	}

	var placements []Placement
	done := 0
	for _, wk := range plan.Weeks {
		for _, d := range wk.Days {
			for i := range d.Workouts {
				w := &d.Workouts[i]
				refKey, err := e.exportOne(w)
				done++
				if e.progress != nil {
					e.progress(done, total)
				}
				if err != nil {
					return placements, &e.stats, fmt.Errorf("exporting %q: %w", w.Title, err)
				}
				if refKey == "" {
					continue // nothing to place
				}
				placements = append(placements, Placement{Day: d.Day, Title: w.Title, RefKey: refKey})
			}
		}
	}
	return placements, &e.stats, nil
}

// LibraryResult holds the outcome for one exported library.
type LibraryResult struct {
	Name     string
	Uploaded int
	Reused   int
	Skipped  int
	Err      error
}

// ExportLibraries processes each library independently: a failure inside one
// library stops that library but never the remaining ones, and partial
// results are collected for the caller.
func (e *Exporter) ExportLibraries(libs []models.Library) ([]LibraryResult, *Stats) {
	results := make([]LibraryResult, 0, len(libs))
	for _, lib := range libs {
		res := LibraryResult{Name: lib.Name}
		for i := range lib.Items {
			w := &lib.Items[i]
			before := e.stats
			refKey, err := e.exportOne(w)
			if err != nil {
				res.Err = fmt.Errorf("exporting %q: %w", w.Title, err)
				e.log.Warn("library export failed, continuing with next library",
					"library", lib.Name, "workout", w.Title, "error", err)
				break
			}
			switch {
			case refKey == "":
				res.Skipped++
			case e.stats.WorkoutsUploaded > before.WorkoutsUploaded:
				res.Uploaded++
			default:
				res.Reused++
			}
		}
		results = append(results, res)
	}
	return results, &e.stats
}

// exportOne converts a single workout and uploads it unless an identical
// workout was already seen. Returns the reference key, or empty string when
// the workout carries neither structure nor narrative and is skipped.
func (e *Exporter) exportOne(w *models.Workout) (string, error) {
	e.stats.WorkoutsTotal++

	doc := blocks.Convert(w)
	text := script.Compose(script.Render(script.Build(w.Structure)), w.Description, w.CoachComments)
	if len(doc.Steps) == 0 && text == script.Placeholder {
		e.stats.WorkoutsSkipped++
		e.log.Info("skipping empty workout", "workout", w.Title)
		return "", nil
	}
	doc.Description = text

	sig := signature.ComputeWorkout(doc)
	if refKey, ok := e.seen[sig]; ok {
		e.stats.WorkoutsDeduplicated++
		return refKey, nil
	}
	if e.store != nil {
		refKey, err := e.store.LookupBySignature(sig)
		if err != nil {
			return "", fmt.Errorf("signature lookup: %w", err)
		}
		if refKey != "" {
			e.seen[sig] = refKey
			e.stats.WorkoutsDeduplicated++
			return refKey, nil
		}
	}

	var refKey string
	if e.dryRun {
		refKey = "dry-run:" + sig[:12]
		e.log.Info("dry-run: would upload workout", "workout", w.Title, "signature", sig[:12])
	} else {
		var err error
		refKey, err = e.client.Upload(doc)
		if err != nil {
			e.stats.WorkoutsErrored++
			return "", err
		}
		if e.store != nil {
			if err := e.store.MarkUploaded(sig, refKey); err != nil {
				e.log.Warn("failed to record upload", "signature", sig[:12], "error", err)
			}
		}
		e.log.Info("uploaded workout", "workout", w.Title, "ref", refKey, "signature", sig[:12])
	}

	e.seen[sig] = refKey
	e.stats.WorkoutsUploaded++
	return refKey, nil
}
