package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/plansync/internal/config"
	"github.com/claude/plansync/internal/export"
	"github.com/claude/plansync/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	planPath := flag.String("plan", "", "path to a multi-week plan JSON file")
	libraryPath := flag.String("libraries", "", "path to a workout-libraries JSON file")
	serverURL := flag.String("server", "", "destination server URL (overrides config)")
	apiKey := flag.String("api-key", "", "destination API key (overrides config)")
	stateDir := flag.String("state-dir", "", "signature state directory (default ~/.plansync)")
	dryRun := flag.Bool("dry-run", false, "convert and deduplicate but don't upload")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("plansync-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *planPath == "" && *libraryPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: plansync-export -plan <file> | -libraries <file> [-server <URL>] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if *serverURL != "" {
		cfg.Destination.URL = *serverURL
	}
	if *apiKey != "" {
		cfg.Destination.APIKey = *apiKey
	}
	if *dryRun {
		cfg.Export.DryRun = true
	}
	if *stateDir != "" {
		cfg.Export.StateDir = *stateDir
	}

	if cfg.Destination.URL == "" && !cfg.Export.DryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	if cfg.Export.StateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		cfg.Export.StateDir = filepath.Join(homeDir, ".plansync")
	}

	state, err := export.OpenStateDB(cfg.Export.StateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	var client export.Uploader
	if !cfg.Export.DryRun {
		client = export.NewClient(cfg.Destination.URL, cfg.Destination.APIKey)
	}
	if cfg.Export.DryRun {
		log.Info("DRY RUN mode - workouts will be converted but not uploaded")
	}

	progress := func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] exported    ", done, total)
	}
	exporter := export.New(client, state, cfg.Export.DryRun, progress, log)

	switch {
	case *planPath != "":
		var plan models.Plan
		if err := readJSON(*planPath, &plan); err != nil {
			log.Error("failed to read plan", "path", *planPath, "error", err)
			os.Exit(1)
		}
		placements, stats, err := exporter.ExportPlan(&plan)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Error("plan export aborted", "error", err)
			printStats(stats)
			os.Exit(1)
		}
		printStats(stats)
		log.Info("plan export complete", "plan", plan.Name, "placements", len(placements))

	case *libraryPath != "":
		var libs []models.Library
		if err := readJSON(*libraryPath, &libs); err != nil {
			log.Error("failed to read libraries", "path", *libraryPath, "error", err)
			os.Exit(1)
		}
		results, stats := exporter.ExportLibraries(libs)
		fmt.Fprintln(os.Stderr)
		printStats(stats)
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				log.Warn("library incomplete", "library", r.Name, "error", r.Err)
			}
		}
		if failed > 0 {
			log.Warn("library export finished with failures", "libraries", len(results), "failed", failed)
			os.Exit(1)
		}
		log.Info("library export complete", "libraries", len(results))
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func printStats(stats *export.Stats) {
	fmt.Println()
	fmt.Println("=== Export Summary ===")
	fmt.Printf("  Workouts total:        %d\n", stats.WorkoutsTotal)
	fmt.Printf("  Workouts uploaded:     %d\n", stats.WorkoutsUploaded)
	fmt.Printf("  Workouts deduplicated: %d\n", stats.WorkoutsDeduplicated)
	fmt.Printf("  Workouts skipped:      %d\n", stats.WorkoutsSkipped)
	fmt.Printf("  Workouts errored:      %d\n", stats.WorkoutsErrored)
	fmt.Println()
}
