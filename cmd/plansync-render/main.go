package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/script"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	inPath := flag.String("in", "-", "workout JSON file to render (\"-\" for stdin)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("plansync-render", Version)
		return
	}

	var data []byte
	var err error
	if *inPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*inPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	var w models.Workout
	if err := json.Unmarshal(data, &w); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing workout: %v\n", err)
		os.Exit(1)
	}

	text := script.Compose(script.Render(script.Build(w.Structure)), w.Description, w.CoachComments)
	fmt.Println(text)
}
