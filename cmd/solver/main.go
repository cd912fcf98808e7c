package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/planbeam/solver/pkg/interfaces/cli/commands"
)

func main() {
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		horizon        = flag.Int("horizon", 30, "Planning horizon in days")
		startDate      = flag.String("start", "", "Run start date (YYYY-MM-DD, default today)")
		constrained    = flag.Bool("constrained", true, "Enforce resource capacity")
		buildAhead     = flag.Bool("build-ahead", true, "Pull capacity-blocked orders earlier")
		buildAheadDays = flag.Int("build-ahead-days", 15, "Build-ahead window in days")
		policy         = flag.String("policy", "zero_floor", "Shortage policy: zero_floor or backlog")
		outputDir      = flag.String("output", "", "Output directory for results (optional)")
		format         = flag.String("format", "text", "Output format: text, json")
		verbose        = flag.Bool("verbose", false, "Enable verbose output")
		help           = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir:    *scenarioDir,
		Horizon:        *horizon,
		StartDate:      *startDate,
		Constrained:    *constrained,
		BuildAhead:     *buildAhead,
		BuildAheadDays: *buildAheadDays,
		ShortagePolicy: *policy,
		OutputDir:      *outputDir,
		Format:         *format,
		Verbose:        *verbose,
		Help:           *help,
	}

	cmd := commands.NewSolveCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
