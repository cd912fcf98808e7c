package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/application/services/masterdata"
	"github.com/planbeam/solver/pkg/application/services/planning"
	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/interfaces/cli/output"
)

// Config holds configuration for the solve command
type Config struct {
	ScenarioDir    string
	Horizon        int
	StartDate      string
	Constrained    bool
	BuildAhead     bool
	BuildAheadDays int
	ShortagePolicy string
	OutputDir      string
	Format         string
	Verbose        bool
	Help           bool
}

// SolveCommand runs one planning computation over a scenario directory
type SolveCommand struct {
	config Config
}

// NewSolveCommand creates a new solve command with the given configuration
func NewSolveCommand(config Config) *SolveCommand {
	return &SolveCommand{
		config: config,
	}
}

// Execute runs the solve command
func (c *SolveCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.ScenarioDir == "" {
		return fmt.Errorf("validation error: -scenario directory is required (use -help for usage)")
	}
	if c.config.Horizon < 1 {
		return fmt.Errorf("validation error: -horizon must be at least 1 day, got %d", c.config.Horizon)
	}

	startDate, err := c.resolveStartDate()
	if err != nil {
		return err
	}
	policy, err := planning.ParseShortagePolicy(c.config.ShortagePolicy)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loading scenario from %s...\n", c.config.ScenarioDir)
	}

	dataset := masterdata.NewDataset()
	if err := dataset.LoadDir(c.config.ScenarioDir); err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	log := zap.NewNop()
	if c.config.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			log = dev
		}
	}

	planner := planning.NewPlanner(
		dataset.Items, dataset.BOM, dataset.Demands,
		dataset.Suppliers, dataset.Resources, dataset.Stock,
		planning.Config{
			HorizonDays:    c.config.Horizon,
			StartDate:      startDate,
			Constrained:    c.config.Constrained,
			BuildAhead:     c.config.BuildAhead,
			BuildAheadDays: c.config.BuildAheadDays,
			ShortagePolicy: policy,
		},
		log,
	)

	if c.config.Verbose {
		fmt.Printf("🔄 Running solve over a %d-day horizon from %s...\n",
			c.config.Horizon, startDate.Format(entities.DateLayout))
	}

	startTime := time.Now()
	result, err := planner.Run(ctx)
	solveTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error running solve: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Solve completed in %v\n\n", solveTime)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		SolveTime: solveTime,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

func (c *SolveCommand) resolveStartDate() (time.Time, error) {
	if c.config.StartDate == "" {
		year, month, day := time.Now().UTC().Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	}
	startDate, err := time.Parse(entities.DateLayout, c.config.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("validation error: -start must be YYYY-MM-DD, got %q", c.config.StartDate)
	}
	return startDate, nil
}

func (c *SolveCommand) showHelp() {
	fmt.Println(`solver - capacity-aware MRP solve over a scenario directory

Usage:
  solver -scenario <dir> [options]

The scenario directory holds CSV master data: items.csv and demand.csv
are required; bom.csv, supplier_master.csv, resources.csv and
supplies.csv are optional.

Options:
  -scenario <dir>     Path to scenario directory containing CSV files
  -horizon <days>     Planning horizon in days (default 30)
  -start <date>       Run start date, YYYY-MM-DD (default today)
  -constrained        Enforce resource capacity (default true)
  -build-ahead        Pull capacity-blocked orders earlier (default true)
  -build-ahead-days   Build-ahead window in days (default 15)
  -policy <name>      Shortage policy: zero_floor or backlog (default zero_floor)
  -output <dir>       Write plan.json into this directory
  -format <name>      Output format: text, json (default text)
  -verbose            Enable verbose output
  -help               Show this help message`)
}
