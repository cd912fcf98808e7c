package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/planbeam/solver/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	SolveTime time.Duration
}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanResult, config Config) error {
	fmt.Printf("📊 Plan Summary\n")
	fmt.Printf("===============\n\n")

	fmt.Printf("Planned Orders: %d\n", result.Summary.TotalPlannedOrders)
	fmt.Printf("Shortage Buckets: %d\n", result.Summary.ShortageCount)
	fmt.Printf("Solve Time: %v\n\n", config.SolveTime)

	if len(result.PlannedOrders) > 0 {
		fmt.Printf("📋 Planned Orders:\n")
		fmt.Printf("%-18s %-11s %-12s %-10s %-12s %-12s %-14s\n",
			"Order", "Type", "Item", "Qty", "Start", "Finish", "Source")
		fmt.Printf("%-18s %-11s %-12s %-10s %-12s %-12s %-14s\n",
			"------------------", "-----------", "------------", "----------", "------------", "------------", "--------------")

		for _, order := range result.PlannedOrders {
			source := order.Supplier
			if order.Resource != "" {
				source = string(order.Resource)
			}
			fmt.Printf("%-18s %-11s %-12s %-10s %-12s %-12s %-14s\n",
				order.ID,
				order.Type.String(),
				order.ItemID,
				order.Quantity.String(),
				order.Start.Format("2006-01-02"),
				order.Finish.Format("2006-01-02"),
				source)
		}
		fmt.Println()
	}

	printShortages(result)

	if config.Verbose {
		fmt.Printf("🧾 Decision Trace:\n")
		for _, trace := range result.Trace {
			fmt.Printf("  %s: %s x %s due %s\n", trace.OrderID, trace.Item, trace.Qty, trace.Due)
			for _, step := range trace.Steps {
				line := step.Msg
				if line == "" {
					line = step.Reason
				}
				fmt.Printf("    [%s] %s\n", step.Action, line)
			}
		}
		fmt.Println()
	}

	if config.OutputDir != "" {
		return saveJSON(result, config, "plan.json")
	}
	return nil
}

// printShortages lists every bucket left short, by item then date
func printShortages(result *dto.PlanResult) {
	type shortage struct {
		item string
		date string
		qty  string
	}
	var shortages []shortage
	for itemID, buckets := range result.MRP {
		for date, bucket := range buckets {
			if bucket.Shortage.IsPositive() {
				shortages = append(shortages, shortage{string(itemID), date, bucket.Shortage.String()})
			}
		}
	}
	if len(shortages) == 0 {
		return
	}
	sort.Slice(shortages, func(i, j int) bool {
		if shortages[i].item != shortages[j].item {
			return shortages[i].item < shortages[j].item
		}
		return shortages[i].date < shortages[j].date
	})

	fmt.Printf("⚠️  Shortages:\n")
	fmt.Printf("%-12s %-12s %-10s\n", "Item", "Date", "Qty")
	fmt.Printf("%-12s %-12s %-10s\n", "------------", "------------", "----------")
	for _, s := range shortages {
		fmt.Printf("%-12s %-12s %-10s\n", s.item, s.date, s.qty)
	}
	fmt.Println()
}

// generateJSONOutput prints the full plan as JSON, the same shape the
// HTTP endpoint returns
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir != "" {
		return saveJSON(result, config, "plan.json")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func saveJSON(result *dto.PlanResult, config Config, name string) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if config.Verbose {
		fmt.Printf("💾 Results saved to: %s\n", filename)
	}
	return nil
}
