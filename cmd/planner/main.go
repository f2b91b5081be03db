package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stockpilot/engine/pkg/interfaces/cli/commands"
)

func main() {
	ctx := context.Background()

	// "planner generate ..." runs the scenario generator instead of a cycle
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		if err := runGenerate(ctx, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runPlan(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlan(ctx context.Context) error {
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		materialsFile    = flag.String("materials", "", "Path to materials CSV file")
		warehousesFile   = flag.String("warehouses", "", "Path to warehouses CSV file")
		vendorsFile      = flag.String("vendors", "", "Path to vendors CSV file")
		vendorPricesFile = flag.String("vendor-prices", "", "Path to vendor prices CSV file")
		stockFile        = flag.String("stock", "", "Path to stock levels CSV file")
		demandsFile      = flag.String("demands", "", "Path to demands CSV file")
		outputDir        = flag.String("output", "", "Output directory for results (optional)")
		format           = flag.String("format", "text", "Output format: text, json, csv, html")
		strategy         = flag.String("strategy", "balanced", "Procurement strategy: balanced, cost_focused, rush, risk_averse")
		verbose          = flag.Bool("verbose", false, "Enable verbose output")
		help             = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir:      *scenarioDir,
		MaterialsFile:    *materialsFile,
		WarehousesFile:   *warehousesFile,
		VendorsFile:      *vendorsFile,
		VendorPricesFile: *vendorPricesFile,
		StockFile:        *stockFile,
		DemandsFile:      *demandsFile,
		OutputDir:        *outputDir,
		Format:           *format,
		Strategy:         *strategy,
		Verbose:          *verbose,
		Help:             *help,
	}

	return commands.NewPlanCommand(config).Execute(ctx)
}

func runGenerate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		warehouses = flags.Int("gen-warehouses", 5, "Number of warehouses to generate")
		materials  = flags.Int("gen-materials", 10, "Number of materials to generate")
		vendors    = flags.Int("gen-vendors", 8, "Number of vendors to generate")
		demands    = flags.Int("gen-demands", 20, "Number of demand lines to generate")
		coverage   = flags.Float64("gen-coverage", 0.6, "Stock coverage multiplier relative to demand")
		outputDir  = flags.String("output", "", "Output directory for generated files")
		seed       = flags.Int64("seed", 0, "Random seed for reproducible generation")
		verbose    = flags.Bool("verbose", false, "Enable verbose output")
		help       = flags.Bool("help", false, "Show help message")
	)

	if err := flags.Parse(args); err != nil {
		return err
	}

	config := commands.GenerateConfig{
		Warehouses:    *warehouses,
		Materials:     *materials,
		Vendors:       *vendors,
		Demands:       *demands,
		StockCoverage: *coverage,
		OutputDir:     *outputDir,
		Seed:          *seed,
		Verbose:       *verbose,
		Help:          *help,
	}

	if !config.Help && config.OutputDir == "" {
		return fmt.Errorf("generate requires -output directory")
	}

	return commands.NewGenerateCommand(config).Execute(ctx)
}
