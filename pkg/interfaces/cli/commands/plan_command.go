// Package commands implements the planner CLI commands.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockpilot/engine/pkg/application/dto"
	"github.com/stockpilot/engine/pkg/application/services/batch"
	"github.com/stockpilot/engine/pkg/application/services/orchestration"
	"github.com/stockpilot/engine/pkg/application/services/procurement"
	"github.com/stockpilot/engine/pkg/application/services/reconcile"
	"github.com/stockpilot/engine/pkg/application/services/transfer"
	"github.com/stockpilot/engine/pkg/application/services/triggers"
	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/services"
	"github.com/stockpilot/engine/pkg/infrastructure/repositories/csv"
	"github.com/stockpilot/engine/pkg/infrastructure/repositories/memory"
	"github.com/stockpilot/engine/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir      string
	MaterialsFile    string
	WarehousesFile   string
	VendorsFile      string
	VendorPricesFile string
	StockFile        string
	DemandsFile      string
	OutputDir        string
	Format           string
	Strategy         string
	Verbose          bool
	Help             bool
}

// PlanCommand runs one full decision cycle over a CSV scenario
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	strategy, err := entities.ParseStrategy(c.config.Strategy)
	if err != nil {
		return err
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files, strategy)
	}

	loader := csv.NewLoader()

	materials, err := loader.LoadMaterials(files["Materials"])
	if err != nil {
		return fmt.Errorf("error loading materials: %w", err)
	}
	warehouses, err := loader.LoadWarehouses(files["Warehouses"])
	if err != nil {
		return fmt.Errorf("error loading warehouses: %w", err)
	}
	vendors, err := loader.LoadVendors(files["Vendors"], files["VendorPrices"])
	if err != nil {
		return fmt.Errorf("error loading vendors: %w", err)
	}
	stockLevels, err := loader.LoadStockLevels(files["Stock"])
	if err != nil {
		return fmt.Errorf("error loading stock levels: %w", err)
	}
	demands, err := loader.LoadDemands(files["Demands"])
	if err != nil {
		return fmt.Errorf("error loading demands: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded:\n")
		fmt.Printf("  Materials: %d\n", len(materials))
		fmt.Printf("  Warehouses: %d\n", len(warehouses))
		fmt.Printf("  Vendors: %d\n", len(vendors))
		fmt.Printf("  Stock Levels: %d\n", len(stockLevels))
		fmt.Printf("  Demands: %d\n", len(demands))
		fmt.Println()
	}

	materialRepo := memory.NewMaterialRepository()
	if err := materialRepo.LoadMaterials(materials); err != nil {
		return fmt.Errorf("failed to load materials into repository: %w", err)
	}
	warehouseRepo := memory.NewWarehouseRepository()
	if err := warehouseRepo.LoadWarehouses(warehouses); err != nil {
		return fmt.Errorf("failed to load warehouses into repository: %w", err)
	}
	vendorRepo := memory.NewVendorRepository()
	if err := vendorRepo.LoadVendors(vendors); err != nil {
		return fmt.Errorf("failed to load vendors into repository: %w", err)
	}
	inventoryRepo := memory.NewInventoryRepository()
	if err := inventoryRepo.LoadStockLevels(stockLevels); err != nil {
		return fmt.Errorf("failed to load stock levels into repository: %w", err)
	}

	tables := config.Default()
	if err := tables.Validate(); err != nil {
		return fmt.Errorf("invalid parameter tables: %w", err)
	}

	estimator := services.NewTransportEstimator(tables)
	transfers := transfer.NewManager(tables, estimator, warehouseRepo, materialRepo, inventoryRepo)
	reconciler := reconcile.NewReconciler(estimator, inventoryRepo, transfers)
	optimizer, err := procurement.NewOptimizer(tables, strategy, estimator,
		vendorRepo, materialRepo, warehouseRepo)
	if err != nil {
		return fmt.Errorf("failed to build procurement optimizer: %w", err)
	}

	orchestrator, err := orchestration.NewOrchestrator(tables, estimator,
		triggers.NewEngine(tables), reconciler, optimizer,
		batch.NewBatcher(tables), materialRepo, inventoryRepo)
	if err != nil {
		return fmt.Errorf("failed to build orchestrator: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("Running decision cycle...")
	}

	startTime := time.Now()
	result, err := orchestrator.RunCycle(ctx, demands, startTime)
	cycleTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error running decision cycle: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Decision cycle completed in %v\n\n", cycleTime)
	}

	outputConfig := output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Verbose:    c.config.Verbose,
		CycleTime:  cycleTime,
		InputFiles: files,
	}
	if err := output.Generate(dto.FromCycleResult(result), outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.MaterialsFile == "" || c.config.WarehousesFile == "" ||
			c.config.VendorsFile == "" || c.config.VendorPricesFile == "" ||
			c.config.StockFile == "" || c.config.DemandsFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	var files map[string]string

	if c.config.ScenarioDir != "" {
		files = map[string]string{
			"Materials":    filepath.Join(c.config.ScenarioDir, "materials.csv"),
			"Warehouses":   filepath.Join(c.config.ScenarioDir, "warehouses.csv"),
			"Vendors":      filepath.Join(c.config.ScenarioDir, "vendors.csv"),
			"VendorPrices": filepath.Join(c.config.ScenarioDir, "vendor_prices.csv"),
			"Stock":        filepath.Join(c.config.ScenarioDir, "stock.csv"),
			"Demands":      filepath.Join(c.config.ScenarioDir, "demands.csv"),
		}
	} else {
		files = map[string]string{
			"Materials":    c.config.MaterialsFile,
			"Warehouses":   c.config.WarehousesFile,
			"Vendors":      c.config.VendorsFile,
			"VendorPrices": c.config.VendorPricesFile,
			"Stock":        c.config.StockFile,
			"Demands":      c.config.DemandsFile,
		}
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader(files map[string]string, strategy entities.Strategy) {
	fmt.Printf("Supply Planner CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Materials: %s\n", files["Materials"])
	fmt.Printf("  Warehouses: %s\n", files["Warehouses"])
	fmt.Printf("  Vendors: %s\n", files["Vendors"])
	fmt.Printf("  Vendor Prices: %s\n", files["VendorPrices"])
	fmt.Printf("  Stock: %s\n", files["Stock"])
	fmt.Printf("  Demands: %s\n", files["Demands"])
	fmt.Printf("Strategy: %s\n", strategy)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Printf(`Supply Planner CLI - Inventory decisions for distribution networks

USAGE:
    planner -scenario <directory>                # Use scenario directory with CSV files
    planner -materials <file> -stock <file> ...  # Use individual CSV files

OPTIONS:
    -scenario <dir>        Path to scenario directory containing CSV files
    -materials <file>      Path to materials CSV file
    -warehouses <file>     Path to warehouses CSV file
    -vendors <file>        Path to vendors CSV file
    -vendor-prices <file>  Path to vendor prices CSV file
    -stock <file>          Path to stock levels CSV file
    -demands <file>        Path to demands CSV file
    -strategy <name>       Procurement strategy: balanced, cost_focused, rush, risk_averse
    -output <dir>          Output directory for results (optional)
    -format <fmt>          Output format: text, json, csv, html (default: text)
    -verbose               Enable verbose output
    -help                  Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── materials.csv      # Material catalog
    ├── warehouses.csv     # Stocking locations
    ├── vendors.csv        # External suppliers
    ├── vendor_prices.csv  # Per-vendor material prices
    ├── stock.csv          # Current stock positions
    └── demands.csv        # Demand requirements

CSV FILE FORMATS:

materials.csv:
    id,name,category,unit,unit_price,lead_time_days,shelf_life_days
    MAT-CBL,11kV XLPE Cable,cable,m,250,7,0

warehouses.csv:
    id,name,longitude,latitude,region,state,capacity
    WH-DEL,Delhi Central Store,77.1025,28.7041,North,Delhi,100000

vendors.csv:
    id,name,longitude,latitude,reliability,avg_lead_time_days,max_lead_time_days,price_factor,min_order_value
    VND-ALP,Alpha Electricals,77.3910,28.5355,0.95,10,20,1.0,50000

vendor_prices.csv:
    vendor_id,material_id,unit_price
    VND-ALP,MAT-CBL,245

stock.csv:
    warehouse_id,material_id,quantity_available,quantity_reserved,safety_stock
    WH-DEL,MAT-CBL,500,0,100

demands.csv:
    material_id,destination_id,quantity
    MAT-CBL,WH-DEL,400

EXAMPLES:
    # Run a scenario
    planner -scenario scenarios/north_region -verbose

    # Optimize for delivery speed
    planner -scenario scenarios/north_region -strategy rush

    # Generate a JSON result and an HTML report
    planner -scenario scenarios/north_region -format json -output results/
    planner -scenario scenarios/north_region -format html -output results/
`)
}
