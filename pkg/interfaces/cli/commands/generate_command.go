package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Warehouses    int     // Number of warehouses to generate
	Materials     int     // Number of materials to generate
	Vendors       int     // Number of vendors to generate
	Demands       int     // Number of demand lines to generate
	StockCoverage float64 // Stock multiplier relative to demand (e.g. 0.5 = half coverage)
	OutputDir     string  // Output directory for generated files
	Seed          int64   // Random seed for reproducible generation
	Verbose       bool    // Verbose output
	Help          bool    // Show help
}

// GenerateCommand produces a random supply-network scenario as CSV files
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// city anchors generated locations to plausible Indian geography
type city struct {
	name   string
	lon    float64
	lat    float64
	region string
	state  string
}

var cities = []city{
	{"Delhi", 77.1025, 28.7041, "North", "Delhi"},
	{"Jaipur", 75.7873, 26.9124, "North", "Rajasthan"},
	{"Lucknow", 80.9462, 26.8467, "North", "Uttar Pradesh"},
	{"Chandigarh", 76.7794, 30.7333, "North", "Punjab"},
	{"Shimla", 77.1734, 31.1048, "North", "Himachal Pradesh"},
	{"Dehradun", 78.0322, 30.3165, "North", "Uttarakhand"},
	{"Mumbai", 72.8777, 19.0760, "West", "Maharashtra"},
	{"Pune", 73.8567, 18.5204, "West", "Maharashtra"},
	{"Ahmedabad", 72.5714, 23.0225, "West", "Gujarat"},
	{"Surat", 72.8311, 21.1702, "West", "Gujarat"},
	{"Indore", 75.8577, 22.7196, "West", "Madhya Pradesh"},
	{"Kolkata", 88.3639, 22.5726, "East", "West Bengal"},
	{"Patna", 85.1376, 25.5941, "East", "Bihar"},
	{"Bhubaneswar", 85.8245, 20.2961, "East", "Odisha"},
	{"Guwahati", 91.7362, 26.1445, "East", "Assam"},
	{"Chennai", 80.2707, 13.0827, "South", "Tamil Nadu"},
	{"Bengaluru", 77.5946, 12.9716, "South", "Karnataka"},
	{"Hyderabad", 78.4867, 17.3850, "South", "Telangana"},
	{"Kochi", 76.2673, 9.9312, "South", "Kerala"},
	{"Nagpur", 79.0882, 21.1458, "Central", "Maharashtra"},
}

// materialTemplate drives per-category price and lead-time ranges
type materialTemplate struct {
	category  string
	names     []string
	unit      string
	priceLow  float64
	priceHigh float64
	leadLow   int
	leadHigh  int
}

var materialTemplates = []materialTemplate{
	{"transformer", []string{"100kVA Distribution Transformer", "250kVA Distribution Transformer", "500kVA Power Transformer"}, "nos", 90000, 450000, 21, 60},
	{"cable", []string{"11kV XLPE Cable", "33kV XLPE Cable", "LT PVC Cable"}, "m", 120, 650, 5, 14},
	{"conductor", []string{"ACSR Dog Conductor", "ACSR Rabbit Conductor", "AAAC Conductor"}, "km", 25000, 80000, 7, 21},
	{"pole", []string{"9m PCC Pole", "11m PCC Pole", "Steel Tubular Pole"}, "nos", 3500, 12000, 10, 30},
	{"meter", []string{"Single Phase Smart Meter", "Three Phase Smart Meter", "CT Operated Meter"}, "nos", 900, 6500, 7, 21},
	{"insulator", []string{"11kV Pin Insulator", "33kV Disc Insulator", "Polymer Insulator"}, "nos", 150, 1200, 5, 15},
	{"hardware", []string{"GI Stay Set", "Cross Arm Assembly", "Earthing Kit"}, "nos", 250, 2500, 3, 10},
}

var vendorNames = []string{
	"Electricals", "Power Systems", "Switchgear", "Transmission Co",
	"Energy Equipment", "Industries", "Engineering Works", "Cables Ltd",
}

var vendorPrefixes = []string{
	"Apex", "Bharat", "Crystal", "Deccan", "Eastern", "Fortune", "Galaxy",
	"Himalaya", "Indus", "Jyoti", "Kaveri", "Luminous", "Meridian", "National",
	"Orient", "Premier", "Quantum", "Radiant", "Supreme", "Trident",
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.showHelp()
		return nil
	}

	if err := cmd.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("Generating scenario: %d warehouses, %d materials, %d vendors, %d demands, %.1fx stock coverage\n",
			cmd.config.Warehouses, cmd.config.Materials, cmd.config.Vendors,
			cmd.config.Demands, cmd.config.StockCoverage)
		fmt.Printf("Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	materials := cmd.buildMaterials()
	warehouses := cmd.buildWarehouses()

	if err := cmd.writeMaterials(materials); err != nil {
		return fmt.Errorf("failed to generate materials: %w", err)
	}
	if err := cmd.writeWarehouses(warehouses); err != nil {
		return fmt.Errorf("failed to generate warehouses: %w", err)
	}
	if err := cmd.writeVendors(materials); err != nil {
		return fmt.Errorf("failed to generate vendors: %w", err)
	}
	demandTotals, err := cmd.writeDemands(materials, warehouses)
	if err != nil {
		return fmt.Errorf("failed to generate demands: %w", err)
	}
	if err := cmd.writeStock(materials, warehouses, demandTotals); err != nil {
		return fmt.Errorf("failed to generate stock levels: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("Scenario generated in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func (cmd *GenerateCommand) validateInputs() error {
	if cmd.config.Warehouses < 1 {
		return fmt.Errorf("at least one warehouse is required")
	}
	if cmd.config.Warehouses > len(cities) {
		return fmt.Errorf("at most %d warehouses supported", len(cities))
	}
	if cmd.config.Materials < 1 || cmd.config.Vendors < 1 || cmd.config.Demands < 1 {
		return fmt.Errorf("materials, vendors, and demands counts must be positive")
	}
	if cmd.config.StockCoverage < 0 {
		return fmt.Errorf("stock coverage must be non-negative")
	}
	return nil
}

type generatedMaterial struct {
	id        string
	name      string
	category  string
	unit      string
	unitPrice float64
	leadDays  int
}

type generatedWarehouse struct {
	id string
	city
}

func (cmd *GenerateCommand) buildMaterials() []generatedMaterial {
	materials := make([]generatedMaterial, 0, cmd.config.Materials)
	for i := 0; i < cmd.config.Materials; i++ {
		tmpl := materialTemplates[i%len(materialTemplates)]
		name := tmpl.names[cmd.rand.Intn(len(tmpl.names))]
		price := tmpl.priceLow + cmd.rand.Float64()*(tmpl.priceHigh-tmpl.priceLow)
		lead := tmpl.leadLow + cmd.rand.Intn(tmpl.leadHigh-tmpl.leadLow+1)

		materials = append(materials, generatedMaterial{
			id:        fmt.Sprintf("MAT-%03d", i+1),
			name:      name,
			category:  tmpl.category,
			unit:      tmpl.unit,
			unitPrice: float64(int(price)),
			leadDays:  lead,
		})
	}
	return materials
}

func (cmd *GenerateCommand) buildWarehouses() []generatedWarehouse {
	// Shuffle city anchors so repeated runs with different seeds vary
	order := cmd.rand.Perm(len(cities))
	warehouses := make([]generatedWarehouse, 0, cmd.config.Warehouses)
	for i := 0; i < cmd.config.Warehouses; i++ {
		warehouses = append(warehouses, generatedWarehouse{
			id:   fmt.Sprintf("WH-%03d", i+1),
			city: cities[order[i]],
		})
	}
	return warehouses
}

func (cmd *GenerateCommand) writeMaterials(materials []generatedMaterial) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "materials.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "id,name,category,unit,unit_price,lead_time_days,shelf_life_days")
	for _, m := range materials {
		fmt.Fprintf(file, "%s,%s,%s,%s,%.2f,%d,0\n",
			m.id, m.name, m.category, m.unit, m.unitPrice, m.leadDays)
	}
	return nil
}

func (cmd *GenerateCommand) writeWarehouses(warehouses []generatedWarehouse) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "warehouses.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "id,name,longitude,latitude,region,state,capacity")
	for _, w := range warehouses {
		capacity := 20000 + cmd.rand.Intn(9)*10000
		fmt.Fprintf(file, "%s,%s Regional Store,%.4f,%.4f,%s,%s,%d\n",
			w.id, w.name, w.lon, w.lat, w.region, w.state, capacity)
	}
	return nil
}

func (cmd *GenerateCommand) writeVendors(materials []generatedMaterial) error {
	vendorsFile, err := os.Create(filepath.Join(cmd.config.OutputDir, "vendors.csv"))
	if err != nil {
		return err
	}
	defer vendorsFile.Close()

	pricesFile, err := os.Create(filepath.Join(cmd.config.OutputDir, "vendor_prices.csv"))
	if err != nil {
		return err
	}
	defer pricesFile.Close()

	fmt.Fprintln(vendorsFile, "id,name,longitude,latitude,reliability,avg_lead_time_days,max_lead_time_days,price_factor,min_order_value")
	fmt.Fprintln(pricesFile, "vendor_id,material_id,unit_price")

	for i := 0; i < cmd.config.Vendors; i++ {
		id := fmt.Sprintf("VND-%03d", i+1)
		name := fmt.Sprintf("%s %s",
			vendorPrefixes[cmd.rand.Intn(len(vendorPrefixes))],
			vendorNames[cmd.rand.Intn(len(vendorNames))])
		base := cities[cmd.rand.Intn(len(cities))]
		// Jitter the location so vendors are near, not at, the city anchor
		lon := base.lon + (cmd.rand.Float64()-0.5)*0.4
		lat := base.lat + (cmd.rand.Float64()-0.5)*0.4

		reliability := 0.55 + cmd.rand.Float64()*0.43
		avgLead := 3 + cmd.rand.Intn(25)
		maxLead := avgLead + 2 + cmd.rand.Intn(avgLead+5)
		priceFactor := 0.90 + cmd.rand.Float64()*0.25
		minOrder := (1 + cmd.rand.Intn(10)) * 5000

		fmt.Fprintf(vendorsFile, "%s,%s,%.4f,%.4f,%.2f,%d,%d,%.2f,%d\n",
			id, name, lon, lat, reliability, avgLead, maxLead, priceFactor, minOrder)

		// Each vendor quotes a random subset of the catalog at a price
		// spread around the list price
		for _, m := range materials {
			if cmd.rand.Float64() < 0.4 {
				continue
			}
			quoted := m.unitPrice * (0.85 + cmd.rand.Float64()*0.30)
			fmt.Fprintf(pricesFile, "%s,%s,%.2f\n", id, m.id, quoted)
		}
	}

	return nil
}

func (cmd *GenerateCommand) writeDemands(materials []generatedMaterial, warehouses []generatedWarehouse) (map[string]float64, error) {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "demands.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fmt.Fprintln(file, "material_id,destination_id,quantity")

	totals := make(map[string]float64)
	for i := 0; i < cmd.config.Demands; i++ {
		m := materials[cmd.rand.Intn(len(materials))]
		w := warehouses[cmd.rand.Intn(len(warehouses))]

		var qty int
		switch m.category {
		case "transformer":
			qty = 1 + cmd.rand.Intn(10)
		case "cable", "conductor":
			qty = 100 + cmd.rand.Intn(1900)
		default:
			qty = 20 + cmd.rand.Intn(480)
		}

		fmt.Fprintf(file, "%s,%s,%d\n", m.id, w.id, qty)
		totals[w.id+"|"+m.id] += float64(qty)
	}

	return totals, nil
}

func (cmd *GenerateCommand) writeStock(materials []generatedMaterial, warehouses []generatedWarehouse, demandTotals map[string]float64) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "stock.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "warehouse_id,material_id,quantity_available,quantity_reserved,safety_stock")

	for _, w := range warehouses {
		for _, m := range materials {
			demanded := demandTotals[w.id+"|"+m.id]
			// Base stock covers demand per the coverage multiplier with
			// per-row noise; warehouses with no demand for a material
			// still carry a small position sometimes
			base := demanded * cmd.config.StockCoverage
			if demanded == 0 && cmd.rand.Float64() < 0.3 {
				base = float64(10 + cmd.rand.Intn(190))
			}
			available := base * (0.8 + cmd.rand.Float64()*0.4)
			if available < 1 {
				continue
			}

			safety := available * 0.15
			fmt.Fprintf(file, "%s,%s,%.0f,0,%.0f\n", w.id, m.id, available, safety)
		}
	}

	return nil
}

// showHelp displays the help message
func (cmd *GenerateCommand) showHelp() {
	fmt.Printf(`Scenario Generator - Random supply-network test data

USAGE:
    planner generate [OPTIONS]

OPTIONS:
    -gen-warehouses <N>   Number of warehouses to generate (default: 5, max: %d)
    -gen-materials <N>    Number of materials to generate (default: 10)
    -gen-vendors <N>      Number of vendors to generate (default: 8)
    -gen-demands <N>      Number of demand lines to generate (default: 20)
    -gen-coverage <F>     Stock coverage multiplier relative to demand (default: 0.6)
    -output <DIR>         Output directory for generated files (required)
    -seed <N>             Random seed for reproducible generation (optional)
    -verbose              Enable verbose output
    -help                 Show this help message

EXAMPLES:
    # Generate a small test scenario
    planner generate -output ./scenarios/small

    # Generate a larger understocked network
    planner generate -gen-warehouses 12 -gen-materials 30 -gen-vendors 15 \
        -gen-demands 100 -gen-coverage 0.3 -output ./scenarios/stressed

    # Generate a reproducible scenario
    planner generate -output ./scenarios/repro -seed 12345
`, len(cities))
}
