package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/domain/entities"
)

// Loader handles loading supply network data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMaterials loads the material catalog from a CSV file
func (l *Loader) LoadMaterials(filename string) ([]*entities.Material, error) {
	records, err := readAll(filename, "materials")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "category", "unit", "unit_price", "lead_time_days", "shelf_life_days"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("materials CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var materials []*entities.Material
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("materials CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		material, err := parseMaterial(record)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		materials = append(materials, material)
	}

	return materials, nil
}

// LoadWarehouses loads warehouses from a CSV file
func (l *Loader) LoadWarehouses(filename string) ([]*entities.Warehouse, error) {
	records, err := readAll(filename, "warehouses")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "longitude", "latitude", "region", "state", "capacity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("warehouses CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var warehouses []*entities.Warehouse
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("warehouses CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		warehouse, err := parseWarehouse(record)
		if err != nil {
			return nil, fmt.Errorf("warehouses CSV row %d: %w", i+2, err)
		}
		warehouses = append(warehouses, warehouse)
	}

	return warehouses, nil
}

// LoadVendors loads vendors and their price lists from two CSV files.
// The price file carries one (vendor, material, price) row per listing.
func (l *Loader) LoadVendors(vendorsFile, pricesFile string) ([]*entities.Vendor, error) {
	priceLists, err := l.loadPriceLists(pricesFile)
	if err != nil {
		return nil, err
	}

	records, err := readAll(vendorsFile, "vendors")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "longitude", "latitude", "reliability", "avg_lead_time_days", "max_lead_time_days", "price_factor", "min_order_value"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("vendors CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var vendors []*entities.Vendor
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("vendors CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		vendor, err := parseVendor(record, priceLists[record[0]])
		if err != nil {
			return nil, fmt.Errorf("vendors CSV row %d: %w", i+2, err)
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}

// LoadStockLevels loads per-warehouse stock positions from a CSV file
func (l *Loader) LoadStockLevels(filename string) ([]*entities.StockLevel, error) {
	records, err := readAll(filename, "stock")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"warehouse_id", "material_id", "quantity_available", "quantity_reserved", "safety_stock"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("stock CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var levels []*entities.StockLevel
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("stock CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		level, err := parseStockLevel(record)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		levels = append(levels, level)
	}

	return levels, nil
}

// LoadDemands loads demand requirements from a CSV file
func (l *Loader) LoadDemands(filename string) ([]entities.Demand, error) {
	records, err := readAll(filename, "demands")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"material_id", "destination_id", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("demands CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var demands []entities.Demand
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("demands CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		quantity, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: invalid quantity: %s", i+2, record[2])
		}
		if quantity <= 0 {
			return nil, fmt.Errorf("demands CSV row %d: quantity must be positive, got %s", i+2, record[2])
		}
		demands = append(demands, entities.Demand{
			MaterialID:    record[0],
			DestinationID: record[1],
			Quantity:      quantity,
		})
	}

	return demands, nil
}

// loadPriceLists reads the vendor price file into per-vendor price maps
func (l *Loader) loadPriceLists(filename string) (map[string]map[string]decimal.Decimal, error) {
	records, err := readAll(filename, "vendor prices")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"vendor_id", "material_id", "unit_price"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("vendor prices CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	priceLists := map[string]map[string]decimal.Decimal{}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("vendor prices CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		price, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("vendor prices CSV row %d: invalid unit_price: %s", i+2, record[2])
		}
		vendorID := record[0]
		if priceLists[vendorID] == nil {
			priceLists[vendorID] = map[string]decimal.Decimal{}
		}
		priceLists[vendorID][record[1]] = price
	}

	return priceLists, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseMaterial(record []string) (*entities.Material, error) {
	unitPrice, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_price: %s", record[4])
	}
	leadTimeDays, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[5])
	}
	shelfLifeDays, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid shelf_life_days: %s", record[6])
	}

	return entities.NewMaterial(record[0], record[1], record[2], record[3],
		unitPrice, leadTimeDays, shelfLifeDays)
}

func parseWarehouse(record []string) (*entities.Warehouse, error) {
	lon, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %s", record[2])
	}
	lat, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %s", record[3])
	}
	capacity, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid capacity: %s", record[6])
	}

	return entities.NewWarehouse(record[0], record[1], orb.Point{lon, lat},
		record[4], record[5], capacity)
}

func parseVendor(record []string, priceList map[string]decimal.Decimal) (*entities.Vendor, error) {
	lon, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %s", record[2])
	}
	lat, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %s", record[3])
	}
	reliability, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid reliability: %s", record[4])
	}
	avgLead, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid avg_lead_time_days: %s", record[5])
	}
	maxLead, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid max_lead_time_days: %s", record[6])
	}
	priceFactor, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price_factor: %s", record[7])
	}
	minOrderValue, err := decimal.NewFromString(record[8])
	if err != nil {
		return nil, fmt.Errorf("invalid min_order_value: %s", record[8])
	}

	return entities.NewVendor(record[0], record[1], orb.Point{lon, lat}, nil,
		reliability, avgLead, maxLead, priceFactor, priceList, minOrderValue)
}

func parseStockLevel(record []string) (*entities.StockLevel, error) {
	available, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity_available: %s", record[2])
	}
	reserved, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity_reserved: %s", record[3])
	}
	safetyStock, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid safety_stock: %s", record[4])
	}

	return entities.NewStockLevel(record[0], record[1], available, reserved, safetyStock)
}
