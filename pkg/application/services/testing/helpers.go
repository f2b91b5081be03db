// Package testing provides shared fixtures for the application service
// tests: a small supply network with warehouses across India, a material
// catalog, and vendors with distinct cost/speed/reliability profiles.
package testing

import (
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/infrastructure/repositories/memory"
)

// MustMaterial is a test helper - panics on validation error
func MustMaterial(id, name, category, unit string, price float64, leadTimeDays int) *entities.Material {
	m, err := entities.NewMaterial(id, name, category, unit,
		decimal.NewFromFloat(price), leadTimeDays, 0)
	if err != nil {
		panic(err)
	}
	return m
}

// MustWarehouse is a test helper - panics on validation error
func MustWarehouse(id, name string, lon, lat float64, region, state string, capacity float64) *entities.Warehouse {
	w, err := entities.NewWarehouse(id, name, orb.Point{lon, lat}, region, state, capacity)
	if err != nil {
		panic(err)
	}
	return w
}

// MustVendor is a test helper - panics on validation error
func MustVendor(
	id, name string,
	lon, lat float64,
	reliability float64,
	avgLead, maxLead int,
	prices map[string]float64,
	minOrderValue float64,
) *entities.Vendor {
	priceList := map[string]decimal.Decimal{}
	for materialID, price := range prices {
		priceList[materialID] = decimal.NewFromFloat(price)
	}
	v, err := entities.NewVendor(id, name, orb.Point{lon, lat}, nil,
		reliability, avgLead, maxLead, 1.0, priceList,
		decimal.NewFromFloat(minOrderValue))
	if err != nil {
		panic(err)
	}
	return v
}

// Fixture bundles loaded in-memory repositories for a test scenario
type Fixture struct {
	Materials   *memory.MaterialRepository
	Warehouses  *memory.WarehouseRepository
	Vendors     *memory.VendorRepository
	Inventory   *memory.InventoryRepository
}

// NewNetworkFixture builds the standard five-warehouse test network.
// Distances that matter: Delhi-Jaipur ~240 km, Delhi-Shimla ~270 km
// (Shimla is in a restricted state), Delhi-Mumbai ~1150 km,
// Delhi-Lucknow ~420 km.
func NewNetworkFixture() *Fixture {
	f := &Fixture{
		Materials:  memory.NewMaterialRepository(),
		Warehouses: memory.NewWarehouseRepository(),
		Vendors:    memory.NewVendorRepository(),
		Inventory:  memory.NewInventoryRepository(),
	}

	_ = f.Materials.LoadMaterials([]*entities.Material{
		MustMaterial("MAT-CBL", "11kV XLPE Cable", "cable", "m", 250, 7),
		MustMaterial("MAT-TRF", "100kVA Distribution Transformer", "transformer", "ea", 150000, 30),
		MustMaterial("MAT-MTR", "Single Phase Smart Meter", "meter", "ea", 1200, 14),
	})

	_ = f.Warehouses.LoadWarehouses([]*entities.Warehouse{
		MustWarehouse("WH-DEL", "Delhi Central Store", 77.1025, 28.7041, "North", "Delhi", 100000),
		MustWarehouse("WH-JAI", "Jaipur Regional Store", 75.7873, 26.9124, "North", "Rajasthan", 60000),
		MustWarehouse("WH-MUM", "Mumbai Regional Store", 72.8777, 19.0760, "West", "Maharashtra", 80000),
		MustWarehouse("WH-SML", "Shimla Hill Store", 77.1734, 31.1048, "North", "Himachal Pradesh", 20000),
		MustWarehouse("WH-LKO", "Lucknow Regional Store", 80.9462, 26.8467, "North", "Uttar Pradesh", 50000),
	})

	_ = f.Vendors.LoadVendors([]*entities.Vendor{
		// reliable mid-market supplier near Delhi
		MustVendor("VND-ALP", "Alpha Electricals", 77.3910, 28.5355, 0.95, 10, 20,
			map[string]float64{"MAT-CBL": 245, "MAT-TRF": 148000, "MAT-MTR": 1150}, 50000),
		// cheapest, but slow and unreliable
		MustVendor("VND-BET", "Beta Industries", 72.5714, 23.0225, 0.60, 20, 45,
			map[string]float64{"MAT-CBL": 210, "MAT-TRF": 135000, "MAT-MTR": 980}, 25000),
		// express supplier at a premium
		MustVendor("VND-GAM", "Gamma Supply Co", 77.2090, 28.6139, 0.90, 3, 6,
			map[string]float64{"MAT-CBL": 290, "MAT-MTR": 1400}, 10000),
	})

	return f
}

// LoadStock is a convenience for seeding per-test stock positions
func (f *Fixture) LoadStock(levels ...*entities.StockLevel) {
	_ = f.Inventory.LoadStockLevels(levels)
}

// Stock builds a StockLevel without reservation bookkeeping
func Stock(warehouseID, materialID string, available, safetyStock float64) *entities.StockLevel {
	return &entities.StockLevel{
		WarehouseID:       warehouseID,
		MaterialID:        materialID,
		QuantityAvailable: available,
		SafetyStock:       safetyStock,
	}
}
