package entities

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Warehouse represents a stocking location in the supply network.
// Per-material stock lives in StockLevel records; the warehouse itself is
// read-only reference data during a decision cycle.
type Warehouse struct {
	ID          string
	Name        string
	Location    orb.Point
	Region      string
	State       string
	Capacity    float64
	Reliability float64 // historical fulfilment reliability in [0,1], 0 = unknown
}

// NewWarehouse creates a validated Warehouse
func NewWarehouse(
	id, name string,
	location orb.Point,
	region, state string,
	capacity float64,
) (*Warehouse, error) {
	if id == "" {
		return nil, fmt.Errorf("warehouse id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("warehouse name cannot be empty")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative, got %f", capacity)
	}

	return &Warehouse{
		ID:       id,
		Name:     name,
		Location: location,
		Region:   region,
		State:    state,
		Capacity: capacity,
	}, nil
}

// StockLevel represents the inventory position of one material at one
// warehouse. Available stock is what remains after reservations.
type StockLevel struct {
	WarehouseID       string
	MaterialID        string
	QuantityAvailable float64
	QuantityReserved  float64
	SafetyStock       float64
}

// NewStockLevel creates a validated StockLevel
func NewStockLevel(
	warehouseID, materialID string,
	available, reserved, safetyStock float64,
) (*StockLevel, error) {
	if warehouseID == "" {
		return nil, fmt.Errorf("warehouse id cannot be empty")
	}
	if materialID == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if available < 0 {
		return nil, fmt.Errorf("available quantity cannot be negative, got %f", available)
	}
	if reserved < 0 {
		return nil, fmt.Errorf("reserved quantity cannot be negative, got %f", reserved)
	}
	if safetyStock < 0 {
		return nil, fmt.Errorf("safety stock cannot be negative, got %f", safetyStock)
	}

	return &StockLevel{
		WarehouseID:       warehouseID,
		MaterialID:        materialID,
		QuantityAvailable: available,
		QuantityReserved:  reserved,
		SafetyStock:       safetyStock,
	}, nil
}

// Available returns the quantity free for new allocations
func (s *StockLevel) Available() float64 {
	avail := s.QuantityAvailable - s.QuantityReserved
	if avail < 0 {
		return 0
	}
	return avail
}

// Usable returns the quantity that can leave the warehouse without
// breaching its safety stock
func (s *StockLevel) Usable() float64 {
	usable := s.Available() - s.SafetyStock
	if usable < 0 {
		return 0
	}
	return usable
}
