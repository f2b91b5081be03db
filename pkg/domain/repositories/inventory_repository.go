package repositories

import "github.com/stockpilot/engine/pkg/domain/entities"

// InventoryRepository provides access to per-warehouse stock positions.
//
// GetStockLevel returns (nil, nil) when no record exists for the pair;
// callers treat a missing record as zero stock.
//
// TryReserve is the atomic compare-and-set the decision engine's output
// depends on: a decision is advisory until the reservation succeeds, and a
// false result means the caller must re-plan against fresh stock.
type InventoryRepository interface {
	GetStockLevel(warehouseID, materialID string) (*entities.StockLevel, error)
	GetStockLevelsForMaterial(materialID string) ([]*entities.StockLevel, error)
	GetStockLevelsForWarehouse(warehouseID string) ([]*entities.StockLevel, error)
	LoadStockLevels(levels []*entities.StockLevel) error
	TryReserve(warehouseID, materialID string, quantity float64) (bool, error)
	ReleaseReservation(warehouseID, materialID string, quantity float64) error
}
