package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
)

// InventoryRepository provides in-memory stock storage. Reservation
// mutations are serialized under a mutex so TryReserve behaves as the
// atomic compare-and-set the engine's advisory decisions require.
type InventoryRepository struct {
	mu     sync.Mutex
	levels map[string]*entities.StockLevel
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		levels: map[string]*entities.StockLevel{},
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

func key(warehouseID, materialID string) string {
	return warehouseID + "|" + materialID
}

// LoadStockLevels loads stock levels into the repository
func (r *InventoryRepository) LoadStockLevels(levels []*entities.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, level := range levels {
		copied := *level
		r.levels[key(level.WarehouseID, level.MaterialID)] = &copied
	}
	return nil
}

// GetStockLevel returns the stock position for one pair, or (nil, nil)
// when no record exists
func (r *InventoryRepository) GetStockLevel(warehouseID, materialID string) (*entities.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.levels[key(warehouseID, materialID)]
	if !ok {
		return nil, nil
	}
	copied := *level
	return &copied, nil
}

// GetStockLevelsForMaterial returns every warehouse's position for a
// material, sorted by warehouse id for stable iteration
func (r *InventoryRepository) GetStockLevelsForMaterial(materialID string) ([]*entities.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*entities.StockLevel
	for _, level := range r.levels {
		if level.MaterialID == materialID {
			copied := *level
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].WarehouseID < matches[j].WarehouseID
	})
	return matches, nil
}

// GetStockLevelsForWarehouse returns every material position at a
// warehouse, sorted by material id
func (r *InventoryRepository) GetStockLevelsForWarehouse(warehouseID string) ([]*entities.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*entities.StockLevel
	for _, level := range r.levels {
		if level.WarehouseID == warehouseID {
			copied := *level
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MaterialID < matches[j].MaterialID
	})
	return matches, nil
}

// TryReserve atomically reserves quantity against the available stock of
// a pair. Returns false without mutating anything when the available
// stock cannot cover the reservation.
func (r *InventoryRepository) TryReserve(warehouseID, materialID string, quantity float64) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("reservation quantity must be positive, got %f", quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	level, ok := r.levels[key(warehouseID, materialID)]
	if !ok {
		return false, nil
	}
	if level.Available() < quantity {
		return false, nil
	}

	level.QuantityReserved += quantity
	return true, nil
}

// ReleaseReservation returns previously reserved quantity to the
// available pool
func (r *InventoryRepository) ReleaseReservation(warehouseID, materialID string, quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("release quantity must be positive, got %f", quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	level, ok := r.levels[key(warehouseID, materialID)]
	if !ok {
		return fmt.Errorf("no stock record for %s at %s", materialID, warehouseID)
	}
	if level.QuantityReserved < quantity {
		return fmt.Errorf("cannot release %f, only %f reserved", quantity, level.QuantityReserved)
	}

	level.QuantityReserved -= quantity
	return nil
}
