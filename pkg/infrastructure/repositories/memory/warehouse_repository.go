package memory

import (
	"fmt"

	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
)

// WarehouseRepository provides in-memory warehouse storage
type WarehouseRepository struct {
	warehouses map[string]*entities.Warehouse
}

// NewWarehouseRepository creates a new in-memory warehouse repository
func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{
		warehouses: map[string]*entities.Warehouse{},
	}
}

// Verify interface compliance
var _ repositories.WarehouseRepository = (*WarehouseRepository)(nil)

// LoadWarehouses loads warehouses into the repository
func (r *WarehouseRepository) LoadWarehouses(warehouses []*entities.Warehouse) error {
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return nil
}

// GetWarehouse returns the warehouse with the given id
func (r *WarehouseRepository) GetWarehouse(id string) (*entities.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, fmt.Errorf("warehouse not found: %s", id)
	}
	return w, nil
}

// GetAllWarehouses returns all warehouses
func (r *WarehouseRepository) GetAllWarehouses() ([]*entities.Warehouse, error) {
	all := make([]*entities.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		all = append(all, w)
	}
	return all, nil
}
