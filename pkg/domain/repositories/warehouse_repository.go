package repositories

import "github.com/stockpilot/engine/pkg/domain/entities"

// WarehouseRepository provides access to warehouse reference data
type WarehouseRepository interface {
	GetWarehouse(id string) (*entities.Warehouse, error)
	GetAllWarehouses() ([]*entities.Warehouse, error)
	LoadWarehouses(warehouses []*entities.Warehouse) error
}
