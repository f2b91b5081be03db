package repositories

import "github.com/stockpilot/engine/pkg/domain/entities"

// MaterialRepository provides access to material reference data
type MaterialRepository interface {
	GetMaterial(id string) (*entities.Material, error)
	GetAllMaterials() ([]*entities.Material, error)
	LoadMaterials(materials []*entities.Material) error
}
