package memory

import (
	"fmt"

	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
)

// MaterialRepository provides in-memory material storage
type MaterialRepository struct {
	materials map[string]*entities.Material
}

// NewMaterialRepository creates a new in-memory material repository
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{
		materials: map[string]*entities.Material{},
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// LoadMaterials loads materials into the repository
func (r *MaterialRepository) LoadMaterials(materials []*entities.Material) error {
	for _, m := range materials {
		r.materials[m.ID] = m
	}
	return nil
}

// GetMaterial returns the material with the given id
func (r *MaterialRepository) GetMaterial(id string) (*entities.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, fmt.Errorf("material not found: %s", id)
	}
	return m, nil
}

// GetAllMaterials returns all materials
func (r *MaterialRepository) GetAllMaterials() ([]*entities.Material, error) {
	all := make([]*entities.Material, 0, len(r.materials))
	for _, m := range r.materials {
		all = append(all, m)
	}
	return all, nil
}
