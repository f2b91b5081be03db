package memory

import (
	"fmt"

	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
)

// VendorRepository provides in-memory vendor storage
type VendorRepository struct {
	vendors map[string]*entities.Vendor
}

// NewVendorRepository creates a new in-memory vendor repository
func NewVendorRepository() *VendorRepository {
	return &VendorRepository{
		vendors: map[string]*entities.Vendor{},
	}
}

// Verify interface compliance
var _ repositories.VendorRepository = (*VendorRepository)(nil)

// LoadVendors loads vendors into the repository
func (r *VendorRepository) LoadVendors(vendors []*entities.Vendor) error {
	for _, v := range vendors {
		r.vendors[v.ID] = v
	}
	return nil
}

// GetVendor returns the vendor with the given id
func (r *VendorRepository) GetVendor(id string) (*entities.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, fmt.Errorf("vendor not found: %s", id)
	}
	return v, nil
}

// GetVendorsForMaterial returns all vendors that list a price for the
// material
func (r *VendorRepository) GetVendorsForMaterial(materialID string) ([]*entities.Vendor, error) {
	var matches []*entities.Vendor
	for _, v := range r.vendors {
		if v.Supplies(materialID) {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

// GetAllVendors returns all vendors
func (r *VendorRepository) GetAllVendors() ([]*entities.Vendor, error) {
	all := make([]*entities.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		all = append(all, v)
	}
	return all, nil
}
