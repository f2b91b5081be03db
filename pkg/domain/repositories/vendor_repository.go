package repositories

import "github.com/stockpilot/engine/pkg/domain/entities"

// VendorRepository provides access to vendor reference data
type VendorRepository interface {
	GetVendor(id string) (*entities.Vendor, error)
	GetVendorsForMaterial(materialID string) ([]*entities.Vendor, error)
	GetAllVendors() ([]*entities.Vendor, error)
	LoadVendors(vendors []*entities.Vendor) error
}
