package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Material represents purchasable reference data for one stock-keeping
// material. Materials are immutable within a single decision cycle.
type Material struct {
	ID            string
	Name          string
	Category      string
	Unit          string
	UnitPrice     decimal.Decimal
	LeadTimeDays  int
	ShelfLifeDays int
}

// NewMaterial creates a validated Material
func NewMaterial(
	id, name, category, unit string,
	unitPrice decimal.Decimal,
	leadTimeDays, shelfLifeDays int,
) (*Material, error) {
	if id == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}

	return &Material{
		ID:            id,
		Name:          name,
		Category:      category,
		Unit:          unit,
		UnitPrice:     unitPrice,
		LeadTimeDays:  leadTimeDays,
		ShelfLifeDays: shelfLifeDays,
	}, nil
}

// UnitPriceFloat returns the unit price as a float64 for scoring math
func (m *Material) UnitPriceFloat() float64 {
	return m.UnitPrice.InexactFloat64()
}
