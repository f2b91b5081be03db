package entities

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// Vendor represents an external supplier. Read-only reference data.
type Vendor struct {
	ID              string
	Name            string
	Location        orb.Point
	Specializations []string
	Reliability     float64 // delivery reliability in [0,1]
	AvgLeadTimeDays int
	MaxLeadTimeDays int
	PriceFactor     float64 // competitiveness multiplier applied to list prices
	PriceList       map[string]decimal.Decimal
	MinOrderValue   decimal.Decimal
}

// NewVendor creates a validated Vendor
func NewVendor(
	id, name string,
	location orb.Point,
	specializations []string,
	reliability float64,
	avgLeadTimeDays, maxLeadTimeDays int,
	priceFactor float64,
	priceList map[string]decimal.Decimal,
	minOrderValue decimal.Decimal,
) (*Vendor, error) {
	if id == "" {
		return nil, fmt.Errorf("vendor id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("vendor name cannot be empty")
	}
	if reliability < 0 || reliability > 1 {
		return nil, fmt.Errorf("reliability must be in [0,1], got %f", reliability)
	}
	if avgLeadTimeDays < 0 {
		return nil, fmt.Errorf("average lead time cannot be negative, got %d", avgLeadTimeDays)
	}
	if maxLeadTimeDays < avgLeadTimeDays {
		return nil, fmt.Errorf("max lead time %d cannot be below average lead time %d",
			maxLeadTimeDays, avgLeadTimeDays)
	}
	if priceFactor <= 0 {
		priceFactor = 1.0
	}
	if priceList == nil {
		priceList = map[string]decimal.Decimal{}
	}

	return &Vendor{
		ID:              id,
		Name:            name,
		Location:        location,
		Specializations: specializations,
		Reliability:     reliability,
		AvgLeadTimeDays: avgLeadTimeDays,
		MaxLeadTimeDays: maxLeadTimeDays,
		PriceFactor:     priceFactor,
		PriceList:       priceList,
		MinOrderValue:   minOrderValue,
	}, nil
}

// Supplies reports whether the vendor lists a price for the material
func (v *Vendor) Supplies(materialID string) bool {
	_, ok := v.PriceList[materialID]
	return ok
}

// PriceFor returns the effective unit price for a material, with the
// vendor's competitiveness factor applied. The boolean is false when the
// vendor does not list the material.
func (v *Vendor) PriceFor(materialID string) (decimal.Decimal, bool) {
	price, ok := v.PriceList[materialID]
	if !ok {
		return decimal.Zero, false
	}
	return price.Mul(decimal.NewFromFloat(v.PriceFactor)), true
}
