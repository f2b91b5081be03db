// Package config holds the versioned static tables the decision engine is
// parameterized with: transport and tax rates, regional sourcing rules,
// scoring weights, and discount tiers. Tables are plain data constructed
// once and injected into each engine; nothing in this package is mutable
// process-wide state.
package config

import (
	"fmt"

	"github.com/stockpilot/engine/pkg/domain/entities"
)

// StrategyWeights is the (cost, time, reliability) weight triple applied
// by one procurement strategy. The three weights sum to 1.
type StrategyWeights struct {
	Cost        float64
	Time        float64
	Reliability float64
}

// DiscountTier maps a minimum batched unit count to a bulk discount rate
type DiscountTier struct {
	MinUnits float64
	Rate     float64
}

// BulkFactorTier maps a minimum transfer quantity to a transport cost
// multiplier below 1
type BulkFactorTier struct {
	MinUnits float64
	Factor   float64
}

// Tables carries every static parameter of the decision engine
type Tables struct {
	// Transport cost model
	TransportRates        map[string]float64 // per-km rate by material category
	FallbackTransportRate float64            // for categories not in the table
	BulkFactorTiers       []BulkFactorTier   // descending by MinUnits
	AvgSpeedKmph          float64
	TrafficBuffer         float64 // multiplier on pure driving time
	HandlingHours         float64 // fixed loading/unloading time
	TransitKmPerDay       float64 // converts distance to delivery days
	VendorPerKmRate       float64
	VendorLoadingCost     float64
	UrgentTransportFactor float64

	// Tax
	GSTRates       map[string]float64 // rate by material category
	DefaultGSTRate float64

	// Regional sourcing restrictions
	RestrictedStates map[string]bool // remote or weather-constrained regions
	RestrictedMaxKm  float64         // restricted sources allowed within this radius

	// Inventory triggers
	ServiceLevelZ            float64 // Z-score for the target service level
	VariabilityCoefficient   float64
	DefaultDailyDemand       float64
	BufferDays               float64
	MaxStockMultiplier       float64 // default max stock as a multiple of reorder point
	SiteWeights              map[string]float64 // demand weight by consumption-site capacity class
	SiteDemandSlope          float64
	MaxDemandMultiplier      float64
	ExpediteSavingsRate      float64
	AnnualHoldingCostRate    float64
	DefaultSourceReliability float64

	// Transfer scoring weights
	DistanceWeight     float64
	CostWeight         float64
	AvailabilityWeight float64
	ReliabilityWeight  float64

	// Procurement strategies
	StrategyWeights map[entities.Strategy]StrategyWeights

	// Order batching
	BatchWindowDays        int
	DiscountTiers          []DiscountTier // descending by MinUnits
	PurchaseFreightSavings float64
	TransferFreightSavings float64
}

// Default returns the standard parameter tables
func Default() Tables {
	return Tables{
		TransportRates: map[string]float64{
			"transformer": 5.0,
			"cable":       2.5,
			"conductor":   2.0,
			"pole":        4.0,
			"meter":       1.5,
			"insulator":   1.8,
			"hardware":    1.2,
		},
		FallbackTransportRate: 2.0,
		BulkFactorTiers: []BulkFactorTier{
			{MinUnits: 1000, Factor: 0.85},
			{MinUnits: 500, Factor: 0.90},
			{MinUnits: 100, Factor: 0.95},
		},
		AvgSpeedKmph: 45,
		TrafficBuffer: 1.15,
		HandlingHours: 4,
		TransitKmPerDay: 400,
		VendorPerKmRate: 3.0,
		VendorLoadingCost: 1500,
		UrgentTransportFactor: 1.5,

		GSTRates: map[string]float64{
			"transformer": 0.18,
			"cable":       0.18,
			"conductor":   0.18,
			"pole":        0.12,
			"meter":       0.18,
			"insulator":   0.12,
			"hardware":    0.28,
		},
		DefaultGSTRate: 0.18,

		RestrictedStates: map[string]bool{
			"Himachal Pradesh":  true,
			"Uttarakhand":       true,
			"Arunachal Pradesh": true,
			"Sikkim":            true,
			"Ladakh":            true,
		},
		RestrictedMaxKm: 300,

		ServiceLevelZ: 1.65, // 95% service level
		VariabilityCoefficient: 0.25,
		DefaultDailyDemand: 10,
		BufferDays: 7,
		MaxStockMultiplier: 2.5,
		SiteWeights: map[string]float64{
			"11kV":  1.0,
			"33kV":  1.5,
			"66kV":  2.0,
			"132kV": 3.0,
		},
		SiteDemandSlope: 0.1,
		MaxDemandMultiplier: 3.0,
		ExpediteSavingsRate: 0.35,
		AnnualHoldingCostRate: 0.20,
		DefaultSourceReliability: 0.9,

		DistanceWeight: 0.35,
		CostWeight: 0.35,
		AvailabilityWeight: 0.20,
		ReliabilityWeight: 0.10,

		StrategyWeights: map[entities.Strategy]StrategyWeights{
			entities.StrategyBalanced:    {Cost: 0.40, Time: 0.30, Reliability: 0.30},
			entities.StrategyCostFocused: {Cost: 0.70, Time: 0.10, Reliability: 0.20},
			entities.StrategyRush:        {Cost: 0.15, Time: 0.70, Reliability: 0.15},
			entities.StrategyRiskAverse:  {Cost: 0.20, Time: 0.20, Reliability: 0.60},
		},

		BatchWindowDays: 3,
		DiscountTiers: []DiscountTier{
			{MinUnits: 1000, Rate: 0.10},
			{MinUnits: 500, Rate: 0.05},
			{MinUnits: 200, Rate: 0.02},
		},
		PurchaseFreightSavings: 0.20,
		TransferFreightSavings: 0.30,
	}
}

// Validate checks the tables for internal consistency
func (t Tables) Validate() error {
	if t.FallbackTransportRate <= 0 {
		return fmt.Errorf("fallback transport rate must be positive, got %f", t.FallbackTransportRate)
	}
	if t.AvgSpeedKmph <= 0 {
		return fmt.Errorf("average speed must be positive, got %f", t.AvgSpeedKmph)
	}
	if t.TransitKmPerDay <= 0 {
		return fmt.Errorf("transit km per day must be positive, got %f", t.TransitKmPerDay)
	}
	if t.DefaultGSTRate < 0 || t.DefaultGSTRate > 1 {
		return fmt.Errorf("default GST rate must be in [0,1], got %f", t.DefaultGSTRate)
	}
	if t.ServiceLevelZ <= 0 {
		return fmt.Errorf("service level Z must be positive, got %f", t.ServiceLevelZ)
	}
	if t.MaxDemandMultiplier < 1 {
		return fmt.Errorf("max demand multiplier must be at least 1, got %f", t.MaxDemandMultiplier)
	}

	weightSum := t.DistanceWeight + t.CostWeight + t.AvailabilityWeight + t.ReliabilityWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("transfer scoring weights must sum to 1, got %f", weightSum)
	}

	for strategy, w := range t.StrategyWeights {
		if !strategy.Valid() {
			return fmt.Errorf("unknown strategy %d in weight table", strategy)
		}
		sum := w.Cost + w.Time + w.Reliability
		if sum < 0.999 || sum > 1.001 {
			return fmt.Errorf("strategy %s weights must sum to 1, got %f", strategy, sum)
		}
	}

	for i := 1; i < len(t.DiscountTiers); i++ {
		if t.DiscountTiers[i].MinUnits >= t.DiscountTiers[i-1].MinUnits {
			return fmt.Errorf("discount tiers must be in descending unit order")
		}
	}
	for i := 1; i < len(t.BulkFactorTiers); i++ {
		if t.BulkFactorTiers[i].MinUnits >= t.BulkFactorTiers[i-1].MinUnits {
			return fmt.Errorf("bulk factor tiers must be in descending unit order")
		}
	}

	return nil
}

// WeightsFor returns the weight triple for a strategy, failing on members
// outside the closed set
func (t Tables) WeightsFor(strategy entities.Strategy) (StrategyWeights, error) {
	w, ok := t.StrategyWeights[strategy]
	if !ok {
		return StrategyWeights{}, fmt.Errorf("no weights configured for strategy %s", strategy)
	}
	return w, nil
}

// TransportRateFor returns the per-km rate for a material category
func (t Tables) TransportRateFor(category string) float64 {
	if rate, ok := t.TransportRates[category]; ok {
		return rate
	}
	return t.FallbackTransportRate
}

// GSTRateFor returns the GST rate for a material category
func (t Tables) GSTRateFor(category string) float64 {
	if rate, ok := t.GSTRates[category]; ok {
		return rate
	}
	return t.DefaultGSTRate
}

// BulkFactorFor returns the transport cost multiplier for a quantity
func (t Tables) BulkFactorFor(quantity float64) float64 {
	for _, tier := range t.BulkFactorTiers {
		if quantity >= tier.MinUnits {
			return tier.Factor
		}
	}
	return 1.0
}

// DiscountRateFor returns the bulk discount rate for a batched unit count
func (t Tables) DiscountRateFor(totalUnits float64) float64 {
	for _, tier := range t.DiscountTiers {
		if totalUnits >= tier.MinUnits {
			return tier.Rate
		}
	}
	return 0
}

// SiteWeightFor returns the demand weight of a consumption-site capacity
// class, defaulting to 1.0 for unknown classes
func (t Tables) SiteWeightFor(capacityClass string) float64 {
	if w, ok := t.SiteWeights[capacityClass]; ok {
		return w
	}
	return 1.0
}
