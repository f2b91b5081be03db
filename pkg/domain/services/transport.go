package services

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/stockpilot/engine/pkg/config"
)

// TransportEstimator provides the distance, cost, and ETA primitives every
// other engine component builds on. It is stateless apart from its
// configuration tables.
type TransportEstimator struct {
	tables config.Tables
}

// NewTransportEstimator creates a TransportEstimator with the given tables
func NewTransportEstimator(tables config.Tables) *TransportEstimator {
	return &TransportEstimator{tables: tables}
}

// DistanceKm returns the geodesic (haversine) distance between two points
// in kilometers. Symmetric in its arguments; zero for identical points.
func (e *TransportEstimator) DistanceKm(a, b orb.Point) float64 {
	return geo.Distance(a, b) / 1000.0
}

// TransferCost estimates the cost of trucking a quantity of a material
// category over a distance between warehouses. Larger loads earn a bulk
// factor below 1; loads beyond 100 units scale the trip count up.
func (e *TransportEstimator) TransferCost(distanceKm float64, category string, quantity float64) float64 {
	rate := e.tables.TransportRateFor(category)
	bulkFactor := e.tables.BulkFactorFor(quantity)
	loadFactor := math.Max(1, quantity/100.0)
	return distanceKm * rate * bulkFactor * loadFactor
}

// ETAHours estimates door-to-door transfer time: driving at the configured
// average speed with a traffic buffer, plus fixed handling time.
func (e *TransportEstimator) ETAHours(distanceKm float64) float64 {
	return distanceKm/e.tables.AvgSpeedKmph*e.tables.TrafficBuffer + e.tables.HandlingHours
}

// TransitDays converts a transfer distance into whole delivery days, never
// below one day.
func (e *TransportEstimator) TransitDays(distanceKm float64) int {
	days := int(math.Ceil(distanceKm / e.tables.TransitKmPerDay))
	if days < 1 {
		return 1
	}
	return days
}

// VendorTransportCost estimates inbound freight from a vendor: a per-km
// rate plus a fixed loading charge, scaled by trip count for large
// quantities. Urgent orders pay the configured express factor.
func (e *TransportEstimator) VendorTransportCost(distanceKm, quantity float64, urgent bool) float64 {
	trips := math.Max(1, quantity/100.0)
	cost := distanceKm*e.tables.VendorPerKmRate*trips + e.tables.VendorLoadingCost
	if urgent {
		cost *= e.tables.UrgentTransportFactor
	}
	return cost
}
