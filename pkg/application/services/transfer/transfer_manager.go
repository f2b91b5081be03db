// Package transfer finds and scores candidate source warehouses for
// moving stock to a destination, including regional sourcing restrictions
// and order splitting across multiple sources.
package transfer

import (
	"fmt"
	"math"
	"sort"

	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
	"github.com/stockpilot/engine/pkg/domain/services"
)

// Manager ranks transfer sources for a requirement. All reads go through
// the injected repositories; the manager itself holds no state beyond its
// configuration.
type Manager struct {
	tables        config.Tables
	estimator     *services.TransportEstimator
	warehouseRepo repositories.WarehouseRepository
	materialRepo  repositories.MaterialRepository
	inventoryRepo repositories.InventoryRepository
}

// Request describes one sourcing query
type Request struct {
	MaterialID    string
	DestinationID string
	Quantity      float64
	MaxOptions    int
	MaxDistanceKm float64 // 0 = unlimited
}

// NewManager creates a transfer manager
func NewManager(
	tables config.Tables,
	estimator *services.TransportEstimator,
	warehouseRepo repositories.WarehouseRepository,
	materialRepo repositories.MaterialRepository,
	inventoryRepo repositories.InventoryRepository,
) *Manager {
	return &Manager{
		tables:        tables,
		estimator:     estimator,
		warehouseRepo: warehouseRepo,
		materialRepo:  materialRepo,
		inventoryRepo: inventoryRepo,
	}
}

// FindOptions returns up to MaxOptions candidate sources for the request,
// scored and sorted best first. An empty slice (not an error) means no
// warehouse can supply the material within the constraints.
func (m *Manager) FindOptions(req Request) ([]entities.TransferOption, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %f", req.Quantity)
	}
	if req.MaterialID == "" || req.DestinationID == "" {
		return nil, fmt.Errorf("material and destination ids cannot be empty")
	}

	material, err := m.materialRepo.GetMaterial(req.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get material %s: %w", req.MaterialID, err)
	}

	destination, err := m.warehouseRepo.GetWarehouse(req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get destination %s: %w", req.DestinationID, err)
	}

	levels, err := m.inventoryRepo.GetStockLevelsForMaterial(req.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock levels for %s: %w", req.MaterialID, err)
	}

	options := make([]entities.TransferOption, 0, len(levels))
	for _, level := range levels {
		if level.WarehouseID == req.DestinationID {
			continue
		}
		available := level.Available()
		if available <= 0 {
			continue
		}

		source, err := m.warehouseRepo.GetWarehouse(level.WarehouseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get source %s: %w", level.WarehouseID, err)
		}

		distance := m.estimator.DistanceKm(source.Location, destination.Location)
		if req.MaxDistanceKm > 0 && distance > req.MaxDistanceKm {
			continue
		}
		if m.tables.RestrictedStates[source.State] && distance > m.tables.RestrictedMaxKm {
			continue
		}

		quantity := math.Min(available, req.Quantity)
		transportCost := m.estimator.TransferCost(distance, material.Category, quantity)
		totalCost := transportCost + material.UnitPriceFloat()*quantity

		reliability := source.Reliability
		if reliability <= 0 {
			reliability = m.tables.DefaultSourceReliability
		}

		options = append(options, entities.TransferOption{
			SourceID:      source.ID,
			DestinationID: req.DestinationID,
			MaterialID:    req.MaterialID,
			Quantity:      quantity,
			AvailableQty:  available,
			DistanceKm:    distance,
			TransportCost: transportCost,
			TotalCost:     totalCost,
			ETAHours:      m.estimator.ETAHours(distance),
			Reliability:   reliability,
		})
	}

	if len(options) == 0 {
		return nil, nil
	}

	m.scoreOptions(options, req.Quantity)

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	if req.MaxOptions > 0 && len(options) > req.MaxOptions {
		options = options[:req.MaxOptions]
	}
	return options, nil
}

// CheapestOption returns the feasible option with the lowest transport
// cost, or nil when none exists
func (m *Manager) CheapestOption(req Request) (*entities.TransferOption, error) {
	options, err := m.FindOptions(req)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, nil
	}

	cheapest := options[0]
	for _, opt := range options[1:] {
		if opt.TransportCost < cheapest.TransportCost {
			cheapest = opt
		}
	}
	return &cheapest, nil
}

// RecommendProcurement builds a transfer plan for the requirement. When
// the best-scored source can cover the full quantity the plan has a single
// allocation; otherwise quantity is allocated greedily down the ranking.
// A plan that still falls short carries an explicit shortage warning.
func (m *Manager) RecommendProcurement(req Request) (*entities.TransferPlan, error) {
	options, err := m.FindOptions(req)
	if err != nil {
		return nil, err
	}

	plan := &entities.TransferPlan{
		MaterialID:       req.MaterialID,
		DestinationID:    req.DestinationID,
		RequiredQuantity: req.Quantity,
	}
	if len(options) == 0 {
		plan.ShortfallQty = req.Quantity
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("no source warehouse can supply %s", req.MaterialID))
		return plan, nil
	}

	if options[0].AvailableQty >= req.Quantity {
		alloc := options[0]
		alloc.Quantity = req.Quantity
		plan.Allocations = []entities.TransferOption{alloc}
		plan.FulfilledQty = req.Quantity
		return plan, nil
	}

	remaining := req.Quantity
	for _, opt := range options {
		if remaining <= 0 {
			break
		}
		alloc := opt
		alloc.Quantity = math.Min(opt.AvailableQty, remaining)
		plan.Allocations = append(plan.Allocations, alloc)
		plan.FulfilledQty += alloc.Quantity
		remaining -= alloc.Quantity
	}
	plan.ShortfallQty = remaining

	if remaining > 0 {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("network supply short by %.1f of %.1f required for %s",
				remaining, req.Quantity, req.MaterialID))
	}
	return plan, nil
}

// scoreOptions assigns the multi-criteria optimization score, normalizing
// distance and total cost against the maxima observed among the candidates
func (m *Manager) scoreOptions(options []entities.TransferOption, required float64) {
	maxDistance := 0.0
	maxCost := 0.0
	for _, opt := range options {
		if opt.DistanceKm > maxDistance {
			maxDistance = opt.DistanceKm
		}
		if opt.TotalCost > maxCost {
			maxCost = opt.TotalCost
		}
	}

	for i := range options {
		distanceScore := 1.0
		if maxDistance > 0 {
			distanceScore = 1.0 - options[i].DistanceKm/maxDistance
		}
		costScore := 1.0
		if maxCost > 0 {
			costScore = 1.0 - options[i].TotalCost/maxCost
		}
		availabilityScore := math.Min(1.0, options[i].AvailableQty/required)

		options[i].Score = m.tables.DistanceWeight*distanceScore +
			m.tables.CostWeight*costScore +
			m.tables.AvailabilityWeight*availabilityScore +
			m.tables.ReliabilityWeight*options[i].Reliability
	}
}
