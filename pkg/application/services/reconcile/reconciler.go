// Package reconcile decides transfer-versus-procure for a single
// (material, destination, quantity) demand using network-wide stock.
package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/application/services/transfer"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
	"github.com/stockpilot/engine/pkg/domain/services"
)

// Reconciler applies the transfer-first policy: local stock, then the
// cheapest network transfer, then external procurement
type Reconciler struct {
	estimator     *services.TransportEstimator
	inventoryRepo repositories.InventoryRepository
	transfers     *transfer.Manager
}

// Request describes one demand to reconcile. ProcurementCost, when
// positive, is an externally priced alternative used for the
// transfer-versus-procure comparison.
type Request struct {
	MaterialID      string
	DestinationID   string
	Quantity        float64
	ProcurementCost float64
	MaxDistanceKm   float64
}

// NewReconciler creates a reconciler
func NewReconciler(
	estimator *services.TransportEstimator,
	inventoryRepo repositories.InventoryRepository,
	transfers *transfer.Manager,
) *Reconciler {
	return &Reconciler{
		estimator:     estimator,
		inventoryRepo: inventoryRepo,
		transfers:     transfers,
	}
}

// Reconcile decides how to satisfy the demand. Absence of supply is a
// normal outcome returned as a PROCURE decision, not an error; only
// invalid input fails.
func (r *Reconciler) Reconcile(req Request) (entities.Decision, error) {
	if req.Quantity <= 0 {
		return entities.Decision{}, fmt.Errorf("quantity must be positive, got %f", req.Quantity)
	}
	if req.MaterialID == "" || req.DestinationID == "" {
		return entities.Decision{}, fmt.Errorf("material and destination ids cannot be empty")
	}

	level, err := r.inventoryRepo.GetStockLevel(req.DestinationID, req.MaterialID)
	if err != nil {
		return entities.Decision{}, fmt.Errorf("failed to get stock at %s: %w", req.DestinationID, err)
	}

	localUsable := 0.0
	if level != nil {
		localUsable = level.Usable()
	}

	if localUsable >= req.Quantity {
		reasoning := fmt.Sprintf("local usable stock %.1f covers requirement %.1f; no movement needed",
			localUsable, req.Quantity)
		return entities.NewUseLocalDecision(req.MaterialID, req.DestinationID,
			req.Quantity, req.Quantity, reasoning), nil
	}

	shortfall := req.Quantity - localUsable

	cheapest, err := r.transfers.CheapestOption(transfer.Request{
		MaterialID:    req.MaterialID,
		DestinationID: req.DestinationID,
		Quantity:      shortfall,
		MaxDistanceKm: req.MaxDistanceKm,
	})
	if err != nil {
		return entities.Decision{}, fmt.Errorf("failed to search transfer sources: %w", err)
	}

	if cheapest == nil {
		reasoning := fmt.Sprintf("no warehouse can supply %.1f of %s; full shortfall goes to procurement",
			shortfall, req.MaterialID)
		return entities.NewProcureDecision(req.MaterialID, req.DestinationID,
			req.Quantity, localUsable, shortfall, reasoning), nil
	}

	if req.ProcurementCost > 0 && cheapest.TransportCost >= req.ProcurementCost {
		reasoning := fmt.Sprintf("transfer transport cost %.2f from %s is not below procurement cost %.2f; procuring %.1f",
			cheapest.TransportCost, cheapest.SourceID, req.ProcurementCost, shortfall)
		return entities.NewProcureDecision(req.MaterialID, req.DestinationID,
			req.Quantity, localUsable, shortfall, reasoning), nil
	}

	plan, err := r.transfers.RecommendProcurement(transfer.Request{
		MaterialID:    req.MaterialID,
		DestinationID: req.DestinationID,
		Quantity:      shortfall,
		MaxDistanceKm: req.MaxDistanceKm,
	})
	if err != nil {
		return entities.Decision{}, fmt.Errorf("failed to plan transfer: %w", err)
	}

	var reasoning string
	if req.ProcurementCost > 0 {
		reasoning = fmt.Sprintf("transfer transport cost %.2f from %s beats procurement cost %.2f for %.1f units",
			cheapest.TransportCost, cheapest.SourceID, req.ProcurementCost, shortfall)
	} else {
		reasoning = fmt.Sprintf("feasible transfer from %s at transport cost %.2f; transfer-first policy applies with no procurement quote to compare",
			cheapest.SourceID, cheapest.TransportCost)
	}
	return entities.NewTransferDecision(req.MaterialID, req.DestinationID,
		req.Quantity, localUsable, plan, reasoning), nil
}

// MaterializeTransferOrders converts a TRANSFER decision into transfer
// orders, one per plan allocation
func (r *Reconciler) MaterializeTransferOrders(decision entities.Decision, orderDate time.Time) ([]*entities.TransferOrder, error) {
	if decision.Kind != entities.DecisionTransfer {
		return nil, fmt.Errorf("cannot materialize transfer orders from a %s decision", decision.Kind)
	}
	if decision.Plan == nil {
		return nil, fmt.Errorf("transfer decision carries no plan")
	}

	orders := make([]*entities.TransferOrder, 0, len(decision.Plan.Allocations))
	for _, alloc := range decision.Plan.Allocations {
		order, err := entities.NewTransferOrder(
			alloc.MaterialID,
			alloc.SourceID,
			alloc.DestinationID,
			alloc.Quantity,
			alloc.DistanceKm,
			decimal.NewFromFloat(alloc.TransportCost).Round(2),
			orderDate,
			r.estimator.TransitDays(alloc.DistanceKm),
			decision.Reasoning,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build transfer order from %s: %w", alloc.SourceID, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}
