// Package orchestration runs the full decision cycle: trigger evaluation,
// demand reconciliation, reservation, vendor selection, and order
// batching, producing one consolidated cycle result.
package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/stockpilot/engine/pkg/application/services/batch"
	"github.com/stockpilot/engine/pkg/application/services/procurement"
	"github.com/stockpilot/engine/pkg/application/services/reconcile"
	"github.com/stockpilot/engine/pkg/application/services/triggers"
	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
	"github.com/stockpilot/engine/pkg/domain/services"
	"github.com/stockpilot/engine/pkg/infrastructure/events"
)

// Orchestrator coordinates the engine components over one planning cycle.
// Decisions stay advisory until the stock reservation succeeds; any
// quantity that cannot be reserved or sourced is rerouted to procurement,
// and what no vendor can serve lands in Unfulfilled.
type Orchestrator struct {
	tables        config.Tables
	estimator     *services.TransportEstimator
	triggers      *triggers.Engine
	reconciler    *reconcile.Reconciler
	optimizer     *procurement.Optimizer
	batcher       *batch.Batcher
	materialRepo  repositories.MaterialRepository
	inventoryRepo repositories.InventoryRepository
	eventLog      events.EventLog
}

// CycleResult is everything one planning cycle produced
type CycleResult struct {
	Decisions       []entities.Decision
	TransferOrders  []*entities.TransferOrder
	PurchaseOrders  []*entities.PurchaseOrder
	TransferBatches []*entities.OrderBatch
	PurchaseBatches []*entities.OrderBatch
	Unfulfilled     []entities.Demand
	Alerts          []entities.AlertFeedItem
	Savings         entities.ProfitSummary
}

// NewOrchestrator wires the engine components together
func NewOrchestrator(
	tables config.Tables,
	estimator *services.TransportEstimator,
	triggersEngine *triggers.Engine,
	reconciler *reconcile.Reconciler,
	optimizer *procurement.Optimizer,
	batcher *batch.Batcher,
	materialRepo repositories.MaterialRepository,
	inventoryRepo repositories.InventoryRepository,
) (*Orchestrator, error) {
	if estimator == nil || triggersEngine == nil || reconciler == nil ||
		optimizer == nil || batcher == nil {
		return nil, fmt.Errorf("orchestrator requires all engine components")
	}
	if materialRepo == nil || inventoryRepo == nil {
		return nil, fmt.Errorf("orchestrator requires material and inventory repositories")
	}

	return &Orchestrator{
		tables:        tables,
		estimator:     estimator,
		triggers:      triggersEngine,
		reconciler:    reconciler,
		optimizer:     optimizer,
		batcher:       batcher,
		materialRepo:  materialRepo,
		inventoryRepo: inventoryRepo,
	}, nil
}

// SetEventLog attaches an event log that receives an event for every
// decision, order, and unfulfilled demand the cycle produces. A nil log
// disables recording.
func (o *Orchestrator) SetEventLog(log events.EventLog) {
	o.eventLog = log
}

// emit records an event when a log is attached
func (o *Orchestrator) emit(event events.Event) error {
	if o.eventLog == nil {
		return nil
	}
	if err := o.eventLog.Append(event.StreamID(), event); err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Type(), err)
	}
	return nil
}

// RunCycle processes a batch of demands dated at orderDate and returns the
// consolidated result. Individual demands that cannot be served are
// reported in the result, not as errors; only invalid input or repository
// failures abort the cycle.
func (o *Orchestrator) RunCycle(ctx context.Context, demands []entities.Demand, orderDate time.Time) (*CycleResult, error) {
	result := &CycleResult{}
	snapshots := make([]entities.MaterialTriggers, 0, len(demands))

	for _, demand := range demands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snapshot, err := o.evaluateTriggers(demand)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
		urgent := snapshot.Severity == entities.SeverityRed

		decision, err := o.reconciler.Reconcile(reconcile.Request{
			MaterialID:    demand.MaterialID,
			DestinationID: demand.DestinationID,
			Quantity:      demand.Quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile demand for %s at %s: %w",
				demand.MaterialID, demand.DestinationID, err)
		}
		result.Decisions = append(result.Decisions, decision)
		if err := o.emit(events.NewDecisionMadeEvent(decision)); err != nil {
			return nil, err
		}

		procureQty, err := o.materialize(decision, orderDate, result)
		if err != nil {
			return nil, err
		}

		if procureQty > 0 {
			if err := o.procure(demand, procureQty, urgent, orderDate, result); err != nil {
				return nil, err
			}
		}
	}

	purchaseBatches, err := o.batcher.BatchPurchaseOrders(result.PurchaseOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to batch purchase orders: %w", err)
	}
	transferBatches, err := o.batcher.BatchTransferOrders(result.TransferOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to batch transfer orders: %w", err)
	}
	result.PurchaseBatches = purchaseBatches
	result.TransferBatches = transferBatches
	result.Alerts = o.triggers.AlertsFeed(snapshots, false)
	result.Savings = o.triggers.SavingsSummary(snapshots)

	for _, alert := range result.Alerts {
		if err := o.emit(events.NewStockAlertEvent(alert)); err != nil {
			return nil, err
		}
	}
	if err := o.emit(events.NewCycleCompletedEvent(
		len(result.Decisions), len(result.TransferOrders),
		len(result.PurchaseOrders), len(result.Unfulfilled),
		result.Savings)); err != nil {
		return nil, err
	}

	return result, nil
}

// evaluateTriggers builds the trigger snapshot for a demand's destination
func (o *Orchestrator) evaluateTriggers(demand entities.Demand) (entities.MaterialTriggers, error) {
	material, err := o.materialRepo.GetMaterial(demand.MaterialID)
	if err != nil {
		return entities.MaterialTriggers{}, fmt.Errorf("failed to get material %s: %w", demand.MaterialID, err)
	}
	level, err := o.inventoryRepo.GetStockLevel(demand.DestinationID, demand.MaterialID)
	if err != nil {
		return entities.MaterialTriggers{}, fmt.Errorf("failed to get stock at %s: %w", demand.DestinationID, err)
	}

	currentStock := 0.0
	if level != nil {
		currentStock = level.QuantityAvailable
	}

	return o.triggers.Evaluate(triggers.Input{
		MaterialID:   demand.MaterialID,
		WarehouseID:  demand.DestinationID,
		CurrentStock: currentStock,
		LeadTimeDays: material.LeadTimeDays,
		UnitPrice:    material.UnitPrice,
	}), nil
}

// materialize reserves the stock a decision depends on and emits transfer
// orders for the allocations that held. It returns the quantity that must
// go to procurement instead: the decision's own procurement share plus
// anything lost to failed reservations.
func (o *Orchestrator) materialize(decision entities.Decision, orderDate time.Time, result *CycleResult) (float64, error) {
	procureQty := 0.0

	if decision.LocalQty > 0 {
		held, err := o.inventoryRepo.TryReserve(decision.DestinationID, decision.MaterialID, decision.LocalQty)
		if err != nil {
			return 0, fmt.Errorf("failed to reserve local stock at %s: %w", decision.DestinationID, err)
		}
		if !held {
			procureQty += decision.LocalQty
		}
	}

	switch decision.Kind {
	case entities.DecisionUseLocal:
		// local reservation above is the whole decision

	case entities.DecisionTransfer:
		reserved := decision
		reserved.Plan = &entities.TransferPlan{
			MaterialID:       decision.Plan.MaterialID,
			DestinationID:    decision.Plan.DestinationID,
			RequiredQuantity: decision.Plan.RequiredQuantity,
		}
		for _, alloc := range decision.Plan.Allocations {
			held, err := o.inventoryRepo.TryReserve(alloc.SourceID, alloc.MaterialID, alloc.Quantity)
			if err != nil {
				return 0, fmt.Errorf("failed to reserve at %s: %w", alloc.SourceID, err)
			}
			if !held {
				procureQty += alloc.Quantity
				continue
			}
			reserved.Plan.Allocations = append(reserved.Plan.Allocations, alloc)
			reserved.Plan.FulfilledQty += alloc.Quantity
		}
		procureQty += decision.Plan.ShortfallQty

		if len(reserved.Plan.Allocations) > 0 {
			orders, err := o.reconciler.MaterializeTransferOrders(reserved, orderDate)
			if err != nil {
				return 0, fmt.Errorf("failed to materialize transfers: %w", err)
			}
			result.TransferOrders = append(result.TransferOrders, orders...)
			for _, order := range orders {
				if err := o.emit(events.NewTransferCreatedEvent(order)); err != nil {
					return 0, err
				}
			}
		}

	case entities.DecisionProcure:
		procureQty += decision.ProcureQty

	default:
		return 0, fmt.Errorf("unknown decision kind %d", int(decision.Kind))
	}

	return procureQty, nil
}

// procure routes a residual quantity to the vendor market. A demand no
// vendor can serve is recorded as unfulfilled.
func (o *Orchestrator) procure(demand entities.Demand, quantity float64, urgent bool, orderDate time.Time, result *CycleResult) error {
	pick, err := o.optimizer.SelectVendor(procurement.Request{
		MaterialID:    demand.MaterialID,
		DestinationID: demand.DestinationID,
		Quantity:      quantity,
		OrderDate:     orderDate,
		Urgent:        urgent,
	})
	if err != nil {
		return fmt.Errorf("failed to select vendor for %s: %w", demand.MaterialID, err)
	}
	if pick == nil {
		unfulfilled := entities.Demand{
			MaterialID:    demand.MaterialID,
			DestinationID: demand.DestinationID,
			Quantity:      quantity,
		}
		result.Unfulfilled = append(result.Unfulfilled, unfulfilled)
		return o.emit(events.NewDemandUnfulfilledEvent(unfulfilled))
	}

	order, err := o.optimizer.BuildPurchaseOrder(pick, demand.DestinationID, orderDate)
	if err != nil {
		return fmt.Errorf("failed to build purchase order from %s: %w", pick.VendorID, err)
	}
	result.PurchaseOrders = append(result.PurchaseOrders, order)
	return o.emit(events.NewPurchaseCreatedEvent(order))
}
