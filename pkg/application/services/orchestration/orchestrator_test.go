package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/stockpilot/engine/pkg/application/services/batch"
	"github.com/stockpilot/engine/pkg/application/services/procurement"
	"github.com/stockpilot/engine/pkg/application/services/reconcile"
	testhelpers "github.com/stockpilot/engine/pkg/application/services/testing"
	"github.com/stockpilot/engine/pkg/application/services/transfer"
	"github.com/stockpilot/engine/pkg/application/services/triggers"
	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/services"
	"github.com/stockpilot/engine/pkg/infrastructure/events"
)

var cycleDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestOrchestrator(t *testing.T, f *testhelpers.Fixture) *Orchestrator {
	t.Helper()
	tables := config.Default()
	estimator := services.NewTransportEstimator(tables)
	transfers := transfer.NewManager(tables, estimator, f.Warehouses, f.Materials, f.Inventory)
	reconciler := reconcile.NewReconciler(estimator, f.Inventory, transfers)
	optimizer, err := procurement.NewOptimizer(tables, entities.StrategyBalanced,
		estimator, f.Vendors, f.Materials, f.Warehouses)
	if err != nil {
		t.Fatalf("NewOptimizer failed: %v", err)
	}

	orchestrator, err := NewOrchestrator(tables, estimator, triggers.NewEngine(tables),
		reconciler, optimizer, batch.NewBatcher(tables), f.Materials, f.Inventory)
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}
	return orchestrator
}

func TestRunCycle_LocalStockIsReservedNotMoved(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-DEL", "MAT-CBL", 300, 0))
	orchestrator := newTestOrchestrator(t, f)

	result, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 100},
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(result.Decisions) != 1 || result.Decisions[0].Kind != entities.DecisionUseLocal {
		t.Fatalf("expected a single USE_LOCAL decision, got %+v", result.Decisions)
	}
	if len(result.TransferOrders) != 0 || len(result.PurchaseOrders) != 0 {
		t.Errorf("local fulfillment produced orders: %d transfers, %d purchases",
			len(result.TransferOrders), len(result.PurchaseOrders))
	}

	level, err := f.Inventory.GetStockLevel("WH-DEL", "MAT-CBL")
	if err != nil {
		t.Fatalf("GetStockLevel failed: %v", err)
	}
	if level.QuantityReserved != 100 {
		t.Errorf("reserved = %f, want the decided 100", level.QuantityReserved)
	}
}

func TestRunCycle_ShortfallBecomesTransferOrder(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(
		testhelpers.Stock("WH-DEL", "MAT-CBL", 50, 0),
		testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0),
	)
	orchestrator := newTestOrchestrator(t, f)

	result, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 100},
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(result.Decisions) != 1 || result.Decisions[0].Kind != entities.DecisionTransfer {
		t.Fatalf("expected a TRANSFER decision, got %+v", result.Decisions)
	}
	if len(result.TransferOrders) != 1 {
		t.Fatalf("expected 1 transfer order, got %d", len(result.TransferOrders))
	}
	order := result.TransferOrders[0]
	if order.SourceID != "WH-JAI" || order.Quantity != 50 {
		t.Errorf("order moves %f from %s, want 50 from WH-JAI", order.Quantity, order.SourceID)
	}
	if len(result.TransferBatches) != 1 {
		t.Errorf("expected 1 transfer batch, got %d", len(result.TransferBatches))
	}
	if len(result.PurchaseOrders) != 0 || len(result.Unfulfilled) != 0 {
		t.Errorf("fully transferable demand leaked to procurement: %d purchases, %d unfulfilled",
			len(result.PurchaseOrders), len(result.Unfulfilled))
	}

	// the source reservation must be held so a second cycle cannot
	// promise the same stock
	level, err := f.Inventory.GetStockLevel("WH-JAI", "MAT-CBL")
	if err != nil {
		t.Fatalf("GetStockLevel failed: %v", err)
	}
	if level.QuantityReserved != 50 {
		t.Errorf("source reserved = %f, want 50", level.QuantityReserved)
	}
}

func TestRunCycle_EmptyNetworkGoesToProcurement(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	orchestrator := newTestOrchestrator(t, f)

	result, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 1000},
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(result.Decisions) != 1 || result.Decisions[0].Kind != entities.DecisionProcure {
		t.Fatalf("expected a PROCURE decision, got %+v", result.Decisions)
	}
	if len(result.PurchaseOrders) != 1 {
		t.Fatalf("expected 1 purchase order, got %d", len(result.PurchaseOrders))
	}
	if result.PurchaseOrders[0].Quantity != 1000 {
		t.Errorf("purchase quantity = %f, want 1000", result.PurchaseOrders[0].Quantity)
	}
	if len(result.PurchaseBatches) != 1 {
		t.Errorf("expected 1 purchase batch, got %d", len(result.PurchaseBatches))
	}

	// zero stock against demand is a critical alert
	if len(result.Alerts) != 1 || result.Alerts[0].Severity != entities.SeverityRed {
		t.Fatalf("expected a single RED alert, got %+v", result.Alerts)
	}
	if result.Savings.RedItemCount != 1 {
		t.Errorf("red item count = %d, want 1", result.Savings.RedItemCount)
	}
	if !result.Savings.ExpediteSavings.IsPositive() {
		t.Errorf("expedite savings = %s, want positive", result.Savings.ExpediteSavings)
	}
}

func TestRunCycle_NoVendorMeansUnfulfilled(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	// a material no fixture vendor lists
	_ = f.Materials.LoadMaterials([]*entities.Material{
		testhelpers.MustMaterial("MAT-POL", "9m PCC Pole", "pole", "ea", 4500, 21),
	})
	orchestrator := newTestOrchestrator(t, f)

	result, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-POL", DestinationID: "WH-DEL", Quantity: 40},
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(result.Unfulfilled) != 1 {
		t.Fatalf("expected 1 unfulfilled demand, got %d", len(result.Unfulfilled))
	}
	if result.Unfulfilled[0].Quantity != 40 {
		t.Errorf("unfulfilled quantity = %f, want the full 40", result.Unfulfilled[0].Quantity)
	}
	if len(result.PurchaseOrders) != 0 {
		t.Errorf("unexpected purchase orders: %d", len(result.PurchaseOrders))
	}
}

func TestRunCycle_MixedDemandsInOnePass(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(
		testhelpers.Stock("WH-DEL", "MAT-CBL", 500, 0),
		testhelpers.Stock("WH-JAI", "MAT-MTR", 300, 0),
	)
	orchestrator := newTestOrchestrator(t, f)

	result, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 200}, // local
		{MaterialID: "MAT-MTR", DestinationID: "WH-DEL", Quantity: 100}, // transfer
		{MaterialID: "MAT-TRF", DestinationID: "WH-DEL", Quantity: 2},   // procure
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	kinds := make([]entities.DecisionKind, 0, len(result.Decisions))
	for _, d := range result.Decisions {
		kinds = append(kinds, d.Kind)
	}
	want := []entities.DecisionKind{
		entities.DecisionUseLocal, entities.DecisionTransfer, entities.DecisionProcure,
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("decision %d = %s, want %s", i, kinds[i], want[i])
		}
	}
	if len(result.TransferOrders) != 1 || len(result.PurchaseOrders) != 1 {
		t.Errorf("got %d transfers and %d purchases, want 1 each",
			len(result.TransferOrders), len(result.PurchaseOrders))
	}
	if len(result.Unfulfilled) != 0 {
		t.Errorf("unexpected unfulfilled demands: %+v", result.Unfulfilled)
	}
}

func TestRunCycle_RecordsEventTrail(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(
		testhelpers.Stock("WH-DEL", "MAT-CBL", 50, 0),
		testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0),
	)
	orchestrator := newTestOrchestrator(t, f)
	log := events.NewInMemoryEventLog()
	orchestrator.SetEventLog(log)

	_, err := orchestrator.RunCycle(context.Background(), []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 100},
		{MaterialID: "MAT-TRF", DestinationID: "WH-DEL", Quantity: 2},
	}, cycleDate)
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	all, err := log.ReadAll(0)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	counts := make(map[string]int)
	for _, event := range all {
		counts[event.Type()]++
	}
	if counts[events.DecisionMadeEvent] != 2 {
		t.Errorf("decision events = %d, want 2", counts[events.DecisionMadeEvent])
	}
	if counts[events.TransferCreatedEvent] != 1 {
		t.Errorf("transfer events = %d, want 1", counts[events.TransferCreatedEvent])
	}
	if counts[events.PurchaseCreatedEvent] != 1 {
		t.Errorf("purchase events = %d, want 1", counts[events.PurchaseCreatedEvent])
	}
	if counts[events.CycleCompletedEvent] != 1 {
		t.Errorf("cycle completed events = %d, want 1", counts[events.CycleCompletedEvent])
	}

	// the last event closes the cycle with the final tallies
	last := all[len(all)-1]
	if last.Type() != events.CycleCompletedEvent {
		t.Fatalf("last event = %s, want %s", last.Type(), events.CycleCompletedEvent)
	}
	summary, ok := last.Data().(events.CycleCompleted)
	if !ok {
		t.Fatalf("cycle completed payload has type %T", last.Data())
	}
	if summary.Decisions != 2 || summary.TransferOrders != 1 || summary.PurchaseOrders != 1 {
		t.Errorf("summary = %+v, want 2 decisions, 1 transfer, 1 purchase", summary)
	}

	// per-material streams stay isolated
	cableEvents, err := log.Read("MAT-CBL", 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for _, event := range cableEvents {
		if event.StreamID() != "MAT-CBL" {
			t.Errorf("event %s leaked into MAT-CBL stream from %s", event.Type(), event.StreamID())
		}
	}
}

func TestRunCycle_HonorsContextCancellation(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	orchestrator := newTestOrchestrator(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orchestrator.RunCycle(ctx, []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 100},
	}, cycleDate); err == nil {
		t.Error("expected error from a cancelled context")
	}
}
