package reconcile

import (
	"testing"
	"time"

	testhelpers "github.com/stockpilot/engine/pkg/application/services/testing"
	"github.com/stockpilot/engine/pkg/application/services/transfer"
	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/services"
)

func newTestReconciler(f *testhelpers.Fixture) *Reconciler {
	tables := config.Default()
	estimator := services.NewTransportEstimator(tables)
	transfers := transfer.NewManager(tables, estimator, f.Warehouses, f.Materials, f.Inventory)
	return NewReconciler(estimator, f.Inventory, transfers)
}

func TestReconcile_UseLocalWhenSufficient(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-DEL", "MAT-CBL", 150, 0))
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:    "MAT-CBL",
		DestinationID: "WH-DEL",
		Quantity:      100,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionUseLocal {
		t.Errorf("decision = %s, want USE_LOCAL", decision.Kind)
	}
	if decision.ProcureQty != 0 {
		t.Errorf("procurement quantity = %f, want 0", decision.ProcureQty)
	}
	if decision.Reasoning == "" {
		t.Error("decision carries no reasoning")
	}
}

func TestReconcile_SafetyStockReducesLocalUsable(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	// 150 on hand but 80 is safety stock: only 70 usable for a demand of 100
	f.LoadStock(
		testhelpers.Stock("WH-DEL", "MAT-CBL", 150, 80),
		testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0),
	)
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:    "MAT-CBL",
		DestinationID: "WH-DEL",
		Quantity:      100,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionTransfer {
		t.Fatalf("decision = %s, want TRANSFER", decision.Kind)
	}
	if decision.Plan.RequiredQuantity != 30 {
		t.Errorf("plan requirement = %f, want 30 shortfall", decision.Plan.RequiredQuantity)
	}
}

func TestReconcile_TransferBeatsExpensiveProcurement(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0))
	reconciler := newTestReconciler(f)

	// Jaipur-Delhi transport for 100 m of cable is well under 1000
	decision, err := reconciler.Reconcile(Request{
		MaterialID:      "MAT-CBL",
		DestinationID:   "WH-DEL",
		Quantity:        100,
		ProcurementCost: 100000,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionTransfer {
		t.Errorf("decision = %s, want TRANSFER against expensive procurement", decision.Kind)
	}
}

func TestReconcile_CheapProcurementWinsOverTransfer(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0))
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:      "MAT-CBL",
		DestinationID:   "WH-DEL",
		Quantity:        100,
		ProcurementCost: 50, // cheaper than any feasible transfer
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionProcure {
		t.Errorf("decision = %s, want PROCURE against cheap procurement", decision.Kind)
	}
	if decision.ProcureQty != 100 {
		t.Errorf("procurement quantity = %f, want 100", decision.ProcureQty)
	}
}

func TestReconcile_NoSupplyFallsBackToProcure(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:    "MAT-CBL",
		DestinationID: "WH-DEL",
		Quantity:      100,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionProcure {
		t.Errorf("decision = %s, want PROCURE when network is empty", decision.Kind)
	}
	if decision.ProcureQty != 100 {
		t.Errorf("procurement quantity = %f, want full shortfall of 100", decision.ProcureQty)
	}
}

func TestReconcile_DefaultsToTransferWithoutComparisonCost(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0))
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:    "MAT-CBL",
		DestinationID: "WH-DEL",
		Quantity:      100,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if decision.Kind != entities.DecisionTransfer {
		t.Errorf("decision = %s, want TRANSFER under transfer-first policy", decision.Kind)
	}
}

func TestReconcile_RejectsNonPositiveQuantity(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	reconciler := newTestReconciler(f)

	if _, err := reconciler.Reconcile(Request{
		MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: 0,
	}); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := reconciler.Reconcile(Request{
		MaterialID: "MAT-CBL", DestinationID: "WH-DEL", Quantity: -10,
	}); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestMaterializeTransferOrders(t *testing.T) {
	f := testhelpers.NewNetworkFixture()
	f.LoadStock(testhelpers.Stock("WH-JAI", "MAT-CBL", 500, 0))
	reconciler := newTestReconciler(f)

	decision, err := reconciler.Reconcile(Request{
		MaterialID:    "MAT-CBL",
		DestinationID: "WH-DEL",
		Quantity:      100,
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	orderDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	orders, err := reconciler.MaterializeTransferOrders(decision, orderDate)
	if err != nil {
		t.Fatalf("MaterializeTransferOrders failed: %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	order := orders[0]
	if order.SourceID != "WH-JAI" || order.DestinationID != "WH-DEL" {
		t.Errorf("order routed %s -> %s, want WH-JAI -> WH-DEL", order.SourceID, order.DestinationID)
	}
	// Delhi-Jaipur is ~240 km: one transit day at 400 km/day
	if order.EstimatedDays != 1 {
		t.Errorf("estimated days = %d, want 1", order.EstimatedDays)
	}
	wantArrival := orderDate.Add(24 * time.Hour)
	if !order.ExpectedArrival.Equal(wantArrival) {
		t.Errorf("expected arrival = %v, want %v", order.ExpectedArrival, wantArrival)
	}
	if order.Status != entities.StatusPending {
		t.Errorf("status = %s, want Pending", order.Status)
	}

	// materializing a non-transfer decision is a caller error
	local := entities.NewUseLocalDecision("MAT-CBL", "WH-DEL", 10, 10, "")
	if _, err := reconciler.MaterializeTransferOrders(local, orderDate); err == nil {
		t.Error("expected error materializing a USE_LOCAL decision")
	}
}
