package main

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/application/services/batch"
	"github.com/stockpilot/engine/pkg/application/services/orchestration"
	"github.com/stockpilot/engine/pkg/application/services/procurement"
	"github.com/stockpilot/engine/pkg/application/services/reconcile"
	"github.com/stockpilot/engine/pkg/application/services/transfer"
	"github.com/stockpilot/engine/pkg/application/services/triggers"
	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/services"
	"github.com/stockpilot/engine/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build an in-memory network: two northern warehouses, one cable
	// vendor cluster near Delhi
	materialRepo := memory.NewMaterialRepository()
	warehouseRepo := memory.NewWarehouseRepository()
	vendorRepo := memory.NewVendorRepository()
	inventoryRepo := memory.NewInventoryRepository()
	setupNetwork(materialRepo, warehouseRepo, vendorRepo, inventoryRepo)

	tables := config.Default()
	estimator := services.NewTransportEstimator(tables)
	transfers := transfer.NewManager(tables, estimator, warehouseRepo, materialRepo, inventoryRepo)
	reconciler := reconcile.NewReconciler(estimator, inventoryRepo, transfers)
	optimizer, err := procurement.NewOptimizer(tables, entities.StrategyBalanced, estimator,
		vendorRepo, materialRepo, warehouseRepo)
	if err != nil {
		fmt.Printf("❌ Engine setup failed: %v\n", err)
		return
	}
	orchestrator, err := orchestration.NewOrchestrator(tables, estimator,
		triggers.NewEngine(tables), reconciler, optimizer,
		batch.NewBatcher(tables), materialRepo, inventoryRepo)
	if err != nil {
		fmt.Printf("❌ Engine setup failed: %v\n", err)
		return
	}

	// A large cable requirement lands at Jaipur; local stock covers only
	// part of it
	demands := []entities.Demand{
		{MaterialID: "MAT-CBL", DestinationID: "WH-JAI", Quantity: 1200},
		{MaterialID: "MAT-MTR", DestinationID: "WH-JAI", Quantity: 300},
	}

	fmt.Println("🏭 Running decision cycle for the north region...")
	for _, d := range demands {
		fmt.Printf("Demand: %.0f x %s at %s\n", d.Quantity, d.MaterialID, d.DestinationID)
	}
	fmt.Println()

	result, err := orchestrator.RunCycle(ctx, demands, time.Now())
	if err != nil {
		fmt.Printf("❌ Cycle failed: %v\n", err)
		return
	}

	fmt.Println("📊 Cycle Results:")
	fmt.Printf("  Decisions: %d\n", len(result.Decisions))
	fmt.Printf("  Transfer Orders: %d\n", len(result.TransferOrders))
	fmt.Printf("  Purchase Orders: %d\n", len(result.PurchaseOrders))
	fmt.Printf("  Unfulfilled: %d\n", len(result.Unfulfilled))
	fmt.Println()

	for _, decision := range result.Decisions {
		fmt.Printf("📝 %s at %s: %s\n",
			decision.MaterialID, decision.DestinationID, decision.Reasoning)
	}
	fmt.Println()

	if len(result.TransferOrders) > 0 {
		fmt.Println("🚚 Transfer Orders:")
		for _, order := range result.TransferOrders {
			fmt.Printf("  %s: %.0f units %s -> %s (%.0f km, ₹%s, %d days)\n",
				order.MaterialID, order.Quantity, order.SourceID, order.DestinationID,
				order.DistanceKm, order.TransportCost.StringFixed(2), order.EstimatedDays)
		}
		fmt.Println()
	}

	if len(result.PurchaseOrders) > 0 {
		fmt.Println("🛒 Purchase Orders:")
		for _, order := range result.PurchaseOrders {
			fmt.Printf("  %s: %.0f units from %s (₹%s, delivery %s)\n",
				order.MaterialID, order.Quantity, order.VendorID,
				order.TotalCost.StringFixed(2), order.ExpectedDelivery.Format("2006-01-02"))
			fmt.Printf("    %s\n", order.Reasoning)
		}
		fmt.Println()
	}

	if len(result.Alerts) > 0 {
		fmt.Println("🚨 Stock Alerts:")
		for _, alert := range result.Alerts {
			fmt.Printf("  [%s] %s at %s: %s\n",
				alert.Severity, alert.MaterialID, alert.WarehouseID, alert.RecommendedAction)
		}
		fmt.Println()
	}

	fmt.Printf("💰 Savings: expedite ₹%s, holding ₹%s/month\n",
		result.Savings.ExpediteSavings.StringFixed(2),
		result.Savings.HoldingSavings.StringFixed(2))
	fmt.Println("✅ Decision cycle complete!")
}

func setupNetwork(
	materialRepo *memory.MaterialRepository,
	warehouseRepo *memory.WarehouseRepository,
	vendorRepo *memory.VendorRepository,
	inventoryRepo *memory.InventoryRepository,
) {
	cable := mustMaterial(entities.NewMaterial("MAT-CBL", "11kV XLPE Cable", "cable", "m",
		decimal.NewFromInt(250), 7, 0))
	meter := mustMaterial(entities.NewMaterial("MAT-MTR", "Single Phase Smart Meter", "meter", "nos",
		decimal.NewFromInt(1200), 14, 0))
	if err := materialRepo.LoadMaterials([]*entities.Material{cable, meter}); err != nil {
		panic(err)
	}

	delhi := mustWarehouse(entities.NewWarehouse("WH-DEL", "Delhi Central Store",
		orb.Point{77.1025, 28.7041}, "North", "Delhi", 100000))
	jaipur := mustWarehouse(entities.NewWarehouse("WH-JAI", "Jaipur Regional Store",
		orb.Point{75.7873, 26.9124}, "North", "Rajasthan", 60000))
	if err := warehouseRepo.LoadWarehouses([]*entities.Warehouse{delhi, jaipur}); err != nil {
		panic(err)
	}

	alpha := mustVendor(entities.NewVendor("VND-ALP", "Alpha Electricals",
		orb.Point{77.3910, 28.5355}, nil, 0.95, 10, 20, 1.0,
		map[string]decimal.Decimal{
			"MAT-CBL": decimal.NewFromInt(245),
			"MAT-MTR": decimal.NewFromInt(1150),
		},
		decimal.NewFromInt(50000)))
	gamma := mustVendor(entities.NewVendor("VND-GAM", "Gamma Power Systems",
		orb.Point{77.2090, 28.6139}, nil, 0.90, 3, 6, 1.15,
		map[string]decimal.Decimal{
			"MAT-CBL": decimal.NewFromInt(290),
		},
		decimal.NewFromInt(10000)))
	if err := vendorRepo.LoadVendors([]*entities.Vendor{alpha, gamma}); err != nil {
		panic(err)
	}

	// Jaipur holds some cable; Delhi holds plenty and can feed transfers
	stock := []*entities.StockLevel{
		mustStock(entities.NewStockLevel("WH-JAI", "MAT-CBL", 400, 0, 100)),
		mustStock(entities.NewStockLevel("WH-DEL", "MAT-CBL", 900, 0, 150)),
		mustStock(entities.NewStockLevel("WH-DEL", "MAT-MTR", 50, 0, 20)),
	}
	if err := inventoryRepo.LoadStockLevels(stock); err != nil {
		panic(err)
	}
}

func mustMaterial(m *entities.Material, err error) *entities.Material {
	if err != nil {
		panic(err)
	}
	return m
}

func mustWarehouse(w *entities.Warehouse, err error) *entities.Warehouse {
	if err != nil {
		panic(err)
	}
	return w
}

func mustVendor(v *entities.Vendor, err error) *entities.Vendor {
	if err != nil {
		panic(err)
	}
	return v
}

func mustStock(s *entities.StockLevel, err error) *entities.StockLevel {
	if err != nil {
		panic(err)
	}
	return s
}
