package memory

import (
	"sync"
	"testing"

	"github.com/stockpilot/engine/pkg/domain/entities"
)

func loadTestStock(t *testing.T, repo *InventoryRepository) {
	t.Helper()
	levels := []*entities.StockLevel{
		{WarehouseID: "WH-N1", MaterialID: "MAT-001", QuantityAvailable: 500, QuantityReserved: 100, SafetyStock: 50},
		{WarehouseID: "WH-S1", MaterialID: "MAT-001", QuantityAvailable: 200, QuantityReserved: 0, SafetyStock: 20},
		{WarehouseID: "WH-N1", MaterialID: "MAT-002", QuantityAvailable: 80, QuantityReserved: 0, SafetyStock: 10},
	}
	if err := repo.LoadStockLevels(levels); err != nil {
		t.Fatalf("LoadStockLevels failed: %v", err)
	}
}

func TestGetStockLevel_MissingRecordIsNil(t *testing.T) {
	repo := NewInventoryRepository()
	loadTestStock(t, repo)

	level, err := repo.GetStockLevel("WH-S1", "MAT-002")
	if err != nil {
		t.Fatalf("GetStockLevel failed: %v", err)
	}
	if level != nil {
		t.Errorf("expected nil for missing record, got %+v", level)
	}
}

func TestGetStockLevelsForMaterial_SortedByWarehouse(t *testing.T) {
	repo := NewInventoryRepository()
	loadTestStock(t, repo)

	levels, err := repo.GetStockLevelsForMaterial("MAT-001")
	if err != nil {
		t.Fatalf("GetStockLevelsForMaterial failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].WarehouseID != "WH-N1" || levels[1].WarehouseID != "WH-S1" {
		t.Errorf("levels not sorted by warehouse id: %s, %s",
			levels[0].WarehouseID, levels[1].WarehouseID)
	}
}

func TestTryReserve_RespectsAvailable(t *testing.T) {
	repo := NewInventoryRepository()
	loadTestStock(t, repo)

	// 500 available minus 100 reserved leaves 400
	ok, err := repo.TryReserve("WH-N1", "MAT-001", 400)
	if err != nil {
		t.Fatalf("TryReserve failed: %v", err)
	}
	if !ok {
		t.Fatal("expected reservation of full available quantity to succeed")
	}

	ok, err = repo.TryReserve("WH-N1", "MAT-001", 1)
	if err != nil {
		t.Fatalf("TryReserve failed: %v", err)
	}
	if ok {
		t.Error("expected reservation beyond available stock to fail")
	}
}

func TestTryReserve_MissingRecordFails(t *testing.T) {
	repo := NewInventoryRepository()

	ok, err := repo.TryReserve("WH-X", "MAT-X", 10)
	if err != nil {
		t.Fatalf("TryReserve failed: %v", err)
	}
	if ok {
		t.Error("expected reservation against missing record to fail")
	}
}

func TestTryReserve_RejectsNonPositiveQuantity(t *testing.T) {
	repo := NewInventoryRepository()
	loadTestStock(t, repo)

	if _, err := repo.TryReserve("WH-N1", "MAT-001", 0); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := repo.TryReserve("WH-N1", "MAT-001", -5); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestTryReserve_NeverOverAllocatesUnderContention(t *testing.T) {
	repo := NewInventoryRepository()
	if err := repo.LoadStockLevels([]*entities.StockLevel{
		{WarehouseID: "WH-N1", MaterialID: "MAT-001", QuantityAvailable: 100},
	}); err != nil {
		t.Fatalf("LoadStockLevels failed: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TryReserve("WH-N1", "MAT-001", 10)
			if err != nil {
				t.Errorf("TryReserve failed: %v", err)
				return
			}
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("%d reservations of 10 units succeeded against 100 available, want exactly 10", succeeded)
	}
}

func TestReleaseReservation(t *testing.T) {
	repo := NewInventoryRepository()
	loadTestStock(t, repo)

	if err := repo.ReleaseReservation("WH-N1", "MAT-001", 100); err != nil {
		t.Fatalf("ReleaseReservation failed: %v", err)
	}

	level, err := repo.GetStockLevel("WH-N1", "MAT-001")
	if err != nil {
		t.Fatalf("GetStockLevel failed: %v", err)
	}
	if level.QuantityReserved != 0 {
		t.Errorf("reserved = %f after release, want 0", level.QuantityReserved)
	}

	if err := repo.ReleaseReservation("WH-N1", "MAT-001", 1); err == nil {
		t.Error("expected error releasing more than reserved")
	}
}
