package entities

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestWarehouse_Validation(t *testing.T) {
	validWarehouse, err := NewWarehouse("WH-DEL", "Delhi Central Store",
		orb.Point{77.1025, 28.7041}, "North", "Delhi", 100000)
	if err != nil {
		t.Fatalf("Expected valid warehouse creation to succeed: %v", err)
	}
	if validWarehouse.State != "Delhi" {
		t.Errorf("Expected state Delhi, got %s", validWarehouse.State)
	}

	testCases := []struct {
		name        string
		id          string
		whName      string
		capacity    float64
		expectError string
	}{
		{"empty id", "", "Delhi Store", 1000, "warehouse id cannot be empty"},
		{"empty name", "WH-DEL", "", 1000, "warehouse name cannot be empty"},
		{"negative capacity", "WH-DEL", "Delhi Store", -1, "capacity cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWarehouse(tc.id, tc.whName, orb.Point{77, 28}, "North", "Delhi", tc.capacity)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestStockLevel_AvailableAndUsable(t *testing.T) {
	level, err := NewStockLevel("WH-DEL", "MAT-CBL", 500, 120, 100)
	if err != nil {
		t.Fatalf("NewStockLevel failed: %v", err)
	}

	if got := level.Available(); got != 380 {
		t.Errorf("Available() = %f, want 380", got)
	}
	if got := level.Usable(); got != 280 {
		t.Errorf("Usable() = %f, want 280", got)
	}
}

func TestStockLevel_FloorsAtZero(t *testing.T) {
	// over-reserved positions must not report negative availability
	level, err := NewStockLevel("WH-DEL", "MAT-CBL", 100, 150, 50)
	if err != nil {
		t.Fatalf("NewStockLevel failed: %v", err)
	}

	if got := level.Available(); got != 0 {
		t.Errorf("Available() = %f, want 0", got)
	}
	if got := level.Usable(); got != 0 {
		t.Errorf("Usable() = %f, want 0", got)
	}
}

func TestStockLevel_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		warehouseID string
		materialID  string
		available   float64
		reserved    float64
		safety      float64
		expectError string
	}{
		{"empty warehouse id", "", "MAT-CBL", 100, 0, 0, "warehouse id cannot be empty"},
		{"empty material id", "WH-DEL", "", 100, 0, 0, "material id cannot be empty"},
		{"negative available", "WH-DEL", "MAT-CBL", -1, 0, 0, "available quantity cannot be negative"},
		{"negative reserved", "WH-DEL", "MAT-CBL", 100, -1, 0, "reserved quantity cannot be negative"},
		{"negative safety stock", "WH-DEL", "MAT-CBL", 100, 0, -1, "safety stock cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStockLevel(tc.warehouseID, tc.materialID, tc.available, tc.reserved, tc.safety)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}
