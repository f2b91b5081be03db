package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransferOrder_Validation(t *testing.T) {
	orderDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	order, err := NewTransferOrder("MAT-CBL", "WH-JAI", "WH-DEL", 50, 240,
		decimal.NewFromInt(30000), orderDate, 2, "covers shortfall at WH-DEL")
	if err != nil {
		t.Fatalf("Expected valid order creation to succeed: %v", err)
	}
	if order.ID == "" {
		t.Error("Expected a generated order id")
	}
	if order.Status != StatusPending {
		t.Errorf("Expected new order to be Pending, got %s", order.Status)
	}
	if want := orderDate.Add(48 * time.Hour); !order.ExpectedArrival.Equal(want) {
		t.Errorf("ExpectedArrival = %v, want %v", order.ExpectedArrival, want)
	}

	testCases := []struct {
		name          string
		materialID    string
		sourceID      string
		destinationID string
		quantity      float64
		expectError   string
	}{
		{"empty material", "", "WH-JAI", "WH-DEL", 50, "material id cannot be empty"},
		{"empty source", "MAT-CBL", "", "WH-DEL", 50, "source and destination ids cannot be empty"},
		{"empty destination", "MAT-CBL", "WH-JAI", "", 50, "source and destination ids cannot be empty"},
		{"self transfer", "MAT-CBL", "WH-DEL", "WH-DEL", 50, "source and destination cannot both be WH-DEL"},
		{"zero quantity", "MAT-CBL", "WH-JAI", "WH-DEL", 0, "quantity must be positive"},
		{"negative quantity", "MAT-CBL", "WH-JAI", "WH-DEL", -5, "quantity must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransferOrder(tc.materialID, tc.sourceID, tc.destinationID,
				tc.quantity, 240, decimal.Zero, orderDate, 2, "")
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestTransferOrder_MinimumOneDayTransit(t *testing.T) {
	orderDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	order, err := NewTransferOrder("MAT-CBL", "WH-JAI", "WH-DEL", 50, 10,
		decimal.NewFromInt(1250), orderDate, 0, "")
	if err != nil {
		t.Fatalf("NewTransferOrder failed: %v", err)
	}
	if order.EstimatedDays != 1 {
		t.Errorf("EstimatedDays = %d, want floor of 1", order.EstimatedDays)
	}
}

func TestTransferPlan_Accounting(t *testing.T) {
	plan := &TransferPlan{
		MaterialID:       "MAT-CBL",
		DestinationID:    "WH-DEL",
		RequiredQuantity: 100,
		Allocations: []TransferOption{
			{SourceID: "WH-JAI", Quantity: 60, TransportCost: 18000},
			{SourceID: "WH-LKO", Quantity: 40, TransportCost: 26000},
		},
		FulfilledQty: 100,
		ShortfallQty: 0,
	}

	if !plan.Fulfilled() {
		t.Error("Expected a zero-shortfall plan to be fulfilled")
	}
	if got := plan.TotalTransportCost(); got != 44000 {
		t.Errorf("TotalTransportCost() = %f, want 44000", got)
	}

	plan.ShortfallQty = 25
	if plan.Fulfilled() {
		t.Error("Expected a plan with shortfall to not be fulfilled")
	}
}
