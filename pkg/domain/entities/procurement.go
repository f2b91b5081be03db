package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorEvaluation is the scored assessment of one vendor for one
// procurement need. Ephemeral value object.
type VendorEvaluation struct {
	VendorID          string
	VendorName        string
	MaterialID        string
	Quantity          float64
	UnitPrice         decimal.Decimal
	Subtotal          decimal.Decimal
	GSTAmount         decimal.Decimal
	TransportCost     decimal.Decimal
	LandedCostPerUnit decimal.Decimal
	DistanceKm        float64
	BaseLeadTimeDays  int
	RiskAdjustedDays  int
	Reliability       float64
	CostScore         float64
	TimeScore         float64
	WeightedScore     float64
	Warnings          []string
}

// TotalCost returns the full landed cost of the evaluated order
func (e *VendorEvaluation) TotalCost() decimal.Decimal {
	return e.Subtotal.Add(e.GSTAmount).Add(e.TransportCost)
}

// PurchaseOrder represents a materialized decision to procure from an
// external vendor. Persistence of the order is an external concern.
type PurchaseOrder struct {
	ID               string
	MaterialID       string
	VendorID         string
	DestinationID    string
	Quantity         float64
	UnitPrice        decimal.Decimal
	Subtotal         decimal.Decimal
	GSTAmount        decimal.Decimal
	TransportCost    decimal.Decimal
	TotalCost        decimal.Decimal
	OrderDate        time.Time
	ExpectedDelivery time.Time
	EstimatedDays    int
	Status           OrderStatus
	Reasoning        string
}

// NewPurchaseOrder creates a validated PurchaseOrder from a vendor
// evaluation
func NewPurchaseOrder(
	eval *VendorEvaluation,
	destinationID string,
	orderDate time.Time,
	reasoning string,
) (*PurchaseOrder, error) {
	if eval == nil {
		return nil, fmt.Errorf("vendor evaluation cannot be nil")
	}
	if destinationID == "" {
		return nil, fmt.Errorf("destination id cannot be empty")
	}
	if eval.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %f", eval.Quantity)
	}

	days := eval.RiskAdjustedDays
	if days < 1 {
		days = 1
	}

	return &PurchaseOrder{
		ID:               uuid.NewString(),
		MaterialID:       eval.MaterialID,
		VendorID:         eval.VendorID,
		DestinationID:    destinationID,
		Quantity:         eval.Quantity,
		UnitPrice:        eval.UnitPrice,
		Subtotal:         eval.Subtotal,
		GSTAmount:        eval.GSTAmount,
		TransportCost:    eval.TransportCost,
		TotalCost:        eval.TotalCost(),
		OrderDate:        orderDate,
		ExpectedDelivery: orderDate.Add(time.Duration(days) * 24 * time.Hour),
		EstimatedDays:    days,
		Status:           StatusPending,
		Reasoning:        reasoning,
	}, nil
}
