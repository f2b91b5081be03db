package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a transfer or purchase order
type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusApproved
	StatusInTransit
	StatusDelivered
	StatusCancelled
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusInTransit:
		return "InTransit"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// TransferOption is a scored candidate source for an inter-warehouse
// transfer. It exists only for the duration of one reconciliation call.
type TransferOption struct {
	SourceID      string
	DestinationID string
	MaterialID    string
	Quantity      float64
	AvailableQty  float64
	DistanceKm    float64
	TransportCost float64
	TotalCost     float64
	ETAHours      float64
	Reliability   float64
	Score         float64
}

// TransferPlan is the allocation of a requirement across ranked source
// warehouses, possibly partial.
type TransferPlan struct {
	MaterialID       string
	DestinationID    string
	RequiredQuantity float64
	Allocations      []TransferOption
	FulfilledQty     float64
	ShortfallQty     float64
	Warnings         []string
}

// Fulfilled reports whether the plan covers the full requirement
func (p *TransferPlan) Fulfilled() bool {
	return p.ShortfallQty <= 0
}

// TotalTransportCost sums the transport cost across all allocations
func (p *TransferPlan) TotalTransportCost() float64 {
	total := 0.0
	for _, alloc := range p.Allocations {
		total += alloc.TransportCost
	}
	return total
}

// TransferOrder represents a materialized decision to move stock between
// two warehouses. Persistence of the order is an external concern.
type TransferOrder struct {
	ID              string
	MaterialID      string
	SourceID        string
	DestinationID   string
	Quantity        float64
	DistanceKm      float64
	TransportCost   decimal.Decimal
	OrderDate       time.Time
	ExpectedArrival time.Time
	EstimatedDays   int
	Status          OrderStatus
	Reasoning       string
}

// NewTransferOrder creates a validated TransferOrder with a fresh id
func NewTransferOrder(
	materialID, sourceID, destinationID string,
	quantity, distanceKm float64,
	transportCost decimal.Decimal,
	orderDate time.Time,
	estimatedDays int,
	reasoning string,
) (*TransferOrder, error) {
	if materialID == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if sourceID == "" || destinationID == "" {
		return nil, fmt.Errorf("source and destination ids cannot be empty")
	}
	if sourceID == destinationID {
		return nil, fmt.Errorf("source and destination cannot both be %s", sourceID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %f", quantity)
	}
	if estimatedDays < 1 {
		estimatedDays = 1
	}

	return &TransferOrder{
		ID:              uuid.NewString(),
		MaterialID:      materialID,
		SourceID:        sourceID,
		DestinationID:   destinationID,
		Quantity:        quantity,
		DistanceKm:      distanceKm,
		TransportCost:   transportCost,
		OrderDate:       orderDate,
		ExpectedArrival: orderDate.Add(time.Duration(estimatedDays) * 24 * time.Hour),
		EstimatedDays:   estimatedDays,
		Status:          StatusPending,
		Reasoning:       reasoning,
	}, nil
}
