package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchKind distinguishes purchase batches from transfer batches
type BatchKind int

const (
	BatchPurchase BatchKind = iota
	BatchTransfer
)

// String method for BatchKind enum
func (k BatchKind) String() string {
	switch k {
	case BatchPurchase:
		return "Purchase"
	case BatchTransfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// OrderBatch aggregates compatible orders sharing a routing key within a
// time window, with the bulk discount and freight consolidation applied
type OrderBatch struct {
	ID             string
	Kind           BatchKind
	PartyID        string // vendor for purchases, source warehouse for transfers
	DestinationID  string
	Materials      map[string]float64 // material id -> aggregated quantity
	OrderIDs       []string
	TotalUnits     float64
	BaseCost       decimal.Decimal
	TransportCost  decimal.Decimal
	BulkDiscount   decimal.Decimal
	FreightSavings decimal.Decimal
	NetCost        decimal.Decimal
	WindowStart    time.Time
	WindowEnd      time.Time
	Reasoning      string
}

// NewOrderBatch creates a validated empty OrderBatch for a routing key
func NewOrderBatch(kind BatchKind, partyID, destinationID string) (*OrderBatch, error) {
	if partyID == "" {
		return nil, fmt.Errorf("batch party id cannot be empty")
	}
	if destinationID == "" {
		return nil, fmt.Errorf("batch destination id cannot be empty")
	}

	return &OrderBatch{
		ID:            uuid.NewString(),
		Kind:          kind,
		PartyID:       partyID,
		DestinationID: destinationID,
		Materials:     map[string]float64{},
	}, nil
}

// TotalSavings returns the combined bulk and freight savings of the batch
func (b *OrderBatch) TotalSavings() decimal.Decimal {
	return b.BulkDiscount.Add(b.FreightSavings)
}
