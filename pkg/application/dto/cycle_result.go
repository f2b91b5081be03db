// Package dto carries the serialization-friendly projections of a cycle
// result consumed by the CLI output layer. Money fields are formatted
// strings so JSON readers never see binary floating point.
package dto

import (
	"time"

	"github.com/stockpilot/engine/pkg/application/services/orchestration"
	"github.com/stockpilot/engine/pkg/domain/entities"
)

// CycleResult is the JSON-facing projection of one planning cycle
type CycleResult struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	Decisions      []Decision      `json:"decisions"`
	TransferOrders []TransferOrder `json:"transfer_orders"`
	PurchaseOrders []PurchaseOrder `json:"purchase_orders"`
	Batches        []OrderBatch    `json:"batches"`
	Unfulfilled    []Demand        `json:"unfulfilled"`
	Alerts         []Alert         `json:"alerts"`
	Savings        Savings         `json:"savings"`
}

// Decision summarizes one reconciliation outcome
type Decision struct {
	Kind          string  `json:"kind"`
	MaterialID    string  `json:"material_id"`
	DestinationID string  `json:"destination_id"`
	RequiredQty   float64 `json:"required_qty"`
	LocalQty      float64 `json:"local_qty"`
	ProcureQty    float64 `json:"procure_qty,omitempty"`
	Reasoning     string  `json:"reasoning"`
}

// TransferOrder is the wire form of an inter-warehouse movement
type TransferOrder struct {
	ID              string    `json:"id"`
	MaterialID      string    `json:"material_id"`
	SourceID        string    `json:"source_id"`
	DestinationID   string    `json:"destination_id"`
	Quantity        float64   `json:"quantity"`
	DistanceKm      float64   `json:"distance_km"`
	TransportCost   string    `json:"transport_cost"`
	OrderDate       time.Time `json:"order_date"`
	ExpectedArrival time.Time `json:"expected_arrival"`
	EstimatedDays   int       `json:"estimated_days"`
	Status          string    `json:"status"`
}

// PurchaseOrder is the wire form of a vendor order
type PurchaseOrder struct {
	ID               string    `json:"id"`
	MaterialID       string    `json:"material_id"`
	VendorID         string    `json:"vendor_id"`
	DestinationID    string    `json:"destination_id"`
	Quantity         float64   `json:"quantity"`
	UnitPrice        string    `json:"unit_price"`
	TotalCost        string    `json:"total_cost"`
	OrderDate        time.Time `json:"order_date"`
	ExpectedDelivery time.Time `json:"expected_delivery"`
	EstimatedDays    int       `json:"estimated_days"`
	Status           string    `json:"status"`
	Reasoning        string    `json:"reasoning"`
}

// OrderBatch is the wire form of a consolidated order group
type OrderBatch struct {
	ID             string             `json:"id"`
	Kind           string             `json:"kind"`
	PartyID        string             `json:"party_id"`
	DestinationID  string             `json:"destination_id"`
	Materials      map[string]float64 `json:"materials"`
	OrderIDs       []string           `json:"order_ids"`
	TotalUnits     float64            `json:"total_units"`
	NetCost        string             `json:"net_cost"`
	BulkDiscount   string             `json:"bulk_discount"`
	FreightSavings string             `json:"freight_savings"`
	Reasoning      string             `json:"reasoning"`
}

// Demand mirrors an unfulfillable requirement
type Demand struct {
	MaterialID    string  `json:"material_id"`
	DestinationID string  `json:"destination_id"`
	Quantity      float64 `json:"quantity"`
}

// Alert is one entry of the alerts feed
type Alert struct {
	MaterialID        string  `json:"material_id"`
	WarehouseID       string  `json:"warehouse_id"`
	Severity          string  `json:"severity"`
	UnderstockRatio   float64 `json:"understock_ratio"`
	Message           string  `json:"message"`
	RecommendedAction string  `json:"recommended_action"`
}

// Savings summarizes the cycle's savings estimate
type Savings struct {
	ExpediteSavings    string `json:"expedite_savings"`
	HoldingSavings     string `json:"holding_savings"`
	RedItemCount       int    `json:"red_item_count"`
	OverstockItemCount int    `json:"overstock_item_count"`
}

// FromCycleResult projects an orchestration result into its wire form
func FromCycleResult(result *orchestration.CycleResult) *CycleResult {
	out := &CycleResult{
		GeneratedAt:    time.Now().UTC(),
		Decisions:      make([]Decision, 0, len(result.Decisions)),
		TransferOrders: make([]TransferOrder, 0, len(result.TransferOrders)),
		PurchaseOrders: make([]PurchaseOrder, 0, len(result.PurchaseOrders)),
		Unfulfilled:    make([]Demand, 0, len(result.Unfulfilled)),
		Alerts:         make([]Alert, 0, len(result.Alerts)),
		Savings: Savings{
			ExpediteSavings:    result.Savings.ExpediteSavings.StringFixed(2),
			HoldingSavings:     result.Savings.HoldingSavings.StringFixed(2),
			RedItemCount:       result.Savings.RedItemCount,
			OverstockItemCount: result.Savings.OverstockItemCount,
		},
	}

	for _, d := range result.Decisions {
		out.Decisions = append(out.Decisions, Decision{
			Kind:          d.Kind.String(),
			MaterialID:    d.MaterialID,
			DestinationID: d.DestinationID,
			RequiredQty:   d.RequiredQty,
			LocalQty:      d.LocalQty,
			ProcureQty:    d.ProcureQty,
			Reasoning:     d.Reasoning,
		})
	}
	for _, o := range result.TransferOrders {
		out.TransferOrders = append(out.TransferOrders, TransferOrder{
			ID:              o.ID,
			MaterialID:      o.MaterialID,
			SourceID:        o.SourceID,
			DestinationID:   o.DestinationID,
			Quantity:        o.Quantity,
			DistanceKm:      o.DistanceKm,
			TransportCost:   o.TransportCost.StringFixed(2),
			OrderDate:       o.OrderDate,
			ExpectedArrival: o.ExpectedArrival,
			EstimatedDays:   o.EstimatedDays,
			Status:          o.Status.String(),
		})
	}
	for _, o := range result.PurchaseOrders {
		out.PurchaseOrders = append(out.PurchaseOrders, PurchaseOrder{
			ID:               o.ID,
			MaterialID:       o.MaterialID,
			VendorID:         o.VendorID,
			DestinationID:    o.DestinationID,
			Quantity:         o.Quantity,
			UnitPrice:        o.UnitPrice.StringFixed(2),
			TotalCost:        o.TotalCost.StringFixed(2),
			OrderDate:        o.OrderDate,
			ExpectedDelivery: o.ExpectedDelivery,
			EstimatedDays:    o.EstimatedDays,
			Status:           o.Status.String(),
			Reasoning:        o.Reasoning,
		})
	}
	for _, b := range result.PurchaseBatches {
		out.Batches = append(out.Batches, batchDTO(b))
	}
	for _, b := range result.TransferBatches {
		out.Batches = append(out.Batches, batchDTO(b))
	}
	for _, u := range result.Unfulfilled {
		out.Unfulfilled = append(out.Unfulfilled, Demand{
			MaterialID:    u.MaterialID,
			DestinationID: u.DestinationID,
			Quantity:      u.Quantity,
		})
	}
	for _, a := range result.Alerts {
		out.Alerts = append(out.Alerts, Alert{
			MaterialID:        a.MaterialID,
			WarehouseID:       a.WarehouseID,
			Severity:          a.Severity.String(),
			UnderstockRatio:   a.UnderstockRatio,
			Message:           a.Message,
			RecommendedAction: a.RecommendedAction,
		})
	}

	return out
}

func batchDTO(b *entities.OrderBatch) OrderBatch {
	return OrderBatch{
		ID:             b.ID,
		Kind:           b.Kind.String(),
		PartyID:        b.PartyID,
		DestinationID:  b.DestinationID,
		Materials:      b.Materials,
		OrderIDs:       b.OrderIDs,
		TotalUnits:     b.TotalUnits,
		NetCost:        b.NetCost.StringFixed(2),
		BulkDiscount:   b.BulkDiscount.StringFixed(2),
		FreightSavings: b.FreightSavings.StringFixed(2),
		Reasoning:      b.Reasoning,
	}
}
