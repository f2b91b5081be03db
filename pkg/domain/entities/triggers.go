package entities

import "github.com/shopspring/decimal"

// Severity classifies the inventory health of a material at a warehouse
type Severity int

const (
	SeverityGreen Severity = iota
	SeverityAmber
	SeverityRed
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityGreen:
		return "GREEN"
	case SeverityAmber:
		return "AMBER"
	case SeverityRed:
		return "RED"
	default:
		return "Unknown"
	}
}

// MaterialTriggers is the computed inventory-health snapshot for one
// (material, warehouse) pair. Recomputed on demand, never persisted here.
type MaterialTriggers struct {
	MaterialID        string
	WarehouseID       string
	CurrentStock      float64
	DailyDemand       float64
	DemandMultiplier  float64
	LeadTimeDays      int
	SafetyStock       float64
	ReorderPoint      float64
	MaxStockLevel     float64
	UnderstockRatio   float64 // UTR in [0,1]
	OverstockRatio    float64 // OTR >= 0
	AdequacyRatio     float64 // PAR in [0,2]
	DaysOfStock       float64
	Severity          Severity
	SeverityLabel     string
	RecommendedAction string
	UnitPrice         decimal.Decimal
}

// ShortageQuantity returns the units below the reorder point, zero when
// stock covers it
func (t *MaterialTriggers) ShortageQuantity() float64 {
	short := t.ReorderPoint - t.CurrentStock
	if short < 0 {
		return 0
	}
	return short
}

// ExcessQuantity returns the units above the maximum stock level, zero
// when within bounds
func (t *MaterialTriggers) ExcessQuantity() float64 {
	if t.MaxStockLevel <= 0 {
		return 0
	}
	excess := t.CurrentStock - t.MaxStockLevel
	if excess < 0 {
		return 0
	}
	return excess
}

// AlertFeedItem is one entry in the alerting feed derived from a batch of
// trigger snapshots
type AlertFeedItem struct {
	MaterialID        string
	WarehouseID       string
	Severity          Severity
	UnderstockRatio   float64
	Message           string
	RecommendedAction string
}

// ProfitSummary aggregates the savings opportunities across a batch of
// trigger snapshots for reporting dashboards
type ProfitSummary struct {
	ExpediteSavings    decimal.Decimal // from acting on RED shortages
	HoldingSavings     decimal.Decimal // monthly, from clearing overstock
	RedItemCount       int
	OverstockItemCount int
}
