// Package triggers computes inventory-health snapshots: safety stock,
// reorder point, understock/overstock/adequacy ratios, severity
// classification, the alerts feed, and the savings summary derived from a
// batch of snapshots.
package triggers

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
)

// daysOfStockSentinel stands in for "unlimited" when daily demand is zero
const daysOfStockSentinel = 9999.0

// ConsumptionSite is a nearby higher-level consumption point whose
// capacity class weights the demand estimate for a warehouse
type ConsumptionSite struct {
	ID            string
	CapacityClass string
}

// Input carries everything needed to evaluate one (material, warehouse)
// pair. Optional fields fall back to configured defaults: zero
// HistoricalDailyDemand, MinStockLevel, and MaxStockLevel all mean
// "not supplied".
type Input struct {
	MaterialID            string
	WarehouseID           string
	CurrentStock          float64
	LeadTimeDays          int
	UnitPrice             decimal.Decimal
	Sites                 []ConsumptionSite
	HistoricalDailyDemand float64
	MinStockLevel         float64
	MaxStockLevel         float64
}

// Engine computes material triggers. Construct one per configuration and
// share freely; it holds no mutable state.
type Engine struct {
	tables config.Tables
}

// NewEngine creates a triggers engine with the given tables
func NewEngine(tables config.Tables) *Engine {
	return &Engine{tables: tables}
}

// Evaluate computes the full trigger snapshot for one pair. It never
// fails: missing optional inputs fall back to defaults.
func (e *Engine) Evaluate(in Input) entities.MaterialTriggers {
	multiplier := e.demandMultiplier(in.Sites)
	dailyDemand := e.dailyDemand(in) * multiplier

	leadTime := float64(in.LeadTimeDays)
	if leadTime < 0 {
		leadTime = 0
	}

	statistical := e.tables.ServiceLevelZ * dailyDemand * e.tables.VariabilityCoefficient * math.Sqrt(leadTime)
	floor := dailyDemand * e.tables.BufferDays
	safetyStock := math.Max(statistical, floor)

	reorderPoint := dailyDemand*leadTime + safetyStock

	utr := 0.0
	if reorderPoint > 0 {
		utr = math.Max(0, (reorderPoint-in.CurrentStock)/reorderPoint)
	}

	maxStock := in.MaxStockLevel
	if maxStock <= 0 {
		maxStock = e.tables.MaxStockMultiplier * reorderPoint
	}
	otr := 0.0
	if maxStock > 0 {
		otr = math.Max(0, (in.CurrentStock-maxStock)/maxStock)
	}

	buffer := dailyDemand * e.tables.BufferDays
	par := 2.0
	if reorderPoint+buffer > 0 {
		par = math.Min(in.CurrentStock/(reorderPoint+buffer), 2.0)
	}

	daysOfStock := daysOfStockSentinel
	if dailyDemand > 0 {
		daysOfStock = in.CurrentStock / dailyDemand
	}

	severity, label := classify(utr, otr, par, daysOfStock, leadTime)

	return entities.MaterialTriggers{
		MaterialID:        in.MaterialID,
		WarehouseID:       in.WarehouseID,
		CurrentStock:      in.CurrentStock,
		DailyDemand:       dailyDemand,
		DemandMultiplier:  multiplier,
		LeadTimeDays:      in.LeadTimeDays,
		SafetyStock:       safetyStock,
		ReorderPoint:      reorderPoint,
		MaxStockLevel:     maxStock,
		UnderstockRatio:   utr,
		OverstockRatio:    otr,
		AdequacyRatio:     par,
		DaysOfStock:       daysOfStock,
		Severity:          severity,
		SeverityLabel:     label,
		RecommendedAction: recommendedAction(severity, utr, otr),
		UnitPrice:         in.UnitPrice,
	}
}

// EvaluateBatch evaluates a batch of inputs and derives the alerts feed
// and savings summary in one pass
func (e *Engine) EvaluateBatch(inputs []Input, includeGreen bool) ([]entities.MaterialTriggers, []entities.AlertFeedItem, entities.ProfitSummary) {
	results := make([]entities.MaterialTriggers, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, e.Evaluate(in))
	}
	return results, e.AlertsFeed(results, includeGreen), e.SavingsSummary(results)
}

// AlertsFeed produces the alerting feed for a batch of snapshots, sorted
// by severity then descending understock ratio. GREEN items are excluded
// unless explicitly requested.
func (e *Engine) AlertsFeed(batch []entities.MaterialTriggers, includeGreen bool) []entities.AlertFeedItem {
	feed := make([]entities.AlertFeedItem, 0, len(batch))
	for _, trig := range batch {
		if trig.Severity == entities.SeverityGreen && !includeGreen {
			continue
		}
		feed = append(feed, entities.AlertFeedItem{
			MaterialID:        trig.MaterialID,
			WarehouseID:       trig.WarehouseID,
			Severity:          trig.Severity,
			UnderstockRatio:   trig.UnderstockRatio,
			Message:           alertMessage(trig),
			RecommendedAction: trig.RecommendedAction,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].Severity != feed[j].Severity {
			return feed[i].Severity > feed[j].Severity
		}
		return feed[i].UnderstockRatio > feed[j].UnderstockRatio
	})

	return feed
}

// SavingsSummary estimates the money on the table across a batch:
// expedite savings from acting on RED shortages and monthly holding
// savings from clearing overstock.
func (e *Engine) SavingsSummary(batch []entities.MaterialTriggers) entities.ProfitSummary {
	expedite := 0.0
	holding := 0.0
	redCount := 0
	overstockCount := 0

	for _, trig := range batch {
		price := trig.UnitPrice.InexactFloat64()
		if trig.Severity == entities.SeverityRed {
			expedite += trig.ShortageQuantity() * price * e.tables.ExpediteSavingsRate
			redCount++
		}
		if excess := trig.ExcessQuantity(); excess > 0 {
			holding += excess * price * e.tables.AnnualHoldingCostRate / 12.0
			overstockCount++
		}
	}

	return entities.ProfitSummary{
		ExpediteSavings:    decimal.NewFromFloat(expedite).Round(2),
		HoldingSavings:     decimal.NewFromFloat(holding).Round(2),
		RedItemCount:       redCount,
		OverstockItemCount: overstockCount,
	}
}

// demandMultiplier converts nearby consumption sites into a demand scale
// factor, capped by configuration. No sites means no scaling.
func (e *Engine) demandMultiplier(sites []ConsumptionSite) float64 {
	if len(sites) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, site := range sites {
		sum += e.tables.SiteWeightFor(site.CapacityClass)
	}
	return math.Min(1.0+e.tables.SiteDemandSlope*sum, e.tables.MaxDemandMultiplier)
}

// dailyDemand resolves the base daily demand before site scaling:
// historical figure when positive, else derived from the minimum stock
// level, else the configured default
func (e *Engine) dailyDemand(in Input) float64 {
	if in.HistoricalDailyDemand > 0 {
		return in.HistoricalDailyDemand
	}
	if in.MinStockLevel > 0 {
		return in.MinStockLevel / 7.0
	}
	return e.tables.DefaultDailyDemand
}

// classify runs the severity decision tree in strict priority order;
// the first matching band wins
func classify(utr, otr, par, daysOfStock, leadTime float64) (entities.Severity, string) {
	if utr > 0.7 || daysOfStock < 0.5*leadTime || par < 0.2 {
		return entities.SeverityRed, "critical"
	}
	if otr > 1.5 || utr > 0.4 || daysOfStock < leadTime || par < 0.4 || otr > 0.8 {
		return entities.SeverityAmber, "warning"
	}
	if otr > 0.3 {
		return entities.SeverityGreen, "slightly high"
	}
	return entities.SeverityGreen, "healthy"
}

func recommendedAction(severity entities.Severity, utr, otr float64) string {
	switch severity {
	case entities.SeverityRed:
		return "Expedite procurement immediately"
	case entities.SeverityAmber:
		if otr > 0.8 {
			return "Pause inbound orders and redistribute excess stock"
		}
		return "Raise a replenishment order"
	default:
		if otr > 0.3 {
			return "Monitor; stock slightly above plan"
		}
		return "No action required"
	}
}

func alertMessage(trig entities.MaterialTriggers) string {
	return fmt.Sprintf("%s: material %s at %s holds %.1f against reorder point %.1f (UTR %.2f, OTR %.2f)",
		trig.Severity, trig.MaterialID, trig.WarehouseID,
		trig.CurrentStock, trig.ReorderPoint,
		trig.UnderstockRatio, trig.OverstockRatio)
}
