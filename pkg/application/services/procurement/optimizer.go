// Package procurement scores and selects external vendors for a
// procurement need under a chosen optimization strategy.
package procurement

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
	"github.com/stockpilot/engine/pkg/domain/repositories"
	"github.com/stockpilot/engine/pkg/domain/services"
)

// Optimizer evaluates vendors for procurement needs. The strategy is
// fixed at construction and mapped to its weight vector once; an
// optimizer is safe for concurrent use.
type Optimizer struct {
	tables        config.Tables
	strategy      entities.Strategy
	weights       config.StrategyWeights
	estimator     *services.TransportEstimator
	vendorRepo    repositories.VendorRepository
	materialRepo  repositories.MaterialRepository
	warehouseRepo repositories.WarehouseRepository
}

// Request describes one procurement need
type Request struct {
	MaterialID    string
	DestinationID string
	Quantity      float64
	OrderDate     time.Time
	Deadline      time.Time // zero value = no deadline
	Urgent        bool      // shortens lead times, raises transport cost
}

// NewOptimizer creates a procurement optimizer, rejecting strategies
// outside the closed set
func NewOptimizer(
	tables config.Tables,
	strategy entities.Strategy,
	estimator *services.TransportEstimator,
	vendorRepo repositories.VendorRepository,
	materialRepo repositories.MaterialRepository,
	warehouseRepo repositories.WarehouseRepository,
) (*Optimizer, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("invalid optimization strategy %d", int(strategy))
	}
	weights, err := tables.WeightsFor(strategy)
	if err != nil {
		return nil, err
	}

	return &Optimizer{
		tables:        tables,
		strategy:      strategy,
		weights:       weights,
		estimator:     estimator,
		vendorRepo:    vendorRepo,
		materialRepo:  materialRepo,
		warehouseRepo: warehouseRepo,
	}, nil
}

// Strategy returns the strategy the optimizer was built with
func (o *Optimizer) Strategy() entities.Strategy {
	return o.strategy
}

// EvaluateVendors scores every vendor that lists the material and meets
// the deadline, best first. An empty slice means no vendor qualifies.
func (o *Optimizer) EvaluateVendors(req Request) ([]entities.VendorEvaluation, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %f", req.Quantity)
	}
	if req.MaterialID == "" || req.DestinationID == "" {
		return nil, fmt.Errorf("material and destination ids cannot be empty")
	}

	material, err := o.materialRepo.GetMaterial(req.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get material %s: %w", req.MaterialID, err)
	}
	destination, err := o.warehouseRepo.GetWarehouse(req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get destination %s: %w", req.DestinationID, err)
	}
	vendors, err := o.vendorRepo.GetVendorsForMaterial(req.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors for %s: %w", req.MaterialID, err)
	}

	evaluations := make([]entities.VendorEvaluation, 0, len(vendors))
	for _, vendor := range vendors {
		leadDays := vendor.AvgLeadTimeDays
		if req.Urgent {
			leadDays = maxInt(1, leadDays/2)
		}
		if !req.Deadline.IsZero() {
			delivery := req.OrderDate.Add(time.Duration(leadDays) * 24 * time.Hour)
			if delivery.After(req.Deadline) {
				continue
			}
		}

		evaluations = append(evaluations, o.evaluate(vendor, material, destination, req, leadDays))
	}

	sort.SliceStable(evaluations, func(i, j int) bool {
		return evaluations[i].WeightedScore > evaluations[j].WeightedScore
	})
	return evaluations, nil
}

// SelectVendor returns the best evaluation for the request, or nil when
// no vendor can supply the material in time
func (o *Optimizer) SelectVendor(req Request) (*entities.VendorEvaluation, error) {
	evaluations, err := o.EvaluateVendors(req)
	if err != nil {
		return nil, err
	}
	if len(evaluations) == 0 {
		return nil, nil
	}
	return &evaluations[0], nil
}

// BuildPurchaseOrder materializes a winning evaluation into a purchase
// order
func (o *Optimizer) BuildPurchaseOrder(eval *entities.VendorEvaluation, destinationID string, orderDate time.Time) (*entities.PurchaseOrder, error) {
	if eval == nil {
		return nil, fmt.Errorf("cannot build a purchase order without an evaluation")
	}
	reasoning := fmt.Sprintf("%s selected under %s strategy with score %.3f: landed cost %s/unit, %d day lead at reliability %.2f",
		eval.VendorName, o.strategy, eval.WeightedScore,
		eval.LandedCostPerUnit, eval.RiskAdjustedDays, eval.Reliability)
	return entities.NewPurchaseOrder(eval, destinationID, orderDate, reasoning)
}

func (o *Optimizer) evaluate(
	vendor *entities.Vendor,
	material *entities.Material,
	destination *entities.Warehouse,
	req Request,
	leadDays int,
) entities.VendorEvaluation {
	unitPrice, _ := vendor.PriceFor(req.MaterialID)
	quantity := decimal.NewFromFloat(req.Quantity)

	subtotal := unitPrice.Mul(quantity).Round(2)
	gstRate := o.tables.GSTRateFor(material.Category)
	gstAmount := subtotal.Mul(decimal.NewFromFloat(gstRate)).Round(2)

	distance := o.estimator.DistanceKm(vendor.Location, destination.Location)
	transportFloat := o.estimator.VendorTransportCost(distance, req.Quantity, req.Urgent)
	transport := decimal.NewFromFloat(transportFloat).Round(2)

	totalLanded := subtotal.Add(gstAmount).Add(transport)
	landedPerUnit := totalLanded.Div(quantity).Round(2)

	riskDays := leadDays + int(math.Round(float64(leadDays)*(1-vendor.Reliability)*0.5))

	costScore := 1.0 / (1.0 + totalLanded.InexactFloat64()/100000.0)
	timeScore := 1.0 / (1.0 + float64(riskDays)/7.0)
	weighted := o.weights.Cost*costScore +
		o.weights.Time*timeScore +
		o.weights.Reliability*vendor.Reliability

	var warnings []string
	if vendor.Reliability < 0.7 {
		warnings = append(warnings,
			fmt.Sprintf("vendor reliability %.2f is below 0.70", vendor.Reliability))
	}
	if float64(riskDays) > 1.5*float64(leadDays) {
		warnings = append(warnings,
			fmt.Sprintf("risk-adjusted lead of %d days far exceeds the quoted %d", riskDays, leadDays))
	}
	if subtotal.LessThan(vendor.MinOrderValue) {
		warnings = append(warnings,
			fmt.Sprintf("order value %s is below vendor minimum %s", subtotal, vendor.MinOrderValue))
	}

	return entities.VendorEvaluation{
		VendorID:          vendor.ID,
		VendorName:        vendor.Name,
		MaterialID:        req.MaterialID,
		Quantity:          req.Quantity,
		UnitPrice:         unitPrice,
		Subtotal:          subtotal,
		GSTAmount:         gstAmount,
		TransportCost:     transport,
		LandedCostPerUnit: landedPerUnit,
		DistanceKm:        distance,
		BaseLeadTimeDays:  leadDays,
		RiskAdjustedDays:  riskDays,
		Reliability:       vendor.Reliability,
		CostScore:         costScore,
		TimeScore:         timeScore,
		WeightedScore:     weighted,
		Warnings:          warnings,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
