// Package batch consolidates pending orders that share a routing key
// into time-windowed batches, quantifying the bulk discount and freight
// savings the consolidation earns.
package batch

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/engine/pkg/config"
	"github.com/stockpilot/engine/pkg/domain/entities"
)

// Batcher groups purchase orders by (vendor, destination) and transfer
// orders by (source, destination), windowed by order date
type Batcher struct {
	tables config.Tables
}

// NewBatcher creates a Batcher with the given tables
func NewBatcher(tables config.Tables) *Batcher {
	return &Batcher{tables: tables}
}

// BatchPurchaseOrders consolidates purchase orders. Base cost is the
// pre-tax material subtotal; the bulk discount applies to it by
// aggregated unit count, and freight consolidation savings apply when a
// batch merges at least two shipments.
func (b *Batcher) BatchPurchaseOrders(orders []*entities.PurchaseOrder) ([]*entities.OrderBatch, error) {
	groups := map[string][]*entities.PurchaseOrder{}
	for _, order := range orders {
		if order == nil {
			return nil, fmt.Errorf("purchase order list contains a nil order")
		}
		key := order.VendorID + "|" + order.DestinationID
		groups[key] = append(groups[key], order)
	}

	var batches []*entities.OrderBatch
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].OrderDate.Before(group[j].OrderDate)
		})

		for start := 0; start < len(group); {
			windowEnd := group[start].OrderDate.Add(b.windowDuration())
			end := start + 1
			for end < len(group) && !group[end].OrderDate.After(windowEnd) {
				end++
			}

			batch, err := b.buildPurchaseBatch(group[start:end], windowEnd)
			if err != nil {
				return nil, err
			}
			batches = append(batches, batch)
			start = end
		}
	}

	sortBatches(batches)
	return batches, nil
}

// BatchTransferOrders consolidates transfer orders. Transfers carry no
// purchase cost, so only freight consolidation savings apply; volume
// already earns its bulk factor inside the per-order transport cost.
func (b *Batcher) BatchTransferOrders(orders []*entities.TransferOrder) ([]*entities.OrderBatch, error) {
	groups := map[string][]*entities.TransferOrder{}
	for _, order := range orders {
		if order == nil {
			return nil, fmt.Errorf("transfer order list contains a nil order")
		}
		key := order.SourceID + "|" + order.DestinationID
		groups[key] = append(groups[key], order)
	}

	var batches []*entities.OrderBatch
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].OrderDate.Before(group[j].OrderDate)
		})

		for start := 0; start < len(group); {
			windowEnd := group[start].OrderDate.Add(b.windowDuration())
			end := start + 1
			for end < len(group) && !group[end].OrderDate.After(windowEnd) {
				end++
			}

			batch, err := b.buildTransferBatch(group[start:end], windowEnd)
			if err != nil {
				return nil, err
			}
			batches = append(batches, batch)
			start = end
		}
	}

	sortBatches(batches)
	return batches, nil
}

func (b *Batcher) buildPurchaseBatch(orders []*entities.PurchaseOrder, windowEnd time.Time) (*entities.OrderBatch, error) {
	batch, err := entities.NewOrderBatch(entities.BatchPurchase,
		orders[0].VendorID, orders[0].DestinationID)
	if err != nil {
		return nil, err
	}

	baseCost := decimal.Zero
	transportCost := decimal.Zero
	for _, order := range orders {
		batch.Materials[order.MaterialID] += order.Quantity
		batch.OrderIDs = append(batch.OrderIDs, order.ID)
		batch.TotalUnits += order.Quantity
		baseCost = baseCost.Add(order.Subtotal)
		transportCost = transportCost.Add(order.TransportCost)
	}

	discountRate := b.tables.DiscountRateFor(batch.TotalUnits)
	batch.BaseCost = baseCost
	batch.TransportCost = transportCost
	batch.BulkDiscount = baseCost.Mul(decimal.NewFromFloat(discountRate)).Round(2)
	if len(orders) > 1 {
		batch.FreightSavings = transportCost.
			Mul(decimal.NewFromFloat(b.tables.PurchaseFreightSavings)).Round(2)
	} else {
		batch.FreightSavings = decimal.Zero
	}
	batch.NetCost = baseCost.Add(transportCost).
		Sub(batch.BulkDiscount).Sub(batch.FreightSavings)
	batch.WindowStart = orders[0].OrderDate
	batch.WindowEnd = windowEnd
	batch.Reasoning = fmt.Sprintf(
		"%d purchase orders from %s to %s within %d days: %.0f units earn %.0f%% bulk discount (%s) and freight savings of %s",
		len(orders), batch.PartyID, batch.DestinationID, b.tables.BatchWindowDays,
		batch.TotalUnits, discountRate*100, batch.BulkDiscount, batch.FreightSavings)

	return batch, nil
}

func (b *Batcher) buildTransferBatch(orders []*entities.TransferOrder, windowEnd time.Time) (*entities.OrderBatch, error) {
	batch, err := entities.NewOrderBatch(entities.BatchTransfer,
		orders[0].SourceID, orders[0].DestinationID)
	if err != nil {
		return nil, err
	}

	transportCost := decimal.Zero
	for _, order := range orders {
		batch.Materials[order.MaterialID] += order.Quantity
		batch.OrderIDs = append(batch.OrderIDs, order.ID)
		batch.TotalUnits += order.Quantity
		transportCost = transportCost.Add(order.TransportCost)
	}

	batch.BaseCost = decimal.Zero
	batch.TransportCost = transportCost
	batch.BulkDiscount = decimal.Zero
	if len(orders) > 1 {
		batch.FreightSavings = transportCost.
			Mul(decimal.NewFromFloat(b.tables.TransferFreightSavings)).Round(2)
	} else {
		batch.FreightSavings = decimal.Zero
	}
	batch.NetCost = transportCost.Sub(batch.FreightSavings)
	batch.WindowStart = orders[0].OrderDate
	batch.WindowEnd = windowEnd
	batch.Reasoning = fmt.Sprintf(
		"%d transfer orders %s to %s within %d days share one truck run, saving %s in freight",
		len(orders), batch.PartyID, batch.DestinationID, b.tables.BatchWindowDays,
		batch.FreightSavings)

	return batch, nil
}

func (b *Batcher) windowDuration() time.Duration {
	return time.Duration(b.tables.BatchWindowDays) * 24 * time.Hour
}

func sortBatches(batches []*entities.OrderBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].PartyID != batches[j].PartyID {
			return batches[i].PartyID < batches[j].PartyID
		}
		if batches[i].DestinationID != batches[j].DestinationID {
			return batches[i].DestinationID < batches[j].DestinationID
		}
		return batches[i].WindowStart.Before(batches[j].WindowStart)
	})
}
