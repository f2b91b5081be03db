package events

import (
	"github.com/stockpilot/engine/pkg/domain/entities"
)

const (
	DecisionMadeEvent      = "decision.made"
	TransferCreatedEvent   = "order.transfer.created"
	PurchaseCreatedEvent   = "order.purchase.created"
	DemandUnfulfilledEvent = "demand.unfulfilled"
	StockAlertEvent        = "stock.alert"
	CycleCompletedEvent    = "cycle.completed"
)

type DecisionMade struct {
	Decision entities.Decision `json:"decision"`
}

type TransferCreated struct {
	Order *entities.TransferOrder `json:"order"`
}

type PurchaseCreated struct {
	Order *entities.PurchaseOrder `json:"order"`
}

type DemandUnfulfilled struct {
	Demand entities.Demand `json:"demand"`
}

type StockAlert struct {
	Alert entities.AlertFeedItem `json:"alert"`
}

type CycleCompleted struct {
	Decisions      int                    `json:"decisions"`
	TransferOrders int                    `json:"transfer_orders"`
	PurchaseOrders int                    `json:"purchase_orders"`
	Unfulfilled    int                    `json:"unfulfilled"`
	Savings        entities.ProfitSummary `json:"savings"`
}

func NewDecisionMadeEvent(decision entities.Decision) Event {
	return NewEvent(DecisionMadeEvent, decision.MaterialID, DecisionMade{Decision: decision})
}

func NewTransferCreatedEvent(order *entities.TransferOrder) Event {
	return NewEvent(TransferCreatedEvent, order.MaterialID, TransferCreated{Order: order})
}

func NewPurchaseCreatedEvent(order *entities.PurchaseOrder) Event {
	return NewEvent(PurchaseCreatedEvent, order.MaterialID, PurchaseCreated{Order: order})
}

func NewDemandUnfulfilledEvent(demand entities.Demand) Event {
	return NewEvent(DemandUnfulfilledEvent, demand.MaterialID, DemandUnfulfilled{Demand: demand})
}

func NewStockAlertEvent(alert entities.AlertFeedItem) Event {
	return NewEvent(StockAlertEvent, alert.MaterialID, StockAlert{Alert: alert})
}

func NewCycleCompletedEvent(decisions, transfers, purchases, unfulfilled int, savings entities.ProfitSummary) Event {
	return NewEvent(CycleCompletedEvent, "cycle", CycleCompleted{
		Decisions:      decisions,
		TransferOrders: transfers,
		PurchaseOrders: purchases,
		Unfulfilled:    unfulfilled,
		Savings:        savings,
	})
}
