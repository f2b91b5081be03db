package entities

// DecisionKind tags the variant of a reconciliation Decision
type DecisionKind int

const (
	DecisionUseLocal DecisionKind = iota
	DecisionTransfer
	DecisionProcure
)

// String method for DecisionKind enum
func (k DecisionKind) String() string {
	switch k {
	case DecisionUseLocal:
		return "USE_LOCAL"
	case DecisionTransfer:
		return "TRANSFER"
	case DecisionProcure:
		return "PROCURE"
	default:
		return "Unknown"
	}
}

// Decision is the outcome of reconciling one demand against network stock.
// Only the fields belonging to the tagged kind are populated; use the
// per-kind constructors.
type Decision struct {
	Kind          DecisionKind
	MaterialID    string
	DestinationID string
	RequiredQty   float64
	LocalQty      float64 // quantity satisfiable from local usable stock
	Plan          *TransferPlan
	ProcureQty    float64
	Reasoning     string
}

// NewUseLocalDecision builds a Decision fully satisfied from local stock
func NewUseLocalDecision(materialID, destinationID string, required, localQty float64, reasoning string) Decision {
	return Decision{
		Kind:          DecisionUseLocal,
		MaterialID:    materialID,
		DestinationID: destinationID,
		RequiredQty:   required,
		LocalQty:      localQty,
		Reasoning:     reasoning,
	}
}

// NewTransferDecision builds a Decision satisfied by an inter-warehouse
// transfer plan, on top of whatever local stock covers
func NewTransferDecision(materialID, destinationID string, required, localQty float64, plan *TransferPlan, reasoning string) Decision {
	return Decision{
		Kind:          DecisionTransfer,
		MaterialID:    materialID,
		DestinationID: destinationID,
		RequiredQty:   required,
		LocalQty:      localQty,
		Plan:          plan,
		Reasoning:     reasoning,
	}
}

// NewProcureDecision builds a Decision routed to external procurement
func NewProcureDecision(materialID, destinationID string, required, localQty, procureQty float64, reasoning string) Decision {
	return Decision{
		Kind:          DecisionProcure,
		MaterialID:    materialID,
		DestinationID: destinationID,
		RequiredQty:   required,
		LocalQty:      localQty,
		ProcureQty:    procureQty,
		Reasoning:     reasoning,
	}
}

// Demand is one requirement entering the engine from the forecasting or
// demand layer
type Demand struct {
	MaterialID    string
	DestinationID string
	Quantity      float64
}
