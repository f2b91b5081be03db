package entities

import "fmt"

// Strategy selects the weighting applied when scoring vendors for a
// procurement need. The closed set is validated at engine construction;
// there is no string dispatch.
type Strategy int

const (
	StrategyBalanced Strategy = iota
	StrategyCostFocused
	StrategyRush
	StrategyRiskAverse
)

// String method for Strategy enum
func (s Strategy) String() string {
	switch s {
	case StrategyBalanced:
		return "balanced"
	case StrategyCostFocused:
		return "cost_focused"
	case StrategyRush:
		return "rush"
	case StrategyRiskAverse:
		return "risk_averse"
	default:
		return "Unknown"
	}
}

// ParseStrategy maps a strategy name arriving from a configuration
// boundary onto the closed set
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "balanced":
		return StrategyBalanced, nil
	case "cost_focused":
		return StrategyCostFocused, nil
	case "rush":
		return StrategyRush, nil
	case "risk_averse":
		return StrategyRiskAverse, nil
	default:
		return StrategyBalanced, fmt.Errorf("unknown strategy %q (expected: balanced, cost_focused, rush, or risk_averse)", name)
	}
}

// Valid reports whether the strategy is a member of the closed set
func (s Strategy) Valid() bool {
	switch s {
	case StrategyBalanced, StrategyCostFocused, StrategyRush, StrategyRiskAverse:
		return true
	default:
		return false
	}
}
