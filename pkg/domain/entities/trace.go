package entities

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TraceAction classifies one planning decision in a demand trace
type TraceAction int

const (
	ActionStock TraceAction = iota
	ActionProduction
	ActionPurchase
	ActionInfeasible
	ActionResolved
)

func (a TraceAction) String() string {
	switch a {
	case ActionStock:
		return "Stock"
	case ActionProduction:
		return "Production"
	case ActionPurchase:
		return "Purchase"
	case ActionInfeasible:
		return "Infeasible"
	case ActionResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// MarshalJSON serializes the action as its display name
func (a TraceAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// TraceStep records one planning decision, successful or not, taken on
// behalf of a demand order. Steps are append-only and kept in decision
// order for root-cause analysis.
type TraceStep struct {
	Action      TraceAction     `json:"action"`
	Item        ItemID          `json:"item"`
	Qty         decimal.Decimal `json:"qty"`
	Msg         string          `json:"msg,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Date        string          `json:"date,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Resource    ResourceID      `json:"resource,omitempty"`
	NeededStart string          `json:"needed_start,omitempty"`
}

// DemandTrace is the ordered decision record for one demand order,
// including actions taken at lower BOM levels on its behalf.
type DemandTrace struct {
	OrderID string          `json:"order_id"`
	Item    ItemID          `json:"item"`
	Qty     decimal.Decimal `json:"qty"`
	Due     string          `json:"due"`
	Steps   []TraceStep     `json:"steps"`
}
