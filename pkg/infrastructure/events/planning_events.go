package events

import (
	"github.com/planbeam/solver/pkg/domain/entities"
)

// Event types recorded during a solve run
const (
	TraceOpenedEvent      = "planning.trace.opened"
	DecisionRecordedEvent = "planning.decision.recorded"
	OrderPlannedEvent     = "planning.order.planned"
	ShortageFlaggedEvent  = "planning.shortage.flagged"
)

// DecisionRecorded carries one trace step for a demand order's stream
type DecisionRecorded struct {
	Step entities.TraceStep `json:"step"`
}

// OrderPlanned is emitted alongside the decision when an order is cut
type OrderPlanned struct {
	Order entities.PlannedOrder `json:"order"`
}

// ShortageFlagged is emitted when a requirement could not be covered
type ShortageFlagged struct {
	Item   entities.ItemID `json:"item"`
	Date   string          `json:"date"`
	Reason string          `json:"reason"`
}
