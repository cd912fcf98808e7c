package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents the type of planned order
type OrderType int

const (
	Production OrderType = iota
	Purchase
)

func (o OrderType) String() string {
	switch o {
	case Production:
		return "Production"
	case Purchase:
		return "Purchase"
	default:
		return "Unknown"
	}
}

// MarshalJSON serializes the order type as its display name
func (o OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// PlannedOrder represents a planned production or purchase order.
// Immutable once emitted; its quantity feeds back into the ledger as
// inflow_fresh at the finish date.
type PlannedOrder struct {
	ID           string
	Type         OrderType
	ItemID       ItemID
	Quantity     decimal.Decimal
	Start        time.Time
	Finish       time.Time
	Resource     ResourceID
	Supplier     string
	LeadTimeDays int
	Rate         decimal.Decimal
	TotalCost    decimal.Decimal
}

// NewPlannedOrder creates a validated planned order
func NewPlannedOrder(
	id string,
	orderType OrderType,
	itemID ItemID,
	quantity decimal.Decimal,
	start, finish time.Time,
	resource ResourceID,
	supplier string,
	leadTimeDays int,
	rate decimal.Decimal,
) (*PlannedOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("planned order ID cannot be empty")
	}
	if itemID == "" {
		return nil, fmt.Errorf("planned order %s: item ID cannot be empty", id)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("planned order %s: quantity must be positive, got %s", id, quantity)
	}
	if start.After(finish) {
		return nil, fmt.Errorf("planned order %s: start %s cannot be after finish %s",
			id, start.Format(DateLayout), finish.Format(DateLayout))
	}

	return &PlannedOrder{
		ID:           id,
		Type:         orderType,
		ItemID:       itemID,
		Quantity:     quantity,
		Start:        start,
		Finish:       finish,
		Resource:     resource,
		Supplier:     supplier,
		LeadTimeDays: leadTimeDays,
		Rate:         rate,
		TotalCost:    rate.Mul(quantity),
	}, nil
}

type plannedOrderJSON struct {
	ID           string          `json:"id"`
	Type         OrderType       `json:"type"`
	Item         ItemID          `json:"item"`
	Qty          decimal.Decimal `json:"qty"`
	Start        string          `json:"start"`
	Finish       string          `json:"finish"`
	Resource     ResourceID      `json:"res,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	LeadTimeDays int             `json:"lt_days"`
	Rate         decimal.Decimal `json:"rate"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// MarshalJSON serializes the order in the wire shape the dashboard
// tables consume, with date-only start/finish.
func (o PlannedOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(plannedOrderJSON{
		ID:           o.ID,
		Type:         o.Type,
		Item:         o.ItemID,
		Qty:          o.Quantity,
		Start:        o.Start.Format(DateLayout),
		Finish:       o.Finish.Format(DateLayout),
		Resource:     o.Resource,
		Supplier:     o.Supplier,
		LeadTimeDays: o.LeadTimeDays,
		Rate:         o.Rate,
		TotalCost:    o.TotalCost,
	})
}
