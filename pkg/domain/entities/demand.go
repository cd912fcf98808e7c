package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDemandPriority sorts unprioritized demand after any demand
// that carries an explicit priority.
const DefaultDemandPriority = 999

// DemandOrder represents one line of independent demand. Immutable
// input; one trace is produced per order.
type DemandOrder struct {
	OrderID  string
	ItemID   ItemID
	Quantity decimal.Decimal
	DueDate  time.Time
	Priority int
}

// NewDemandOrder creates a validated demand order
func NewDemandOrder(orderID string, itemID ItemID, quantity decimal.Decimal, dueDate time.Time, priority int) (*DemandOrder, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: demand order ID cannot be empty", ErrInvalidInput)
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: demand order %s: item ID cannot be empty", ErrInvalidInput, orderID)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: demand order %s: quantity must be positive, got %s", ErrInvalidInput, orderID, quantity)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: demand order %s: due date is required", ErrInvalidInput, orderID)
	}

	return &DemandOrder{
		OrderID:  orderID,
		ItemID:   itemID,
		Quantity: quantity,
		DueDate:  dueDate,
		Priority: priority,
	}, nil
}
