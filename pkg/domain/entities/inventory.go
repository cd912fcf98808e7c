package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockBalance represents an item's opening inventory split by source.
// The three pools land in the first bucket of the run as separate
// inflows so the dashboard can distinguish where stock came from.
type StockBalance struct {
	ItemID        ItemID
	OnHand        decimal.Decimal
	WIP           decimal.Decimal
	SupplierStock decimal.Decimal
}

// NewStockBalance creates a validated stock balance
func NewStockBalance(itemID ItemID, onHand, wip, supplierStock decimal.Decimal) (*StockBalance, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: stock balance item ID cannot be empty", ErrInvalidInput)
	}
	if onHand.IsNegative() || wip.IsNegative() || supplierStock.IsNegative() {
		return nil, fmt.Errorf("%w: stock balance for %s cannot be negative (onhand=%s wip=%s supplier=%s)",
			ErrInvalidInput, itemID, onHand, wip, supplierStock)
	}

	return &StockBalance{
		ItemID:        itemID,
		OnHand:        onHand,
		WIP:           wip,
		SupplierStock: supplierStock,
	}, nil
}

// Total returns the full consumable opening position
func (s *StockBalance) Total() decimal.Decimal {
	return s.OnHand.Add(s.WIP).Add(s.SupplierStock)
}
