package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplierOffer represents one supplier's terms for one item. Multiple
// offers may exist per item; supplier selection picks the cheapest
// offer whose lead time is feasible.
type SupplierOffer struct {
	SupplierID   string
	SupplierName string
	ItemID       ItemID
	LeadTimeDays int
	LotSize      decimal.Decimal
	LotIncrement decimal.Decimal
	Rate         decimal.Decimal
}

// NewSupplierOffer creates a validated supplier offer
func NewSupplierOffer(
	supplierID, supplierName string,
	itemID ItemID,
	leadTimeDays int,
	lotSize, lotIncrement, rate decimal.Decimal,
) (*SupplierOffer, error) {
	if supplierID == "" {
		return nil, fmt.Errorf("%w: supplier ID cannot be empty", ErrInvalidInput)
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: supplier %s: item ID cannot be empty", ErrInvalidInput, supplierID)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("%w: supplier %s item %s: lead time cannot be negative, got %d",
			ErrInvalidInput, supplierID, itemID, leadTimeDays)
	}
	if lotSize.IsNegative() {
		return nil, fmt.Errorf("%w: supplier %s item %s: lot size cannot be negative, got %s",
			ErrInvalidInput, supplierID, itemID, lotSize)
	}
	if lotIncrement.IsNegative() {
		return nil, fmt.Errorf("%w: supplier %s item %s: lot increment cannot be negative, got %s",
			ErrInvalidInput, supplierID, itemID, lotIncrement)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: supplier %s item %s: rate cannot be negative, got %s",
			ErrInvalidInput, supplierID, itemID, rate)
	}

	if supplierName == "" {
		supplierName = supplierID
	}

	return &SupplierOffer{
		SupplierID:   supplierID,
		SupplierName: supplierName,
		ItemID:       itemID,
		LeadTimeDays: leadTimeDays,
		LotSize:      lotSize,
		LotIncrement: lotIncrement,
		Rate:         rate,
	}, nil
}
