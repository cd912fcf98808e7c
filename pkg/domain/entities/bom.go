package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BOMEdge represents a single parent/child line in a bill of materials.
// The full edge set must form a DAG; cycles are a fatal input error.
type BOMEdge struct {
	ParentID ItemID
	ChildID  ItemID
	BOMID    string
	QtyPer   decimal.Decimal
}

// NewBOMEdge creates a validated BOM edge
func NewBOMEdge(parentID, childID ItemID, bomID string, qtyPer decimal.Decimal) (*BOMEdge, error) {
	if parentID == "" {
		return nil, fmt.Errorf("%w: BOM edge parent ID cannot be empty", ErrInvalidInput)
	}
	if childID == "" {
		return nil, fmt.Errorf("%w: BOM edge child ID cannot be empty", ErrInvalidInput)
	}
	if parentID == childID {
		return nil, fmt.Errorf("%w: BOM edge %s references itself", ErrInvalidBOM, parentID)
	}
	if !qtyPer.IsPositive() {
		return nil, fmt.Errorf("%w: BOM edge %s -> %s: qty per must be positive, got %s",
			ErrInvalidInput, parentID, childID, qtyPer)
	}

	return &BOMEdge{
		ParentID: parentID,
		ChildID:  childID,
		BOMID:    bomID,
		QtyPer:   qtyPer,
	}, nil
}
