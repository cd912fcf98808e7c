package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemID represents a unique item identifier. IDs are normalized to
// upper case with surrounding whitespace removed so that master data
// files with inconsistent casing still join correctly.
type ItemID string

// NormalizeItemID canonicalizes a raw identifier from master data.
func NormalizeItemID(raw string) ItemID {
	return ItemID(strings.ToUpper(strings.TrimSpace(raw)))
}

// ItemType classifies an item's position in the product structure
type ItemType int

const (
	FinishedGood ItemType = iota
	SubAssembly
	RawMaterial
)

func (t ItemType) String() string {
	switch t {
	case FinishedGood:
		return "FinishedGood"
	case SubAssembly:
		return "SubAssembly"
	case RawMaterial:
		return "RawMaterial"
	default:
		return "Unknown"
	}
}

// ParseItemType parses an item type from master data text
func ParseItemType(s string) (ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fg", "finishedgood", "finished_good", "finished good":
		return FinishedGood, nil
	case "sa", "subassembly", "sub_assembly", "sub assembly":
		return SubAssembly, nil
	case "rm", "rawmaterial", "raw_material", "raw material":
		return RawMaterial, nil
	default:
		return RawMaterial, fmt.Errorf("invalid item type: %q (expected FG, SA, or RM)", s)
	}
}

// ProcurementCode determines whether shortages for an item are covered
// by production or purchasing
type ProcurementCode int

const (
	ProcureBuy ProcurementCode = iota
	ProcureMake
	ProcureBoth
)

func (p ProcurementCode) String() string {
	switch p {
	case ProcureBuy:
		return "Buy"
	case ProcureMake:
		return "Make"
	case ProcureBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// ParseProcurementCode parses a make/buy code from master data text.
// "Both" plans as make; buy is the fallback, mirroring how upstream
// item masters leave the column blank for purchased parts.
func ParseProcurementCode(s string) ProcurementCode {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "both"):
		return ProcureBoth
	case strings.Contains(lower, "make"):
		return ProcureMake
	default:
		return ProcureBuy
	}
}

// IsMake reports whether shortages are covered by production orders
func (p ProcurementCode) IsMake() bool {
	return p == ProcureMake || p == ProcureBoth
}

// Item represents one row of the item master. Immutable during a solve run.
type Item struct {
	ID               ItemID
	Description      string
	Type             ItemType
	Procurement      ProcurementCode
	LeadTimeMakeDays int
	LeadTimeBuyDays  int
	LotSize          decimal.Decimal
	LotIncrement     decimal.Decimal
	SafetyStock      decimal.Decimal
	ResourceID       ResourceID
	HoursPerUnit     decimal.Decimal
}

// NewItem creates a validated Item
func NewItem(
	id ItemID,
	description string,
	itemType ItemType,
	procurement ProcurementCode,
	leadTimeMakeDays, leadTimeBuyDays int,
	lotSize, lotIncrement, safetyStock decimal.Decimal,
	resourceID ResourceID,
	hoursPerUnit decimal.Decimal,
) (*Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: item ID cannot be empty", ErrInvalidInput)
	}
	if leadTimeMakeDays < 0 {
		return nil, fmt.Errorf("%w: item %s: make lead time cannot be negative, got %d", ErrInvalidInput, id, leadTimeMakeDays)
	}
	if leadTimeBuyDays < 0 {
		return nil, fmt.Errorf("%w: item %s: buy lead time cannot be negative, got %d", ErrInvalidInput, id, leadTimeBuyDays)
	}
	if lotSize.IsNegative() {
		return nil, fmt.Errorf("%w: item %s: lot size cannot be negative, got %s", ErrInvalidInput, id, lotSize)
	}
	if lotIncrement.IsNegative() {
		return nil, fmt.Errorf("%w: item %s: lot increment cannot be negative, got %s", ErrInvalidInput, id, lotIncrement)
	}
	if safetyStock.IsNegative() {
		return nil, fmt.Errorf("%w: item %s: safety stock cannot be negative, got %s", ErrInvalidInput, id, safetyStock)
	}
	if hoursPerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: item %s: hours per unit cannot be negative, got %s", ErrInvalidInput, id, hoursPerUnit)
	}

	return &Item{
		ID:               id,
		Description:      description,
		Type:             itemType,
		Procurement:      procurement,
		LeadTimeMakeDays: leadTimeMakeDays,
		LeadTimeBuyDays:  leadTimeBuyDays,
		LotSize:          lotSize,
		LotIncrement:     lotIncrement,
		SafetyStock:      safetyStock,
		ResourceID:       resourceID,
		HoursPerUnit:     hoursPerUnit,
	}, nil
}
