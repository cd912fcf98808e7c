package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ResourceID identifies a production resource
type ResourceID string

// NormalizeResourceID canonicalizes a raw identifier from master data
func NormalizeResourceID(raw string) ResourceID {
	return ResourceID(strings.ToUpper(strings.TrimSpace(raw)))
}

// Resource represents a capacity-constrained production resource. The
// usable capacity per period is DailyCapacityHours across Machines
// parallel machines.
type Resource struct {
	ID                 ResourceID
	DailyCapacityHours decimal.Decimal
	Machines           int
}

// NewResource creates a validated resource
func NewResource(id ResourceID, dailyCapacityHours decimal.Decimal, machines int) (*Resource, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: resource ID cannot be empty", ErrInvalidInput)
	}
	if dailyCapacityHours.IsNegative() {
		return nil, fmt.Errorf("%w: resource %s: daily capacity cannot be negative, got %s",
			ErrInvalidInput, id, dailyCapacityHours)
	}
	if machines < 1 {
		machines = 1
	}

	return &Resource{
		ID:                 id,
		DailyCapacityHours: dailyCapacityHours,
		Machines:           machines,
	}, nil
}

// DailyHours returns the total usable hours per period
func (r *Resource) DailyHours() decimal.Decimal {
	return r.DailyCapacityHours.Mul(decimal.NewFromInt(int64(r.Machines)))
}
