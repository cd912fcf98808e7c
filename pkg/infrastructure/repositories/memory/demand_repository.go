package memory

import (
	"fmt"
	"sort"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// DemandRepository stores independent demand orders
type DemandRepository struct {
	demands []entities.DemandOrder
}

// NewDemandRepository creates an in-memory demand repository
func NewDemandRepository(expectedDemands int) *DemandRepository {
	return &DemandRepository{
		demands: make([]entities.DemandOrder, 0, expectedDemands),
	}
}

var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads demand orders into the repository
func (r *DemandRepository) LoadDemands(demands []*entities.DemandOrder) error {
	for _, demand := range demands {
		if demand == nil {
			return fmt.Errorf("%w: nil demand order", entities.ErrInvalidInput)
		}
		r.demands = append(r.demands, *demand)
	}
	return nil
}

// GetDemands returns demand sorted by (priority, due date, order ID).
// The sort is stable and total so planning runs are reproducible.
func (r *DemandRepository) GetDemands() ([]*entities.DemandOrder, error) {
	sorted := make([]entities.DemandOrder, len(r.demands))
	copy(sorted, r.demands)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		if !sorted[i].DueDate.Equal(sorted[j].DueDate) {
			return sorted[i].DueDate.Before(sorted[j].DueDate)
		}
		return sorted[i].OrderID < sorted[j].OrderID
	})

	demands := make([]*entities.DemandOrder, 0, len(sorted))
	for i := range sorted {
		demands = append(demands, &sorted[i])
	}
	return demands, nil
}
