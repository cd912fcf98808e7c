package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// DemandRepository provides access to independent demand orders
type DemandRepository interface {
	// GetDemands returns demand sorted by (priority, due date), the
	// order the planner resolves it in
	GetDemands() ([]*entities.DemandOrder, error)
	LoadDemands(demands []*entities.DemandOrder) error
}
