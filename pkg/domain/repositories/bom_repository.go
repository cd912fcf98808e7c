package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// BOMRepository provides access to bill-of-materials data
type BOMRepository interface {
	// GetComponents returns the child edges of a parent item
	GetComponents(parentID entities.ItemID) ([]*entities.BOMEdge, error)
	// GetParents returns the parent edges consuming a child item
	GetParents(childID entities.ItemID) ([]*entities.BOMEdge, error)
	GetAllEdges() ([]*entities.BOMEdge, error)
	LoadEdges(edges []*entities.BOMEdge) error
}
