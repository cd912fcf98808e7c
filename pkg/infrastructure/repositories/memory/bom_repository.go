package memory

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// BOMRepository stores BOM edges with parent and child indexes for
// cheap traversal in both directions
type BOMRepository struct {
	edges         []entities.BOMEdge
	parentIndexes map[entities.ItemID][]int
	childIndexes  map[entities.ItemID][]int
}

// NewBOMRepository creates an in-memory BOM repository
func NewBOMRepository(expectedEdges int) *BOMRepository {
	return &BOMRepository{
		edges:         make([]entities.BOMEdge, 0, expectedEdges),
		parentIndexes: make(map[entities.ItemID][]int),
		childIndexes:  make(map[entities.ItemID][]int),
	}
}

var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadEdges loads BOM edges into the repository
func (r *BOMRepository) LoadEdges(edges []*entities.BOMEdge) error {
	for _, edge := range edges {
		if edge == nil {
			return fmt.Errorf("%w: nil BOM edge", entities.ErrInvalidInput)
		}
		r.AddEdge(*edge)
	}
	return nil
}

// AddEdge adds a single BOM edge
func (r *BOMRepository) AddEdge(edge entities.BOMEdge) {
	index := len(r.edges)
	r.edges = append(r.edges, edge)
	r.parentIndexes[edge.ParentID] = append(r.parentIndexes[edge.ParentID], index)
	r.childIndexes[edge.ChildID] = append(r.childIndexes[edge.ChildID], index)
}

// GetComponents returns the child edges of a parent item
func (r *BOMRepository) GetComponents(parentID entities.ItemID) ([]*entities.BOMEdge, error) {
	return r.collect(r.parentIndexes[parentID]), nil
}

// GetParents returns the parent edges consuming a child item
func (r *BOMRepository) GetParents(childID entities.ItemID) ([]*entities.BOMEdge, error) {
	return r.collect(r.childIndexes[childID]), nil
}

// GetAllEdges returns all BOM edges
func (r *BOMRepository) GetAllEdges() ([]*entities.BOMEdge, error) {
	edges := make([]*entities.BOMEdge, 0, len(r.edges))
	for i := range r.edges {
		edges = append(edges, &r.edges[i])
	}
	return edges, nil
}

func (r *BOMRepository) collect(indexes []int) []*entities.BOMEdge {
	edges := make([]*entities.BOMEdge, 0, len(indexes))
	for _, index := range indexes {
		edges = append(edges, &r.edges[index])
	}
	return edges
}
