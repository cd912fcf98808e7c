package services

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// LowLevelCodes assigns each item its low-level code: the deepest level
// at which the item appears in any BOM. Items with no parents are level
// 0; every child sits strictly below all of its parents, which is what
// lets the planner finalize parent consumption before exploding a child.
//
// The edge set must already be cycle-free; ValidateBOM runs first. A
// cycle that slips through is still caught here by the iteration bound.
func LowLevelCodes(edges []entities.BOMEdge) (map[entities.ItemID]int, error) {
	levels := make(map[entities.ItemID]int)
	parents := make(map[entities.ItemID][]entities.ItemID)

	for _, edge := range edges {
		parents[edge.ChildID] = append(parents[edge.ChildID], edge.ParentID)
		if _, ok := levels[edge.ParentID]; !ok {
			levels[edge.ParentID] = 0
		}
		if _, ok := levels[edge.ChildID]; !ok {
			levels[edge.ChildID] = 0
		}
	}

	// Relax child levels until fixed point. Each pass can only raise a
	// level, and levels are bounded by the item count in an acyclic
	// graph, so more passes than items means a cycle.
	maxPasses := len(levels) + 1
	for pass := 0; ; pass++ {
		if pass > maxPasses {
			return nil, fmt.Errorf("%w: level assignment did not converge, graph has a cycle", entities.ErrInvalidBOM)
		}
		changed := false
		for _, edge := range edges {
			want := levels[edge.ParentID] + 1
			if levels[edge.ChildID] < want {
				levels[edge.ChildID] = want
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return levels, nil
}

// MaxLevel returns the deepest low-level code in the assignment
func MaxLevel(levels map[entities.ItemID]int) int {
	max := 0
	for _, level := range levels {
		if level > max {
			max = level
		}
	}
	return max
}
