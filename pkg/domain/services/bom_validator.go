package services

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// BOMValidator provides validation for BOM structure integrity
type BOMValidator struct{}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator() *BOMValidator {
	return &BOMValidator{}
}

// ValidationResult contains the results of BOM validation
type ValidationResult struct {
	HasCycles      bool
	CyclePaths     [][]entities.ItemID
	DuplicateEdges []entities.BOMEdge
	Errors         []string
}

// Err returns the fatal error for an invalid graph, or nil. Duplicate
// edges are reported but not fatal; cycles are.
func (r *ValidationResult) Err() error {
	if r.HasCycles {
		return fmt.Errorf("%w: cycle detected: %v", entities.ErrInvalidBOM, r.CyclePaths[0])
	}
	return nil
}

// ValidateBOM performs structural validation on a set of BOM edges
func (v *BOMValidator) ValidateBOM(edges []entities.BOMEdge) *ValidationResult {
	result := &ValidationResult{
		CyclePaths:     make([][]entities.ItemID, 0),
		DuplicateEdges: make([]entities.BOMEdge, 0),
		Errors:         make([]string, 0),
	}

	adjacency := buildAdjacency(edges)

	result.CyclePaths = v.detectCycles(adjacency)
	result.HasCycles = len(result.CyclePaths) > 0

	result.DuplicateEdges = v.detectDuplicateEdges(edges)

	if result.HasCycles {
		for _, cycle := range result.CyclePaths {
			result.Errors = append(result.Errors, fmt.Sprintf("BOM cycle detected: %v", cycle))
		}
	}
	if len(result.DuplicateEdges) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("found %d duplicate BOM edges", len(result.DuplicateEdges)))
	}

	return result
}

// buildAdjacency creates a parent -> children map with duplicate
// children collapsed
func buildAdjacency(edges []entities.BOMEdge) map[entities.ItemID][]entities.ItemID {
	adjacency := make(map[entities.ItemID][]entities.ItemID)

	for _, edge := range edges {
		children := adjacency[edge.ParentID]
		found := false
		for _, child := range children {
			if child == edge.ChildID {
				found = true
				break
			}
		}
		if !found {
			adjacency[edge.ParentID] = append(children, edge.ChildID)
		}
	}

	return adjacency
}

// detectCycles uses DFS to find cycles in the BOM structure
func (v *BOMValidator) detectCycles(adjacency map[entities.ItemID][]entities.ItemID) [][]entities.ItemID {
	visited := make(map[entities.ItemID]bool)
	onStack := make(map[entities.ItemID]bool)
	cycles := make([][]entities.ItemID, 0)

	for parent := range adjacency {
		if !visited[parent] {
			path := make([]entities.ItemID, 0)
			v.dfsDetectCycle(parent, adjacency, visited, onStack, path, &cycles)
		}
	}

	return cycles
}

func (v *BOMValidator) dfsDetectCycle(
	current entities.ItemID,
	adjacency map[entities.ItemID][]entities.ItemID,
	visited map[entities.ItemID]bool,
	onStack map[entities.ItemID]bool,
	path []entities.ItemID,
	cycles *[][]entities.ItemID,
) {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, child := range adjacency[current] {
		if !visited[child] {
			v.dfsDetectCycle(child, adjacency, visited, onStack, path, cycles)
		} else if onStack[child] {
			cycleStart := -1
			for i, item := range path {
				if item == child {
					cycleStart = i
					break
				}
			}
			if cycleStart != -1 {
				cycle := make([]entities.ItemID, 0, len(path)-cycleStart+1)
				cycle = append(cycle, path[cycleStart:]...)
				cycle = append(cycle, child)
				*cycles = append(*cycles, cycle)
			}
		}
	}

	onStack[current] = false
}

// detectDuplicateEdges finds repeated parent/child/BOM-id combinations
func (v *BOMValidator) detectDuplicateEdges(edges []entities.BOMEdge) []entities.BOMEdge {
	seen := make(map[string]bool)
	duplicates := make([]entities.BOMEdge, 0)

	for _, edge := range edges {
		key := fmt.Sprintf("%s|%s|%s", edge.ParentID, edge.ChildID, edge.BOMID)
		if seen[key] {
			duplicates = append(duplicates, edge)
		} else {
			seen[key] = true
		}
	}

	return duplicates
}
