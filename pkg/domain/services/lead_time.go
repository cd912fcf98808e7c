package services

import (
	"github.com/planbeam/solver/pkg/domain/entities"
)

// CumulativeLeadTimes computes, per item, the longest lead-time path
// from the item down to its deepest purchased component. A demand due
// sooner than its item's cumulative lead time cannot be met from a
// standing start no matter what the planner does, which makes this the
// cheapest early feasibility signal the run can log.
func CumulativeLeadTimes(
	items map[entities.ItemID]*entities.Item,
	edges []entities.BOMEdge,
	offers map[entities.ItemID][]entities.SupplierOffer,
) map[entities.ItemID]int {
	children := make(map[entities.ItemID][]entities.ItemID)
	for _, edge := range edges {
		children[edge.ParentID] = append(children[edge.ParentID], edge.ChildID)
	}

	memo := make(map[entities.ItemID]int)
	var walk func(id entities.ItemID, onPath map[entities.ItemID]bool) int
	walk = func(id entities.ItemID, onPath map[entities.ItemID]bool) int {
		if days, ok := memo[id]; ok {
			return days
		}
		if onPath[id] {
			// Cycles are fatal elsewhere; just stop the walk here.
			return 0
		}
		onPath[id] = true
		defer delete(onPath, id)

		deepest := 0
		for _, child := range children[id] {
			if d := walk(child, onPath); d > deepest {
				deepest = d
			}
		}

		total := ownLeadTime(id, items, offers) + deepest
		memo[id] = total
		return total
	}

	result := make(map[entities.ItemID]int, len(items))
	for id := range items {
		result[id] = walk(id, make(map[entities.ItemID]bool))
	}
	return result
}

// ownLeadTime resolves a single item's replenishment lead time: make
// items use the manufacturing lead time, buy items the shortest
// supplier offer, falling back to the item's own buy lead time.
func ownLeadTime(
	id entities.ItemID,
	items map[entities.ItemID]*entities.Item,
	offers map[entities.ItemID][]entities.SupplierOffer,
) int {
	item, ok := items[id]
	if !ok {
		return 0
	}
	if item.Procurement.IsMake() {
		return item.LeadTimeMakeDays
	}

	best := -1
	for _, offer := range offers[id] {
		if best == -1 || offer.LeadTimeDays < best {
			best = offer.LeadTimeDays
		}
	}
	if best >= 0 {
		return best
	}
	return item.LeadTimeBuyDays
}
