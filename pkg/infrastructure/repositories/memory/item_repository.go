package memory

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// ItemRepository stores the item master in a slice with an ID index
type ItemRepository struct {
	items    []entities.Item
	itemsMap map[entities.ItemID]int
}

// NewItemRepository creates an in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.ItemID]int, expectedItems),
	}
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository. Duplicate IDs are a fatal
// input error: the planner must not silently pick one of two masters.
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		if item == nil {
			return fmt.Errorf("%w: nil item", entities.ErrInvalidInput)
		}
		if _, exists := r.itemsMap[item.ID]; exists {
			return fmt.Errorf("%w: duplicate item ID %s", entities.ErrInvalidInput, item.ID)
		}
		r.itemsMap[item.ID] = len(r.items)
		r.items = append(r.items, *item)
	}
	return nil
}

// GetItem returns the item master row for an ID
func (r *ItemRepository) GetItem(id entities.ItemID) (*entities.Item, error) {
	index, exists := r.itemsMap[id]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return &r.items[index], nil
}

// GetAllItems returns all items in load order
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	items := make([]*entities.Item, 0, len(r.items))
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}
