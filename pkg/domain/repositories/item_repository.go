package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// ItemRepository provides access to item master data
type ItemRepository interface {
	GetItem(id entities.ItemID) (*entities.Item, error)
	GetAllItems() ([]*entities.Item, error)
	LoadItems(items []*entities.Item) error
}
