package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// InventoryRepository provides access to opening stock balances
type InventoryRepository interface {
	// GetBalance returns the opening balance for an item, or a zero
	// balance when the item has no stock row
	GetBalance(itemID entities.ItemID) (*entities.StockBalance, error)
	GetAllBalances() ([]*entities.StockBalance, error)
	LoadBalances(balances []*entities.StockBalance) error
}
