package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// InventoryRepository stores opening stock balances per item
type InventoryRepository struct {
	balances    []entities.StockBalance
	balancesMap map[entities.ItemID]int
}

// NewInventoryRepository creates an in-memory inventory repository
func NewInventoryRepository(expectedItems int) *InventoryRepository {
	return &InventoryRepository{
		balances:    make([]entities.StockBalance, 0, expectedItems),
		balancesMap: make(map[entities.ItemID]int, expectedItems),
	}
}

var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadBalances loads opening balances. Multiple rows per item are
// summed; supplies files often split a balance across storage types.
func (r *InventoryRepository) LoadBalances(balances []*entities.StockBalance) error {
	for _, balance := range balances {
		if balance == nil {
			return fmt.Errorf("%w: nil stock balance", entities.ErrInvalidInput)
		}
		if index, exists := r.balancesMap[balance.ItemID]; exists {
			existing := &r.balances[index]
			existing.OnHand = existing.OnHand.Add(balance.OnHand)
			existing.WIP = existing.WIP.Add(balance.WIP)
			existing.SupplierStock = existing.SupplierStock.Add(balance.SupplierStock)
			continue
		}
		r.balancesMap[balance.ItemID] = len(r.balances)
		r.balances = append(r.balances, *balance)
	}
	return nil
}

// GetBalance returns the opening balance for an item, or a zero balance
// when the item has no stock row
func (r *InventoryRepository) GetBalance(itemID entities.ItemID) (*entities.StockBalance, error) {
	if index, exists := r.balancesMap[itemID]; exists {
		return &r.balances[index], nil
	}
	return &entities.StockBalance{
		ItemID:        itemID,
		OnHand:        decimal.Zero,
		WIP:           decimal.Zero,
		SupplierStock: decimal.Zero,
	}, nil
}

// GetAllBalances returns all loaded balances
func (r *InventoryRepository) GetAllBalances() ([]*entities.StockBalance, error) {
	balances := make([]*entities.StockBalance, 0, len(r.balances))
	for i := range r.balances {
		balances = append(balances, &r.balances[i])
	}
	return balances, nil
}
