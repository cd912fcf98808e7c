package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

func testBalance(t *testing.T, id entities.ItemID, onHand, wip, supplier int64) *entities.StockBalance {
	t.Helper()
	balance, err := entities.NewStockBalance(id,
		decimal.NewFromInt(onHand), decimal.NewFromInt(wip), decimal.NewFromInt(supplier))
	if err != nil {
		t.Fatalf("Failed to create balance: %v", err)
	}
	return balance
}

func TestInventoryRepository_DuplicateRowsSum(t *testing.T) {
	repo := NewInventoryRepository(2)
	err := repo.LoadBalances([]*entities.StockBalance{
		testBalance(t, "BOLT-M8", 10, 5, 0),
		testBalance(t, "BOLT-M8", 3, 0, 2),
	})
	if err != nil {
		t.Fatalf("Failed to load balances: %v", err)
	}

	balance, err := repo.GetBalance("BOLT-M8")
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if !balance.OnHand.Equal(decimal.NewFromInt(13)) {
		t.Errorf("Expected summed on-hand 13, got %s", balance.OnHand)
	}
	if !balance.Total().Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected total 20, got %s", balance.Total())
	}

	all, err := repo.GetAllBalances()
	if err != nil {
		t.Fatalf("Failed to get all balances: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 merged balance, got %d", len(all))
	}
}

func TestInventoryRepository_UnknownItemIsZero(t *testing.T) {
	repo := NewInventoryRepository(0)
	balance, err := repo.GetBalance("GHOST")
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if !balance.Total().IsZero() {
		t.Errorf("Expected zero balance for unknown item, got %s", balance.Total())
	}
}
