package masterdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/planbeam/solver/pkg/infrastructure/repositories/csv"
	"github.com/planbeam/solver/pkg/infrastructure/repositories/memory"
)

// Dataset bundles one solve run's master data behind the repository
// interfaces, together with the loader that fills it. Each run gets a
// fresh Dataset; nothing is shared across runs.
type Dataset struct {
	Items     *memory.ItemRepository
	BOM       *memory.BOMRepository
	Demands   *memory.DemandRepository
	Suppliers *memory.SupplierRepository
	Resources *memory.ResourceRepository
	Stock     *memory.InventoryRepository

	Loader *csv.Loader
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Items:     memory.NewItemRepository(64),
		BOM:       memory.NewBOMRepository(128),
		Demands:   memory.NewDemandRepository(64),
		Suppliers: memory.NewSupplierRepository(64),
		Resources: memory.NewResourceRepository(16),
		Stock:     memory.NewInventoryRepository(64),

		Loader: csv.NewLoader(),
	}
}

// scenario file names looked up inside a scenario directory, in
// preference order per table
var scenarioFiles = map[string][]string{
	"items":     {"items.csv", "item_master.csv"},
	"bom":       {"bom.csv"},
	"demand":    {"demand.csv", "sales.csv"},
	"suppliers": {"supplier_master.csv", "suppliers.csv"},
	"resources": {"resources.csv"},
	"stock":     {"supplies.csv", "stock.csv", "inventory.csv"},
}

// LoadDir fills the dataset from CSV files in a scenario directory.
// Items and demand are required; the other tables are optional.
func (d *Dataset) LoadDir(dir string) error {
	find := func(table string) string {
		for _, name := range scenarioFiles[table] {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		return ""
	}

	itemsPath := find("items")
	if itemsPath == "" {
		return fmt.Errorf("scenario %s: no item master file (tried %v)", dir, scenarioFiles["items"])
	}
	items, err := d.Loader.LoadItems(itemsPath)
	if err != nil {
		return err
	}
	if err := d.Items.LoadItems(items); err != nil {
		return err
	}

	demandPath := find("demand")
	if demandPath == "" {
		return fmt.Errorf("scenario %s: no demand file (tried %v)", dir, scenarioFiles["demand"])
	}
	demands, err := d.Loader.LoadDemands(demandPath)
	if err != nil {
		return err
	}
	if err := d.Demands.LoadDemands(demands); err != nil {
		return err
	}

	if path := find("bom"); path != "" {
		edges, err := d.Loader.LoadBOM(path)
		if err != nil {
			return err
		}
		if err := d.BOM.LoadEdges(edges); err != nil {
			return err
		}
	}
	if path := find("suppliers"); path != "" {
		offers, err := d.Loader.LoadSupplierOffers(path)
		if err != nil {
			return err
		}
		if err := d.Suppliers.LoadOffers(offers); err != nil {
			return err
		}
	}
	if path := find("resources"); path != "" {
		resources, err := d.Loader.LoadResources(path)
		if err != nil {
			return err
		}
		if err := d.Resources.LoadResources(resources); err != nil {
			return err
		}
	}
	if path := find("stock"); path != "" {
		balances, err := d.Loader.LoadStockBalances(path)
		if err != nil {
			return err
		}
		if err := d.Stock.LoadBalances(balances); err != nil {
			return err
		}
	}

	return nil
}
