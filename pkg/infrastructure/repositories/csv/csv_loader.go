package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// Loader parses master data tables from CSV content. Headers are
// matched case-, space-, underscore- and hyphen-insensitively, so the
// files the dashboard users export from spreadsheets load as-is.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// table is one parsed CSV with normalized header lookup
type table struct {
	header  []string
	norm    map[string]int
	records [][]string
}

func readTable(r io.Reader, name string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s CSV: %v", entities.ErrInvalidInput, name, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: %s CSV is empty", entities.ErrInvalidInput, name)
	}

	t := &table{
		header: records[0],
		norm:   make(map[string]int, len(records[0])),
	}
	for i, col := range records[0] {
		key := normalizeHeader(col)
		if _, exists := t.norm[key]; !exists {
			t.norm[key] = i
		}
	}

	// Drop fully empty rows the way spreadsheet exports produce them.
	for _, record := range records[1:] {
		empty := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			t.records = append(t.records, record)
		}
	}
	return t, nil
}

func normalizeHeader(s string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// column returns the index of the first header matching any option, or -1
func (t *table) column(options ...string) int {
	for _, option := range options {
		if idx, ok := t.norm[normalizeHeader(option)]; ok {
			return idx
		}
	}
	return -1
}

// requireColumn is column for mandatory fields
func (t *table) requireColumn(tableName string, options ...string) (int, error) {
	idx := t.column(options...)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s CSV is missing a %q column", entities.ErrInvalidInput, tableName, options[0])
	}
	return idx, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseDecimal(s string, def decimal.Decimal) (decimal.Decimal, error) {
	if s == "" {
		return def, nil
	}
	return decimal.NewFromString(s)
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	// Whole numbers occasionally arrive as "5.0" from spreadsheets;
	// a genuinely fractional value is a data error, not a rounding case.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(entities.DateLayout, s); err == nil {
		return t, nil
	}
	// Timestamps exported with a time component still carry the date.
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.Truncate(24 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}

// ParseItems parses the item master table
func (l *Loader) ParseItems(r io.Reader) ([]*entities.Item, error) {
	t, err := readTable(r, "items")
	if err != nil {
		return nil, err
	}

	idCol, err := t.requireColumn("items", "item_id", "item", "item_code")
	if err != nil {
		return nil, err
	}
	descCol := t.column("description", "item_name", "name")
	typeCol := t.column("item_type", "type")
	makeBuyCol := t.column("make_buy", "procurement", "make_or_buy")
	ltMakeCol := t.column("lead_time_make", "lead_time_make_days", "leadtime_make")
	ltBuyCol := t.column("lead_time_buy", "lead_time_buy_days", "leadtime_buy")
	lotSizeCol := t.column("lot_size")
	lotIncCol := t.column("lot_increment")
	safetyCol := t.column("safety_stock")
	resourceCol := t.column("resource_id", "resource")
	hoursCol := t.column("hours_per_unit", "capacity_consumed_per", "run_hours_per_unit")

	var items []*entities.Item
	for i, record := range t.records {
		row := i + 2

		itemType := entities.RawMaterial
		if s := cell(record, typeCol); s != "" {
			itemType, err = entities.ParseItemType(s)
			if err != nil {
				return nil, fmt.Errorf("%w: items CSV row %d: %v", entities.ErrInvalidInput, row, err)
			}
		}

		ltMake, err := parseInt(cell(record, ltMakeCol), 0)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: lead_time_make: %v", entities.ErrInvalidInput, row, err)
		}
		ltBuy, err := parseInt(cell(record, ltBuyCol), 7)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: lead_time_buy: %v", entities.ErrInvalidInput, row, err)
		}
		lotSize, err := parseDecimal(cell(record, lotSizeCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: lot_size: %v", entities.ErrInvalidInput, row, err)
		}
		lotInc, err := parseDecimal(cell(record, lotIncCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: lot_increment: %v", entities.ErrInvalidInput, row, err)
		}
		safety, err := parseDecimal(cell(record, safetyCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: safety_stock: %v", entities.ErrInvalidInput, row, err)
		}
		hours, err := parseDecimal(cell(record, hoursCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: items CSV row %d: hours_per_unit: %v", entities.ErrInvalidInput, row, err)
		}

		item, err := entities.NewItem(
			entities.NormalizeItemID(cell(record, idCol)),
			cell(record, descCol),
			itemType,
			entities.ParseProcurementCode(cell(record, makeBuyCol)),
			ltMake, ltBuy,
			lotSize, lotInc, safety,
			entities.NormalizeResourceID(cell(record, resourceCol)),
			hours,
		)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", row, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ParseBOM parses the bill-of-materials table
func (l *Loader) ParseBOM(r io.Reader) ([]*entities.BOMEdge, error) {
	t, err := readTable(r, "bom")
	if err != nil {
		return nil, err
	}

	parentCol, err := t.requireColumn("bom", "parent_id", "parent")
	if err != nil {
		return nil, err
	}
	childCol, err := t.requireColumn("bom", "child_id", "child", "component_id")
	if err != nil {
		return nil, err
	}
	bomIDCol := t.column("bom_id", "recipe_id")
	qtyCol := t.column("qty_per", "quantity_per", "qty")

	var edges []*entities.BOMEdge
	for i, record := range t.records {
		row := i + 2

		qty, err := parseDecimal(cell(record, qtyCol), decimal.NewFromInt(1))
		if err != nil {
			return nil, fmt.Errorf("%w: bom CSV row %d: qty_per: %v", entities.ErrInvalidInput, row, err)
		}

		edge, err := entities.NewBOMEdge(
			entities.NormalizeItemID(cell(record, parentCol)),
			entities.NormalizeItemID(cell(record, childCol)),
			cell(record, bomIDCol),
			qty,
		)
		if err != nil {
			return nil, fmt.Errorf("bom CSV row %d: %w", row, err)
		}
		edges = append(edges, edge)
	}

	return edges, nil
}

// ParseDemands parses the demand table
func (l *Loader) ParseDemands(r io.Reader) ([]*entities.DemandOrder, error) {
	t, err := readTable(r, "demand")
	if err != nil {
		return nil, err
	}

	itemCol, err := t.requireColumn("demand", "item_id", "item")
	if err != nil {
		return nil, err
	}
	qtyCol, err := t.requireColumn("demand", "demand_qty", "quantity", "qty")
	if err != nil {
		return nil, err
	}
	dueCol, err := t.requireColumn("demand", "due_date", "duedate", "need_date")
	if err != nil {
		return nil, err
	}
	orderCol := t.column("order_id", "schedule_no", "so")
	priorityCol := t.column("demand_priority", "priority")

	var demands []*entities.DemandOrder
	for i, record := range t.records {
		row := i + 2

		orderID := cell(record, orderCol)
		if orderID == "" {
			orderID = fmt.Sprintf("SO-%d", row-1)
		}
		qty, err := parseDecimal(cell(record, qtyCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: demand CSV row %d: quantity: %v", entities.ErrInvalidInput, row, err)
		}
		due, err := parseDate(cell(record, dueCol))
		if err != nil {
			return nil, fmt.Errorf("%w: demand CSV row %d: %v", entities.ErrInvalidInput, row, err)
		}
		priority, err := parseInt(cell(record, priorityCol), entities.DefaultDemandPriority)
		if err != nil {
			return nil, fmt.Errorf("%w: demand CSV row %d: priority: %v", entities.ErrInvalidInput, row, err)
		}

		demand, err := entities.NewDemandOrder(
			orderID,
			entities.NormalizeItemID(cell(record, itemCol)),
			qty,
			due,
			priority,
		)
		if err != nil {
			return nil, fmt.Errorf("demand CSV row %d: %w", row, err)
		}
		demands = append(demands, demand)
	}

	return demands, nil
}

// ParseSupplierOffers parses the supplier master table
func (l *Loader) ParseSupplierOffers(r io.Reader) ([]*entities.SupplierOffer, error) {
	t, err := readTable(r, "supplier_master")
	if err != nil {
		return nil, err
	}

	itemCol, err := t.requireColumn("supplier_master", "item_id", "item")
	if err != nil {
		return nil, err
	}
	idCol := t.column("supplier_id")
	nameCol := t.column("supplier_name", "supplier")
	ltCol := t.column("lead_time_days", "lead_time")
	lotSizeCol := t.column("supplier_lot_size", "lot_size")
	lotIncCol := t.column("supplier_lot_increment", "lot_increment")
	rateCol := t.column("rate", "price", "unit_price")

	var offers []*entities.SupplierOffer
	for i, record := range t.records {
		row := i + 2

		supplierID := cell(record, idCol)
		if supplierID == "" {
			supplierID = cell(record, nameCol)
		}
		lt, err := parseInt(cell(record, ltCol), 7)
		if err != nil {
			return nil, fmt.Errorf("%w: supplier_master CSV row %d: lead_time_days: %v", entities.ErrInvalidInput, row, err)
		}
		lotSize, err := parseDecimal(cell(record, lotSizeCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplier_master CSV row %d: lot_size: %v", entities.ErrInvalidInput, row, err)
		}
		lotInc, err := parseDecimal(cell(record, lotIncCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplier_master CSV row %d: lot_increment: %v", entities.ErrInvalidInput, row, err)
		}
		rate, err := parseDecimal(cell(record, rateCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplier_master CSV row %d: rate: %v", entities.ErrInvalidInput, row, err)
		}

		offer, err := entities.NewSupplierOffer(
			supplierID,
			cell(record, nameCol),
			entities.NormalizeItemID(cell(record, itemCol)),
			lt,
			lotSize, lotInc, rate,
		)
		if err != nil {
			return nil, fmt.Errorf("supplier_master CSV row %d: %w", row, err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// ParseResources parses the resource table
func (l *Loader) ParseResources(r io.Reader) ([]*entities.Resource, error) {
	t, err := readTable(r, "resources")
	if err != nil {
		return nil, err
	}

	idCol, err := t.requireColumn("resources", "resource_id", "resource")
	if err != nil {
		return nil, err
	}
	capCol := t.column("daily_capacity", "daily_capacity_hours")
	machinesCol := t.column("no_of_machines", "machines")

	var resources []*entities.Resource
	for i, record := range t.records {
		row := i + 2

		capacity, err := parseDecimal(cell(record, capCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: resources CSV row %d: daily_capacity: %v", entities.ErrInvalidInput, row, err)
		}
		machines, err := parseInt(cell(record, machinesCol), 1)
		if err != nil {
			return nil, fmt.Errorf("%w: resources CSV row %d: machines: %v", entities.ErrInvalidInput, row, err)
		}

		resource, err := entities.NewResource(
			entities.NormalizeResourceID(cell(record, idCol)),
			capacity,
			machines,
		)
		if err != nil {
			return nil, fmt.Errorf("resources CSV row %d: %w", row, err)
		}
		resources = append(resources, resource)
	}

	return resources, nil
}

// ParseStockBalances parses the supplies table. Any column whose name
// contains "rework" is folded into the on-hand pool.
func (l *Loader) ParseStockBalances(r io.Reader) ([]*entities.StockBalance, error) {
	t, err := readTable(r, "supplies")
	if err != nil {
		return nil, err
	}

	itemCol, err := t.requireColumn("supplies", "item_id", "item_code", "item")
	if err != nil {
		return nil, err
	}
	onHandCol := t.column("fg", "on_hand", "onhand")
	wipCol := t.column("wip")
	supplierCol := t.column("supplier")

	var reworkCols []int
	for key, idx := range t.norm {
		if strings.Contains(key, "rework") {
			reworkCols = append(reworkCols, idx)
		}
	}

	var balances []*entities.StockBalance
	for i, record := range t.records {
		row := i + 2

		onHand, err := parseDecimal(cell(record, onHandCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplies CSV row %d: on_hand: %v", entities.ErrInvalidInput, row, err)
		}
		wip, err := parseDecimal(cell(record, wipCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplies CSV row %d: wip: %v", entities.ErrInvalidInput, row, err)
		}
		supplier, err := parseDecimal(cell(record, supplierCol), decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: supplies CSV row %d: supplier: %v", entities.ErrInvalidInput, row, err)
		}
		for _, reworkCol := range reworkCols {
			rework, err := parseDecimal(cell(record, reworkCol), decimal.Zero)
			if err != nil {
				return nil, fmt.Errorf("%w: supplies CSV row %d: rework: %v", entities.ErrInvalidInput, row, err)
			}
			onHand = onHand.Add(rework)
		}

		balance, err := entities.NewStockBalance(
			entities.NormalizeItemID(cell(record, itemCol)),
			onHand, wip, supplier,
		)
		if err != nil {
			return nil, fmt.Errorf("supplies CSV row %d: %w", row, err)
		}
		balances = append(balances, balance)
	}

	return balances, nil
}

// File-based convenience wrappers for the CLI.

func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	return loadFile(filename, l.ParseItems)
}

func (l *Loader) LoadBOM(filename string) ([]*entities.BOMEdge, error) {
	return loadFile(filename, l.ParseBOM)
}

func (l *Loader) LoadDemands(filename string) ([]*entities.DemandOrder, error) {
	return loadFile(filename, l.ParseDemands)
}

func (l *Loader) LoadSupplierOffers(filename string) ([]*entities.SupplierOffer, error) {
	return loadFile(filename, l.ParseSupplierOffers)
}

func (l *Loader) LoadResources(filename string) ([]*entities.Resource, error) {
	return loadFile(filename, l.ParseResources)
}

func (l *Loader) LoadStockBalances(filename string) ([]*entities.StockBalance, error) {
	return loadFile(filename, l.ParseStockBalances)
}

func loadFile[T any](filename string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()
	return parse(file)
}
