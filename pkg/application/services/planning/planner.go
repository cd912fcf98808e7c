package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/application/dto"
	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
	"github.com/planbeam/solver/pkg/domain/services"
)

// Config holds the knobs for one solve run
type Config struct {
	HorizonDays    int
	StartDate      time.Time
	Constrained    bool
	BuildAhead     bool
	BuildAheadDays int
	ShortagePolicy ShortagePolicy
}

// Planner runs one capacity-aware MRP solve over loaded master data.
// A Planner is single-use: create one per run.
type Planner struct {
	items     repositories.ItemRepository
	bom       repositories.BOMRepository
	demands   repositories.DemandRepository
	suppliers repositories.SupplierRepository
	resources repositories.ResourceRepository
	stock     repositories.InventoryRepository

	cfg Config
	log *zap.Logger
	run *RunLog

	dates         []string
	levels        map[entities.ItemID]int
	itemIndex     map[entities.ItemID]*entities.Item
	offerIndex    map[entities.ItemID][]*entities.SupplierOffer
	resourceIndex map[entities.ResourceID]*entities.Resource

	queue        *workQueue
	recorder     *TraceRecorder
	ledgers      map[entities.ItemID]*Ledger
	pool         map[entities.ItemID]decimal.Decimal
	capacityUsed map[entities.ResourceID]map[string]decimal.Decimal
	orders       []entities.PlannedOrder
	orderSeq     map[string]int
	infeasible   map[string]bool
}

// NewPlanner creates a planner over the given repositories
func NewPlanner(
	items repositories.ItemRepository,
	bom repositories.BOMRepository,
	demands repositories.DemandRepository,
	suppliers repositories.SupplierRepository,
	resources repositories.ResourceRepository,
	stock repositories.InventoryRepository,
	cfg Config,
	log *zap.Logger,
) *Planner {
	return &Planner{
		items:     items,
		bom:       bom,
		demands:   demands,
		suppliers: suppliers,
		resources: resources,
		stock:     stock,
		cfg:       cfg,
		log:       log,
		run:       NewRunLog(log),

		recorder:     NewTraceRecorder(),
		ledgers:      make(map[entities.ItemID]*Ledger),
		pool:         make(map[entities.ItemID]decimal.Decimal),
		capacityUsed: make(map[entities.ResourceID]map[string]decimal.Decimal),
		orders:       make([]entities.PlannedOrder, 0, 32),
		orderSeq:     make(map[string]int),
		infeasible:   make(map[string]bool),
	}
}

// Run executes the solve and returns the full plan. Fatal master-data
// problems return an error and no partial result.
func (p *Planner) Run(ctx context.Context) (*dto.PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.run.Logf("Solve started: horizon %d days from %s, constrained=%v, build_ahead=%v, policy=%s",
		p.cfg.HorizonDays, p.cfg.StartDate.Format(entities.DateLayout),
		p.cfg.Constrained, p.cfg.BuildAhead, p.cfg.ShortagePolicy)

	items, edges, demands, offers, resources, balances, err := p.loadAll()
	if err != nil {
		return nil, err
	}

	valueEdges := make([]entities.BOMEdge, len(edges))
	for i, e := range edges {
		valueEdges[i] = *e
	}
	if result := services.NewBOMValidator().ValidateBOM(valueEdges); result.Err() != nil {
		p.run.Logf("BOM validation failed: %v", result.Err())
		return nil, result.Err()
	}

	p.levels, err = services.LowLevelCodes(valueEdges)
	if err != nil {
		return nil, err
	}
	p.queue = newWorkQueue(p.levels, services.MaxLevel(p.levels))
	p.dates = dateKeys(p.cfg.StartDate, p.cfg.HorizonDays)

	p.buildIndexes(items, offers, resources)
	p.buildPool(balances)
	p.flagTightDemands(demands, valueEdges)

	p.run.Logf("Loaded %d items, %d BOM edges, %d demands, %d supplier offers, %d resources",
		len(items), len(edges), len(demands), len(offers), len(resources))

	for _, demand := range demands {
		p.recorder.Begin(demand)
		p.queue.push(requirement{
			orderID: demand.OrderID,
			itemID:  demand.ItemID,
			qty:     demand.Quantity,
			due:     demand.DueDate,
			direct:  true,
		})
	}

	p.queue.drain(p.planRequirement)

	shortageCount := 0
	for _, ledger := range p.ledgers {
		ledger.Roll(p.cfg.ShortagePolicy)
		shortageCount += ledger.ShortageBuckets()
	}

	for _, demand := range demands {
		if p.infeasible[demand.OrderID] {
			continue
		}
		p.recorder.Record(demand.OrderID, entities.TraceStep{
			Action: entities.ActionResolved,
			Item:   demand.ItemID,
			Qty:    demand.Quantity,
			Msg:    "Demand fully planned",
			Date:   demand.DueDate.Format(entities.DateLayout),
		})
	}

	p.run.Logf("Solve finished: %d planned orders, %d shortage buckets",
		len(p.orders), shortageCount)

	mrp := make(map[entities.ItemID]map[string]*entities.TimeBucket, len(p.ledgers))
	for id, ledger := range p.ledgers {
		mrp[id] = ledger.Buckets()
	}

	return &dto.PlanResult{
		Summary: dto.Summary{
			TotalPlannedOrders: len(p.orders),
			ShortageCount:      shortageCount,
		},
		MRP:           mrp,
		PlannedOrders: p.orders,
		Trace:         p.recorder.Traces(),
		RawData:       dto.NewRawData(items, edges, offers, resources, demands),
		SystemLogs:    p.run.Entries(),
	}, nil
}

// planRequirement nets one requirement against the transient stock pool
// and covers the remainder with a production or purchase order.
func (p *Planner) planRequirement(req requirement) {
	dateKey := req.due.Format(entities.DateLayout)
	ledger := p.ledger(req.itemID)
	if req.direct {
		ledger.AddDirectOutflow(dateKey, req.qty)
	} else {
		ledger.AddDependentOutflow(dateKey, req.qty)
	}

	item := p.itemIndex[req.itemID]
	if item == nil {
		p.markInfeasible(req, req.qty,
			fmt.Sprintf("Missing master data for item %s", req.itemID), "", req.due)
		return
	}

	net := req.qty
	if avail := p.pool[req.itemID]; avail.IsPositive() {
		used := decimal.Min(avail, net)
		p.pool[req.itemID] = avail.Sub(used)
		net = net.Sub(used)
		p.recorder.Record(req.orderID, entities.TraceStep{
			Action: entities.ActionStock,
			Item:   req.itemID,
			Qty:    used,
			Msg:    "Allocated from available stock",
			Date:   dateKey,
		})
		p.run.Logf("Allocated %s x %s from stock for order %s", used, req.itemID, req.orderID)
	}
	if !net.IsPositive() {
		return
	}

	if item.Procurement.IsMake() {
		p.planProduction(req, item, net)
	} else {
		p.planPurchase(req, item, net)
	}
}

func (p *Planner) loadAll() (
	[]*entities.Item,
	[]*entities.BOMEdge,
	[]*entities.DemandOrder,
	[]*entities.SupplierOffer,
	[]*entities.Resource,
	[]*entities.StockBalance,
	error,
) {
	items, err := p.items.GetAllItems()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading items: %w", err)
	}
	edges, err := p.bom.GetAllEdges()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading BOM: %w", err)
	}
	demands, err := p.demands.GetDemands()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading demand: %w", err)
	}
	offers, err := p.suppliers.GetAllOffers()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading supplier offers: %w", err)
	}
	resources, err := p.resources.GetAllResources()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading resources: %w", err)
	}
	balances, err := p.stock.GetAllBalances()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("loading stock balances: %w", err)
	}
	return items, edges, demands, offers, resources, balances, nil
}

func (p *Planner) buildIndexes(
	items []*entities.Item,
	offers []*entities.SupplierOffer,
	resources []*entities.Resource,
) {
	p.itemIndex = make(map[entities.ItemID]*entities.Item, len(items))
	for _, item := range items {
		p.itemIndex[item.ID] = item
	}
	p.offerIndex = make(map[entities.ItemID][]*entities.SupplierOffer)
	for _, offer := range offers {
		p.offerIndex[offer.ItemID] = append(p.offerIndex[offer.ItemID], offer)
	}
	p.resourceIndex = make(map[entities.ResourceID]*entities.Resource, len(resources))
	for _, resource := range resources {
		p.resourceIndex[resource.ID] = resource
	}
}

// buildPool seeds the consumable stock pool from opening balances.
// Safety stock is held back: planning never eats into it.
func (p *Planner) buildPool(balances []*entities.StockBalance) {
	for _, balance := range balances {
		usable := balance.Total()
		if item := p.itemIndex[balance.ItemID]; item != nil && item.SafetyStock.IsPositive() {
			usable = decimal.Max(decimal.Zero, usable.Sub(item.SafetyStock))
		}
		p.pool[balance.ItemID] = usable
	}
}

// flagTightDemands logs demands due inside their item's cumulative lead
// time. An early signal only; planning still attempts them.
func (p *Planner) flagTightDemands(demands []*entities.DemandOrder, edges []entities.BOMEdge) {
	valueOffers := make(map[entities.ItemID][]entities.SupplierOffer)
	for id, offers := range p.offerIndex {
		for _, offer := range offers {
			valueOffers[id] = append(valueOffers[id], *offer)
		}
	}
	cumulative := services.CumulativeLeadTimes(p.itemIndex, edges, valueOffers)

	for _, demand := range demands {
		days := cumulative[demand.ItemID]
		earliest := p.cfg.StartDate.AddDate(0, 0, days)
		if demand.DueDate.Before(earliest) {
			p.run.Logf("Warning: order %s for %s due %s is inside the %d-day cumulative lead time",
				demand.OrderID, demand.ItemID, demand.DueDate.Format(entities.DateLayout), days)
		}
	}
}

// ledger returns the item's ledger, creating it with the item's opening
// balance on first touch.
func (p *Planner) ledger(itemID entities.ItemID) *Ledger {
	if ledger, ok := p.ledgers[itemID]; ok {
		return ledger
	}
	opening, err := p.stock.GetBalance(itemID)
	if err != nil || opening == nil {
		opening = &entities.StockBalance{ItemID: itemID}
	}
	ledger := newLedger(itemID, p.dates, opening)
	p.ledgers[itemID] = ledger
	return ledger
}

// creditPool returns lot-rounding surplus to the transient pool
func (p *Planner) creditPool(itemID entities.ItemID, qty decimal.Decimal) {
	p.pool[itemID] = p.pool[itemID].Add(qty)
}

// nextOrderID numbers orders per item within the run
func (p *Planner) nextOrderID(prefix string, itemID entities.ItemID) string {
	key := prefix + "-" + string(itemID)
	p.orderSeq[key]++
	return fmt.Sprintf("%s-%03d", key, p.orderSeq[key])
}

