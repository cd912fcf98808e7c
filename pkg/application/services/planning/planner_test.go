package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/application/dto"
	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/infrastructure/repositories/memory"
)

var runStart = date("2026-03-01")

func day(n int) time.Time {
	return runStart.AddDate(0, 0, n)
}

func dayKey(n int) string {
	return day(n).Format(entities.DateLayout)
}

type fixture struct {
	items     []*entities.Item
	edges     []*entities.BOMEdge
	demands   []*entities.DemandOrder
	offers    []*entities.SupplierOffer
	resources []*entities.Resource
	balances  []*entities.StockBalance
}

func buyItem(id entities.ItemID, leadBuy int) *entities.Item {
	return &entities.Item{ID: id, Type: entities.RawMaterial, Procurement: entities.ProcureBuy, LeadTimeBuyDays: leadBuy}
}

func makeItem(id entities.ItemID, leadMake int) *entities.Item {
	return &entities.Item{ID: id, Type: entities.SubAssembly, Procurement: entities.ProcureMake, LeadTimeMakeDays: leadMake}
}

func demand(orderID string, itemID entities.ItemID, quantity int64, due time.Time) *entities.DemandOrder {
	return &entities.DemandOrder{
		OrderID:  orderID,
		ItemID:   itemID,
		Quantity: qty(quantity),
		DueDate:  due,
		Priority: entities.DefaultDemandPriority,
	}
}

func offer(supplierID string, itemID entities.ItemID, leadDays int, lotSize int64, rate float64) *entities.SupplierOffer {
	return &entities.SupplierOffer{
		SupplierID:   supplierID,
		SupplierName: supplierID,
		ItemID:       itemID,
		LeadTimeDays: leadDays,
		LotSize:      qty(lotSize),
		Rate:         decimal.NewFromFloat(rate),
	}
}

func runPlan(t *testing.T, fx fixture, cfg Config) (*dto.PlanResult, error) {
	t.Helper()

	itemRepo := memory.NewItemRepository(len(fx.items))
	if err := itemRepo.LoadItems(fx.items); err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}
	bomRepo := memory.NewBOMRepository(len(fx.edges))
	if err := bomRepo.LoadEdges(fx.edges); err != nil {
		t.Fatalf("Failed to load BOM: %v", err)
	}
	demandRepo := memory.NewDemandRepository(len(fx.demands))
	if err := demandRepo.LoadDemands(fx.demands); err != nil {
		t.Fatalf("Failed to load demands: %v", err)
	}
	supplierRepo := memory.NewSupplierRepository(len(fx.offers))
	if err := supplierRepo.LoadOffers(fx.offers); err != nil {
		t.Fatalf("Failed to load offers: %v", err)
	}
	resourceRepo := memory.NewResourceRepository(len(fx.resources))
	if err := resourceRepo.LoadResources(fx.resources); err != nil {
		t.Fatalf("Failed to load resources: %v", err)
	}
	inventoryRepo := memory.NewInventoryRepository(len(fx.balances))
	if err := inventoryRepo.LoadBalances(fx.balances); err != nil {
		t.Fatalf("Failed to load balances: %v", err)
	}

	planner := NewPlanner(itemRepo, bomRepo, demandRepo, supplierRepo, resourceRepo, inventoryRepo,
		cfg, zap.NewNop())
	return planner.Run(context.Background())
}

func defaultConfig() Config {
	return Config{
		HorizonDays:    30,
		StartDate:      runStart,
		BuildAheadDays: 15,
		ShortagePolicy: ZeroFloor,
	}
}

func findOrders(result *dto.PlanResult, itemID entities.ItemID) []entities.PlannedOrder {
	var orders []entities.PlannedOrder
	for _, order := range result.PlannedOrders {
		if order.ItemID == itemID {
			orders = append(orders, order)
		}
	}
	return orders
}

func findSteps(result *dto.PlanResult, orderID string, action entities.TraceAction) []entities.TraceStep {
	var steps []entities.TraceStep
	for _, trace := range result.Trace {
		if trace.OrderID != orderID {
			continue
		}
		for _, step := range trace.Steps {
			if step.Action == action {
				steps = append(steps, step)
			}
		}
	}
	return steps
}

func TestPlanner_SinglePurchase(t *testing.T) {
	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 7)},
		demands: []*entities.DemandOrder{demand("SO-1", "BOLT", 100, day(10))},
		offers:  []*entities.SupplierOffer{offer("Acme", "BOLT", 5, 50, 0.25)},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if result.Summary.TotalPlannedOrders != 1 {
		t.Fatalf("Expected 1 planned order, got %d", result.Summary.TotalPlannedOrders)
	}
	order := result.PlannedOrders[0]
	if order.Type != entities.Purchase {
		t.Errorf("Expected purchase order, got %v", order.Type)
	}
	if !order.Quantity.Equal(qty(100)) {
		t.Errorf("Expected qty 100, got %s", order.Quantity)
	}
	if !order.Start.Equal(day(5)) {
		t.Errorf("Expected start %s, got %s", dayKey(5), order.Start.Format(entities.DateLayout))
	}
	if !order.Finish.Equal(day(10)) {
		t.Errorf("Expected finish %s, got %s", dayKey(10), order.Finish.Format(entities.DateLayout))
	}
	if order.Supplier != "Acme" {
		t.Errorf("Expected supplier Acme, got %s", order.Supplier)
	}
	if result.Summary.ShortageCount != 0 {
		t.Errorf("Expected zero shortage buckets, got %d", result.Summary.ShortageCount)
	}

	bucket := result.MRP["BOLT"][dayKey(10)]
	if bucket == nil {
		t.Fatal("Missing bucket at due date")
	}
	if !bucket.OutflowDirect.Equal(qty(100)) {
		t.Errorf("Expected direct outflow 100, got %s", bucket.OutflowDirect)
	}
	if !bucket.InflowFresh.Equal(qty(100)) {
		t.Errorf("Expected fresh inflow 100, got %s", bucket.InflowFresh)
	}
	if !bucket.EndingStock.IsZero() {
		t.Errorf("Expected ending stock 0, got %s", bucket.EndingStock)
	}

	if len(findSteps(result, "SO-1", entities.ActionResolved)) != 1 {
		t.Error("Expected a Resolved step for the satisfied demand")
	}
}

func TestPlanner_LeadTimeInfeasible(t *testing.T) {
	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 7)},
		demands: []*entities.DemandOrder{demand("SO-1", "BOLT", 100, day(10))},
		offers:  []*entities.SupplierOffer{offer("Acme", "BOLT", 20, 50, 0.25)},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if result.Summary.TotalPlannedOrders != 0 {
		t.Errorf("Expected no planned orders, got %d", result.Summary.TotalPlannedOrders)
	}

	steps := findSteps(result, "SO-1", entities.ActionInfeasible)
	if len(steps) != 1 {
		t.Fatalf("Expected 1 infeasible step, got %d", len(steps))
	}
	if !steps[0].Qty.Equal(qty(100)) {
		t.Errorf("Expected infeasible qty 100, got %s", steps[0].Qty)
	}

	bucket := result.MRP["BOLT"][dayKey(10)]
	if !bucket.Shortage.Equal(qty(100)) {
		t.Errorf("Expected shortage 100 at due date, got %s", bucket.Shortage)
	}
	if len(findSteps(result, "SO-1", entities.ActionResolved)) != 0 {
		t.Error("Infeasible demand must not carry a Resolved step")
	}
}

func TestPlanner_ParentChildExplosion(t *testing.T) {
	parent := makeItem("P", 5)
	child := buyItem("C", 10)
	edge, err := entities.NewBOMEdge("P", "C", "BOM-1", qty(2))
	if err != nil {
		t.Fatalf("Failed to create edge: %v", err)
	}

	fx := fixture{
		items:   []*entities.Item{parent, child},
		edges:   []*entities.BOMEdge{edge},
		demands: []*entities.DemandOrder{demand("SO-1", "P", 10, day(20))},
		offers:  []*entities.SupplierOffer{offer("Acme", "C", 3, 0, 1.0)},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	parentOrders := findOrders(result, "P")
	if len(parentOrders) != 1 {
		t.Fatalf("Expected 1 production order for P, got %d", len(parentOrders))
	}
	po := parentOrders[0]
	if po.Type != entities.Production {
		t.Errorf("Expected production order, got %v", po.Type)
	}
	if !po.Quantity.Equal(qty(10)) || !po.Start.Equal(day(15)) || !po.Finish.Equal(day(20)) {
		t.Errorf("P order: qty %s start %s finish %s, want 10 / %s / %s",
			po.Quantity, po.Start.Format(entities.DateLayout), po.Finish.Format(entities.DateLayout),
			dayKey(15), dayKey(20))
	}

	childOrders := findOrders(result, "C")
	if len(childOrders) != 1 {
		t.Fatalf("Expected 1 purchase order for C, got %d", len(childOrders))
	}
	co := childOrders[0]
	if !co.Quantity.Equal(qty(20)) || !co.Start.Equal(day(12)) || !co.Finish.Equal(day(15)) {
		t.Errorf("C order: qty %s start %s finish %s, want 20 / %s / %s",
			co.Quantity, co.Start.Format(entities.DateLayout), co.Finish.Format(entities.DateLayout),
			dayKey(12), dayKey(15))
	}

	// The child's dependent demand lands in the parent order's start bucket
	bucket := result.MRP["C"][dayKey(15)]
	if !bucket.OutflowDep.Equal(qty(20)) {
		t.Errorf("Expected dependent outflow 20 on C at %s, got %s", dayKey(15), bucket.OutflowDep)
	}

	// Both levels trace back to the one customer order
	if len(findSteps(result, "SO-1", entities.ActionProduction)) != 1 {
		t.Error("Expected a Production step on the demand's trace")
	}
	if len(findSteps(result, "SO-1", entities.ActionPurchase)) != 1 {
		t.Error("Expected a Purchase step on the demand's trace")
	}
}

func TestPlanner_StockAllocation(t *testing.T) {
	fx := fixture{
		items:    []*entities.Item{buyItem("GEAR", 5)},
		demands:  []*entities.DemandOrder{demand("SO-1", "GEAR", 100, day(10))},
		offers:   []*entities.SupplierOffer{offer("Acme", "GEAR", 5, 0, 2.0)},
		balances: []*entities.StockBalance{{ItemID: "GEAR", OnHand: qty(60)}},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	stockSteps := findSteps(result, "SO-1", entities.ActionStock)
	if len(stockSteps) != 1 {
		t.Fatalf("Expected 1 stock step, got %d", len(stockSteps))
	}
	if !stockSteps[0].Qty.Equal(qty(60)) {
		t.Errorf("Expected 60 allocated from stock, got %s", stockSteps[0].Qty)
	}

	orders := findOrders(result, "GEAR")
	if len(orders) != 1 {
		t.Fatalf("Expected 1 purchase order, got %d", len(orders))
	}
	if !orders[0].Quantity.Equal(qty(40)) {
		t.Errorf("Expected order for the 40 net units, got %s", orders[0].Quantity)
	}
	if result.Summary.ShortageCount != 0 {
		t.Errorf("Expected no shortages, got %d", result.Summary.ShortageCount)
	}
}

func TestPlanner_SafetyStockHeldBack(t *testing.T) {
	item := buyItem("GEAR", 5)
	item.SafetyStock = qty(20)

	fx := fixture{
		items:    []*entities.Item{item},
		demands:  []*entities.DemandOrder{demand("SO-1", "GEAR", 100, day(10))},
		offers:   []*entities.SupplierOffer{offer("Acme", "GEAR", 5, 0, 2.0)},
		balances: []*entities.StockBalance{{ItemID: "GEAR", OnHand: qty(60)}},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	stockSteps := findSteps(result, "SO-1", entities.ActionStock)
	if len(stockSteps) != 1 || !stockSteps[0].Qty.Equal(qty(40)) {
		t.Fatalf("Expected 40 allocated (60 on hand less 20 safety), got %v", stockSteps)
	}
	orders := findOrders(result, "GEAR")
	if len(orders) != 1 || !orders[0].Quantity.Equal(qty(60)) {
		t.Fatalf("Expected a purchase of 60, got %v", orders)
	}
}

func TestPlanner_LotRoundingSurplusFeedsNextDemand(t *testing.T) {
	fx := fixture{
		items: []*entities.Item{buyItem("BOLT", 5)},
		demands: []*entities.DemandOrder{
			demand("SO-1", "BOLT", 30, day(10)),
			demand("SO-2", "BOLT", 20, day(12)),
		},
		offers: []*entities.SupplierOffer{offer("Acme", "BOLT", 5, 50, 0.25)},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// First demand orders a full lot of 50; the 20 surplus covers the
	// second demand entirely from the pool.
	if result.Summary.TotalPlannedOrders != 1 {
		t.Fatalf("Expected 1 planned order, got %d", result.Summary.TotalPlannedOrders)
	}
	if !result.PlannedOrders[0].Quantity.Equal(qty(50)) {
		t.Errorf("Expected lot of 50, got %s", result.PlannedOrders[0].Quantity)
	}
	stockSteps := findSteps(result, "SO-2", entities.ActionStock)
	if len(stockSteps) != 1 || !stockSteps[0].Qty.Equal(qty(20)) {
		t.Fatalf("Expected second demand covered by 20 surplus units, got %v", stockSteps)
	}
}

func TestPlanner_InfeasibleOrderCreditsNoSurplus(t *testing.T) {
	item := makeItem("GEAR", 5)
	item.LotSize = qty(50)

	fx := fixture{
		items: []*entities.Item{item},
		demands: []*entities.DemandOrder{
			demand("SO-1", "GEAR", 30, day(2)),
			demand("SO-2", "GEAR", 20, day(20)),
		},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// The first demand cannot start in time, so no order and no lot
	// surplus exist. The second demand must cut its own order rather
	// than draw on stock that was never produced.
	if len(findSteps(result, "SO-1", entities.ActionInfeasible)) != 1 {
		t.Fatal("Expected the first demand to be infeasible")
	}
	if steps := findSteps(result, "SO-2", entities.ActionStock); len(steps) != 0 {
		t.Errorf("Expected no stock allocation for the second demand, got %v", steps)
	}

	orders := findOrders(result, "GEAR")
	if len(orders) != 1 {
		t.Fatalf("Expected 1 production order, got %d", len(orders))
	}
	if !orders[0].Quantity.Equal(qty(50)) {
		t.Errorf("Expected a full lot of 50, got %s", orders[0].Quantity)
	}
}

func TestPlanner_CheapestFeasibleSupplier(t *testing.T) {
	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 7)},
		demands: []*entities.DemandOrder{demand("SO-1", "BOLT", 10, day(10))},
		offers: []*entities.SupplierOffer{
			offer("Pricey", "BOLT", 3, 0, 5.0),
			offer("Cheap", "BOLT", 5, 0, 1.0),
			offer("Cheapest-Slow", "BOLT", 20, 0, 0.5),
		},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	orders := findOrders(result, "BOLT")
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	// The cheapest offer cannot deliver in time; the cheapest feasible one wins
	if orders[0].Supplier != "Cheap" {
		t.Errorf("Expected supplier Cheap, got %s", orders[0].Supplier)
	}
	if !orders[0].TotalCost.Equal(qty(10)) {
		t.Errorf("Expected total cost 10, got %s", orders[0].TotalCost)
	}
}

func TestPlanner_NoOfferFallsBackToItemLeadTime(t *testing.T) {
	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 4)},
		demands: []*entities.DemandOrder{demand("SO-1", "BOLT", 10, day(10))},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	orders := findOrders(result, "BOLT")
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if orders[0].Supplier != "Unknown" {
		t.Errorf("Expected supplier Unknown, got %s", orders[0].Supplier)
	}
	if !orders[0].Start.Equal(day(6)) {
		t.Errorf("Expected start %s from the item's own lead time, got %s",
			dayKey(6), orders[0].Start.Format(entities.DateLayout))
	}
}

func TestPlanner_CapacityBuildAhead(t *testing.T) {
	assy := makeItem("ASSY", 5)
	assy.ResourceID = "CNC"
	assy.HoursPerUnit = decimal.NewFromFloat(0.5)

	fx := fixture{
		items: []*entities.Item{assy},
		demands: []*entities.DemandOrder{
			demand("SO-1", "ASSY", 6, day(20)),
			demand("SO-2", "ASSY", 6, day(20)),
		},
		resources: []*entities.Resource{
			{ID: "CNC", DailyCapacityHours: qty(4), Machines: 1},
		},
	}

	cfg := defaultConfig()
	cfg.Constrained = true
	cfg.BuildAhead = true

	result, err := runPlan(t, fx, cfg)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	orders := findOrders(result, "ASSY")
	if len(orders) != 2 {
		t.Fatalf("Expected 2 production orders, got %d", len(orders))
	}
	// 3h each against a 4h day: the second order is pushed one day earlier
	if !orders[0].Start.Equal(day(15)) {
		t.Errorf("First order start %s, want %s", orders[0].Start.Format(entities.DateLayout), dayKey(15))
	}
	if !orders[1].Start.Equal(day(14)) {
		t.Errorf("Second order start %s, want %s", orders[1].Start.Format(entities.DateLayout), dayKey(14))
	}
	if !orders[1].Finish.Equal(day(19)) {
		t.Errorf("Built-ahead order should finish early, got %s", orders[1].Finish.Format(entities.DateLayout))
	}
	if result.Summary.ShortageCount != 0 {
		t.Errorf("Expected no shortages, got %d", result.Summary.ShortageCount)
	}
}

func TestPlanner_CapacityExhaustedIsInfeasible(t *testing.T) {
	assy := makeItem("ASSY", 5)
	assy.ResourceID = "CNC"
	assy.HoursPerUnit = qty(1)

	fx := fixture{
		items:   []*entities.Item{assy},
		demands: []*entities.DemandOrder{demand("SO-1", "ASSY", 6, day(20))},
		resources: []*entities.Resource{
			{ID: "CNC", DailyCapacityHours: qty(4), Machines: 1},
		},
	}

	cfg := defaultConfig()
	cfg.Constrained = true
	cfg.BuildAhead = false

	result, err := runPlan(t, fx, cfg)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if len(findOrders(result, "ASSY")) != 0 {
		t.Error("Expected no orders when capacity cannot fit the requirement")
	}
	steps := findSteps(result, "SO-1", entities.ActionInfeasible)
	if len(steps) != 1 {
		t.Fatalf("Expected 1 infeasible step, got %d", len(steps))
	}
	if steps[0].Resource != "CNC" {
		t.Errorf("Expected the blocking resource on the step, got %q", steps[0].Resource)
	}
}

func TestPlanner_MissingItemMaster(t *testing.T) {
	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 5)},
		demands: []*entities.DemandOrder{demand("SO-1", "GHOST", 10, day(10))},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("A missing item master row must not fail the run: %v", err)
	}

	steps := findSteps(result, "SO-1", entities.ActionInfeasible)
	if len(steps) != 1 {
		t.Fatalf("Expected 1 infeasible step, got %d", len(steps))
	}
	bucket := result.MRP["GHOST"][dayKey(10)]
	if bucket == nil || !bucket.Shortage.Equal(qty(10)) {
		t.Error("Expected the unmet demand recorded as a shortage")
	}
}

func TestPlanner_FullyStockedNetworkPlansNothing(t *testing.T) {
	parent := makeItem("P", 5)
	child := buyItem("C", 3)
	edge, _ := entities.NewBOMEdge("P", "C", "", qty(2))

	fx := fixture{
		items:    []*entities.Item{parent, child},
		edges:    []*entities.BOMEdge{edge},
		demands:  []*entities.DemandOrder{demand("SO-1", "P", 10, day(20))},
		balances: []*entities.StockBalance{{ItemID: "P", OnHand: qty(100)}},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if result.Summary.TotalPlannedOrders != 0 {
		t.Errorf("Expected no orders, got %d", result.Summary.TotalPlannedOrders)
	}
	if result.Summary.ShortageCount != 0 {
		t.Errorf("Expected no shortages, got %d", result.Summary.ShortageCount)
	}
	// No dependent demand ever reaches the child
	if bucket, ok := result.MRP["C"]; ok {
		for d, b := range bucket {
			if !b.OutflowDep.IsZero() {
				t.Errorf("Child picked up dependent demand %s at %s", b.OutflowDep, d)
			}
		}
	}
}

func TestPlanner_BOMCycleFailsRun(t *testing.T) {
	a, _ := entities.NewBOMEdge("A", "B", "", qty(1))
	b, _ := entities.NewBOMEdge("B", "A", "", qty(1))

	fx := fixture{
		items:   []*entities.Item{makeItem("A", 1), makeItem("B", 1)},
		edges:   []*entities.BOMEdge{a, b},
		demands: []*entities.DemandOrder{demand("SO-1", "A", 1, day(10))},
	}

	_, err := runPlan(t, fx, defaultConfig())
	if !errors.Is(err, entities.ErrInvalidBOM) {
		t.Errorf("Expected ErrInvalidBOM, got %v", err)
	}
}

func TestPlanner_TracesFollowDemandPriority(t *testing.T) {
	urgent := demand("SO-URGENT", "BOLT", 10, day(20))
	urgent.Priority = 1
	routine := demand("SO-ROUTINE", "BOLT", 10, day(10))
	routine.Priority = 5

	fx := fixture{
		items:   []*entities.Item{buyItem("BOLT", 2)},
		demands: []*entities.DemandOrder{routine, urgent},
		offers:  []*entities.SupplierOffer{offer("Acme", "BOLT", 2, 0, 1.0)},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if len(result.Trace) != 2 {
		t.Fatalf("Expected 2 traces, got %d", len(result.Trace))
	}
	if result.Trace[0].OrderID != "SO-URGENT" {
		t.Errorf("Expected the priority-1 demand traced first, got %s", result.Trace[0].OrderID)
	}
}

func TestPlanner_BalanceInvariantHoldsEverywhere(t *testing.T) {
	parent := makeItem("P", 5)
	parent.LotSize = qty(25)
	child := buyItem("C", 3)
	edge, _ := entities.NewBOMEdge("P", "C", "", qty(3))

	fx := fixture{
		items: []*entities.Item{parent, child},
		edges: []*entities.BOMEdge{edge},
		demands: []*entities.DemandOrder{
			demand("SO-1", "P", 10, day(12)),
			demand("SO-2", "P", 40, day(25)),
		},
		offers:   []*entities.SupplierOffer{offer("Acme", "C", 3, 10, 0.8)},
		balances: []*entities.StockBalance{{ItemID: "C", OnHand: qty(15)}},
	}

	result, err := runPlan(t, fx, defaultConfig())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	for itemID, buckets := range result.MRP {
		for d, b := range buckets {
			net := b.StartingStock.Add(b.Inflows()).Sub(b.Outflows())
			want := decimal.Max(decimal.Zero, net)
			if !b.EndingStock.Equal(want) {
				t.Errorf("%s %s: ending %s, want %s", itemID, d, b.EndingStock, want)
			}
		}
	}
}
