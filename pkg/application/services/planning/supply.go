package planning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/infrastructure/events"
	"github.com/planbeam/solver/pkg/infrastructure/metrics"
)

// applyLotSizing rounds a net requirement up to the ordering policy:
// at least lotSize, and above the minimum in whole lotIncrement steps.
// Without an increment the step falls back to the lot size itself, so
// orders come out as whole multiples of the minimum.
func applyLotSizing(need, lotSize, lotIncrement decimal.Decimal) decimal.Decimal {
	if !need.IsPositive() {
		return decimal.Zero
	}
	if lotSize.IsPositive() && need.LessThanOrEqual(lotSize) {
		return lotSize
	}
	step := lotIncrement
	if !step.IsPositive() {
		step = lotSize
	}
	if step.IsPositive() {
		over := need.Sub(lotSize)
		return lotSize.Add(over.Div(step).Ceil().Mul(step))
	}
	return need
}

// planProduction covers a net requirement on a make item with a
// production order finishing at the due date, exploding dependent
// demand on the item's components at the order start.
func (p *Planner) planProduction(req requirement, item *entities.Item, net decimal.Decimal) {
	orderQty := applyLotSizing(net, item.LotSize, item.LotIncrement)
	lead := item.LeadTimeMakeDays
	start := req.due.AddDate(0, 0, -lead)
	finish := req.due

	if start.Before(p.cfg.StartDate) {
		p.markInfeasible(req, net, fmt.Sprintf(
			"Insufficient lead time: production needs %d days, start would be %s",
			lead, start.Format(entities.DateLayout)), "", start)
		return
	}

	resource := p.resourceIndex[item.ResourceID]
	if p.cfg.Constrained && resource != nil {
		pulledAhead, ok := p.reserveCapacity(resource, item, orderQty, start)
		if !ok {
			p.markInfeasible(req, net, fmt.Sprintf(
				"No capacity on %s within build-ahead window", resource.ID), string(resource.ID), start)
			return
		}
		if pulledAhead > 0 {
			start = start.AddDate(0, 0, -pulledAhead)
			finish = start.AddDate(0, 0, lead)
		}
	}

	order, err := entities.NewPlannedOrder(
		p.nextOrderID("PO", item.ID), entities.Production, item.ID, orderQty,
		start, finish, item.ResourceID, "Internal", lead, decimal.Zero)
	if err != nil {
		p.markInfeasible(req, net, fmt.Sprintf("Order rejected: %v", err), "", start)
		return
	}

	p.emitOrder(req, order)
	// Surplus only exists once the order does.
	if surplus := orderQty.Sub(net); surplus.IsPositive() {
		p.creditPool(item.ID, surplus)
	}
	p.recorder.Record(req.orderID, entities.TraceStep{
		Action:   entities.ActionProduction,
		Item:     item.ID,
		Qty:      orderQty,
		Msg:      fmt.Sprintf("Planned production order %s", order.ID),
		Date:     finish.Format(entities.DateLayout),
		Resource: item.ResourceID,
	})
	p.run.Logf("Planned production %s: %s x %s, start %s finish %s",
		order.ID, item.ID, orderQty, start.Format(entities.DateLayout), finish.Format(entities.DateLayout))

	components, err := p.bom.GetComponents(item.ID)
	if err != nil {
		return
	}
	for _, edge := range components {
		p.queue.push(requirement{
			orderID: req.orderID,
			itemID:  edge.ChildID,
			qty:     orderQty.Mul(edge.QtyPer),
			due:     start,
			direct:  false,
		})
	}
}

// planPurchase covers a net requirement on a buy item with a purchase
// order from the cheapest supplier whose lead time keeps the purchase
// date inside the run. Items with no supplier offers at all fall back
// to the item master's own buy lead time under supplier "Unknown";
// items whose offers all arrive too late are infeasible.
func (p *Planner) planPurchase(req requirement, item *entities.Item, net decimal.Decimal) {
	offer := p.selectOffer(item.ID, req.due)

	if offer == nil && len(p.offerIndex[item.ID]) > 0 {
		fastest := fastestLead(p.offerIndex[item.ID])
		neededStart := req.due.AddDate(0, 0, -fastest)
		p.markInfeasible(req, net, fmt.Sprintf(
			"Insufficient lead time: fastest supplier needs %d days, purchase date would be %s",
			fastest, neededStart.Format(entities.DateLayout)), "", neededStart)
		return
	}

	var (
		lead         int
		supplier     string
		rate         decimal.Decimal
		lotSize      decimal.Decimal
		lotIncrement decimal.Decimal
	)
	if offer != nil {
		lead = offer.LeadTimeDays
		supplier = offer.SupplierName
		rate = offer.Rate
		lotSize = offer.LotSize
		lotIncrement = offer.LotIncrement
	} else {
		lead = item.LeadTimeBuyDays
		supplier = "Unknown"
		rate = decimal.Zero
		lotSize = item.LotSize
		lotIncrement = item.LotIncrement
	}

	start := req.due.AddDate(0, 0, -lead)
	if start.Before(p.cfg.StartDate) {
		p.markInfeasible(req, net, fmt.Sprintf(
			"Insufficient lead time: supplier %s needs %d days, purchase date would be %s",
			supplier, lead, start.Format(entities.DateLayout)), "", start)
		return
	}

	orderQty := applyLotSizing(net, lotSize, lotIncrement)
	order, err := entities.NewPlannedOrder(
		p.nextOrderID("PUR", item.ID), entities.Purchase, item.ID, orderQty,
		start, req.due, "", supplier, lead, rate)
	if err != nil {
		p.markInfeasible(req, net, fmt.Sprintf("Order rejected: %v", err), "", start)
		return
	}

	p.emitOrder(req, order)
	// Surplus only exists once the order does.
	if surplus := orderQty.Sub(net); surplus.IsPositive() {
		p.creditPool(item.ID, surplus)
	}
	p.recorder.Record(req.orderID, entities.TraceStep{
		Action:   entities.ActionPurchase,
		Item:     item.ID,
		Qty:      orderQty,
		Msg:      fmt.Sprintf("Planned purchase order %s from %s", order.ID, supplier),
		Date:     req.due.Format(entities.DateLayout),
		Supplier: supplier,
	})
	p.run.Logf("Planned purchase %s: %s x %s from %s, order by %s",
		order.ID, item.ID, orderQty, supplier, start.Format(entities.DateLayout))
}

// selectOffer picks the cheapest offer whose lead time keeps the
// purchase date on or after the run start. Ties keep listed order.
func (p *Planner) selectOffer(itemID entities.ItemID, due time.Time) *entities.SupplierOffer {
	var best *entities.SupplierOffer
	for _, offer := range p.offerIndex[itemID] {
		if due.AddDate(0, 0, -offer.LeadTimeDays).Before(p.cfg.StartDate) {
			continue
		}
		if best == nil || offer.Rate.LessThan(best.Rate) {
			best = offer
		}
	}
	return best
}

func fastestLead(offers []*entities.SupplierOffer) int {
	fastest := offers[0].LeadTimeDays
	for _, offer := range offers[1:] {
		if offer.LeadTimeDays < fastest {
			fastest = offer.LeadTimeDays
		}
	}
	return fastest
}

// reserveCapacity books the order's hours on the item's resource at the
// preferred start, scanning earlier days within the build-ahead window
// when the preferred day is full. Returns the number of days pulled
// ahead, or ok=false when no day in the window has room.
func (p *Planner) reserveCapacity(
	resource *entities.Resource,
	item *entities.Item,
	orderQty decimal.Decimal,
	start time.Time,
) (int, bool) {
	hours := orderQty.Mul(item.HoursPerUnit)
	if !hours.IsPositive() {
		return 0, true
	}

	window := 0
	if p.cfg.BuildAhead {
		window = p.cfg.BuildAheadDays
	}

	for back := 0; back <= window; back++ {
		day := start.AddDate(0, 0, -back)
		if day.Before(p.cfg.StartDate) {
			break
		}
		key := day.Format(entities.DateLayout)
		used := p.capacityUsed[resource.ID][key]
		if used.Add(hours).LessThanOrEqual(resource.DailyHours()) {
			if p.capacityUsed[resource.ID] == nil {
				p.capacityUsed[resource.ID] = make(map[string]decimal.Decimal)
			}
			p.capacityUsed[resource.ID][key] = used.Add(hours)
			return back, true
		}
	}
	return 0, false
}

// emitOrder books the order's quantity as fresh inflow at its finish
// date and appends it to the run's order list.
func (p *Planner) emitOrder(req requirement, order *entities.PlannedOrder) {
	p.ledger(order.ItemID).AddFreshInflow(order.Finish.Format(entities.DateLayout), order.Quantity)
	p.orders = append(p.orders, *order)
	_ = p.recorder.store.AppendEvent(req.orderID, events.NewEvent(
		events.OrderPlannedEvent, req.orderID, events.OrderPlanned{Order: *order}))
}

// markInfeasible records the failed requirement in the trace, posts the
// uncovered quantity as a shortage in the due bucket, and logs it.
func (p *Planner) markInfeasible(req requirement, net decimal.Decimal, reason string, resource string, neededStart time.Time) {
	dateKey := req.due.Format(entities.DateLayout)
	p.recorder.Record(req.orderID, entities.TraceStep{
		Action:      entities.ActionInfeasible,
		Item:        req.itemID,
		Qty:         net,
		Reason:      reason,
		Date:        dateKey,
		Resource:    entities.ResourceID(resource),
		NeededStart: neededStart.Format(entities.DateLayout),
	})
	p.ledger(req.itemID).AddShortage(dateKey, net)
	_ = p.recorder.store.AppendEvent(req.orderID, events.NewEvent(
		events.ShortageFlaggedEvent, req.orderID, events.ShortageFlagged{
			Item:   req.itemID,
			Date:   dateKey,
			Reason: reason,
		}))
	p.infeasible[req.orderID] = true
	metrics.RecordInfeasible()
	p.run.Logf("Infeasible: %s x %s due %s for order %s: %s",
		req.itemID, net, dateKey, req.orderID, reason)
}
