package planning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// ShortagePolicy controls how unmet demand affects the carried balance
type ShortagePolicy int

const (
	// ZeroFloor records the shortage in its bucket and carries zero
	// forward; each period's unmet demand is reported independently.
	ZeroFloor ShortagePolicy = iota
	// Backlog carries the negative balance into the next period, so an
	// uncovered shortage keeps depressing projected stock.
	Backlog
)

func (p ShortagePolicy) String() string {
	switch p {
	case ZeroFloor:
		return "zero_floor"
	case Backlog:
		return "backlog"
	default:
		return "unknown"
	}
}

// ParseShortagePolicy parses a policy from its config name
func ParseShortagePolicy(s string) (ShortagePolicy, error) {
	switch s {
	case "zero_floor", "":
		return ZeroFloor, nil
	case "backlog":
		return Backlog, nil
	default:
		return ZeroFloor, fmt.Errorf("invalid shortage policy %q", s)
	}
}

// Ledger is the projected inventory table for one item across the
// planning horizon. Each run owns its ledgers outright; nothing here is
// shared between runs.
type Ledger struct {
	item    entities.ItemID
	dates   []string
	buckets map[string]*entities.TimeBucket
}

// newLedger creates a ledger with the opening balance in the first
// bucket, split by source the way the dashboard charts it
func newLedger(item entities.ItemID, dates []string, opening *entities.StockBalance) *Ledger {
	ledger := &Ledger{
		item:    item,
		dates:   dates,
		buckets: make(map[string]*entities.TimeBucket, len(dates)),
	}
	for _, d := range dates {
		ledger.buckets[d] = &entities.TimeBucket{}
	}
	if opening != nil && len(dates) > 0 {
		first := ledger.buckets[dates[0]]
		first.InflowOnHand = opening.OnHand
		first.InflowWIP = opening.WIP
		first.InflowSupplier = opening.SupplierStock
	}
	return ledger
}

// bucket returns the bucket for a date, or nil when the date falls
// outside the horizon. Out-of-horizon postings are silently dropped;
// the order itself is still emitted and traced.
func (l *Ledger) bucket(date string) *entities.TimeBucket {
	return l.buckets[date]
}

// AddDirectOutflow posts independent demand to a bucket
func (l *Ledger) AddDirectOutflow(date string, qty decimal.Decimal) {
	if b := l.bucket(date); b != nil {
		b.OutflowDirect = b.OutflowDirect.Add(qty)
	}
}

// AddDependentOutflow posts parent-consumption demand to a bucket
func (l *Ledger) AddDependentOutflow(date string, qty decimal.Decimal) {
	if b := l.bucket(date); b != nil {
		b.OutflowDep = b.OutflowDep.Add(qty)
	}
}

// AddFreshInflow posts a newly planned order's receipt to a bucket
func (l *Ledger) AddFreshInflow(date string, qty decimal.Decimal) {
	if b := l.bucket(date); b != nil {
		b.InflowFresh = b.InflowFresh.Add(qty)
	}
}

// AddShortage pre-marks a shortage the planner already knows about,
// such as an infeasible requirement
func (l *Ledger) AddShortage(date string, qty decimal.Decimal) {
	if b := l.bucket(date); b != nil {
		b.Shortage = b.Shortage.Add(qty)
	}
}

// Roll performs the single forward pass: ending stock of period N
// becomes starting stock of period N+1. Shortages already posted by the
// planner are kept; otherwise a negative net position sets the bucket's
// shortage.
func (l *Ledger) Roll(policy ShortagePolicy) {
	running := decimal.Zero
	for _, d := range l.dates {
		b := l.buckets[d]
		b.StartingStock = running

		net := running.Add(b.Inflows()).Sub(b.Outflows())

		switch policy {
		case Backlog:
			b.EndingStock = net
			running = net
		default:
			b.EndingStock = decimal.Max(decimal.Zero, net)
			running = b.EndingStock
		}

		if net.IsNegative() && b.Shortage.IsZero() {
			b.Shortage = net.Neg()
		}
	}
}

// Buckets returns the bucket table keyed by date
func (l *Ledger) Buckets() map[string]*entities.TimeBucket {
	return l.buckets
}

// ShortageBuckets counts buckets with a positive shortage
func (l *Ledger) ShortageBuckets() int {
	count := 0
	for _, b := range l.buckets {
		if b.Shortage.IsPositive() {
			count++
		}
	}
	return count
}

// dateKeys builds the chronological bucket keys for a run: start date
// through start+horizon inclusive
func dateKeys(start time.Time, horizonDays int) []string {
	keys := make([]string, 0, horizonDays+1)
	for i := 0; i <= horizonDays; i++ {
		keys = append(keys, start.AddDate(0, 0, i).Format(entities.DateLayout))
	}
	return keys
}
