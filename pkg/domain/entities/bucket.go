package entities

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the bucket key and wire format for all plan dates
const DateLayout = "2006-01-02"

func init() {
	// Bucket quantities serialize as JSON numbers; the dashboard does
	// arithmetic on them client-side.
	decimal.MarshalJSONWithoutQuotes = true
}

// TimeBucket is one item-period cell of the projected inventory ledger.
// Invariant: ending_stock = starting_stock + inflows - outflows, with
// ending stock floored or carried negative per the run's shortage policy.
type TimeBucket struct {
	StartingStock  decimal.Decimal `json:"starting_stock"`
	InflowOnHand   decimal.Decimal `json:"inflow_onhand"`
	InflowWIP      decimal.Decimal `json:"inflow_wip"`
	InflowSupplier decimal.Decimal `json:"inflow_supplier"`
	InflowFresh    decimal.Decimal `json:"inflow_fresh"`
	OutflowDirect  decimal.Decimal `json:"outflow_direct"`
	OutflowDep     decimal.Decimal `json:"outflow_dep"`
	EndingStock    decimal.Decimal `json:"ending_stock"`
	Shortage       decimal.Decimal `json:"shortage"`
}

// Inflows returns the total inflow into the bucket
func (b *TimeBucket) Inflows() decimal.Decimal {
	return b.InflowOnHand.Add(b.InflowWIP).Add(b.InflowSupplier).Add(b.InflowFresh)
}

// Outflows returns the total outflow from the bucket
func (b *TimeBucket) Outflows() decimal.Decimal {
	return b.OutflowDirect.Add(b.OutflowDep)
}
