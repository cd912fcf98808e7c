package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

func leadTimeItem(t *testing.T, id entities.ItemID, procurement entities.ProcurementCode, makeDays, buyDays int) *entities.Item {
	t.Helper()
	item, err := entities.NewItem(id, "", entities.RawMaterial, procurement,
		makeDays, buyDays, decimal.Zero, decimal.Zero, decimal.Zero, "", decimal.Zero)
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}
	return item
}

func leadTimeOffer(t *testing.T, item entities.ItemID, days int) entities.SupplierOffer {
	t.Helper()
	offer, err := entities.NewSupplierOffer("SUP", "Supplier", item, days,
		decimal.Zero, decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("Failed to create offer: %v", err)
	}
	return *offer
}

func TestCumulativeLeadTimes_LongestPathWins(t *testing.T) {
	// PUMP(make 5) -> HOUSING(make 3) -> CASTING(buy 10)
	//             -> BOLT(buy 2)
	items := map[entities.ItemID]*entities.Item{
		"PUMP":    leadTimeItem(t, "PUMP", entities.ProcureMake, 5, 0),
		"HOUSING": leadTimeItem(t, "HOUSING", entities.ProcureMake, 3, 0),
		"CASTING": leadTimeItem(t, "CASTING", entities.ProcureBuy, 0, 10),
		"BOLT":    leadTimeItem(t, "BOLT", entities.ProcureBuy, 0, 2),
	}
	edges := []entities.BOMEdge{
		{ParentID: "PUMP", ChildID: "HOUSING", QtyPer: decimal.NewFromInt(1)},
		{ParentID: "PUMP", ChildID: "BOLT", QtyPer: decimal.NewFromInt(8)},
		{ParentID: "HOUSING", ChildID: "CASTING", QtyPer: decimal.NewFromInt(1)},
	}

	cumulative := CumulativeLeadTimes(items, edges, nil)

	if cumulative["CASTING"] != 10 {
		t.Errorf("Expected CASTING cumulative 10, got %d", cumulative["CASTING"])
	}
	if cumulative["HOUSING"] != 13 {
		t.Errorf("Expected HOUSING cumulative 13, got %d", cumulative["HOUSING"])
	}
	// 5 + max(13, 2)
	if cumulative["PUMP"] != 18 {
		t.Errorf("Expected PUMP cumulative 18, got %d", cumulative["PUMP"])
	}
}

func TestCumulativeLeadTimes_ShortestOfferBeatsItemBuyLead(t *testing.T) {
	items := map[entities.ItemID]*entities.Item{
		"BOLT": leadTimeItem(t, "BOLT", entities.ProcureBuy, 0, 14),
	}
	offers := map[entities.ItemID][]entities.SupplierOffer{
		"BOLT": {leadTimeOffer(t, "BOLT", 9), leadTimeOffer(t, "BOLT", 4)},
	}

	cumulative := CumulativeLeadTimes(items, nil, offers)
	if cumulative["BOLT"] != 4 {
		t.Errorf("Expected the shortest offer lead 4, got %d", cumulative["BOLT"])
	}
}

func TestCumulativeLeadTimes_NoOffersFallBackToItem(t *testing.T) {
	items := map[entities.ItemID]*entities.Item{
		"BOLT": leadTimeItem(t, "BOLT", entities.ProcureBuy, 0, 14),
	}

	cumulative := CumulativeLeadTimes(items, nil, nil)
	if cumulative["BOLT"] != 14 {
		t.Errorf("Expected fallback buy lead 14, got %d", cumulative["BOLT"])
	}
}

func TestCumulativeLeadTimes_UnknownChildContributesZero(t *testing.T) {
	items := map[entities.ItemID]*entities.Item{
		"PUMP": leadTimeItem(t, "PUMP", entities.ProcureMake, 5, 0),
	}
	edges := []entities.BOMEdge{
		{ParentID: "PUMP", ChildID: "GHOST", QtyPer: decimal.NewFromInt(1)},
	}

	cumulative := CumulativeLeadTimes(items, edges, nil)
	if cumulative["PUMP"] != 5 {
		t.Errorf("Expected unknown child to contribute nothing, got %d", cumulative["PUMP"])
	}
}
