package dto

import (
	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// PlanResult is the complete output of one solve run, shaped exactly
// as the dashboard consumes it.
//
// Map keys serialize sorted, and bucket keys are YYYY-MM-DD, so the
// per-item bucket maps come out chronologically.
type PlanResult struct {
	Summary       Summary                                         `json:"summary"`
	MRP           map[entities.ItemID]map[string]*entities.TimeBucket `json:"mrp"`
	PlannedOrders []entities.PlannedOrder                         `json:"planned_orders"`
	Trace         []entities.DemandTrace                          `json:"trace"`
	RawData       RawData                                         `json:"raw_data"`
	SystemLogs    []string                                        `json:"system_logs"`
}

// Summary carries the headline counts the dashboard shows first
type Summary struct {
	TotalPlannedOrders int `json:"total_planned_orders"`
	ShortageCount      int `json:"shortage_count"`
}

// RawData echoes the normalized master data back to the client so the
// BOM network graph can be reconstructed without re-parsing uploads.
type RawData struct {
	Items          []RawItem          `json:"items"`
	BOM            []RawBOMEdge       `json:"bom"`
	SupplierMaster []RawSupplierOffer `json:"supplier_master"`
	Resources      []RawResource      `json:"resources"`
	Demand         []RawDemand        `json:"demand"`
}

type RawItem struct {
	ItemID       entities.ItemID `json:"item_id"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	MakeBuy      string          `json:"make_buy"`
	LeadTimeMake int             `json:"lead_time_make"`
	LeadTimeBuy  int             `json:"lead_time_buy"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	ResourceID   entities.ResourceID `json:"resource_id,omitempty"`
}

type RawBOMEdge struct {
	ParentID entities.ItemID `json:"parent_id"`
	ChildID  entities.ItemID `json:"child_id"`
	BOMID    string          `json:"bom_id,omitempty"`
	QtyPer   decimal.Decimal `json:"qty_per"`
}

type RawSupplierOffer struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	ItemID       entities.ItemID `json:"item_id"`
	LeadTimeDays int             `json:"lead_time_days"`
	LotSize      decimal.Decimal `json:"lot_size"`
	LotIncrement decimal.Decimal `json:"lot_increment"`
	Rate         decimal.Decimal `json:"rate"`
}

type RawResource struct {
	ResourceID    entities.ResourceID `json:"resource_id"`
	DailyCapacity decimal.Decimal     `json:"daily_capacity"`
	Machines      int                 `json:"machines"`
}

type RawDemand struct {
	OrderID  string          `json:"order_id"`
	ItemID   entities.ItemID `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	DueDate  string          `json:"due_date"`
	Priority int             `json:"priority"`
}

// NewRawData converts loaded master data into the echo-back shape
func NewRawData(
	items []*entities.Item,
	edges []*entities.BOMEdge,
	offers []*entities.SupplierOffer,
	resources []*entities.Resource,
	demands []*entities.DemandOrder,
) RawData {
	raw := RawData{
		Items:          make([]RawItem, 0, len(items)),
		BOM:            make([]RawBOMEdge, 0, len(edges)),
		SupplierMaster: make([]RawSupplierOffer, 0, len(offers)),
		Resources:      make([]RawResource, 0, len(resources)),
		Demand:         make([]RawDemand, 0, len(demands)),
	}

	for _, item := range items {
		raw.Items = append(raw.Items, RawItem{
			ItemID:       item.ID,
			Description:  item.Description,
			Type:         item.Type.String(),
			MakeBuy:      item.Procurement.String(),
			LeadTimeMake: item.LeadTimeMakeDays,
			LeadTimeBuy:  item.LeadTimeBuyDays,
			SafetyStock:  item.SafetyStock,
			ResourceID:   item.ResourceID,
		})
	}
	for _, edge := range edges {
		raw.BOM = append(raw.BOM, RawBOMEdge{
			ParentID: edge.ParentID,
			ChildID:  edge.ChildID,
			BOMID:    edge.BOMID,
			QtyPer:   edge.QtyPer,
		})
	}
	for _, offer := range offers {
		raw.SupplierMaster = append(raw.SupplierMaster, RawSupplierOffer{
			SupplierID:   offer.SupplierID,
			SupplierName: offer.SupplierName,
			ItemID:       offer.ItemID,
			LeadTimeDays: offer.LeadTimeDays,
			LotSize:      offer.LotSize,
			LotIncrement: offer.LotIncrement,
			Rate:         offer.Rate,
		})
	}
	for _, resource := range resources {
		raw.Resources = append(raw.Resources, RawResource{
			ResourceID:    resource.ID,
			DailyCapacity: resource.DailyCapacityHours,
			Machines:      resource.Machines,
		})
	}
	for _, demand := range demands {
		raw.Demand = append(raw.Demand, RawDemand{
			OrderID:  demand.OrderID,
			ItemID:   demand.ItemID,
			Quantity: demand.Quantity,
			DueDate:  demand.DueDate.Format(entities.DateLayout),
			Priority: demand.Priority,
		})
	}

	return raw
}
