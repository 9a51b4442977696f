package finance

import (
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/normalize"
)

// Event collections that carry order- and item-level fees for a single order.
// Primary shipment events and the separate adjustment/correction collections
// all fold into the same ledger keyed consistently by scope.
var feeEventCollections = [][]string{
	{"ShipmentEventList", "shipmentEventList"},
	{"ShipmentEventAdjustmentList", "shipmentEventAdjustmentList"},
	{"RefundEventList", "refundEventList"},
}

// BuildOrderFeeReport walks one raw financial-events document and produces the
// canonical fee report for the order.
//
// Missing or malformed containers default to empty collections: a fee
// computation that recognizes zero events is a valid (empty) result, not an
// error.
func BuildOrderFeeReport(events map[string]any) domain.FeeReport {
	ledger := NewLedger()

	for _, aliases := range feeEventCollections {
		for _, raw := range normalize.PickSlice(events, aliases...) {
			ev := normalize.AsObject(raw)
			if ev == nil {
				continue
			}
			addEventFees(ledger, ev)
		}
	}

	return ledger.Finalize()
}

// addEventFees folds one shipment/adjustment/refund event into the ledger:
// order-level and shipment-level fee lists under the ORDER scope, per-item
// lists under each item's own scope.
func addEventFees(ledger *Ledger, ev map[string]any) {
	orderLists := [][]string{
		{"OrderFeeList", "orderFeeList"},
		{"OrderFeeAdjustmentList", "orderFeeAdjustmentList"},
		{"ShipmentFeeList", "shipmentFeeList"},
		{"ShipmentFeeAdjustmentList", "shipmentFeeAdjustmentList"},
	}
	for _, aliases := range orderLists {
		if list := normalize.PickSlice(ev, aliases...); len(list) > 0 {
			ledger.AddFeeList(domain.ScopeOrder, domain.FeeLevelOrder, list, ItemMeta{})
		}
	}

	itemLists := [][]string{
		{"ShipmentItemList", "shipmentItemList"},
		{"ShipmentItemAdjustmentList", "shipmentItemAdjustmentList"},
	}
	for _, aliases := range itemLists {
		for _, raw := range normalize.PickSlice(ev, aliases...) {
			item := normalize.AsObject(raw)
			if item == nil {
				continue
			}
			addItemFees(ledger, item)
		}
	}
}

func addItemFees(ledger *Ledger, item map[string]any) {
	meta := ItemMeta{
		OrderItemID: normalize.PickString(item,
			"OrderItemId", "orderItemId",
			"OrderAdjustmentItemId", "orderAdjustmentItemId"),
		SellerSKU: normalize.PickString(item, "SellerSKU", "sellerSKU", "sellerSku"),
	}

	scope := meta.OrderItemID
	if scope == "" {
		scope = domain.ScopeUnknownItem
	}

	feeLists := [][]string{
		{"ItemFeeList", "itemFeeList"},
		{"ItemFeeAdjustmentList", "itemFeeAdjustmentList"},
	}
	for _, aliases := range feeLists {
		if list := normalize.PickSlice(item, aliases...); len(list) > 0 {
			ledger.AddFeeList(scope, domain.FeeLevelItem, list, meta)
		}
	}
}
