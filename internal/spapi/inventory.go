package spapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/normalize"
)

type inventoryEnvelope struct {
	Payload map[string]any `json:"payload"`
}

// GetInventorySnapshot fetches the current on-hand count of one SKU from the
// FBA inventory endpoint. OnHand stays nil when the upstream response carries
// no usable quantity; the forecast is skipped in that case rather than failed.
func (c *Client) GetInventorySnapshot(ctx context.Context, sku string) (domain.InventorySnapshot, error) {
	snapshot := domain.InventorySnapshot{SKU: sku}

	query := url.Values{}
	query.Set("granularityType", "Marketplace")
	query.Set("granularityId", c.marketplaceID)
	query.Set("marketplaceIds", c.marketplaceID)
	query.Set("sellerSkus", sku)

	var env inventoryEnvelope
	if err := c.getJSON(ctx, "/fba/inventory/v1/summaries", query, &env); err != nil {
		return snapshot, fmt.Errorf("inventory summary for %s: %w", sku, err)
	}

	// The inventory API emits camelCase where older endpoints use PascalCase.
	summaries := normalize.PickSlice(env.Payload, "inventorySummaries", "InventorySummaries")
	for _, raw := range summaries {
		summary := normalize.AsObject(raw)
		if summary == nil {
			continue
		}
		if got := normalize.PickString(summary, "sellerSku", "SellerSKU", "SellerSku"); got != "" && got != sku {
			continue
		}
		if qty, ok := normalize.PickFloat(summary, "totalQuantity", "TotalQuantity"); ok {
			onHand := int(qty)
			snapshot.OnHand = &onHand
			return snapshot, nil
		}
	}

	return snapshot, nil
}
