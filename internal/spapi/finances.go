package spapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type financialEventsEnvelope struct {
	Payload struct {
		FinancialEvents map[string]any `json:"FinancialEvents"`
		NextToken       string         `json:"NextToken"`
	} `json:"payload"`
}

// ListFinancialEventsByOrder pulls the complete financial-events document of
// one order, merging paginated responses into a single document. The result
// stays untyped; the finance package resolves its inconsistent field casing
// through the normalizer.
func (c *Client) ListFinancialEventsByOrder(ctx context.Context, orderID string) (map[string]any, error) {
	path := "/finances/v0/orders/" + url.PathEscape(orderID) + "/financialEvents"

	query := url.Values{}
	query.Set("MaxResultsPerPage", strconv.Itoa(100))

	merged := make(map[string]any)

	for page := 0; page < c.maxTokenPages; page++ {
		var env financialEventsEnvelope
		if err := c.getJSON(ctx, path, query, &env); err != nil {
			return nil, fmt.Errorf("financial events for %s: %w", orderID, err)
		}
		mergeEventLists(merged, env.Payload.FinancialEvents)

		if env.Payload.NextToken == "" {
			break
		}
		query = url.Values{}
		query.Set("NextToken", env.Payload.NextToken)
		c.paceSleep()
	}

	return merged, nil
}

// mergeEventLists folds one page's event collections into the accumulated
// document. List-valued members concatenate; anything else is kept from the
// first page that carried it.
func mergeEventLists(dst, page map[string]any) {
	for key, value := range page {
		if value == nil {
			continue
		}
		if list, ok := value.([]any); ok {
			if existing, ok := dst[key].([]any); ok {
				dst[key] = append(existing, list...)
			} else {
				dst[key] = list
			}
			continue
		}
		if _, exists := dst[key]; !exists {
			dst[key] = value
		}
	}
}
