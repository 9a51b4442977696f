package spapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Order is the subset of the Orders API shape this integration reads.
type Order struct {
	AmazonOrderID          string `json:"AmazonOrderId"`
	PurchaseDate           string `json:"PurchaseDate"`
	OrderStatus            string `json:"OrderStatus"`
	SalesChannel           string `json:"SalesChannel"`
	NumberOfItemsShipped   int    `json:"NumberOfItemsShipped"`
	NumberOfItemsUnshipped int    `json:"NumberOfItemsUnshipped"`
	OrderTotal             *Money `json:"OrderTotal,omitempty"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	OrderItemID     string `json:"OrderItemId"`
	SellerSKU       string `json:"SellerSKU"`
	QuantityOrdered int    `json:"QuantityOrdered"`
	QuantityShipped int    `json:"QuantityShipped"`
}

// Money is the orders-API money shape; amounts arrive as strings.
type Money struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

type ordersEnvelope struct {
	Payload struct {
		Orders    []Order `json:"Orders"`
		NextToken string  `json:"NextToken"`
	} `json:"payload"`
}

type orderItemsEnvelope struct {
	Payload struct {
		OrderItems []OrderItem `json:"OrderItems"`
		NextToken  string      `json:"NextToken"`
	} `json:"payload"`
}

// ListOrders pulls every order created inside [after, before). Pagination is
// a strictly sequential NextToken loop, bounded by the page cap and guarded
// against token loops.
func (c *Client) ListOrders(ctx context.Context, after, before time.Time) ([]Order, error) {
	query := url.Values{}
	query.Set("MarketplaceIds", c.marketplaceID)
	query.Set("CreatedAfter", after.UTC().Format(time.RFC3339))
	query.Set("CreatedBefore", before.UTC().Format(time.RFC3339))
	query.Set("MaxResultsPerPage", strconv.Itoa(100))

	var all []Order
	seen := make(map[string]struct{})

	for page := 0; page < c.maxTokenPages; page++ {
		var env ordersEnvelope
		if err := c.getJSON(ctx, "/orders/v0/orders", query, &env); err != nil {
			return nil, fmt.Errorf("list orders page %d: %w", page+1, err)
		}
		all = append(all, env.Payload.Orders...)

		token := env.Payload.NextToken
		if token == "" {
			break
		}
		if _, dup := seen[token]; dup {
			break
		}
		seen[token] = struct{}{}

		query = url.Values{}
		query.Set("MarketplaceIds", c.marketplaceID)
		query.Set("NextToken", token)
		c.paceSleep()
	}

	return all, nil
}

// ListOrderItems pulls the line items of one order.
func (c *Client) ListOrderItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	path := "/orders/v0/orders/" + url.PathEscape(orderID) + "/orderItems"

	var all []OrderItem
	query := url.Values{}

	for page := 0; page < c.maxTokenPages; page++ {
		var env orderItemsEnvelope
		if err := c.getJSON(ctx, path, query, &env); err != nil {
			return nil, fmt.Errorf("list order items for %s: %w", orderID, err)
		}
		all = append(all, env.Payload.OrderItems...)

		if env.Payload.NextToken == "" {
			break
		}
		query = url.Values{}
		query.Set("NextToken", env.Payload.NextToken)
		c.paceSleep()
	}

	return all, nil
}
