package domain

import "github.com/shopspring/decimal"

func init() {
	// Fee amounts serialize as JSON numbers, matching the upstream money shape.
	decimal.MarshalJSONWithoutQuotes = true
}

// FeeLevel is the aggregation granularity of a fee row.
type FeeLevel string

const (
	FeeLevelOrder FeeLevel = "order"
	FeeLevelItem  FeeLevel = "item"
)

const (
	// ScopeOrder keys the single row holding whole-order fees.
	ScopeOrder = "ORDER"
	// ScopeUnknownItem keys item-level fees whose order item id could not be
	// resolved from the event payload.
	ScopeUnknownItem = "UNKNOWN_ITEM"
)

// FeeEntry is one fee line inside a row.
type FeeEntry struct {
	FeeType      string          `json:"feeType"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// FeeRow aggregates the fees of one scope (the whole order, or one order line
// item) within a single financial-events response.
//
// FeeTotal equals the sum of Fees amounts at all times after merge.
type FeeRow struct {
	ScopeKey    string          `json:"scopeKey"`
	Level       FeeLevel        `json:"level"`
	OrderItemID string          `json:"orderItemId,omitempty"`
	SellerSKU   string          `json:"sellerSku,omitempty"`
	Fees        []FeeEntry      `json:"fees"`
	FeeTotal    decimal.Decimal `json:"feeTotal"`
}

// FeeReport is the fee endpoint response for one order.
type FeeReport struct {
	Items    []FeeRow        `json:"items"`
	TotalFee decimal.Decimal `json:"totalFee"`
	Currency string          `json:"currency"`
}
