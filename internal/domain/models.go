package domain

import "time"

// WeekPoint is one slot of a 52-slot per-year weekly series.
type WeekPoint struct {
	ISOYear   int       `json:"isoYear"`
	ISOWeek   int       `json:"isoWeek"`
	WeekStart time.Time `json:"weekStartUtc"`
	WeekEnd   time.Time `json:"weekEndUtc"`
	Total     int       `json:"total"`
}

// WeeklySeries is the weekly-series endpoint response.
type WeeklySeries struct {
	Points []WeekPoint `json:"points"`
}

// DemandFact is one day-level quantity fact from the row store.
type DemandFact struct {
	Date     string `json:"date" db:"fact_date"`
	Quantity int    `json:"quantity" db:"quantity"`
	SKU      string `json:"sku,omitempty" db:"sku"`
}

// InventorySnapshot is the current on-hand count for a SKU, fetched fresh per
// dashboard load. OnHand is nil when the upstream inventory figure is unknown,
// in which case no forecast is computed.
type InventorySnapshot struct {
	SKU    string `json:"sku"`
	OnHand *int   `json:"onHand"`
}

// ReorderPlan is the OOS forecast output. It is a pure function of the weekly
// series and the inventory snapshot and carries no lifecycle of its own.
//
// WeeksUntilDepletion is -1 when inventory never depletes within the
// projection horizon; the week/year fields are zero in that case.
type ReorderPlan struct {
	WeeksUntilDepletion    int  `json:"weeksUntilDepletion"`
	DepletionISOYear       int  `json:"depletionYear"`
	DepletionISOWeek       int  `json:"depletionWeek"`
	ReorderQuantity        int  `json:"reorderQuantity"`
	PostReorderISOYear     int  `json:"postReorderDepletionYear"`
	PostReorderISOWeek     int  `json:"postReorderDepletionWeek"`
	PostReorderNoDepletion bool `json:"-"`
}

// OOSForecast is the forecast endpoint response. Plan is omitted when the
// upstream on-hand figure is unknown.
type OOSForecast struct {
	SKU     string       `json:"sku"`
	ISOYear int          `json:"isoYear"`
	ISOWeek int          `json:"isoWeek"`
	OnHand  *int         `json:"onHand"`
	Plan    *ReorderPlan `json:"plan,omitempty"`
}

// Connection is one tenant's stored SP-API authorization for a region.
type Connection struct {
	TenantID     string    `json:"tenant_id" db:"tenant_id"`
	Region       string    `json:"region" db:"region"`
	SellerID     string    `json:"seller_id" db:"seller_id"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SalesFilter scopes weekly-series and forecast queries.
type SalesFilter struct {
	TenantID string
	SKU      string
	Year     int
}
