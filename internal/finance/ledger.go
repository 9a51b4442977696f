// Package finance normalizes raw SP-API financial-event payloads into a
// canonical per-order / per-item fee ledger.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/normalize"
)

// ItemMeta carries the order-item identifiers of an item-scoped fee list.
type ItemMeta struct {
	OrderItemID string
	SellerSKU   string
}

// Ledger accumulates fee rows keyed by aggregation scope across the several
// fee-bearing lists of one financial-events response. All mutation is confined
// here; merging is a separate pure transform.
type Ledger struct {
	rows             map[string]*domain.FeeRow
	scopeOrder       []string
	currencyFallback string
}

func NewLedger() *Ledger {
	return &Ledger{rows: make(map[string]*domain.FeeRow)}
}

// AddFeeList folds one raw fee list into the ledger under scopeKey.
//
// Entries with a missing, non-finite or zero amount are dropped silently:
// zero-amount fee lines are common upstream and semantically void. The last
// explicit currency code seen becomes the fallback for later entries that
// omit theirs.
func (l *Ledger) AddFeeList(scopeKey string, level domain.FeeLevel, list []any, meta ItemMeta) {
	for _, raw := range list {
		entry := normalize.AsObject(raw)
		if entry == nil {
			continue
		}

		amountObj := normalize.PickMap(entry, "FeeAmount", "feeAmount")
		amt, ok := normalize.PickFloat(amountObj, "Amount", "amount", "CurrencyAmount", "currencyAmount")
		if !ok || amt == 0 {
			continue
		}

		currency := normalize.PickString(amountObj, "CurrencyCode", "currencyCode")
		if currency == "" {
			currency = l.currencyFallback
		} else {
			l.currencyFallback = currency
		}

		row := l.ensureRow(scopeKey, level, meta)
		amount := decimal.NewFromFloat(amt)
		row.Fees = append(row.Fees, domain.FeeEntry{
			FeeType:      normalize.PickString(entry, "FeeType", "feeType"),
			Amount:       amount,
			CurrencyCode: currency,
		})
		row.FeeTotal = row.FeeTotal.Add(amount)
	}
}

// ensureRow returns the row for scopeKey, creating it on first insertion.
// Item metadata is backfilled when still empty but never overwritten once set.
func (l *Ledger) ensureRow(scopeKey string, level domain.FeeLevel, meta ItemMeta) *domain.FeeRow {
	if row, ok := l.rows[scopeKey]; ok {
		if row.OrderItemID == "" {
			row.OrderItemID = meta.OrderItemID
		}
		if row.SellerSKU == "" {
			row.SellerSKU = meta.SellerSKU
		}
		return row
	}

	row := &domain.FeeRow{
		ScopeKey:    scopeKey,
		Level:       level,
		OrderItemID: meta.OrderItemID,
		SellerSKU:   meta.SellerSKU,
		FeeTotal:    decimal.Zero,
	}
	l.rows[scopeKey] = row
	l.scopeOrder = append(l.scopeOrder, scopeKey)
	return row
}

// CurrencyFallback exposes the accumulated ambient currency, useful to
// callers that report a single currency for the whole response.
func (l *Ledger) CurrencyFallback() string {
	return l.currencyFallback
}

// Finalize merges every row's fees and assembles the fee report. Rows appear
// in scope insertion order; the report total is the sum of all row totals.
func (l *Ledger) Finalize() domain.FeeReport {
	report := domain.FeeReport{
		Items:    make([]domain.FeeRow, 0, len(l.scopeOrder)),
		TotalFee: decimal.Zero,
		Currency: l.currencyFallback,
	}
	for _, scope := range l.scopeOrder {
		row := l.rows[scope]
		MergeRowFees(row)
		report.Items = append(report.Items, *row)
		report.TotalFee = report.TotalFee.Add(row.FeeTotal)
	}
	return report
}

// MergeRowFees collapses duplicate fee entries of the same (type, currency)
// pair into single summed entries, ordered by first occurrence. Merging an
// already-merged row is a no-op.
func MergeRowFees(row *domain.FeeRow) {
	if row == nil || len(row.Fees) == 0 {
		return
	}

	type feeKey struct {
		feeType  string
		currency string
	}
	sums := make(map[feeKey]decimal.Decimal, len(row.Fees))
	order := make([]feeKey, 0, len(row.Fees))

	for _, fee := range row.Fees {
		key := feeKey{fee.FeeType, fee.CurrencyCode}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(fee.Amount)
	}

	merged := make([]domain.FeeEntry, 0, len(order))
	total := decimal.Zero
	for _, key := range order {
		merged = append(merged, domain.FeeEntry{
			FeeType:      key.feeType,
			Amount:       sums[key],
			CurrencyCode: key.currency,
		})
		total = total.Add(sums[key])
	}

	row.Fees = merged
	row.FeeTotal = total
}
