package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/finance"
)

func feeEntry(feeType string, amount any, currency string) map[string]any {
	amountObj := map[string]any{"Amount": amount}
	if currency != "" {
		amountObj["CurrencyCode"] = currency
	}
	return map[string]any{"FeeType": feeType, "FeeAmount": amountObj}
}

func TestAddFeeList_DropsZeroAndUnparseableAmounts(t *testing.T) {
	ledger := finance.NewLedger()
	ledger.AddFeeList(domain.ScopeOrder, domain.FeeLevelOrder, []any{
		feeEntry("Commission", 0.0, "EUR"),
		feeEntry("Commission", "garbage", "EUR"),
		map[string]any{"FeeType": "Commission"}, // no amount at all
		"not even an object",
	}, finance.ItemMeta{})

	report := ledger.Finalize()
	assert.Empty(t, report.Items)
	assert.True(t, report.TotalFee.IsZero())
}

func TestAddFeeList_CamelCaseAliasesAccepted(t *testing.T) {
	ledger := finance.NewLedger()
	ledger.AddFeeList(domain.ScopeOrder, domain.FeeLevelOrder, []any{
		map[string]any{
			"feeType":   "Commission",
			"feeAmount": map[string]any{"amount": -3.5, "currencyCode": "EUR"},
		},
	}, finance.ItemMeta{})

	report := ledger.Finalize()
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Commission", report.Items[0].Fees[0].FeeType)
	assert.True(t, report.Items[0].FeeTotal.Equal(decimal.NewFromFloat(-3.5)))
	assert.Equal(t, "EUR", report.Currency)
}

func TestAddFeeList_CurrencyFallbackThreadsForward(t *testing.T) {
	ledger := finance.NewLedger()
	ledger.AddFeeList(domain.ScopeOrder, domain.FeeLevelOrder, []any{
		feeEntry("Commission", -3.5, "EUR"),
		feeEntry("FBAFee", -1.2, ""), // no explicit currency, inherits EUR
	}, finance.ItemMeta{})

	report := ledger.Finalize()
	require.Len(t, report.Items, 1)
	require.Len(t, report.Items[0].Fees, 2)
	assert.Equal(t, "EUR", report.Items[0].Fees[1].CurrencyCode)
	assert.Equal(t, "EUR", ledger.CurrencyFallback())
}

func TestAddFeeList_ItemMetaBackfilledNeverOverwritten(t *testing.T) {
	ledger := finance.NewLedger()

	// First visit establishes the row without a SKU.
	ledger.AddFeeList("item-1", domain.FeeLevelItem, []any{
		feeEntry("FBAFee", -1.0, "EUR"),
	}, finance.ItemMeta{OrderItemID: "item-1"})

	// Later visit supplies the SKU; it is backfilled.
	ledger.AddFeeList("item-1", domain.FeeLevelItem, []any{
		feeEntry("Commission", -2.0, "EUR"),
	}, finance.ItemMeta{OrderItemID: "item-1", SellerSKU: "SKU-A"})

	// A conflicting SKU on a third visit must not overwrite.
	ledger.AddFeeList("item-1", domain.FeeLevelItem, []any{
		feeEntry("Other", -0.5, "EUR"),
	}, finance.ItemMeta{OrderItemID: "item-1", SellerSKU: "SKU-B"})

	report := ledger.Finalize()
	require.Len(t, report.Items, 1)
	assert.Equal(t, "SKU-A", report.Items[0].SellerSKU)
}

func TestMergeRowFees_GroupsByTypeAndCurrency(t *testing.T) {
	row := &domain.FeeRow{
		ScopeKey: domain.ScopeOrder,
		Level:    domain.FeeLevelOrder,
		Fees: []domain.FeeEntry{
			{FeeType: "Commission", Amount: decimal.NewFromFloat(-1.5), CurrencyCode: "EUR"},
			{FeeType: "FBAFee", Amount: decimal.NewFromFloat(-1.0), CurrencyCode: "EUR"},
			{FeeType: "Commission", Amount: decimal.NewFromFloat(-2.0), CurrencyCode: "EUR"},
			{FeeType: "Commission", Amount: decimal.NewFromFloat(-4.0), CurrencyCode: "USD"},
		},
	}

	finance.MergeRowFees(row)

	require.Len(t, row.Fees, 3)
	assert.Equal(t, "Commission", row.Fees[0].FeeType)
	assert.True(t, row.Fees[0].Amount.Equal(decimal.NewFromFloat(-3.5)))
	assert.Equal(t, "FBAFee", row.Fees[1].FeeType)
	assert.Equal(t, "USD", row.Fees[2].CurrencyCode)
	assert.True(t, row.FeeTotal.Equal(decimal.NewFromFloat(-8.5)))
}

func TestMergeRowFees_Idempotent(t *testing.T) {
	row := &domain.FeeRow{
		ScopeKey: domain.ScopeOrder,
		Fees: []domain.FeeEntry{
			{FeeType: "Commission", Amount: decimal.NewFromFloat(-1.5), CurrencyCode: "EUR"},
			{FeeType: "Commission", Amount: decimal.NewFromFloat(-2.0), CurrencyCode: "EUR"},
		},
	}

	finance.MergeRowFees(row)
	once := *row
	onceFees := append([]domain.FeeEntry(nil), row.Fees...)

	finance.MergeRowFees(row)
	assert.Equal(t, onceFees, row.Fees)
	assert.True(t, once.FeeTotal.Equal(row.FeeTotal))
}

func TestFinalize_FeeTotalEqualsSumOfEntries(t *testing.T) {
	ledger := finance.NewLedger()
	ledger.AddFeeList(domain.ScopeOrder, domain.FeeLevelOrder, []any{
		feeEntry("Commission", -1.5, "EUR"),
		feeEntry("Commission", -2.0, "EUR"),
		feeEntry("ShippingChargeback", -0.25, "EUR"),
	}, finance.ItemMeta{})

	report := ledger.Finalize()
	require.Len(t, report.Items, 1)

	sum := decimal.Zero
	for _, fee := range report.Items[0].Fees {
		sum = sum.Add(fee.Amount)
	}
	assert.True(t, report.Items[0].FeeTotal.Equal(sum))
}
