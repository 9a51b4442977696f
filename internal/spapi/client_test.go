package spapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
)

var testCreds = spapi.Credentials{ClientID: "amzn1.application", ClientSecret: "secret"}

func newTestClient(t *testing.T, handler http.Handler) *spapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := spapi.NewClient(context.Background(), testCreds, "refresh-token", "EU", "DE",
		spapi.WithBaseURL(server.URL),
		spapi.WithHTTPClient(server.Client()),
		spapi.WithRetry(2, time.Millisecond),
	)
	require.NoError(t, err)
	return client
}

func TestNewClient_ValidatesConfiguration(t *testing.T) {
	_, err := spapi.NewClient(context.Background(), spapi.Credentials{}, "rt", "EU", "DE")
	assert.Error(t, err)

	_, err = spapi.NewClient(context.Background(), testCreds, "rt", "ZZ", "DE")
	assert.Error(t, err)

	_, err = spapi.NewClient(context.Background(), testCreds, "rt", "EU", "XX")
	assert.Error(t, err)
}

func TestListOrders_FollowsNextTokenSequentially(t *testing.T) {
	var pages int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		switch r.URL.Query().Get("NextToken") {
		case "":
			assert.NotEmpty(t, r.URL.Query().Get("CreatedAfter"))
			fmt.Fprint(w, `{"payload":{"Orders":[{"AmazonOrderId":"o-1","PurchaseDate":"2025-01-06T10:00:00Z"}],"NextToken":"t1"}}`)
		case "t1":
			fmt.Fprint(w, `{"payload":{"Orders":[{"AmazonOrderId":"o-2","PurchaseDate":"2025-01-07T10:00:00Z"}]}}`)
		default:
			t.Fatalf("unexpected token %q", r.URL.Query().Get("NextToken"))
		}
	}))

	orders, err := client.ListOrders(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o-1", orders[0].AmazonOrderID)
	assert.Equal(t, "o-2", orders[1].AmazonOrderID)
	assert.Equal(t, 2, pages)
}

func TestListOrders_StopsOnRepeatedToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"payload":{"Orders":[{"AmazonOrderId":"o-1"}],"NextToken":"loop"}}`)
	}))

	orders, err := client.ListOrders(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	// First page plus the single repeat before the loop guard trips.
	assert.Len(t, orders, 2)
}

func TestGetJSON_RetriesOnThrottle(t *testing.T) {
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"payload":{"Orders":[]}}`)
	}))

	_, err := client.ListOrders(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetJSON_SurfacesUpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors":[{"code":"Unauthorized","message":"missing finance role"}]}`)
	}))

	_, err := client.ListFinancialEventsByOrder(context.Background(), "o-1")
	var upstream *spapi.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "missing finance role")
}

func TestListFinancialEventsByOrder_MergesPages(t *testing.T) {
	var pages int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if r.URL.Query().Get("NextToken") == "" {
			fmt.Fprint(w, `{"payload":{"FinancialEvents":{"ShipmentEventList":[{"AmazonOrderId":"o-1"}]},"NextToken":"t1"}}`)
			return
		}
		fmt.Fprint(w, `{"payload":{"FinancialEvents":{"ShipmentEventList":[{"AmazonOrderId":"o-1"}],"RefundEventList":[{"AmazonOrderId":"o-1"}]}}}`)
	}))

	events, err := client.ListFinancialEventsByOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	shipments, ok := events["ShipmentEventList"].([]any)
	require.True(t, ok)
	assert.Len(t, shipments, 2)

	refunds, ok := events["RefundEventList"].([]any)
	require.True(t, ok)
	assert.Len(t, refunds, 1)
}

func TestGetInventorySnapshot_ParsesQuantity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"payload":{"inventorySummaries":[{"sellerSku":"SKU-A","totalQuantity":42}]}}`)
	}))

	snapshot, err := client.GetInventorySnapshot(context.Background(), "SKU-A")
	require.NoError(t, err)
	require.NotNil(t, snapshot.OnHand)
	assert.Equal(t, 42, *snapshot.OnHand)
}

func TestGetInventorySnapshot_UnknownQuantityStaysNil(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"payload":{"inventorySummaries":[]}}`)
	}))

	snapshot, err := client.GetInventorySnapshot(context.Background(), "SKU-A")
	require.NoError(t, err)
	assert.Nil(t, snapshot.OnHand)
}

func TestClampBefore(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	// A window end in the future clamps to end of yesterday.
	clamped := spapi.ClampBefore(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), now)
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC), clamped)

	// A window end already in the past is untouched.
	past := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, past, spapi.ClampBefore(past, now))
}
