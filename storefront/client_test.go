package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive-io/taskhive-go/apierr"
)

// stubRequester counts invocations so tests can assert that local validation
// failures never reach the transport.
type stubRequester struct {
	calls    int
	response json.RawMessage
	err      error
}

func (s *stubRequester) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	s.calls++
	return s.response, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	client, err := NewClient("test-key", zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNearbyStores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop/stores/nearby", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "40.7147", q.Get("lat"))
		assert.Equal(t, "-74.0112", q.Get("lng"))
		assert.Equal(t, "5", q.Get("limit"))

		w.Write([]byte(`{"stores":[
			{"store_id":"1001","store_name":"Tribeca","distance_miles":0.4,"address":{"street":"255 Greenwich St","city":"New York","region":"NY","postal_code":"10007"}},
			{"store_id":"1002","store_name":"Herald Square","distance_miles":2.8,"address":{"street":"112 W 34th St","city":"New York","region":"NY","postal_code":"10120"}},
			{"store_id":"1003","store_name":"Jersey City","distance_miles":3.1,"address":{"street":"100 14th St","city":"Jersey City","region":"NJ","postal_code":"07310"}}
		]}`))
	})

	stores, err := client.NearbyStores(context.Background(), NearbyStoresInput{
		Latitude:  40.7147,
		Longitude: -74.0112,
		Limit:     5,
	})
	require.NoError(t, err)

	require.LessOrEqual(t, len(stores), 5)
	for i, s := range stores {
		assert.GreaterOrEqual(t, s.Distance, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, stores[i-1].Distance, s.Distance, "stores must be sorted ascending by distance")
		}
	}
	assert.Equal(t, "1001", stores[0].ID)
	assert.Equal(t, "Tribeca", stores[0].Name)
	assert.Equal(t, "New York", stores[0].Address.City)
}

func TestNearbyStoresCapsOverReturningServer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Six stores despite limit=5 in the query.
		w.Write([]byte(`{"stores":[
			{"store_id":"1","distance_miles":0.5},
			{"store_id":"2","distance_miles":1.5},
			{"store_id":"3","distance_miles":2.5},
			{"store_id":"4","distance_miles":3.5},
			{"store_id":"5","distance_miles":4.5},
			{"store_id":"6","distance_miles":5.5}
		]}`))
	})

	stores, err := client.NearbyStores(context.Background(), NearbyStoresInput{
		Latitude:  40.7147,
		Longitude: -74.0112,
		Limit:     5,
	})
	require.NoError(t, err)

	require.Len(t, stores, 5, "results must be capped at the requested limit")
	assert.Equal(t, "1", stores[0].ID)
	assert.Equal(t, "5", stores[4].ID)
}

func TestNearbyStoresSortsUnorderedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stores":[
			{"store_id":"b","distance_miles":9.9},
			{"store_id":"a","distance_miles":0.1}
		]}`))
	})

	stores, err := client.NearbyStores(context.Background(), NearbyStoresInput{Latitude: 40, Longitude: -74})
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "a", stores[0].ID)
	assert.Equal(t, "b", stores[1].ID)
}

func TestNearbyStoresValidation(t *testing.T) {
	stub := &stubRequester{}
	client := &Client{core: stub, logger: zerolog.Nop()}

	tests := []struct {
		name  string
		input NearbyStoresInput
	}{
		{"latitude too high", NearbyStoresInput{Latitude: 91, Longitude: 0}},
		{"longitude too low", NearbyStoresInput{Latitude: 0, Longitude: -181}},
		{"negative limit", NearbyStoresInput{Latitude: 0, Longitude: 0, Limit: -1}},
		{"negative radius", NearbyStoresInput{Latitude: 0, Longitude: 0, RadiusMiles: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.NearbyStores(context.Background(), tt.input)
			var apiErr *apierr.Error
			require.ErrorAs(t, err, &apiErr)
			assert.True(t, apiErr.IsInvalidRequest())
		})
	}
	assert.Zero(t, stub.calls, "validation failures must not reach the transport")
}

func TestGetProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shop/products/86753090", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "http://10.0.0.1:8080", body["proxy"])

		w.Write([]byte(`{"tcin":"86753090","title":"Wireless Headphones","brand":"Heyday","price":{"current_retail":34.99,"currency":"USD"},"purchasable":true,"image_url":"https://img.example.com/86753090.jpg"}`))
	})

	product, err := client.GetProduct(context.Background(), ProductInput{
		TCIN:  "86753090",
		Proxy: "http://10.0.0.1:8080",
	})
	require.NoError(t, err)

	assert.Equal(t, "86753090", product.TCIN)
	assert.Equal(t, "Wireless Headphones", product.Title)
	assert.InDelta(t, 34.99, product.Price, 1e-9)
	assert.Equal(t, "USD", product.Currency)
	assert.True(t, product.Available)
}

func TestGetProductRequiresProxy(t *testing.T) {
	stub := &stubRequester{}
	client := &Client{core: stub, logger: zerolog.Nop()}

	_, err := client.GetProduct(context.Background(), ProductInput{TCIN: "86753090"})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsInvalidRequest())
	assert.Zero(t, stub.calls)
}

func TestAddToCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop/cart/add", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "86753090", body["tcin"])
		assert.Equal(t, float64(2), body["quantity"])
		// Fulfillment default applied client-side; ship needs no store id.
		assert.Equal(t, "ship", body["fulfillment_type"])
		assert.NotContains(t, body, "store_id")

		w.Write([]byte(`{"cart_id":"c-9","cart_item_id":"ci-1","tcin":"86753090","quantity":2,"subtotal":69.98}`))
	})

	result, err := client.AddToCart(context.Background(), AddToCartInput{
		Proxy:       "http://10.0.0.1:8080",
		AccessToken: "acc-token",
		TCIN:        "86753090",
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, "c-9", result.CartID)
	assert.Equal(t, "ci-1", result.ItemID)
	assert.Equal(t, 2, result.Quantity)
	assert.InDelta(t, 69.98, result.Subtotal, 1e-9)
}

func TestAddToCartValidationBeforeNetwork(t *testing.T) {
	stub := &stubRequester{}
	client := &Client{core: stub, logger: zerolog.Nop()}

	tests := []struct {
		name  string
		input AddToCartInput
	}{
		{"pickup without store id", AddToCartInput{
			Proxy: "p", AccessToken: "a", TCIN: "t", Quantity: 1,
			Fulfillment: FulfillmentPickup,
		}},
		{"zero quantity", AddToCartInput{
			Proxy: "p", AccessToken: "a", TCIN: "t", Quantity: 0,
		}},
		{"missing access token", AddToCartInput{
			Proxy: "p", TCIN: "t", Quantity: 1,
		}},
		{"missing proxy", AddToCartInput{
			AccessToken: "a", TCIN: "t", Quantity: 1,
		}},
		{"unknown fulfillment", AddToCartInput{
			Proxy: "p", AccessToken: "a", TCIN: "t", Quantity: 1,
			Fulfillment: FulfillmentType("drone"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddToCart(context.Background(), tt.input)
			var apiErr *apierr.Error
			require.ErrorAs(t, err, &apiErr)
			assert.True(t, apiErr.IsInvalidRequest())
			assert.Zero(t, apiErr.StatusCode)
		})
	}
	assert.Zero(t, stub.calls, "validation failures must not reach the transport")
}

func TestAddToCartOutOfStock(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":409,"error":{"code":"OUT_OF_STOCK","message":"no inventory at selected store","suggestion":"try ship fulfillment"}}`))
	})

	_, err := client.AddToCart(context.Background(), AddToCartInput{
		Proxy:       "http://10.0.0.1:8080",
		AccessToken: "acc-token",
		TCIN:        "86753090",
		Quantity:    1,
		Fulfillment: FulfillmentPickup,
		StoreID:     "1001",
	})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsInventoryUnavailable())
	assert.Equal(t, "OUT_OF_STOCK", apiErr.Code)
	assert.Equal(t, "try ship fulfillment", apiErr.Suggestion)
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop/ping", r.URL.Path)
		w.Write([]byte(`{"status":"ok","quota":{"used":120,"limit":1000,"resets_at":"2026-09-01T00:00:00Z"}}`))
	})

	quota, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, quota.Used)
	assert.Equal(t, 1000, quota.Limit)
	assert.Equal(t, 880, quota.Remaining())
	assert.Equal(t, 2026, quota.ResetsAt.Year())
}

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		want   apierr.Kind
	}{
		{"auth code", 401, "AUTH_FAILED", apierr.KindAuthentication},
		{"invalid token code", 400, "INVALID_TOKEN", apierr.KindAuthentication},
		{"rate limited code", 429, "RATE_LIMITED", apierr.KindQuotaExceeded},
		{"out of stock code", 409, "OUT_OF_STOCK", apierr.KindInventoryUnavailable},
		{"inventory code", 400, "INVENTORY_UNAVAILABLE", apierr.KindInventoryUnavailable},
		{"upstream code", 502, "UPSTREAM_ERROR", apierr.KindUpstreamService},
		{"store unavailable code", 503, "STORE_UNAVAILABLE", apierr.KindUpstreamService},
		{"429 fallback", 429, "", apierr.KindQuotaExceeded},
		{"409 fallback", 409, "", apierr.KindInventoryUnavailable},
		{"500 fallback", 500, "", apierr.KindInternalService},
		{"unrecognized", 418, "TEAPOT", apierr.KindUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyKind(tt.status, tt.code))
		})
	}
}
