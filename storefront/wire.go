package storefront

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/taskhive-io/taskhive-go/apierr"
)

// buildNearbyQuery validates the coordinate and encodes the search as query
// parameters. The limit default is applied here so the wire request never
// relies on the service's own default; the effective limit is returned so
// the response mapping can enforce it too.
func buildNearbyQuery(in NearbyStoresInput) (url.Values, int, error) {
	if in.Latitude < -90 || in.Latitude > 90 {
		return nil, 0, apierr.InvalidRequest("latitude must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return nil, 0, apierr.InvalidRequest("longitude must be between -180 and 180")
	}
	if in.Limit < 0 {
		return nil, 0, apierr.InvalidRequest("limit must not be negative")
	}
	if in.RadiusMiles < 0 {
		return nil, 0, apierr.InvalidRequest("radius must not be negative")
	}

	limit := in.Limit
	if limit == 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(in.Latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(in.Longitude, 'f', -1, 64))
	params.Set("limit", strconv.Itoa(limit))
	if in.RadiusMiles > 0 {
		params.Set("radius", strconv.FormatFloat(in.RadiusMiles, 'f', -1, 64))
	}
	return params, limit, nil
}

type storeWire struct {
	StoreID       string  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	DistanceMiles float64 `json:"distance_miles"`
	Address       struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		Region     string `json:"region"`
		PostalCode string `json:"postal_code"`
	} `json:"address"`
}

type nearbyWire struct {
	Stores []storeWire `json:"stores"`
}

// mapNearbyStores reshapes the wire store list, sorts it ascending by
// distance and truncates it to limit, so neither the ordering nor the
// result-count guarantee depends on the remote service.
func mapNearbyStores(raw json.RawMessage, limit int) ([]Store, error) {
	var wire nearbyWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}

	stores := make([]Store, 0, len(wire.Stores))
	for _, s := range wire.Stores {
		stores = append(stores, Store{
			ID:       s.StoreID,
			Name:     s.StoreName,
			Distance: s.DistanceMiles,
			Address: Address{
				Street:     s.Address.Street,
				City:       s.Address.City,
				Region:     s.Address.Region,
				PostalCode: s.Address.PostalCode,
			},
		})
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Distance < stores[j].Distance })
	if len(stores) > limit {
		stores = stores[:limit]
	}
	return stores, nil
}

type productRequest struct {
	Proxy string `json:"proxy"`
}

func buildProductRequest(in ProductInput) (string, *productRequest, error) {
	if in.TCIN == "" {
		return "", nil, apierr.InvalidRequest("product id is required")
	}
	if in.Proxy == "" {
		return "", nil, apierr.InvalidRequest("proxy is required")
	}
	path := fmt.Sprintf("/shop/products/%s", url.PathEscape(in.TCIN))
	return path, &productRequest{Proxy: in.Proxy}, nil
}

type productWire struct {
	TCIN  string `json:"tcin"`
	Title string `json:"title"`
	Brand string `json:"brand"`
	Price struct {
		CurrentRetail float64 `json:"current_retail"`
		Currency      string  `json:"currency"`
	} `json:"price"`
	Purchasable bool   `json:"purchasable"`
	ImageURL    string `json:"image_url"`
}

func mapProduct(raw json.RawMessage) (*Product, error) {
	var wire productWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &Product{
		TCIN:      wire.TCIN,
		Title:     wire.Title,
		Brand:     wire.Brand,
		Price:     wire.Price.CurrentRetail,
		Currency:  wire.Price.Currency,
		Available: wire.Purchasable,
		ImageURL:  wire.ImageURL,
	}, nil
}

type cartAddRequest struct {
	Proxy           string `json:"proxy"`
	AccessToken     string `json:"access_token"`
	TCIN            string `json:"tcin"`
	Quantity        int    `json:"quantity"`
	FulfillmentType string `json:"fulfillment_type"`
	StoreID         string `json:"store_id,omitempty"`
}

func buildCartAddRequest(in AddToCartInput) (*cartAddRequest, error) {
	if in.Proxy == "" {
		return nil, apierr.InvalidRequest("proxy is required")
	}
	if in.AccessToken == "" {
		return nil, apierr.InvalidRequest("access token is required")
	}
	if in.TCIN == "" {
		return nil, apierr.InvalidRequest("product id is required")
	}
	if in.Quantity < 1 {
		return nil, apierr.InvalidRequest("quantity must be at least 1")
	}

	fulfillment := in.Fulfillment
	if fulfillment == "" {
		fulfillment = FulfillmentShip
	}
	switch fulfillment {
	case FulfillmentShip:
	case FulfillmentPickup:
		if in.StoreID == "" {
			return nil, apierr.InvalidRequest("store id is required for pickup fulfillment")
		}
	default:
		return nil, apierr.InvalidRequest(fmt.Sprintf("unknown fulfillment type: %s", fulfillment))
	}

	return &cartAddRequest{
		Proxy:           in.Proxy,
		AccessToken:     in.AccessToken,
		TCIN:            in.TCIN,
		Quantity:        in.Quantity,
		FulfillmentType: string(fulfillment),
		StoreID:         in.StoreID,
	}, nil
}

func (r *cartAddRequest) asInput() AddToCartInput {
	return AddToCartInput{
		Proxy:       r.Proxy,
		AccessToken: r.AccessToken,
		TCIN:        r.TCIN,
		Quantity:    r.Quantity,
		Fulfillment: FulfillmentType(r.FulfillmentType),
		StoreID:     r.StoreID,
	}
}

type cartResultWire struct {
	CartID     string  `json:"cart_id"`
	CartItemID string  `json:"cart_item_id"`
	TCIN       string  `json:"tcin"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

func mapCartResult(raw json.RawMessage) (*CartResult, error) {
	var wire cartResultWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &CartResult{
		CartID:   wire.CartID,
		ItemID:   wire.CartItemID,
		TCIN:     wire.TCIN,
		Quantity: wire.Quantity,
		Subtotal: wire.Subtotal,
	}, nil
}

type healthWire struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func mapHealthStatus(raw json.RawMessage) (*HealthStatus, error) {
	var wire healthWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &HealthStatus{Status: wire.Status, Version: wire.Version}, nil
}

type pingWire struct {
	Status string `json:"status"`
	Quota  struct {
		Used     int    `json:"used"`
		Limit    int    `json:"limit"`
		ResetsAt string `json:"resets_at"`
	} `json:"quota"`
}

func mapQuotaStatus(raw json.RawMessage) (*QuotaStatus, error) {
	var wire pingWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}

	status := &QuotaStatus{
		Used:  wire.Quota.Used,
		Limit: wire.Quota.Limit,
	}
	// resets_at is optional and stays zero when absent or unparseable.
	if wire.Quota.ResetsAt != "" {
		if t, err := time.Parse(time.RFC3339, wire.Quota.ResetsAt); err == nil {
			status.ResetsAt = t
		}
	}
	return status, nil
}
