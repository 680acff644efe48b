package storefront

import "time"

// HealthStatus reports service liveness.
type HealthStatus struct {
	Status  string
	Version string
}

// OK reports whether the service considers itself healthy.
func (h *HealthStatus) OK() bool {
	return h.Status == "ok"
}

// QuotaStatus reports the caller's usage allowance. ResetsAt is zero when
// the service did not report a reset time.
type QuotaStatus struct {
	Used     int
	Limit    int
	ResetsAt time.Time
}

// Remaining returns the number of calls left in the current window.
func (q *QuotaStatus) Remaining() int {
	if q.Limit < q.Used {
		return 0
	}
	return q.Limit - q.Used
}

// Address is a store's street address.
type Address struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// Store is one retail location returned by a nearby search.
type Store struct {
	ID       string
	Name     string
	Distance float64
	Address  Address
}

// NearbyStoresInput describes a store search around a coordinate. Limit
// defaults to 20 when zero; RadiusMiles of zero means no radius constraint.
type NearbyStoresInput struct {
	Latitude    float64
	Longitude   float64
	Limit       int
	RadiusMiles float64
}

// ProductInput identifies a product to look up. Both fields are required;
// the remote backend is only reachable through a proxy.
type ProductInput struct {
	TCIN  string
	Proxy string
}

// Product is the typed product detail.
type Product struct {
	TCIN      string
	Title     string
	Brand     string
	Price     float64
	Currency  string
	Available bool
	ImageURL  string
}

// FulfillmentType selects how a cart item will be fulfilled.
type FulfillmentType string

const (
	// FulfillmentShip ships the item to the account's address.
	FulfillmentShip FulfillmentType = "ship"
	// FulfillmentPickup reserves the item at a store; requires a StoreID.
	FulfillmentPickup FulfillmentType = "pickup"
)

// AddToCartInput describes a cart mutation. Proxy, AccessToken and TCIN are
// required; Quantity must be at least 1. Fulfillment defaults to
// FulfillmentShip; FulfillmentPickup additionally requires StoreID.
type AddToCartInput struct {
	Proxy       string
	AccessToken string
	TCIN        string
	Quantity    int
	Fulfillment FulfillmentType
	StoreID     string
}

// CartResult is the typed outcome of a cart mutation.
type CartResult struct {
	CartID   string
	ItemID   string
	TCIN     string
	Quantity int
	Subtotal float64
}
