package storefront

import (
	"context"
)

// API defines the interface for TaskHive shop operations
type API interface {
	// Health reports service liveness
	Health(ctx context.Context) (*HealthStatus, error)

	// Ping reports liveness and the caller's quota usage
	Ping(ctx context.Context) (*QuotaStatus, error)

	// NearbyStores searches retail locations around a coordinate
	NearbyStores(ctx context.Context, input NearbyStoresInput) ([]Store, error)

	// GetProduct looks up product detail by product id
	GetProduct(ctx context.Context, input ProductInput) (*Product, error)

	// AddToCart adds an item to the caller's cart
	AddToCart(ctx context.Context, input AddToCartInput) (*CartResult, error)
}
