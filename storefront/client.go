package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive-io/taskhive-go/transport"
)

// Default connection settings applied at construction.
const (
	DefaultBaseURL = "https://api.taskhive.io"
	DefaultTimeout = 120 * time.Second
)

// requester issues one request and returns the raw success body or a
// classified error. Satisfied by *transport.Core; stubbed in tests.
type requester interface {
	Do(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Client is the TaskHive shop API client. It holds no per-call state, so a
// single Client is safe for concurrent use.
type Client struct {
	core   requester
	logger zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new shop client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("taskhive API key is required")
	}

	o := &clientOptions{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Client{
		core:   transport.New(o.baseURL, apiKey, o.timeout, o.httpClient, classify, logger),
		logger: logger,
	}, nil
}

// Health reports service liveness. It has no side effects and no input.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	raw, err := c.core.Do(ctx, http.MethodGet, "/shop/health", nil)
	if err != nil {
		return nil, err
	}
	return mapHealthStatus(raw)
}

// Ping reports liveness plus the caller's quota usage. No side effects.
func (c *Client) Ping(ctx context.Context) (*QuotaStatus, error) {
	raw, err := c.core.Do(ctx, http.MethodGet, "/shop/ping", nil)
	if err != nil {
		return nil, err
	}
	return mapQuotaStatus(raw)
}

// NearbyStores searches retail locations around a coordinate. Results are
// sorted ascending by distance and capped at the input limit.
func (c *Client) NearbyStores(ctx context.Context, input NearbyStoresInput) ([]Store, error) {
	params, limit, err := buildNearbyQuery(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodGet, "/shop/stores/nearby?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	stores, err := mapNearbyStores(raw, limit)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("count", len(stores)).
		Float64("lat", input.Latitude).
		Float64("lng", input.Longitude).
		Msg("nearby store search completed")

	return stores, nil
}

// GetProduct looks up product detail by product id, through the supplied
// proxy.
func (c *Client) GetProduct(ctx context.Context, input ProductInput) (*Product, error) {
	path, req, err := buildProductRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	product, err := mapProduct(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("tcin", product.TCIN).
		Bool("available", product.Available).
		Msg("product detail fetched")

	return product, nil
}

// AddToCart adds an item to the caller's cart. All constraint violations are
// caught locally before any network call.
func (c *Client) AddToCart(ctx context.Context, input AddToCartInput) (*CartResult, error) {
	req, err := buildCartAddRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, "/shop/cart/add", req)
	if err != nil {
		return nil, err
	}

	result, err := mapCartResult(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("cart_id", result.CartID).
		Str("tcin", result.TCIN).
		Int("quantity", result.Quantity).
		Msg("item added to cart")

	return result, nil
}
