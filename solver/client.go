package solver

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

// Client is the TaskHive solve API client. It holds no per-call state, so a
// single Client is safe for concurrent use.
type Client struct {
	core   requester
	logger zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new solve client
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
	raw, err := c.core.Do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	return mapHealthStatus(raw)
}

// SolveTurnstile solves a Cloudflare Turnstile challenge.
func (c *Client) SolveTurnstile(ctx context.Context, input TurnstileInput) (*TurnstileResult, error) {
	req, err := buildTurnstileRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, "/solve/turnstile", req)
	if err != nil {
		return nil, err
	}

	result, err := mapTurnstileResult(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("task_id", result.TaskID).
		Float64("cost", result.Cost).
		Float64("solve_time", result.SolveTime).
		Msg("turnstile solved")

	return result, nil
}

// SolveKasada solves a Kasada challenge. The result carries the headers to
// replay against the protected site.
func (c *Client) SolveKasada(ctx context.Context, input KasadaInput) (*KasadaResult, error) {
	req, err := buildKasadaRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, "/solve/kasada", req)
	if err != nil {
		return nil, err
	}

	result, err := mapKasadaResult(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("task_id", result.TaskID).
		Int("extra_headers", len(result.Solution.Headers)).
		Msg("kasada solved")

	return result, nil
}

// SolveAkamai generates Akamai sensor cookies for a page.
func (c *Client) SolveAkamai(ctx context.Context, input AkamaiInput) (*AkamaiResult, error) {
	req, err := buildAkamaiRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, "/solve/akamai", req)
	if err != nil {
		return nil, err
	}

	result, err := mapAkamaiResult(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("task_id", result.TaskID).
		Float64("cost", result.Cost).
		Msg("akamai solved")

	return result, nil
}

// SolveArkose solves an Arkose Labs (FunCaptcha) challenge.
func (c *Client) SolveArkose(ctx context.Context, input ArkoseInput) (*ArkoseResult, error) {
	req, err := buildArkoseRequest(input)
	if err != nil {
		return nil, err
	}

	raw, err := c.core.Do(ctx, http.MethodPost, "/solve/arkose", req)
	if err != nil {
		return nil, err
	}

	result, err := mapArkoseResult(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("task_id", result.TaskID).
		Float64("cost", result.Cost).
		Msg("arkose solved")

	return result, nil
}
