// Package transport executes single request/response cycles against the
// TaskHive API and normalizes every failure mode.
//
// A call ends in exactly one of three ways: the decoded success body (raw
// JSON, handed to the caller's field mapping), a classified API error built
// from the remote error envelope, or a transport error wrapping the
// underlying network failure. Response shape validation is the caller's
// concern; this layer only guarantees the body is valid JSON.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive-io/taskhive-go/apierr"
)

// ErrorEnvelope is the wire shape of a non-2xx response body. Every field is
// optional; absent fields decode to their zero value rather than failing.
// The storefront API duplicates the HTTP status in Status, the solver API
// omits it.
type ErrorEnvelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object inside an ErrorEnvelope.
type ErrorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Suggestion string `json:"suggestion"`
}

// ErrorMessage returns the most specific human message in the envelope,
// falling back to a placeholder so classification never depends on the
// remote service filling in its own error body.
func (e ErrorEnvelope) ErrorMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	if e.Message != "" {
		return e.Message
	}
	return "unknown error"
}

// Classifier maps a non-2xx response to exactly one classified error. Each
// client façade supplies its own table; the function must be total.
type Classifier func(statusCode int, env ErrorEnvelope) *apierr.Error

// Core issues authenticated JSON requests with a per-call timeout. It holds
// no per-call state, so a single Core is safe for concurrent use.
type Core struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	classify   Classifier
	logger     zerolog.Logger
}

// New creates a request core. httpClient may be nil, in which case a default
// client is used; the per-call deadline comes from timeout either way.
func New(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client, classify Classifier, logger zerolog.Logger) *Core {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Core{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: httpClient,
		classify:   classify,
		logger:     logger,
	}
}

// Do executes one request. body, when non-nil, is JSON-encoded and sent with
// a JSON content type. On a 2xx response the parsed body is returned
// verbatim; on any other status the body is interpreted as an ErrorEnvelope
// and passed to the classifier. The timeout context is cancelled on every
// exit path.
func (c *Core) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Transport("failed to encode request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apierr.Transport("failed to create request", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("sending API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierr.Transport("request timed out", err)
		}
		return nil, apierr.Transport("request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierr.Transport("request timed out", err)
		}
		return nil, apierr.Transport("failed to read response body", err)
	}

	// The body is parsed before the status is inspected so that callers see
	// the same error for a malformed 200 and a malformed 500.
	if !json.Valid(data) {
		return nil, apierr.Transport("malformed response body", nil)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return json.RawMessage(data), nil
	}

	var env ErrorEnvelope
	// Tolerant decode: a non-JSON-object body was already rejected above,
	// and missing sub-fields simply stay zero.
	_ = json.Unmarshal(data, &env)

	apiErr := c.classify(resp.StatusCode, env)

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("code", apiErr.Code).
		Str("kind", apiErr.Kind.String()).
		Msg("API request failed")

	return nil, apiErr
}
