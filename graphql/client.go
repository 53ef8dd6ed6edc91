// ABOUTME: HTTP client for the monday.com GraphQL endpoint with functional options.
// ABOUTME: Posts a query document and returns the raw "data" payload, or a ProtocolError.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the production monday.com GraphQL endpoint.
const DefaultEndpoint = "https://api.monday.com/v2"

// Executor executes a single GraphQL document (query or mutation) and returns
// the raw "data" payload from the response envelope. Implementations attach
// whatever authorization the call requires. The object model in package monday
// depends only on this interface, so tests can substitute an in-memory fake.
type Executor interface {
	Execute(ctx context.Context, document string) (json.RawMessage, error)
}

// Client is the production Executor. It POSTs {"query": document} to the
// monday.com API with the account's token in the Authorization header.
type Client struct {
	token          string
	endpoint       string
	httpClient     *http.Client
	defaultHeaders map[string]string
	retry          *RetryPolicy
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (used by tests to point at a
// local fake server).
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to impose a
// caller-defined timeout or transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithHeader sets a default header applied to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithRetryPolicy enables retries for retryable protocol errors (429 and
// 5xx). The zero configuration performs no retries; the object model never
// retries on its own.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retry = &policy
	}
}

// NewClient creates a Client that authorizes every request with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:          token,
		endpoint:       DefaultEndpoint,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		defaultHeaders: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the standard monday.com response shape. A missing or null
// "data" field means the request failed even when HTTP reports 200.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Errors    []ResponseError `json:"errors"`
	AccountID int64           `json:"account_id"`
}

// Execute implements Executor. It sends the document and returns the data
// payload. Responses carrying GraphQL errors or no data payload yield a
// *ProtocolError.
func (c *Client) Execute(ctx context.Context, document string) (json.RawMessage, error) {
	if c.retry == nil {
		return c.execute(ctx, document)
	}
	return Retry(ctx, *c.retry, func(ctx context.Context) (json.RawMessage, error) {
		return c.execute(ctx, document)
	})
}

func (c *Client) execute(ctx context.Context, document string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": document})
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ProtocolError{
			Message:    "response is not valid JSON",
			StatusCode: resp.StatusCode,
			Raw:        raw,
			Cause:      err,
		}
	}

	if len(env.Errors) > 0 || isNullish(env.Data) {
		return nil, &ProtocolError{
			Message:    fmt.Sprintf("response carried no data payload (status %d)", resp.StatusCode),
			StatusCode: resp.StatusCode,
			Errors:     env.Errors,
			Raw:        raw,
		}
	}

	return env.Data, nil
}

// isNullish reports whether a raw JSON payload is absent or JSON null.
func isNullish(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
