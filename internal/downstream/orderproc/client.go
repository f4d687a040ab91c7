// Package orderproc is the gateway's adapter to the order-processor
// service, which owns the product catalog, user credentials, and order
// recording. Calls are timeout-bound with no retries or circuit breaking;
// interpretation of application-level failure fields is left to callers.
package orderproc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"emart-gateway/internal/order"
	dErrors "emart-gateway/pkg/domain-errors"
)

// Credentials is the validateuser request body.
type Credentials struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// UserValidation is the decoded validateuser response. The order-processor
// answers 200 {status:success,email} or 401 {status:failed}; both decode
// here, and Raw keeps the body for passthrough routes.
type UserValidation struct {
	Status string `json:"status"`
	User   string `json:"user"`
	Email  string `json:"email"`

	Raw json.RawMessage `json:"-"`
}

// Success reports whether the credentials were accepted.
func (v *UserValidation) Success() bool {
	return v.Status == "success"
}

// Client calls the order-processor over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures optional Client dependencies.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateUser checks credentials against the order-processor. A decodable
// response of any HTTP status is a verdict; only transport-level failures
// and unreadable bodies are errors.
func (c *Client) ValidateUser(ctx context.Context, creds Credentials) (*UserValidation, error) {
	body, _, err := c.post(ctx, "/validateuser", creds)
	if err != nil {
		return nil, err
	}

	var result UserValidation
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "order-processor returned an unreadable validateuser response")
	}
	result.Raw = body
	return &result, nil
}

// Products fetches the catalog for passthrough to the storefront.
func (c *Client) Products(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build products request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "order-processor unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read products response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dErrors.New(dErrors.CodeUnavailable, "order-processor product fetch failed")
	}
	return body, nil
}

// SubmitOrder records an order. Application-level failure bodies (the
// order-processor answers 500 with a JSON status when no item could be
// recorded) are passed through to the caller rather than interpreted here.
func (c *Client) SubmitOrder(ctx context.Context, sub order.Submission) (order.Result, error) {
	body, status, err := c.post(ctx, "/submitorder", sub)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		c.logger.WarnContext(ctx, "order-processor returned a non-JSON submitorder response", "status", status)
		return nil, dErrors.New(dErrors.CodeUnavailable, "order-processor returned an unreadable order result")
	}
	return order.Result(body), nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "encode request for "+path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "build request for "+path)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "order-processor unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, dErrors.Wrap(err, dErrors.CodeUnavailable, "read response from "+path)
	}
	return body, resp.StatusCode, nil
}
