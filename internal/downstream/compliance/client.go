// Package compliance is the gateway's adapter to the compliance/risk
// service. The service signals rejection with a 400/401 alongside a JSON
// verdict, so the client decodes the body regardless of HTTP status and
// leaves the verdict interpretation to the orchestrator.
package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	dErrors "emart-gateway/pkg/domain-errors"
)

// Verdict statuses produced by the compliance service.
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusError    = "Error"
)

// Verdict is the compliance decision for one payment attempt. It is never
// cached: every payment gets a fresh check.
type Verdict struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Approved reports whether the payment may proceed.
func (v *Verdict) Approved() bool {
	return v.Status == StatusApproved
}

type checkRequest struct {
	ID        string  `json:"id"`
	CartTotal float64 `json:"cartTotal"`
}

// Client calls the compliance service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs the balance/KYC lookup for one user and cart total.
func (c *Client) Check(ctx context.Context, userID string, cartTotal float64) (*Verdict, error) {
	payload, err := json.Marshal(checkRequest{ID: userID, CartTotal: cartTotal})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode compliance request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ComplianceCheck", bytes.NewReader(payload))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build compliance request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "compliance service unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read compliance response")
	}

	var verdict Verdict
	if err := json.Unmarshal(body, &verdict); err != nil || verdict.Status == "" {
		return nil, dErrors.New(dErrors.CodeUnavailable, "compliance service returned an unreadable verdict")
	}
	return &verdict, nil
}
