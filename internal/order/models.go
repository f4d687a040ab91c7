// Package order holds the order intake types and the shape validation that
// gates every order submission, whichever path it arrives through.
package order

import "encoding/json"

// LineItem is one cart entry supplied by the client. ProductID is accepted
// as either a number or a string; the gateway only requires it to be
// present and forwards it untouched.
type LineItem struct {
	ProductID any      `json:"product_id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

// Submission is the order the gateway forwards to the order-processor.
// Total comes from the client and is deliberately not recomputed from the
// line items; the orchestrator does not close that trust boundary.
type Submission struct {
	UserID string     `json:"user_id"`
	Items  []LineItem `json:"items"`
	Total  *float64   `json:"total"`
}

// Result is the order-processor's response, passed through verbatim.
type Result = json.RawMessage
