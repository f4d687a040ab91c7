// Package domainerrors defines the gateway-wide error taxonomy. Every
// collaborator failure is translated into one of these codes at the call
// site; transport maps codes to HTTP statuses in exactly one place.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks malformed or missing client input. It is raised
	// before any downstream call is made.
	CodeValidation Code = "validation_error"
	// CodeUnauthorized marks rejected credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks a subject without a registered contact address.
	CodeNotFound Code = "not_found"
	// CodeDeliveryFailed marks a notification dispatch failure.
	CodeDeliveryFailed Code = "delivery_failed"
	// CodeUnavailable marks a downstream collaborator that is unreachable
	// or returned an unusable response.
	CodeUnavailable Code = "downstream_unavailable"
	// CodeComplianceRejected marks a business rejection from the compliance
	// check; the message carries the verdict reason.
	CodeComplianceRejected Code = "compliance_rejected"
	// CodeGatewayTimeout marks the injected gateway_timeout fault.
	CodeGatewayTimeout Code = "gateway_timeout"
	// CodeInternal is the fallback for everything else.
	CodeInternal Code = "internal_error"
)

// Error carries a code and a human-readable message, optionally wrapping a
// cause for logs. The message is safe to surface to clients.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-safe message, falling back to def.
func MessageOf(err error, def string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return def
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// ToHTTPStatus maps a code to the status the gateway exposes for it.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeComplianceRejected:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeGatewayTimeout:
		return http.StatusGatewayTimeout
	case CodeDeliveryFailed, CodeUnavailable, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
