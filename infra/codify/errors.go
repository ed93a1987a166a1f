package codify

import (
	"errors"
	"fmt"
)

// ErrorKind buckets gateway failures. The store treats all three the same
// way — operation failed, state untouched — they only differ in the message
// surfaced to the user.
type ErrorKind int

const (
	// KindNetwork is a transport failure: the request never got an HTTP response.
	KindNetwork ErrorKind = iota
	// KindValidation is a 4xx response: the server rejected the request.
	KindValidation
	// KindServer is a 5xx response.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// APIError is a classified gateway failure. RequestID matches the
// X-Request-Id header sent with the failing call, for log correlation.
type APIError struct {
	Kind      ErrorKind
	Status    int    // Zero for transport failures.
	Message   string // Server-provided message when available.
	RequestID string
	Err       error // Underlying transport error, if any.
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Err)
	case KindValidation:
		return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
