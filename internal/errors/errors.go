// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure for the presentation layer.
type Kind string

const (
	KindNetwork     Kind = "network"
	KindServer      Kind = "server"
	KindValidation  Kind = "validation"
	KindEmptyResult Kind = "empty_result"
)

// FetchError is the normalized {kind, message} form every fetch
// failure is reduced to before it leaves the orchestration boundary.
type FetchError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewNetworkError wraps a transport or timeout failure.
func NewNetworkError(err error) error {
	return &FetchError{Kind: KindNetwork, Message: err.Error()}
}

// NewServerError carries a non-2xx response's server-provided message.
func NewServerError(status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("upstream returned status %d", status)
	}
	return &FetchError{Kind: KindServer, Message: message}
}

// NewValidationError flags a malformed query or response envelope.
func NewValidationError(message string) error {
	return &FetchError{Kind: KindValidation, Message: message}
}

// NewEmptyResultError flags a legitimate-but-empty result set, a
// user-facing condition distinct from a failure.
func NewEmptyResultError(message string) error {
	return &FetchError{Kind: KindEmptyResult, Message: message}
}

// Normalize reduces any error to a FetchError. Errors that are not
// already classified are treated as transport failures.
func Normalize(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: KindNetwork, Message: err.Error()}
}
