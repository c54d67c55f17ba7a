// File: internal/services/provider/errors.go
package provider

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
	ErrTypeResource   ErrorType = "RESOURCE"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// ProviderError is the single error type crossing the adapter boundary.
// NETWORK covers transport failures and timeouts; PROVIDER carries the
// provider-supplied message verbatim.
type ProviderError struct {
	Type      ErrorType
	Code      int
	Message   string
	Operation string
	Cause     error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *ProviderError {
	return &ProviderError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewNetworkError(operation, msg string, cause error) *ProviderError {
	return &ProviderError{Type: ErrTypeNetwork, Operation: operation, Message: msg, Cause: cause}
}

func NewProviderError(operation string, code int, msg string) *ProviderError {
	return &ProviderError{Type: ErrTypeProvider, Operation: operation, Code: code, Message: msg}
}

func NewResourceError(operation, msg string, cause error) *ProviderError {
	return &ProviderError{Type: ErrTypeResource, Operation: operation, Message: msg, Cause: cause}
}

// IsType reports whether err is a ProviderError of the given type.
func IsType(err error, t ErrorType) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == t
}
