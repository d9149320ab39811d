// Package errors defines custom error types for better error handling and debugging.
// ServiceError carries a type classification so callers can degrade instead of fail.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ServiceError represents errors raised while resolving availability or composing recommendations
type ServiceError struct {
	Type    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeNoResultsFound       = "NO_RESULTS_FOUND"
	ErrorTypeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	ErrorTypeMissingCredential    = "MISSING_CREDENTIAL"
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeInvalidRequest       = "INVALID_REQUEST"
	ErrorTypeGenerationFailed     = "GENERATION_FAILED"
)

// NewServiceError creates a new ServiceError
func NewServiceError(errorType, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewNoResultsError creates an error for a search with zero candidates
func NewNoResultsError(query string) *ServiceError {
	return NewServiceError(ErrorTypeNoResultsFound, fmt.Sprintf("no movies or TV shows found for %q", query), nil)
}

// NewUpstreamError creates an error for a failed or non-success outbound call
func NewUpstreamError(service, message string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeUpstreamUnavailable, fmt.Sprintf("%s: %s", service, message), cause)
}

// NewUpstreamStatusError creates an upstream error from a non-success HTTP status
func NewUpstreamStatusError(service string, status int) *ServiceError {
	return NewServiceError(ErrorTypeUpstreamUnavailable, fmt.Sprintf("%s API error: status %d", service, status), nil)
}

// NewMissingCredentialError creates a missing credential error
func NewMissingCredentialError(name string) *ServiceError {
	return NewServiceError(ErrorTypeMissingCredential, fmt.Sprintf("%s is not configured", name), nil)
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewInvalidRequestError creates an error for malformed client input
func NewInvalidRequestError(message string) *ServiceError {
	return NewServiceError(ErrorTypeInvalidRequest, message, nil)
}

// NewGenerationError creates an error for a failed retrieval/generation step
func NewGenerationError(message string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeGenerationFailed, message, cause)
}

// IsType reports whether any ServiceError in err's chain has the given type.
func IsType(err error, errorType string) bool {
	var se *ServiceError
	for err != nil {
		if !stderrors.As(err, &se) {
			return false
		}
		if se.Type == errorType {
			return true
		}
		err = se.Cause
	}
	return false
}
