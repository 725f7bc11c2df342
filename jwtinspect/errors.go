package jwtinspect

import "fmt"

// ErrorCode represents a token inspection or validation error code
type ErrorCode string

const (
	ErrMalformed            ErrorCode = "MALFORMED"
	ErrUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"
	ErrNoneAlgorithm        ErrorCode = "NONE_ALGORITHM"
	ErrExpired              ErrorCode = "EXPIRED"
	ErrInvalidSignature     ErrorCode = "INVALID_SIGNATURE"
	ErrMissingToken         ErrorCode = "MISSING_TOKEN"
	ErrConfigError          ErrorCode = "CONFIG_ERROR"
)

// ValidationError represents a token inspection or validation error with a code and message
type ValidationError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ValidationError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(code ErrorCode, message string, internal error) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// IsMalformed reports whether err is a MALFORMED validation error
func IsMalformed(err error) bool {
	valErr, ok := err.(*ValidationError)
	return ok && valErr.Code == ErrMalformed
}

// IsUnsupportedAlgorithm reports whether err rejects the token's declared
// algorithm, either as outside the HMAC-SHA-2 family or as the explicit
// "none" refusal
func IsUnsupportedAlgorithm(err error) bool {
	valErr, ok := err.(*ValidationError)
	return ok && (valErr.Code == ErrUnsupportedAlgorithm || valErr.Code == ErrNoneAlgorithm)
}
