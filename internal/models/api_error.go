package models

import "fmt"

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Predefined error codes for common API errors.
const (
	// Generic
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeServiceUnavailable  ErrorCode = "service_unavailable"

	// Validation
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeMissingParameter ErrorCode = "missing_parameter"
	ErrorCodeInvalidFormat    ErrorCode = "invalid_format"

	// Resource specific
	ErrorCodeResourceNotFound ErrorCode = "resource_not_found"
)

// APIError is the internal representation of a failed request. On the wire
// it is flattened into the uniform {"success": false, "error": ...}
// envelope; Code and StatusCode drive logging and the response status.
type APIError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
}

// Error makes APIError implement the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}
