package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// Input error codes surfaced by the reporting and catalog services
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeInvalidProductID   = "INVALID_PRODUCT_ID"
	ErrCodeInvalidCategoryID  = "INVALID_CATEGORY_ID"
	ErrCodeInvalidGranularity = "INVALID_GRANULARITY"
	ErrCodeInvalidDateRange   = "INVALID_DATE_RANGE"
	ErrCodeInvalidOrderTotal  = "INVALID_ORDER_TOTAL"
)

// Downstream error codes
const (
	ErrCodeDependencyFailure = "DEPENDENCY_FAILURE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInvalidProductID:   http.StatusBadRequest,
	ErrCodeInvalidCategoryID:  http.StatusBadRequest,
	ErrCodeInvalidGranularity: http.StatusBadRequest,
	ErrCodeInvalidDateRange:   http.StatusBadRequest,
	ErrCodeInvalidOrderTotal:  http.StatusBadRequest,

	ErrCodeDependencyFailure: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
