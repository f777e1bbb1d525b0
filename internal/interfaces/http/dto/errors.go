package dto

import "net/http"

// Error codes used by the HTTP layer itself. Domain error codes pass
// through the envelope unchanged; the status mapping below covers both.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ALREADY_EXISTS":        http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"HAS_DEPENDENT_RECORDS": http.StatusConflict,

	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"SYSTEM_PROTECTED":      http.StatusUnprocessableEntity,
	"PAYMENT_EXCEEDS_DUE":   http.StatusUnprocessableEntity,
	"CREDIT_LIMIT_EXCEEDED": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"TENANT_SUSPENDED":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code. Unmapped codes
// come from domain validation and map to 400.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
