package dto

import "net/http"

// Domain error codes surfaced over the API. These match the codes carried
// by shared.DomainError so handlers can map them without translation.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeConflict           = "CONFLICT"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeForbidden          = "FORBIDDEN"
	CodeUnauthorized       = "UNAUTHORIZED"
)

// Auth error codes raised by the token layer rather than the domain.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeTokenRevoked       = "TOKEN_REVOKED"
)

// Transport-level error codes.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeInvalidJSON = "INVALID_JSON"
	CodeInternal    = "INTERNAL_ERROR"
	CodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	CodeNotFound: http.StatusNotFound,

	CodeAlreadyExists: http.StatusConflict,
	CodeConflict:      http.StatusConflict,

	CodeInvalidInput:  http.StatusBadRequest,
	CodeInvalidAmount: http.StatusBadRequest,
	CodeBadRequest:    http.StatusBadRequest,
	CodeInvalidJSON:   http.StatusBadRequest,

	// State and invariant violations are well-formed requests the domain
	// refuses to carry out.
	CodeInvalidState:       http.StatusUnprocessableEntity,
	CodeInvariantViolation: http.StatusUnprocessableEntity,

	CodeForbidden: http.StatusForbidden,

	CodeUnauthorized:       http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeTokenExpired:       http.StatusUnauthorized,
	CodeTokenInvalid:       http.StatusUnauthorized,
	CodeTokenRevoked:       http.StatusUnauthorized,

	CodeInternal:    http.StatusInternalServerError,
	CodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
