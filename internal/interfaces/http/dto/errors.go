package dto

import (
	"net/http"

	"github.com/ledger/backend/internal/domain/shared"
)

// Error codes minted by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain and HTTP-layer error codes to status
// codes. Configuration errors are 422: the request was well-formed but the
// billing configuration cannot produce an answer.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	shared.ErrNotFound.Code:            http.StatusNotFound,
	shared.ErrAlreadyExists.Code:       http.StatusConflict,
	shared.ErrInvalidInput.Code:        http.StatusBadRequest,
	shared.ErrConcurrencyConflict.Code: http.StatusConflict,
	shared.ErrUnauthorized.Code:        http.StatusUnauthorized,
	shared.ErrForbidden.Code:           http.StatusForbidden,
	shared.ErrInvalidState.Code:        http.StatusConflict,
	shared.ErrPlanInUse.Code:           http.StatusConflict,
	shared.CodeValidationError:         http.StatusBadRequest,
	shared.CodeConfigurationError:      http.StatusUnprocessableEntity,
}

// GetHTTPStatus resolves an error code to its HTTP status, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
