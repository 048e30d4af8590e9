package dto

import (
	"net/http"

	"github.com/leadcrm/backend/internal/domain/shared"
)

// Error codes carried in the failure envelope. Domain codes pass through
// unchanged.
const (
	ErrCodeValidation          = shared.CodeValidation
	ErrCodeBadRequest          = shared.CodeBadRequest
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeAlreadyExists       = shared.CodeAlreadyExists
	ErrCodeBusinessRule        = shared.CodeBusinessRule
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
	ErrCodeUnauthorized        = shared.CodeUnauthorized
	ErrCodeForbidden           = shared.CodeForbidden
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeBusinessRule:        http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the status for code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
