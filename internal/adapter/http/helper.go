package http

import (
	"errors"
	"net/http"

	"equipmart-backend/internal/domain/approval"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/domain/sourcing"
)

// statusFor maps domain sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, approval.ErrNotFound),
		errors.Is(err, sourcing.ErrNotFound),
		errors.Is(err, policy.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, approval.ErrPendingExists),
		errors.Is(err, approval.ErrAlreadyDecided),
		errors.Is(err, sourcing.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, approval.ErrNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
