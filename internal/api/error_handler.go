package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Collapses every authentication-level failure to one generic 401 body
//     so a caller cannot tell a missing user from a wrong secret or a
//     disabled account (username enumeration).
//   - Reports authorization denial distinctly as 403.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from router, bind failures, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The full identity-level taxonomy folds into one response. The real
	// reason stays server-side (audit trail, debug logs).
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed),
		errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrSecretMismatch),
		errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrAccountExpired),
		errors.Is(err, domain.ErrCredentialsExpired):
		return http.StatusUnauthorized, "authentication failed"
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, domain.ErrSessionLimitExceeded):
		return http.StatusUnauthorized, "authentication failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
