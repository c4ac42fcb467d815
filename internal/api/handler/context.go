package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pres-portal/auth-gateway/internal/api/middleware"
	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// ctxIdentity extracts the identity the route guard stored in the request
// context. Its presence proves the guard ran; handlers behind the guard
// must refuse to serve without it.
func ctxIdentity(c echo.Context) (*domain.AuthenticatedIdentity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.AuthenticatedIdentity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}
