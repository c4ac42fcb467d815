package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// UserHandler serves the user-facing route group.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Home returns the user record for a username.
//
// @Summary      Find user by username
// @Tags         user
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/user/home/{username} [get]
func (h *UserHandler) Home(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	user, err := h.users.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			// Inside the authenticated group a miss is an ordinary 404,
			// not an authentication outcome.
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}
