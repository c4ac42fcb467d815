package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pres-portal/auth-gateway/internal/core/service"
)

// SessionHandler owns explicit session lifecycle endpoints.
type SessionHandler struct {
	sessions *service.SessionManager
}

func NewSessionHandler(sessions *service.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Logout invalidates the presented session cookie. Requests without a
// cookie succeed too: there is nothing to log out of.
//
// @Summary      Log out the current session
// @Tags         session
// @Success      204  "session invalidated"
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(service.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Invalidate(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	// Expire the cookie client-side regardless.
	c.SetCookie(&http.Cookie{
		Name:     service.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return c.NoContent(http.StatusNoContent)
}
