package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SearchHandler serves the stateless external API group.
type SearchHandler struct{}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Search confirms the stateless API chain end to end.
//
// @Summary      Search API probe
// @Tags         search
// @Produce      plain
// @Success      200  {string}  string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/search/ [get]
func (h *SearchHandler) Search(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Search works")
}
