package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// PagesHandler serves the home page, the user dashboard and the admin area.
type PagesHandler struct {
	users  ports.UserRepository
	render *PageRenderer
}

func NewPagesHandler(users ports.UserRepository, render *PageRenderer) *PagesHandler {
	return &PagesHandler{users: users, render: render}
}

func (h *PagesHandler) Home(c echo.Context) error {
	return h.render.Render(c, http.StatusOK, "home", "Home", nil)
}

func (h *PagesHandler) UserDashboard(c echo.Context) error {
	return h.render.Render(c, http.StatusOK, "user", "Your account", nil)
}

// AdminUsers lists every registered account. Gated to the admin role.
func (h *PagesHandler) AdminUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render.Render(c, http.StatusOK, "admin_users", "Registered users", users)
}
