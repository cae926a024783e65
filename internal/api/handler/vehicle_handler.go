package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// VehicleHandler serves the CRUD pages for one resource category. The router
// creates one instance per category, each mounted behind that category's
// access gate.
type VehicleHandler struct {
	svc      ports.VehicleService
	category domain.Category
	render   *PageRenderer
}

func NewVehicleHandler(svc ports.VehicleService, category domain.Category, render *PageRenderer) *VehicleHandler {
	return &VehicleHandler{svc: svc, category: category, render: render}
}

// Register mounts the CRUD routes on an already-gated group.
func (h *VehicleHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/new", h.New)
	g.POST("", h.Create)
	g.GET("/:id", h.Edit)
	g.POST("/:id", h.Update)
	g.POST("/:id/delete", h.Delete)
}

type vehicleForm struct {
	Plate      string `form:"plate"       validate:"required"`
	Model      string `form:"model"       validate:"required"`
	OwnerName  string `form:"owner_name"  validate:"required"`
	OwnerPhone string `form:"owner_phone"`
	Notes      string `form:"notes"`
}

func (f vehicleForm) input() ports.VehicleInput {
	return ports.VehicleInput{
		Plate:      f.Plate,
		Model:      f.Model,
		OwnerName:  f.OwnerName,
		OwnerPhone: f.OwnerPhone,
		Notes:      f.Notes,
	}
}

// listPage and formPage are the template data shapes.
type listPage struct {
	Category      string
	CategoryTitle string
	Vehicles      []domain.Vehicle
}

type formPage struct {
	Category      string
	CategoryTitle string
	Action        string
	Vehicle       domain.Vehicle
	Errors        []string
}

func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.svc.List(c.Request().Context(), h.category)
	if err != nil {
		return err
	}
	return h.render.Render(c, http.StatusOK, "vehicles_list", categoryTitle(h.category), listPage{
		Category:      string(h.category),
		CategoryTitle: categoryTitle(h.category),
		Vehicles:      vehicles,
	})
}

func (h *VehicleHandler) New(c echo.Context) error {
	return h.render.Render(c, http.StatusOK, "vehicle_form", categoryTitle(h.category), formPage{
		Category:      string(h.category),
		CategoryTitle: categoryTitle(h.category),
		Action:        "/" + string(h.category),
	})
}

func (h *VehicleHandler) Create(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.render.Render(c, http.StatusBadRequest, "vehicle_form", categoryTitle(h.category), formPage{
			Category:      string(h.category),
			CategoryTitle: categoryTitle(h.category),
			Action:        "/" + string(h.category),
			Vehicle:       domain.Vehicle{Plate: form.Plate, Model: form.Model, OwnerName: form.OwnerName, OwnerPhone: form.OwnerPhone, Notes: form.Notes},
			Errors:        strings.Split(err.Error(), "; "),
		})
	}

	created, err := h.svc.Create(c.Request().Context(), h.category, form.input())
	if err != nil {
		return err
	}

	h.render.Flash(c, domain.FlashSuccess, created.Plate+" added")
	return c.Redirect(http.StatusSeeOther, "/"+string(h.category))
}

func (h *VehicleHandler) Edit(c echo.Context) error {
	vehicle, err := h.svc.Get(c.Request().Context(), h.category, c.Param("id"))
	if err != nil {
		return err
	}
	return h.render.Render(c, http.StatusOK, "vehicle_form", categoryTitle(h.category), formPage{
		Category:      string(h.category),
		CategoryTitle: categoryTitle(h.category),
		Action:        "/" + string(h.category) + "/" + vehicle.ID,
		Vehicle:       *vehicle,
	})
}

func (h *VehicleHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.render.Render(c, http.StatusBadRequest, "vehicle_form", categoryTitle(h.category), formPage{
			Category:      string(h.category),
			CategoryTitle: categoryTitle(h.category),
			Action:        "/" + string(h.category) + "/" + id,
			Vehicle:       domain.Vehicle{ID: id, Plate: form.Plate, Model: form.Model, OwnerName: form.OwnerName, OwnerPhone: form.OwnerPhone, Notes: form.Notes},
			Errors:        strings.Split(err.Error(), "; "),
		})
	}

	if err := h.svc.Update(c.Request().Context(), h.category, id, form.input()); err != nil {
		return err
	}

	h.render.Flash(c, domain.FlashSuccess, "record updated")
	return c.Redirect(http.StatusSeeOther, "/"+string(h.category))
}

func (h *VehicleHandler) Delete(c echo.Context) error {
	err := h.svc.Delete(c.Request().Context(), h.category, c.Param("id"))
	if err != nil && !errors.Is(err, domain.ErrVehicleNotFound) {
		return err
	}

	h.render.Flash(c, domain.FlashSuccess, "record removed")
	return c.Redirect(http.StatusSeeOther, "/"+string(h.category))
}
