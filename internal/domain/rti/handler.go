package rti

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hie/agent/internal/platform/auth"
	"github.com/hie/agent/internal/platform/db"
	"github.com/hie/agent/internal/platform/report"
	"github.com/hie/agent/internal/platform/shape"
)

type Handler struct {
	gate *auth.Gate
	ds   db.Datasource
}

func NewHandler(gate *auth.Gate, ds db.Datasource) *Handler {
	return &Handler{gate: gate, ds: ds}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/accident", h.Accident)
	g.POST("/place", h.Place)
}

// Accident lists the accident registrations recorded on the requested
// service date, newest first.
func (h *Handler) Accident(c echo.Context) error {
	var req AccidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	rows, err := report.FetchList(c.Request().Context(), h.ds, sqlAccident, []any{req.VstDate}, accidentPlan)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, shape.NotFoundList("result"))
	}
	return c.JSON(http.StatusOK, shape.Success("result", rows))
}

// Place lists every surveyed accident-prone location.
func (h *Handler) Place(c echo.Context) error {
	var req PlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	rows, err := report.FetchList(c.Request().Context(), h.ds, sqlPlace, nil, placePlan)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, shape.NotFoundList("result"))
	}
	return c.JSON(http.StatusOK, shape.Success("result", rows))
}
