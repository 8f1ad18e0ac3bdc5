package stroke

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
	// Route names are fixed by the registry integration.
	g.POST("/StrokeIPD", h.IPD)
	g.POST("/StrokeOPD", h.OPD)
}

// IPD lists stroke inpatients discharged on the requested date.
func (h *Handler) IPD(c echo.Context) error {
	var req IPDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	rows, err := report.FetchList(c.Request().Context(), h.ds, sqlIPD, []any{req.DchDate}, ipdPlan)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, shape.NotFoundList("result"))
	}
	return c.JSON(http.StatusOK, shape.Success("result", rows))
}

// OPD lists stroke outpatient encounters on the requested service date.
func (h *Handler) OPD(c echo.Context) error {
	var req OPDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	rows, err := report.FetchList(c.Request().Context(), h.ds, sqlOPD, []any{req.VstDate}, opdPlan)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, shape.NotFoundList("result"))
	}
	return c.JSON(http.StatusOK, shape.Success("result", rows))
}
