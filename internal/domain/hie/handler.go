package hie

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
	g.POST("/patient", h.Patient)
	g.POST("/service", h.Service)
	g.POST("/visit", h.Visit)
	g.POST("/admit", h.Admit)
}

// Patient serves base demographics for one citizen id.
func (h *Handler) Patient(c echo.Context) error {
	var req PatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	payload, err := report.FetchSingle(c.Request().Context(), h.ds, sqlPatient, []any{req.CID}, patientPlan, nil)
	if err != nil {
		return err
	}
	if payload == nil {
		return c.JSON(http.StatusOK, shape.NotFound("patient"))
	}
	return c.JSON(http.StatusOK, shape.Success("patient", payload))
}

// Service lists the patient's encounters from the requested start date up to
// today, newest first.
func (h *Handler) Service(c echo.Context) error {
	var req ServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	rows, err := report.FetchList(c.Request().Context(), h.ds, sqlService,
		[]any{req.CID, req.HN, req.VstDate}, servicePlan)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, shape.NotFound("service"))
	}
	// The citizen id is echoed from the request; the encounter rows carry only
	// the hospital number.
	for _, row := range rows {
		row["cid"] = req.CID
	}
	return c.JSON(http.StatusOK, shape.Success("service", rows))
}

// Visit serves one encounter with its clinical sub-resources.
func (h *Handler) Visit(c echo.Context) error {
	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	subs := []report.Sub{
		{Name: "diagnosis", SQL: sqlVisitDiagnosis, Plan: diagnosisPlan, Args: []any{req.VN}},
		{Name: "drug", SQL: sqlVisitDrug, Plan: drugPlan, Args: []any{req.VN}},
		{Name: "lab", SQL: sqlLab, Plan: labPlan, Args: []any{req.VN}},
		{Name: "allergy", SQL: sqlAllergy, Plan: allergyPlan, Args: []any{req.HN}},
		{Name: "procedure_er", SQL: sqlProcedureER, Plan: procedureERPlan, Args: []any{req.VN}},
		{Name: "procedure_opd", SQL: sqlProcedureOPD, Plan: procedureOPDPlan, Args: []any{req.VN}},
	}

	payload, err := report.FetchSingle(c.Request().Context(), h.ds, sqlEncounter,
		[]any{req.VN, req.HN}, encounterPlan, subs)
	if err != nil {
		return err
	}
	if payload == nil {
		return c.JSON(http.StatusOK, shape.NotFound("visit"))
	}
	return c.JSON(http.StatusOK, shape.Success("visit", payload))
}

// Admit serves one inpatient stay: the originating encounter, its clinical
// sub-resources, the admission records and ward procedures.
func (h *Handler) Admit(c echo.Context) error {
	var req AdmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.gate.Authorize(c, req.HospCode); err != nil {
		return auth.HTTPError(err)
	}

	subs := []report.Sub{
		{Name: "diagnosis", SQL: sqlAdmitDiagnosis, Plan: diagnosisPlan, Args: []any{req.VN}},
		{Name: "drug", SQL: sqlAdmitDrug, Plan: drugPlan, Args: []any{req.VN, req.AN}},
		{Name: "lab", SQL: sqlLab, Plan: labPlan, Args: []any{req.VN}},
		{Name: "allergy", SQL: sqlAllergy, Plan: allergyPlan, Args: []any{req.HN}},
		{Name: "procedure_er", SQL: sqlProcedureER, Plan: procedureERPlan, Args: []any{req.VN}},
		{Name: "procedure_opd", SQL: sqlProcedureOPD, Plan: procedureOPDPlan, Args: []any{req.VN}},
		{Name: "list_an", SQL: sqlAdmission, Plan: admissionPlan, Args: []any{req.VN}},
		{Name: "procedure_an", SQL: sqlProcedureAN, Plan: procedureANPlan, Args: []any{req.AN}},
	}

	payload, err := report.FetchSingle(c.Request().Context(), h.ds, sqlEncounter,
		[]any{req.VN, req.HN}, encounterPlan, subs)
	if err != nil {
		return err
	}
	if payload == nil {
		return c.JSON(http.StatusOK, shape.NotFound("admit"))
	}
	return c.JSON(http.StatusOK, shape.Success("admit", payload))
}
