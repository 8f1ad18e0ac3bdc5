package rti

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hie/agent/internal/platform/auth"
	"github.com/hie/agent/internal/platform/db"
)

const (
	testAPIKey   = "test-key"
	testHospCode = "10815"
	testSourceIP = "10.0.0.1"
)

type stubDatasource struct {
	rows      []db.Row
	rowsCalls int
}

func (s *stubDatasource) QueryRows(ctx context.Context, sql string, args ...any) ([]db.Row, error) {
	s.rowsCalls++
	return s.rows, nil
}

func (s *stubDatasource) QueryFirst(ctx context.Context, sql string, args ...any) (db.Row, error) {
	if len(s.rows) == 0 {
		return nil, nil
	}
	return s.rows[0], nil
}

func newServer(ds db.Datasource) *echo.Echo {
	e := echo.New()
	gate := auth.NewGate(testAPIKey, testHospCode, map[string]bool{testSourceIP: true})
	NewHandler(gate, ds).RegisterRoutes(e.Group("/rti"))
	return e
}

func doPost(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(auth.HeaderAPIKey, testAPIKey)
	req.Header.Set(auth.HeaderHospCode, testHospCode)
	req.Header.Set(auth.HeaderForwardedFor, testSourceIP)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return body
}

func TestAccident_ShapesRegistryFieldNames(t *testing.T) {
	served := time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)
	ds := &stubDatasource{rows: []db.Row{{
		"HOSPCODE":      "10815",
		"PID":           "1234567890123",
		"SEQ":           "650101123456",
		"DATETIME_SERV": served,
		"DATETIME_AE":   nil,
		"ALCOHOL":       "0",
		"HOSPCODE9":     "EA0010815",
		"pt_name":       "สมชาย ใจดี",
	}}}
	e := newServer(ds)

	rec := doPost(e, "/rti/accident", `{"hospcode":"10815","vstdate":"2025-01-15"}`)

	body := decode(t, rec)
	if body["MessageCode"] != "200" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	result := body["result"].([]any)
	row := result[0].(map[string]any)
	if row["DATETIME_SERV"] != "2025-01-15T08:30:00" {
		t.Errorf("expected ISO datetime, got %v", row["DATETIME_SERV"])
	}
	if row["DATETIME_AE"] != nil {
		t.Errorf("missing accident time must render null, got %v", row["DATETIME_AE"])
	}
	// Coded answers arrive as text, so "0" is kept; only numeric zero
	// collapses to null.
	if row["ALCOHOL"] != "0" {
		t.Errorf("string zero code must survive, got %v", row["ALCOHOL"])
	}
	if row["HOSPCODE9"] != "EA0010815" {
		t.Errorf("unexpected HOSPCODE9: %v", row["HOSPCODE9"])
	}
}

func TestAccident_EmptyDayIsEmptyList(t *testing.T) {
	ds := &stubDatasource{rows: []db.Row{}}
	e := newServer(ds)

	rec := doPost(e, "/rti/accident", `{"hospcode":"10815","vstdate":"2025-01-15"}`)

	body := decode(t, rec)
	if body["MessageCode"] != "404" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	result, ok := body["result"].([]any)
	if !ok || len(result) != 0 {
		t.Errorf("result must be an empty list, got %v", body["result"])
	}
}

func TestPlace_ListsSurveyedLocations(t *testing.T) {
	ds := &stubDatasource{rows: []db.Row{
		{"accident_stdcode": "C027", "accident_place_type_name": "ทางแยก", "latitude": "14.123456", "longitude": "100.123456"},
	}}
	e := newServer(ds)

	rec := doPost(e, "/rti/place", `{"hospcode":"10815"}`)

	body := decode(t, rec)
	if body["MessageCode"] != "200" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	result := body["result"].([]any)
	row := result[0].(map[string]any)
	if row["accident_stdcode"] != "C027" || row["latitude"] != "14.123456" {
		t.Errorf("unexpected payload: %v", row)
	}
}

func TestPlace_RequiresHospCode(t *testing.T) {
	ds := &stubDatasource{}
	e := newServer(ds)

	rec := doPost(e, "/rti/place", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if ds.rowsCalls != 0 {
		t.Error("invalid request must not touch the datasource")
	}
}
