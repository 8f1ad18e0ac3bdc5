package hie

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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
	first      db.Row
	rows       []db.Row
	firstCalls int
	rowsCalls  int
	seenSQL    []string
}

func (s *stubDatasource) QueryRows(ctx context.Context, sql string, args ...any) ([]db.Row, error) {
	s.rowsCalls++
	s.seenSQL = append(s.seenSQL, sql)
	return s.rows, nil
}

func (s *stubDatasource) QueryFirst(ctx context.Context, sql string, args ...any) (db.Row, error) {
	s.firstCalls++
	s.seenSQL = append(s.seenSQL, sql)
	return s.first, nil
}

func newServer(ds db.Datasource) *echo.Echo {
	e := echo.New()
	gate := auth.NewGate(testAPIKey, testHospCode, map[string]bool{testSourceIP: true})
	NewHandler(gate, ds).RegisterRoutes(e.Group("/hie"))
	return e
}

func doPost(e *echo.Echo, path, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorized {
		req.Header.Set(auth.HeaderAPIKey, testAPIKey)
		req.Header.Set(auth.HeaderHospCode, testHospCode)
		req.Header.Set(auth.HeaderForwardedFor, testSourceIP)
	}
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

func TestPatient_NotFound(t *testing.T) {
	ds := &stubDatasource{first: nil}
	e := newServer(ds)

	rec := doPost(e, "/hie/patient", `{"hospcode":"10815","cid":"1103700999999"}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected transport 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["MessageCode"] != "404" || body["Message"] != "Not Found Data" {
		t.Errorf("unexpected envelope: %v", body)
	}
	if payload, present := body["patient"]; !present || payload != nil {
		t.Errorf("expected null patient payload, got %v", payload)
	}
}

func TestPatient_Found(t *testing.T) {
	ds := &stubDatasource{first: db.Row{
		"cid":     "1103700999999",
		"pname":   "นาย",
		"fname":   "สมชาย",
		"lname":   "ใจดี",
		"hn":      "000123456",
		"hometel": "",
		"sex":     "1",
	}}
	e := newServer(ds)

	rec := doPost(e, "/hie/patient", `{"hospcode":"10815","cid":"1103700999999"}`, true)

	body := decode(t, rec)
	if body["MessageCode"] != "200" || body["Message"] != "Success" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	patient, ok := body["patient"].(map[string]any)
	if !ok {
		t.Fatalf("expected patient object, got %T", body["patient"])
	}
	if patient["cid"] != "1103700999999" || patient["gender"] != "1" {
		t.Errorf("unexpected payload: %v", patient)
	}
	if patient["tel"] != nil {
		t.Errorf("empty tel must render null, got %v", patient["tel"])
	}
	if _, present := patient["birthday"]; !present {
		t.Error("declared fields must be present even when the column is absent")
	}
}

func TestService_NotFoundReturnsNullNotList(t *testing.T) {
	ds := &stubDatasource{rows: []db.Row{}}
	e := newServer(ds)

	rec := doPost(e, "/hie/service",
		`{"hospcode":"10815","cid":"1103700999999","hn":"000123456","vstdate":"2025-01-01"}`, true)

	body := decode(t, rec)
	if body["MessageCode"] != "404" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if payload, present := body["service"]; !present || payload != nil {
		t.Errorf("service must be null on empty history, got %v", payload)
	}
}

func TestService_EchoesRequestCID(t *testing.T) {
	ds := &stubDatasource{rows: []db.Row{
		{"hn": "000123456", "vn": "650101123456", "an": "", "vsttime": "09:30:00"},
	}}
	e := newServer(ds)

	rec := doPost(e, "/hie/service",
		`{"hospcode":"10815","cid":"1103700999999","hn":"000123456","vstdate":"2025-01-01"}`, true)

	body := decode(t, rec)
	if body["MessageCode"] != "200" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	rows, ok := body["service"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one service row, got %v", body["service"])
	}
	row := rows[0].(map[string]any)
	if row["cid"] != "1103700999999" {
		t.Errorf("cid must be echoed from the request, got %v", row["cid"])
	}
	if row["an"] != nil {
		t.Errorf("empty an must render null, got %v", row["an"])
	}
}

func TestVisit_NotFoundSkipsSubQueries(t *testing.T) {
	ds := &stubDatasource{first: nil}
	e := newServer(ds)

	rec := doPost(e, "/hie/visit",
		`{"hospcode":"10815","cid":"1103700999999","hn":"000123456","vn":"650101123456","vstdate":"2025-01-01"}`, true)

	body := decode(t, rec)
	if body["MessageCode"] != "404" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if ds.rowsCalls != 0 {
		t.Errorf("empty primary must not trigger sub-resource queries, got %d", ds.rowsCalls)
	}
}

func TestVisit_EmptySubResourcesAreEmptyLists(t *testing.T) {
	ds := &stubDatasource{
		first: db.Row{"cid": "1103700999999", "hn_0": "000123456", "vn_0": "650101123456"},
		rows:  []db.Row{},
	}
	e := newServer(ds)

	rec := doPost(e, "/hie/visit",
		`{"hospcode":"10815","cid":"1103700999999","hn":"000123456","vn":"650101123456","vstdate":"2025-01-01"}`, true)

	body := decode(t, rec)
	visit, ok := body["visit"].(map[string]any)
	if !ok {
		t.Fatalf("expected visit object, got %T", body["visit"])
	}
	for _, key := range []string{"diagnosis", "drug", "lab", "allergy", "procedure_er", "procedure_opd"} {
		list, ok := visit[key].([]any)
		if !ok {
			t.Fatalf("%s must be a list, got %T", key, visit[key])
		}
		if len(list) != 0 {
			t.Errorf("%s must be empty, got %v", key, list)
		}
	}
	if ds.rowsCalls != 6 {
		t.Errorf("expected 6 sub-resource queries, got %d", ds.rowsCalls)
	}
}

func TestAdmit_RunsAdmissionSubQueries(t *testing.T) {
	ds := &stubDatasource{
		first: db.Row{"cid": "1103700999999", "hn_0": "000123456", "vn_0": "650101123456", "an_0": "0000123456"},
		rows:  []db.Row{},
	}
	e := newServer(ds)

	rec := doPost(e, "/hie/admit",
		`{"hospcode":"10815","cid":"1103700999999","hn":"000123456","vn":"650101123456","an":"0000123456","vstdate":"2025-01-01"}`, true)

	body := decode(t, rec)
	admit, ok := body["admit"].(map[string]any)
	if !ok {
		t.Fatalf("expected admit object, got %T", body["admit"])
	}
	for _, key := range []string{"list_an", "procedure_an"} {
		if _, ok := admit[key].([]any); !ok {
			t.Errorf("%s must be a list, got %T", key, admit[key])
		}
	}
	if ds.rowsCalls != 8 {
		t.Errorf("expected 8 sub-resource queries, got %d", ds.rowsCalls)
	}
}

func TestUnauthorized_NoQueriesIssued(t *testing.T) {
	ds := &stubDatasource{}
	e := newServer(ds)

	rec := doPost(e, "/hie/patient", `{"hospcode":"10815","cid":"1103700999999"}`, false)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if ds.firstCalls != 0 || ds.rowsCalls != 0 {
		t.Error("denied request must not touch the datasource")
	}
}

func TestValidation_MissingFieldRejectedBeforeQuery(t *testing.T) {
	ds := &stubDatasource{}
	e := newServer(ds)

	rec := doPost(e, "/hie/patient", `{"hospcode":"10815"}`, true)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if ds.firstCalls != 0 {
		t.Error("invalid request must not touch the datasource")
	}
}
