package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoi-data/corridor.report/internal/db"
	"github.com/convoi-data/corridor.report/internal/units"
)

func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewServer(database, units.Metres), database
}

func storeRun(t *testing.T, database *db.DB, envelope string) *db.Run {
	t.Helper()
	maxH, meanH := 6.0, 4.0
	run := &db.Run{
		ID:              db.NewRunID(),
		Profile:         "N131",
		BladeLength:     65,
		VehicleWidth:    5,
		RequiredHeight:  5,
		Spacing:         10,
		TotalLength:     20,
		StationCount:    3,
		MaxWidth:        8,
		ObstacleCount:   1,
		WorstExceedance: 1,
		EnvelopeGeoJSON: envelope,
		Stations: []db.StationRow{
			{Station: 0, Distance: 0, CurveRadius: -1, HalfWidth: 2.5, ClearanceOK: true},
			{Station: 1, Distance: 10, X: 10, CurveRadius: 150, HalfWidth: 4, Sweep: 1.5,
				MaxHeight: &maxH, MeanHeight: &meanH, ClearanceOK: false},
			{Station: 2, Distance: 20, X: 20, CurveRadius: -1, HalfWidth: 2.5, ClearanceOK: true},
		},
		Obstacles: []db.ObstacleRow{
			{Station: 1, Distance: 10, X: 10, MaxHeight: 6, Exceedance: 1},
		},
	}
	require.NoError(t, database.InsertRun(context.Background(), run))
	return run
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

func TestListRuns(t *testing.T) {
	s, database := newTestServer(t)
	storeRun(t, database, "")
	storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []db.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 2)
	assert.Empty(t, runs[0].Stations, "list endpoint returns summaries only")

	rec = doRequest(t, s, http.MethodGet, "/api/runs?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestListRunsEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListRunsInvalidLimit(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/runs?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowRun(t *testing.T) {
	s, database := newTestServer(t)
	want := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+want.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want.ID, got.ID)
	assert.Len(t, got.Stations, 3)
	assert.Len(t, got.Obstacles, 1)
	assert.Nil(t, got.Stations[0].MaxHeight)
}

func TestShowRunNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/runs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRun(t *testing.T) {
	s, database := newTestServer(t)
	run := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodDelete, "/api/runs/"+run.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/api/runs/"+run.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowEnvelope(t *testing.T) {
	s, database := newTestServer(t)
	run := storeRun(t, database, `{"type":"Feature","geometry":{"type":"Polygon"}}`)

	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+run.ID+"/envelope")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"Polygon"`)
}

func TestShowEnvelopeMissing(t *testing.T) {
	s, database := newTestServer(t)
	run := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+run.ID+"/envelope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowProfiles(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/profiles")
	require.Equal(t, http.StatusOK, rec.Code)

	var profiles []struct {
		Name        string  `json:"name"`
		BladeLength float64 `json:"blade_length_m"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 4)
	assert.Equal(t, "E82", profiles[0].Name)
	assert.Equal(t, 45.0, profiles[0].BladeLength)
}

func TestShowConfig(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/config")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, units.Metres, cfg["units"])
	assert.NotEmpty(t, cfg["version"])
}

func TestClearanceChart(t *testing.T) {
	s, database := newTestServer(t)
	run := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/charts/clearance/"+run.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "required clearance")
}

func TestWidthChart(t *testing.T) {
	s, database := newTestServer(t)
	run := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/charts/width/"+run.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lateral sweep")
}

func TestChartAxisUsesConfiguredUnits(t *testing.T) {
	database, err := db.NewDB(filepath.Join(t.TempDir(), "km.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	s := NewServer(database, units.Kilometres)
	run := storeRun(t, database, "")

	rec := doRequest(t, s, http.MethodGet, "/charts/clearance/"+run.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0.010 km")

	rec = doRequest(t, s, http.MethodGet, "/charts/width/"+run.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0.020 km")
}

func TestChartRunNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/charts/clearance/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
