package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/afgalvez/madrid-accidents/internal/adapter/http"
	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
	"github.com/afgalvez/madrid-accidents/internal/observability"
)

type stubProvider struct {
	table *dataset.Table
	err   error
}

func (s *stubProvider) Table(_ context.Context) (*dataset.Table, error) { return s.table, s.err }
func (s *stubProvider) CheckReadiness(_ context.Context) error          { return s.err }

func testTable() *dataset.Table {
	base := domain.Record{
		Expediente:  "2024S1",
		District:    "Centro",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Hour:        19,
		Weekday:     "Viernes",
		VehicleType: "Turismo",
		PersonRole:  domain.RoleDriver,
		AgeBracket:  "De 25 a 29 años",
		Sex:         domain.SexMale,
		Severity:    domain.SeverityNoAssistance,
		Lon:         -3.70,
		Lat:         40.41,
	}

	pedestrian := base
	pedestrian.PersonRole = domain.RolePedestrian
	pedestrian.Severity = domain.SeverityAdmissionOver24h
	pedestrian.Sex = domain.SexFemale

	alcohol := base
	alcohol.Alcohol = true
	alcohol.Hour = 23

	unlocated := base
	unlocated.Hour = 4
	unlocated.Lon = math.NaN()
	unlocated.Lat = math.NaN()

	return dataset.NewTable([]domain.Record{base, pedestrian, alcohol, unlocated}, "test.csv")
}

func newTestServer(provider httpadapter.DatasetProvider) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", provider, logger, observability.NewMetricsForTesting())
}

func get(t *testing.T, srv *httpadapter.Server, url string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return rec, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})
	rec, body := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready with a table", func(t *testing.T) {
		srv := newTestServer(&stubProvider{table: testTable()})
		rec, body := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("not ready without a dataset", func(t *testing.T) {
		srv := newTestServer(&stubProvider{err: errors.New("no dataset")})
		rec, body := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not ready", body["status"])
	})
}

func TestSpatialEndpoint(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})

	t.Run("severe scenario at 19h", func(t *testing.T) {
		rec, body := get(t, srv, "/api/views/spatial?hour=19&scenario=severe")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["empty"])
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("scenario defaults to all", func(t *testing.T) {
		rec, body := get(t, srv, "/api/views/spatial?hour=19")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(2), body["count"])
	})

	t.Run("no matches is 200 with empty marker", func(t *testing.T) {
		rec, body := get(t, srv, "/api/views/spatial?hour=4")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["empty"], "unlocated record at 4h must not count")
	})

	t.Run("bad hour", func(t *testing.T) {
		for _, q := range []string{"", "hour=24", "hour=-1", "hour=noon"} {
			rec, _ := get(t, srv, "/api/views/spatial?"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", q)
		}
	})

	t.Run("bad scenario", func(t *testing.T) {
		rec, _ := get(t, srv, "/api/views/spatial?hour=19&scenario=everything")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAlcoholEndpoint(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})

	t.Run("selected days", func(t *testing.T) {
		rec, body := get(t, srv, "/api/views/alcohol?days=Viernes,S%C3%A1bado")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["empty"])
	})

	t.Run("empty selection is 200 and explicitly empty", func(t *testing.T) {
		rec, body := get(t, srv, "/api/views/alcohol")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["empty"])
	})

	t.Run("non-weekend day is rejected", func(t *testing.T) {
		rec, _ := get(t, srv, "/api/views/alcohol?days=Lunes")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVehicleSeverityEndpoint(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})

	rec, body := get(t, srv, "/api/views/vehicle-severity?vehicles=Turismo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["empty"])

	rec, body = get(t, srv, "/api/views/vehicle-severity")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["empty"])
}

func TestDemographicEndpoints(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})

	rec, body := get(t, srv, "/api/views/sex-role")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["empty"])

	rec, body = get(t, srv, "/api/views/age-pyramid")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["empty"])
}

func TestSummaryAndMeta(t *testing.T) {
	srv := newTestServer(&stubProvider{table: testTable()})

	rec, body := get(t, srv, "/api/summary")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), body["total_persons"])
	assert.Equal(t, "Centro", body["top_district"])

	rec, body = get(t, srv, "/api/meta")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test.csv", body["source_path"])
	assert.Equal(t, float64(2024), body["year"])
	assert.Equal(t, []any{"Viernes", "Sábado", "Domingo"}, body["weekend_days"])
	assert.Len(t, body["severities"], 9)
}

func TestViewsUnavailableDataset(t *testing.T) {
	srv := newTestServer(&stubProvider{err: errors.New("dataset gone")})

	rec, _ := get(t, srv, "/api/views/sex-role")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
