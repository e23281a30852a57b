package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/dashboard"
	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/filter"
)

func reviews() *dataset.Dataset {
	rows := [][]string{
		{"0", "ann", "0.6", "bad service", "2024-01-01"},
		{"0", "bob", "", "bad food", "2024-01-02"},
		{"1", "ann", "0.2", "ok", "2024-01-01"},
		{"2", "cid", "", "great service", "2024-01-03"},
	}
	cells := make([][]dataset.Cell, len(rows))
	for i, r := range rows {
		for _, v := range r {
			cells[i] = append(cells[i], dataset.Parse(v))
		}
	}
	return dataset.New("reviews.csv", []string{"sentiment", "user", "anger_score", "clean_text", "date"}, cells)
}

func newTestServer(t *testing.T, load dashboard.LoadFunc) (*Server, *dashboard.Handle) {
	t.Helper()
	profile, err := config.Preset(config.PresetReviews)
	require.NoError(t, err)
	p, err := dashboard.NewPipeline(profile)
	require.NoError(t, err)
	h := dashboard.NewHandle(load)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(p, h, logger, 0), h
}

func okLoad(ctx context.Context) (*dataset.Dataset, error) { return reviews(), nil }

func get(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestDashboardDefault(t *testing.T) {
	s, _ := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 4, snap.KPIs.TotalReviews)
	assert.Equal(t, 3, snap.KPIs.UniqueUsers)
	assert.Equal(t, 0.4, snap.KPIs.AvgAngerScore)
	assert.NotEmpty(t, snap.ID)
	assert.Len(t, snap.SentimentDistribution, 3)
}

func TestDashboardFiltered(t *testing.T) {
	s, _ := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/api/dashboard?sentiment=1&sentiment=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.KPIs.TotalReviews)
	assert.Equal(t, []string{"1", "2"}, snap.Selection["sentiment"])
}

func TestDashboardExplicitEmpty(t *testing.T) {
	s, _ := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/api/dashboard?sentiment=")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 0, snap.KPIs.TotalReviews)
}

func TestDashboardUnknownFilter(t *testing.T) {
	s, _ := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/api/dashboard?colour=red")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.Error, "colour")
}

func TestDashboardDatasetUnavailable(t *testing.T) {
	s, _ := newTestServer(t, func(ctx context.Context) (*dataset.Dataset, error) {
		return nil, errors.New("reviews.csv: no such file")
	})

	rec := get(t, s, http.MethodGet, "/api/dashboard")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no such file")
}

func TestFilters(t *testing.T) {
	s, _ := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/api/filters")
	require.Equal(t, http.StatusOK, rec.Code)

	var body filtersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, config.PresetReviews, body.Profile)
	require.Len(t, body.Filters, 1)
	assert.Equal(t, []string{"0", "1", "2"}, body.Filters[0].Options)
}

func TestReloadAndHealth(t *testing.T) {
	s, h := newTestServer(t, okLoad)

	rec := get(t, s, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","loaded":false,"rows":0}`, rec.Body.String())

	rec = get(t, s, http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	var body reloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Rows)
	assert.NotNil(t, h.Current())

	rec = get(t, s, http.MethodGet, "/healthz")
	assert.Contains(t, rec.Body.String(), `"loaded":true`)

	rec = get(t, s, http.MethodGet, "/api/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, okLoad)
	get(t, s, http.MethodGet, "/api/dashboard")

	rec := get(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "voxpop_pipeline_runs_total"))
	assert.True(t, strings.Contains(body, `voxpop_http_requests_total{code="200",route="/api/dashboard"}`))
}

func TestSelectionFromQuery(t *testing.T) {
	sel, err := SelectionFromQuery(url.Values{
		"sentiment": {"0, 1", "2"},
		"year":      {""},
	})
	require.NoError(t, err)
	assert.Equal(t, filter.Selection{"sentiment": {"0", "1", "2"}, "year": {}}, sel)

	sel, err = SelectionFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, sel)

	_, err = SelectionFromQuery(url.Values{" ": {"x"}})
	assert.Error(t, err)
}
