package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m5cli/internal/config"
	"m5cli/internal/dataset"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	data := &dataset.Dataset{
		Calendar: &dataset.Calendar{
			Days: []dataset.CalendarDay{
				{
					Date: time.Date(2016, 1, 2, 0, 0, 0, 0, time.UTC),
					D:    "d_1", Year: 2016, Month: 1, Day: 2,
					DayOfWeek: 5, Quarter: 1, IsWeekend: true,
				},
			},
		},
		Sales: &dataset.SalesTable{
			IDColumns:  []string{"id", "item_id", "dept_id", "cat_id", "store_id", "state_id"},
			DayColumns: []string{"d_1"},
			Series: []dataset.SalesSeries{
				{ID: "a", ItemID: "HOBBIES_1_001", DeptID: "HOBBIES_1", CatID: "HOBBIES", StoreID: "CA_1", StateID: "CA", Units: []int{5}},
			},
		},
	}
	hierarchy := &dataset.Hierarchy{
		States:     []string{"CA"},
		Stores:     []string{"CA_1"},
		StoreState: map[string]string{"CA_1": "CA"},
	}

	cfg := config.Default().Server
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, data, hierarchy, logger)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Tables)
}

func TestGetInfo(t *testing.T) {
	rec := doRequest(t, testServer(t), "/api/dataset/info")
	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]dataset.TableInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Contains(t, info, "calendar")
	require.Contains(t, info, "sales")
	assert.Equal(t, 1, info["sales"].Rows)
}

func TestGetInfo_NoDataset(t *testing.T) {
	s := New(config.Default().Server, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := doRequest(t, s, "/api/dataset/info")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHierarchy(t *testing.T) {
	rec := doRequest(t, testServer(t), "/api/dataset/hierarchy")
	require.Equal(t, http.StatusOK, rec.Code)

	var h dataset.Hierarchy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "CA", h.StoreState["CA_1"])
}

func TestGetCalendarDay(t *testing.T) {
	rec := doRequest(t, testServer(t), "/api/dataset/calendar/d_1")
	require.Equal(t, http.StatusOK, rec.Code)

	var day dataset.CalendarDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.Equal(t, "d_1", day.D)
	assert.True(t, day.IsWeekend)
}

func TestGetCalendarDay_NotFound(t *testing.T) {
	rec := doRequest(t, testServer(t), "/api/dataset/calendar/d_999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRouter_RequestIDHeader(t *testing.T) {
	rec := doRequest(t, testServer(t), "/healthz")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
