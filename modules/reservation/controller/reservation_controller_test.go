package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"roombook/core/cache"
	"roombook/modules/reservation/repository"
	"roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	repo := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "reservations.json"))
	engine, err := service.NewEngine("09:00", "17:00")
	require.NoError(t, err)
	svc := service.NewReservationService(repo, engine, cache.NewMemoryCache(), nil)

	e := echo.New()
	ctrl := NewReservationController(svc)
	e.POST("/api/v1/reservations", ctrl.Create)
	e.GET("/api/v1/reservations", ctrl.List)
	e.GET("/api/v1/reservations/:id", ctrl.Get)
	e.PUT("/api/v1/reservations/:id", ctrl.Update)
	e.DELETE("/api/v1/reservations/:id", ctrl.Delete)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"title":"Standup","email":"ana@example.com","event_date":"2024-03-15","start_time":"10:00","end_time":"11:00"}`

func TestCreateReturns201(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.ID)
	assert.Equal(t, "Standup", resp.Data.Title)
}

func TestCreateConflictReturns409(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "SLOT_UNAVAILABLE")
}

func TestCreateValidationReturns400WithDetails(t *testing.T) {
	e := newTestServer(t)

	body := `{"title":"","email":"nope","event_date":"2024-03-15","start_time":"10:00","end_time":"11:00"}`
	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "TITLE_REQUIRED")
	assert.Contains(t, rec.Body.String(), "Invalid email address.")
}

func TestGetUnknownReturns404(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/reservations/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateWrongOwnerReturns403(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := `{"email":"intruder@example.com","event_date":"2024-03-16","start_time":"10:00","end_time":"11:00"}`
	rec = doJSON(e, http.MethodPut, "/api/v1/reservations/1", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "OWNERSHIP_MISMATCH")
}

func TestDeleteLifecycle(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/v1/reservations/1", `{"email":"ANA@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/reservations/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRangeFilters(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	april := `{"title":"Later","email":"ana@example.com","event_date":"2024-04-02","start_time":"10:00","end_time":"11:00"}`
	rec = doJSON(e, http.MethodPost, "/api/v1/reservations", april)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/reservations?from=2024-03-01&to=2024-04-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			TotalItems int `json:"total_items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.TotalItems)
}

func TestListHalfRangeReturns400(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/reservations?from=2024-03-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidIDReturns400(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/reservations/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
