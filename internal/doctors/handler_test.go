package doctors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook/pkg/logging"
)

func newHandlerFixture(t *testing.T, fetcher Fetcher) (http.Handler, *Directory) {
	t.Helper()
	dir := NewDirectory(fetcher, logging.New("error"))
	h := NewHandler(dir, logging.New("error"))

	r := chi.NewRouter()
	r.Get("/api/doctors", h.List)
	r.Post("/api/doctors/refresh", h.Refresh)
	r.Get("/api/doctors/{id}", h.GetByID)
	r.Get("/api/doctors/{id}/slots", h.Slots)
	r.Get("/api/doctors/{id}/days", h.Days)
	return r, dir
}

func TestHandlerListEnvelope(t *testing.T) {
	doc := testDoctor()
	r, dir := newHandlerFixture(t, &stubFetcher{doctors: []Doctor{doc}})
	require.NoError(t, dir.FetchAll(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Doctors []Doctor `json:"doctors"`
		Status  Status   `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusSucceeded, resp.Status)
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "doc-1", resp.Doctors[0].ID)
}

func TestHandlerListWithFilters(t *testing.T) {
	fetcher := &stubFetcher{doctors: []Doctor{
		{ID: "d1", Name: "Meredith Grey", Specialty: "Cardiology", Price: 150},
		{ID: "d2", Name: "Gregory House", Specialty: "Diagnostics", Price: 300},
	}}
	r, dir := newHandlerFixture(t, fetcher)
	require.NoError(t, dir.FetchAll(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?q=grey&price_max=200", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Doctors []Doctor `json:"doctors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "d1", resp.Doctors[0].ID)
}

func TestHandlerListRejectsBadPrice(t *testing.T) {
	r, _ := newHandlerFixture(t, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?price_min=cheap", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerSlots(t *testing.T) {
	doc := testDoctor()
	r, dir := newHandlerFixture(t, &stubFetcher{doctors: []Doctor{doc}})
	require.NoError(t, dir.FetchAll(context.Background()))

	// 2025-03-10 is a Monday.
	req := httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/slots?date=2025-03-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp slotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"09:00", "10:00"}, resp.Slots)

	// Tuesday has no availability: an empty list, not an error.
	req = httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/slots?date=2025-03-11", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Slots)
}

func TestHandlerSlotsUnknownDoctor(t *testing.T) {
	r, _ := newHandlerFixture(t, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/ghost/slots?date=2025-03-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerSlotsBadDate(t *testing.T) {
	doc := testDoctor()
	r, dir := newHandlerFixture(t, &stubFetcher{doctors: []Doctor{doc}})
	require.NoError(t, dir.FetchAll(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/slots?date=03-10-2025", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerDays(t *testing.T) {
	doc := testDoctor()
	r, dir := newHandlerFixture(t, &stubFetcher{doctors: []Doctor{doc}})
	require.NoError(t, dir.FetchAll(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/days?start=2025-03-10&days=14", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var window BookingWindow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &window))
	assert.Equal(t, []string{"2025-03-10", "2025-03-12"}, window.ThisPeriod)
	assert.Equal(t, []string{"2025-03-17", "2025-03-19"}, window.NextPeriod)
}

func TestHandlerDaysUsesConfiguredWindow(t *testing.T) {
	dir := NewDirectory(&stubFetcher{doctors: []Doctor{testDoctor()}}, logging.New("error"))
	require.NoError(t, dir.FetchAll(context.Background()))
	h := NewHandler(dir, logging.New("error"), WithWindowDays(4))

	r := chi.NewRouter()
	r.Get("/api/doctors/{id}/days", h.Days)

	// Without an explicit days param the configured 4-day window applies:
	// Monday 2025-03-10 lands before the midpoint, Wednesday after.
	req := httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/days?start=2025-03-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var window BookingWindow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &window))
	assert.Equal(t, []string{"2025-03-10"}, window.ThisPeriod)
	assert.Equal(t, []string{"2025-03-12"}, window.NextPeriod)
}

func TestHandlerGetByID(t *testing.T) {
	detail := testDoctor()
	detail.Bio = "Attending surgeon"
	r, _ := newHandlerFixture(t, &stubFetcher{detail: &detail})

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var doc Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Attending surgeon", doc.Bio)
}

func TestHandlerRefreshFailureReportsEnvelope(t *testing.T) {
	fetcher := &stubFetcher{doctors: []Doctor{testDoctor()}}
	r, dir := newHandlerFixture(t, fetcher)
	require.NoError(t, dir.FetchAll(context.Background()))

	fetcher.err = errors.New("upstream down")
	req := httptest.NewRequest(http.MethodPost, "/api/doctors/refresh", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp struct {
		Doctors []Doctor `json:"doctors"`
		Status  Status   `json:"status"`
		Error   string   `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusFailed, resp.Status)
	assert.NotEmpty(t, resp.Error)
	assert.Len(t, resp.Doctors, 1, "stale list stays readable")
}
