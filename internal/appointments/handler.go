package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/pkg/logging"
)

// Handler handles HTTP requests for appointments and their derived views.
type Handler struct {
	store    *Store
	resolver DoctorResolver
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates an appointments handler. The resolver supplies
// doctor names for search filtering; nil degrades doctor-name search.
func NewHandler(store *Store, resolver DoctorResolver, logger *logging.Logger) *Handler {
	return &Handler{
		store:    store,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Create handles POST /api/appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// List handles GET /api/appointments with the filter criteria in query
// parameters: q, fields, doctor_ids, date, time_start, time_end,
// include_cancelled.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	matched := ApplyFilters(h.store.List(), h.resolver, criteria)
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": matched,
		"count":        len(matched),
	})
}

// PartitionView handles GET /api/appointments/views/partition. Filters
// apply before partitioning so the tabs and the search stay consistent.
func (h *Handler) PartitionView(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// The cancelled tab exists even when the list view hides cancelled
	// records, so the partition always includes them.
	criteria.IncludeCancelled = true

	matched := ApplyFilters(h.store.List(), h.resolver, criteria)
	writeJSON(w, http.StatusOK, PartitionByTime(matched, h.now()))
}

// BoardView handles GET /api/appointments/views/board?start=&days=.
func (h *Handler) BoardView(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = parsed
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 90 {
			http.Error(w, "days must be between 1 and 90", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	writeJSON(w, http.StatusOK, GroupByCalendarDate(h.store.List(), start, days))
}

// Update handles PUT /api/appointments/{id}, replacing the record wholesale.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var appt Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	appt.ID = id

	updated, err := h.store.Update(r.Context(), appt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Reschedule handles POST /api/appointments/{id}/reschedule.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.store.Reschedule(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// Cancel handles POST /api/appointments/{id}/cancel. Idempotent.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.store.Cancel(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/appointments/{id}. Idempotent.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	h.store.Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrAppointmentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAppointmentCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("appointment operation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func criteriaFromQuery(r *http.Request) (FilterCriteria, error) {
	q := r.URL.Query()
	criteria := FilterCriteria{
		SearchText: q.Get("q"),
		SearchFields: []SearchField{
			SearchDoctorName, SearchPatientName, SearchDescription,
		},
	}

	if fields := q.Get("fields"); fields != "" {
		criteria.SearchFields = criteria.SearchFields[:0]
		for _, f := range strings.Split(fields, ",") {
			switch SearchField(strings.TrimSpace(f)) {
			case SearchDoctorName:
				criteria.SearchFields = append(criteria.SearchFields, SearchDoctorName)
			case SearchPatientName:
				criteria.SearchFields = append(criteria.SearchFields, SearchPatientName)
			case SearchDescription:
				criteria.SearchFields = append(criteria.SearchFields, SearchDescription)
			default:
				return criteria, errors.New("unknown search field: " + f)
			}
		}
	}

	if ids := q.Get("doctor_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				criteria.DoctorIDs = append(criteria.DoctorIDs, id)
			}
		}
	}

	if date := q.Get("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return criteria, errors.New("date must be YYYY-MM-DD")
		}
		criteria.ExactDate = &parsed
	}

	if start, end := q.Get("time_start"), q.Get("time_end"); start != "" && end != "" {
		criteria.TimeRange = &TimeRange{Start: start, End: end}
	}

	if v := q.Get("include_cancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return criteria, errors.New("include_cancelled must be a boolean")
		}
		criteria.IncludeCancelled = include
	}

	return criteria, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
