package doctors

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

// defaultWindowDays is the booking-window scan length: the current week
// plus the next one.
const defaultWindowDays = 14

// Handler handles HTTP requests for the doctor directory.
type Handler struct {
	directory  *Directory
	logger     *logging.Logger
	windowDays int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithWindowDays overrides the default booking-window scan length.
func WithWindowDays(days int) HandlerOption {
	return func(h *Handler) {
		if days > 0 {
			h.windowDays = days
		}
	}
}

// NewHandler creates a directory handler.
func NewHandler(directory *Directory, logger *logging.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		directory:  directory,
		logger:     logger,
		windowDays: defaultWindowDays,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// listResponse is the directory envelope: consumers poll status/error
// rather than receiving failures out-of-band.
type listResponse struct {
	Doctors []Doctor `json:"doctors"`
	Status  Status   `json:"status"`
	Error   string   `json:"error,omitempty"`
}

// List handles GET /api/doctors with optional filter criteria in query
// parameters: q, specialty, days, price_min, price_max.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterCriteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Doctors: Filter(h.directory.All(), criteria),
		Status:  h.directory.Status(),
		Error:   h.directory.Err(),
	})
}

func filterCriteriaFromQuery(r *http.Request) (FilterCriteria, error) {
	q := r.URL.Query()
	criteria := FilterCriteria{
		Query:     q.Get("q"),
		Specialty: q.Get("specialty"),
	}

	if days := q.Get("days"); days != "" {
		for _, day := range strings.Split(days, ",") {
			if day = strings.TrimSpace(day); day != "" {
				criteria.Days = append(criteria.Days, day)
			}
		}
	}

	if v := q.Get("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil || min < 0 {
			return criteria, errors.New("price_min must be a non-negative number")
		}
		criteria.PriceMin = &min
	}
	if v := q.Get("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil || max < 0 {
			return criteria, errors.New("price_max must be a non-negative number")
		}
		criteria.PriceMax = &max
	}

	return criteria, nil
}

// Refresh handles POST /api/doctors/refresh. It blocks until the upstream
// fetch settles; a concurrent refresh is answered with 409.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.directory.FetchAll(r.Context())
	switch {
	case errors.Is(err, ErrFetchInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		// Status and message are recorded in the store; surface them in
		// the usual envelope with a gateway error code.
		writeJSON(w, http.StatusBadGateway, listResponse{
			Doctors: h.directory.All(),
			Status:  h.directory.Status(),
			Error:   h.directory.Err(),
		})
		return
	}
	h.List(w, r)
}

// GetByID handles GET /api/doctors/{id}, loading full detail upstream.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.directory.FetchOne(r.Context(), id)
	switch {
	case errors.Is(err, ErrFetchInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "failed to load doctor", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

type slotsResponse struct {
	DoctorID string   `json:"doctorId"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

// Slots handles GET /api/doctors/{id}/slots?date=YYYY-MM-DD.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := h.directory.Get(id)
	if !ok {
		http.Error(w, ErrDoctorNotFound.Error(), http.StatusNotFound)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, slotsResponse{
		DoctorID: doc.ID,
		Date:     date.Format("2006-01-02"),
		Slots:    TimeSlotsFor(&doc, date),
	})
}

// Days handles GET /api/doctors/{id}/days?start=YYYY-MM-DD&days=N.
func (h *Handler) Days(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := h.directory.Get(id)
	if !ok {
		http.Error(w, ErrDoctorNotFound.Error(), http.StatusNotFound)
		return
	}

	start := time.Now()
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = parsed
	}

	days := h.windowDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 90 {
			http.Error(w, "days must be between 1 and 90", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	writeJSON(w, http.StatusOK, DaysInWindow(&doc, start, days))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
