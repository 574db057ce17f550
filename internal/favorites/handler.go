package favorites

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/pkg/logging"
)

// Handler handles HTTP requests for favorites.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a favorites handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/favorites.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"favorites": h.store.List(),
	})
}

// Toggle handles POST /api/favorites/{doctorID}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	if doctorID == "" {
		http.Error(w, "missing doctor id", http.StatusBadRequest)
		return
	}

	favorite, err := h.store.Toggle(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("favorite toggle failed", "doctor_id", doctorID, "error", err)
		http.Error(w, "failed to persist favorites", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"doctorId": doctorID,
		"favorite": favorite,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
