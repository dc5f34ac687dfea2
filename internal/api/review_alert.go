package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

type reviewRequest struct {
	Status          string `json:"status"`
	IsTrueDetection *bool  `json:"is_true_detection"`
}

func isValidStatus(status string) bool {
	switch status {
	case models.StatusNew, models.StatusReviewed, models.StatusDismissed:
		return true
	}
	return false
}

// ReviewAlertHandler records a reviewer's verdict on one alert.
func (h *Handlers) ReviewAlertHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	alertID := vars["alert_id"]

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !isValidStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	err := h.db.ReviewAlert(r.Context(), alertID, req.Status, req.IsTrueDetection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Alert not found", http.StatusNotFound)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
