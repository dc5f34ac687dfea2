// Package api exposes the alert review surface: listing persisted alerts
// and recording reviewer verdicts. The pipeline itself never mutates alerts
// after creation; this is the only write path besides the aggregator.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/database"
)

type Handlers struct {
	db *database.Database
}

func NewHandlers(db *database.Database) *Handlers {
	return &Handlers{db: db}
}

// Router returns the review API router.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/alerts", h.ListAlertsHandler).Methods("GET")
	r.HandleFunc("/alerts/{alert_id}", h.GetAlertHandler).Methods("GET")
	r.HandleFunc("/alerts/{alert_id}/review", h.ReviewAlertHandler).Methods("POST")
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")
	return r
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
