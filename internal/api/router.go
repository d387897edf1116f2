package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"sla.service/internal/api/handler"
	"sla.service/internal/api/middleware"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(h *handler.SLAHandler, jwtSecret []byte) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	ws := api.PathPrefix("/workspaces/{workspaceId}").Subrouter()
	ws.Use(middleware.Session(jwtSecret))

	ws.HandleFunc("/durations", h.CreateDuration).Methods(http.MethodPost)
	ws.HandleFunc("/durations", h.ListDurations).Methods(http.MethodGet)
	ws.HandleFunc("/durations/{id}", h.DeleteDuration).Methods(http.MethodDelete)
	ws.HandleFunc("/sla-report", h.GetReport).Methods(http.MethodGet)
	ws.HandleFunc("/sla-report/email", h.EmailReport).Methods(http.MethodPost)

	return r
}
