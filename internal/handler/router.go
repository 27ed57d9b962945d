package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/loan-intake/pkg/httpx"
)

// NewRouter assembles the HTTP surface. CORS wraps the router itself so
// preflight OPTIONS requests are answered before route matching.
func NewRouter(
	applicationHandler *ApplicationHandler,
	crmHandler *CRMHandler,
	healthHandler *HealthHandler,
) http.Handler {
	router := mux.NewRouter()

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.MethodNotAllowed(w)
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/applications", applicationHandler.Create).Methods("POST")
	api.HandleFunc("/applications", applicationHandler.List).Methods("GET")
	api.HandleFunc("/applications", applicationHandler.UpdateStatus).Methods("PUT")
	api.HandleFunc("/crm/leads", crmHandler.SubmitLead).Methods("POST")

	return httpx.CORSMiddleware(httpx.RequestIDMiddleware(httpx.LoggingMiddleware(router)))
}
