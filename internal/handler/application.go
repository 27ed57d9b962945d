package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/loan-intake/internal/config"
	"github.com/segyhp/loan-intake/internal/domain"
	"github.com/segyhp/loan-intake/internal/service"
	"github.com/segyhp/loan-intake/pkg/httpx"
)

type ApplicationHandler struct {
	service   *service.ApplicationService
	validator *validator.Validate
	config    *config.Config
}

func NewApplicationHandler(service *service.ApplicationService, config *config.Config) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validator.New(),
		config:    config,
	}
}

// Create handles POST: computes payments and stores a new application
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		httpx.BadRequest(w, validationDetail(err))
		return
	}

	response, err := h.service.Create(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.Created(w, response)
}

type healthProbeResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// List handles GET: returns applications, optionally filtered by status.
// The ?test=health query doubles as a liveness probe for the frontend.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("test") == "health" {
		httpx.Success(w, healthProbeResponse{
			Status:  "healthy",
			Service: "loan-applications",
		})
		return
	}

	limit := h.config.Business.DefaultListLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpx.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	response, err := h.service.List(r.Context(), query.Get("status"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.Success(w, response)
}

// UpdateStatus handles PUT: moves an application to a new status
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	if request.ID == 0 || request.Status == "" {
		httpx.BadRequest(w, "Missing id or status")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.Success(w, domain.UpdateStatusResponse{Success: updated})
}
