package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/loan-intake/internal/config"
	"github.com/segyhp/loan-intake/internal/domain"
	"github.com/segyhp/loan-intake/internal/service"
	customError "github.com/segyhp/loan-intake/pkg/errors"
	"github.com/segyhp/loan-intake/pkg/httpx"
)

type CRMHandler struct {
	service   *service.CRMService
	validator *validator.Validate
	config    *config.Config
}

func NewCRMHandler(service *service.CRMService, config *config.Config) *CRMHandler {
	return &CRMHandler{
		service:   service,
		validator: validator.New(),
		config:    config,
	}
}

// SubmitLead handles POST: forwards a computed application to amoCRM as a
// contact+lead pair. Credentials are checked here, before any network call.
func (h *CRMHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	if !h.config.CRMConfigured() {
		writeServiceError(w, customError.WrapConfigurationError(
			"Please add AMOCRM_DOMAIN and AMOCRM_ACCESS_TOKEN secrets"))
		return
	}

	var request domain.LeadSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		httpx.BadRequest(w, validationDetail(err))
		return
	}

	response, err := h.service.SubmitLead(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.Success(w, response)
}
