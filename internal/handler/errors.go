package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/loan-intake/pkg/amocrm"
	customError "github.com/segyhp/loan-intake/pkg/errors"
	"github.com/segyhp/loan-intake/pkg/httpx"
)

// crmAPIErrorBody mirrors a CRM rejection back to the caller with the CRM's
// own status code and body.
type crmAPIErrorBody struct {
	Error      string `json:"error"`
	Details    string `json:"details"`
	StatusCode int    `json:"status_code"`
}

// writeServiceError converts service-layer errors into the JSON error
// contract. Nothing escapes unformatted.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *amocrm.APIError
	if errors.As(err, &apiErr) {
		httpx.JSON(w, apiErr.StatusCode, crmAPIErrorBody{
			Error:      "AmoCRM API error",
			Details:    apiErr.Body,
			StatusCode: apiErr.StatusCode,
		})
		return
	}

	var appErr *customError.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case customError.ErrCodeValidation:
			httpx.BadRequest(w, appErr.Message)
		case customError.ErrCodeConfiguration:
			httpx.InternalServerError(w, "AmoCRM credentials not configured", appErr.Message)
		default:
			detail := ""
			if appErr.Err != nil {
				detail = appErr.Err.Error()
			}
			httpx.InternalServerError(w, appErr.Message, detail)
		}
		return
	}

	httpx.InternalServerError(w, err.Error(), "")
}

// validationDetail flattens validator errors into one field list
func validationDetail(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, fieldErr.Field())
		}
		return "missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid request body"
}
