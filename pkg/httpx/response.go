package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorEnvelope is the JSON body returned for every failed request.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code. The payload is
// written as-is: handlers own their wire shapes.
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// Success sends a 200 JSON response
func Success(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusOK, payload)
}

// Created sends a 201 JSON response
func Created(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusCreated, payload)
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, statusCode int, errText, message string) {
	JSON(w, statusCode, ErrorEnvelope{
		Error:   errText,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(w http.ResponseWriter, errText string) {
	Error(w, http.StatusBadRequest, errText, "")
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(w http.ResponseWriter, errText, message string) {
	Error(w, http.StatusInternalServerError, errText, message)
}

// MethodNotAllowed sends a 405 response
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
}
