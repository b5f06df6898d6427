package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"iot-data-collector/internal/models"
)

// errorEnvelope is the uniform wire shape for failed requests.
type errorEnvelope struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Code    models.ErrorCode `json:"code,omitempty"`
}

// RespondWithError sends a JSON error response using the APIError model.
// It sets the HTTP status code from the APIError and flattens it into the
// {success:false, error} envelope.
func RespondWithError(writer http.ResponseWriter, apiErr models.APIError) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(apiErr.StatusCode)

	envelope := errorEnvelope{
		Success: false,
		Error:   apiErr.Message,
		Code:    apiErr.Code,
	}
	if err := json.NewEncoder(writer).Encode(envelope); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
