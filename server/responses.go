package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
)

// ServiceResponse is the JSON envelope every endpoint answers with, success
// or failure. StatusCode mirrors the HTTP status so clients reading only the
// body see the same outcome.
type ServiceResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

func successResponse(message string, object any, statusCode int) ServiceResponse {
	return ServiceResponse{
		Success:        true,
		Message:        message,
		ResponseObject: object,
		StatusCode:     statusCode,
	}
}

func failureResponse(message string, statusCode int) ServiceResponse {
	return ServiceResponse{
		Success:    false,
		Message:    message,
		StatusCode: statusCode,
	}
}

func writeResponse(w http.ResponseWriter, response ServiceResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(response.StatusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// writeError maps a classified service error onto the envelope. Unclassified
// errors come out as a generic 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.StatusOf(err)
	writeResponse(w, failureResponse(apperrors.MessageOf(err), status.HTTPStatus()))
}
