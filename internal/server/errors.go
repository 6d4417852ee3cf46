package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/logger"
)

// RequestError is a client-side problem with the request itself
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Message)
	}
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// HTTPStatus returns the status code for an error raised while serving
func HTTPStatus(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// failure is the body of every unsuccessful response
type failure struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes {success:false, error} with the status for err
func errorResponse(w http.ResponseWriter, err error) {
	jsonResponse(w, HTTPStatus(err), failure{Error: err.Error()})
}
