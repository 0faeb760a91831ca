package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the JSON response shape shared by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeSuccess sends {"success":true,"data":...} with the given status code.
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError sends {"success":false,"message":...} with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeInternalError sends a 500 envelope carrying the underlying error text
// for operator diagnosis.
func writeInternalError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
