package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as JSON with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// WriteStatus writes the {status, message} envelope used by the legacy
// check routes.
func WriteStatus(w http.ResponseWriter, httpStatus int, status, message string) {
	WriteJSON(w, httpStatus, map[string]string{"status": status, "message": message})
}

// WriteError writes a JSON error response with the given status and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteStatus(w, status, "error", message)
}
