// Package httputil centralizes JSON response writing for HTTP handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the wire format for failed requests. The description is
// omitted for internal errors so implementation detail never leaks to
// clients.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with a stable machine-readable code
// and a human-readable description.
func WriteError(w http.ResponseWriter, status int, code, description string) {
	if status == http.StatusInternalServerError {
		description = ""
	}
	WriteJSON(w, status, errorResponse{Error: code, ErrorDescription: description})
}
