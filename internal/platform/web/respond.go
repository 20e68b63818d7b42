// Package web holds small HTTP helpers shared by the module handlers.
package web

import (
	"encoding/json"
	"net/http"
)

// JSON writes body as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Error writes a JSON error payload.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationError writes a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": errs,
	})
}

// StatusRecorder wraps a ResponseWriter and remembers the status code,
// so logging and metrics middleware can report it after the handler ran.
type StatusRecorder struct {
	http.ResponseWriter
	Code int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Code: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.Code = status
	r.ResponseWriter.WriteHeader(status)
}
