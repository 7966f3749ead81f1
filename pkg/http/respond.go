package http

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every mutating endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Encoding errors are not recoverable at this point
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a 200 response with a success message.
func WriteSuccess(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// WriteFailure writes a failed response with the given status and message.
func WriteFailure(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message})
}

// WriteServerError writes a 500 response carrying the underlying error
// message alongside the generic user-facing one.
func WriteServerError(w http.ResponseWriter, message, errDetail string) {
	WriteJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Message: message,
		Error:   errDetail,
	})
}
