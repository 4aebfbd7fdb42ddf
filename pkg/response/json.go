package response

import (
	"encoding/json"
	"net/http"
)

// Envelope carries the success flag and human-readable message every endpoint
// responds with. Feature packages embed it in their response DTOs so the
// payload fields sit next to the flag, matching the mobile client's wire
// format.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error sends a failure envelope with the given status code
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Common error responses
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError hides server-side failure detail behind a generic message
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Something went wrong")
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}
