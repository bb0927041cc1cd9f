// Package httputil holds the JSON response envelope shared by all handlers.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"personachat-backend/internal/models"
)

// RespondJSON writes payload as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already on the wire; nothing left but to log.
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// RespondError writes the uniform error envelope with the given status code.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{Error: message})
}
