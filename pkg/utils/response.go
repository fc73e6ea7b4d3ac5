package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes an error response. An optional details string carries
// extra context; it is omitted from the payload when empty.
func RespondError(w http.ResponseWriter, status int, message string, details ...string) {
	payload := map[string]string{"error": message}
	if len(details) > 0 && details[0] != "" {
		payload["details"] = details[0]
	}
	RespondJSON(w, status, payload)
}
