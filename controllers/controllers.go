package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"linkup_server/services"
)

// writeJSON serializes payload to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation and participant errors are 400, missing ids are 404,
// everything else (storage failures included) is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidParticipant):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}
