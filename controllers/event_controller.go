package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/services"

	"github.com/gorilla/mux"
)

// EventController handles HTTP requests for availability events.
type EventController struct {
	EventService *services.EventService
}

// NewEventController creates a new EventController instance.
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// CreateEvent handles a new availability submission, including recurrence
// expansion and the immediate match attempt.
func (ec *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := ec.EventService.CreateEvent(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateEventPattern handles a recurrence-pattern change on a series root.
func (ec *EventController) UpdateEventPattern(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	var payload struct {
		RecurrencePattern string `json:"recurrencePattern"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := ec.EventService.UpdateRecurrencePattern(r.Context(), eventID, payload.RecurrencePattern)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetEventsByUser handles fetching a user's events.
func (ec *EventController) GetEventsByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	events, err := ec.EventService.GetEventsByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// DeleteEvent handles deleting a single event.
func (ec *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	if err := ec.EventService.DeleteEvent(r.Context(), eventID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Event removed"})
}

// DeleteEventSeries handles deleting an event and its whole recurring
// series.
func (ec *EventController) DeleteEventSeries(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	count, err := ec.EventService.DeleteSeries(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg":   "All events in series removed",
		"count": count,
	})
}

// GetAvailableUsers handles the discovery read: distinct users with an
// unmatched event on a slot.
func (ec *EventController) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	users, err := ec.EventService.GetAvailableUsers(r.Context(), query.Get("date"), query.Get("time"), query.Get("activity"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetEventsByDate handles fetching all events on a given day.
func (ec *EventController) GetEventsByDate(w http.ResponseWriter, r *http.Request) {
	events, err := ec.EventService.GetEventsByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
