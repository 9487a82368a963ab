package routes

import (
	"linkup_server/controllers"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for availability events under
// /api/events.
func RegisterEventRoutes(r *mux.Router, eventService *services.EventService) {
	controller := controllers.NewEventController(eventService)

	eventRouter := r.PathPrefix("/api/events").Subrouter()

	eventRouter.HandleFunc("", controller.CreateEvent).Methods("POST")
	eventRouter.HandleFunc("/available-users", controller.GetAvailableUsers).Methods("GET")
	eventRouter.HandleFunc("/date", controller.GetEventsByDate).Methods("GET")
	eventRouter.HandleFunc("/user/{userId}", controller.GetEventsByUser).Methods("GET")
	eventRouter.HandleFunc("/series/{id}", controller.DeleteEventSeries).Methods("DELETE")
	eventRouter.HandleFunc("/{id}", controller.UpdateEventPattern).Methods("PUT")
	eventRouter.HandleFunc("/{id}", controller.DeleteEvent).Methods("DELETE")
}
