package routes

import (
	"linkup_server/controllers"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match operations under
// /api/matches.
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()

	matchRouter.HandleFunc("/user/{userId}", controller.GetMatchesByUser).Methods("GET")
	matchRouter.HandleFunc("/{id}/respond", controller.RespondToMatch).Methods("PUT")
	matchRouter.HandleFunc("/{id}", controller.GetMatch).Methods("GET")
}
