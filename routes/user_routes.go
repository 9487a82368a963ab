package routes

import (
	"linkup_server/controllers"
	"linkup_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for user operations under /api/users.
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("", controller.CreateUser).Methods("POST")
	userRouter.HandleFunc("/login", controller.Login).Methods("POST")
	userRouter.HandleFunc("/{id}", controller.GetUser).Methods("GET")
	userRouter.HandleFunc("/{id}", controller.UpdateUser).Methods("PUT")
}
