package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for user accounts and profiles.
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// CreateUser handles user registration.
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := uc.UserService.CreateUser(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login resolves a user by name. With checkOnly set, only the bare user
// record comes back; otherwise the response includes the user's events and
// matches.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		CheckOnly bool   `json:"checkOnly"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := uc.UserService.Login(r.Context(), payload.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if payload.CheckOnly {
		writeJSON(w, http.StatusOK, user)
		return
	}

	populated, err := uc.UserService.GetUserWithActivity(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, populated)
}

// GetUser handles fetching a user with their events and matches attached.
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := uc.UserService.GetUserWithActivity(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser handles profile updates (location, photo).
func (uc *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var input services.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := uc.UserService.UpdateUser(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
