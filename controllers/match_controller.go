package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for match reads and responses.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance.
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// GetMatchesByUser handles fetching all matches for a user, newest first.
func (mc *MatchController) GetMatchesByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	matches, err := mc.MatchService.GetMatchesByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// GetMatch handles fetching a single match by id.
func (mc *MatchController) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	match, err := mc.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// RespondToMatch handles a participant's accept/decline on a match.
func (mc *MatchController) RespondToMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var payload struct {
		UserID   string `json:"userId"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.Respond(r.Context(), matchID, payload.UserID, payload.Response)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}
