package handlers

import (
	"net/http"

	"github.com/grk-gaming/tournament-hub/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// TournamentHandler handles GET /tournaments/{tournamentID}/leaderboard.
// A tournament with no recorded placements yields an empty list, not 404.
func (h *LeaderboardHandler) TournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.leaderboardService.TournamentLeaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GlobalHandler handles GET /leaderboard/global.
func (h *LeaderboardHandler) GlobalHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := h.leaderboardService.GlobalLeaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordPlacementHandler handles POST /admin/leaderboard.
func (h *LeaderboardHandler) RecordPlacementHandler(w http.ResponseWriter, r *http.Request) {
	var input services.RecordPlacementInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.leaderboardService.RecordPlacement(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
