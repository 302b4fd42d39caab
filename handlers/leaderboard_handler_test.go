package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeaderboardService struct {
	entries   []models.LeaderboardEntry
	standings []models.GlobalStanding
	recorded  *models.LeaderboardEntry
	err       error
}

func (s *stubLeaderboardService) TournamentLeaderboard(_ context.Context, _ int) ([]models.LeaderboardEntry, error) {
	return s.entries, s.err
}

func (s *stubLeaderboardService) GlobalLeaderboard(_ context.Context) ([]models.GlobalStanding, error) {
	return s.standings, s.err
}

func (s *stubLeaderboardService) RecordPlacement(_ context.Context, input services.RecordPlacementInput) (*models.LeaderboardEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	points := 0
	if input.Points != nil {
		points = *input.Points
	}
	s.recorded = &models.LeaderboardEntry{
		ID:           1,
		UserID:       input.UserID,
		TournamentID: input.TournamentID,
		Position:     input.Position,
		Points:       points,
		CreatedAt:    time.Now(),
	}
	return s.recorded, nil
}

func newLeaderboardRouter(svc services.LeaderboardService) *chi.Mux {
	h := NewLeaderboardHandler(svc)
	r := chi.NewRouter()
	r.Get("/tournaments/{tournamentID}/leaderboard", h.TournamentHandler)
	r.Get("/leaderboard/global", h.GlobalHandler)
	r.Post("/admin/leaderboard", h.RecordPlacementHandler)
	return r
}

func TestTournamentLeaderboardHandler(t *testing.T) {
	username := "alpha"
	stub := &stubLeaderboardService{
		entries: []models.LeaderboardEntry{
			{ID: 1, UserID: 1, TournamentID: 1, Position: 1, Points: 100, Username: &username},
		},
	}
	router := newLeaderboardRouter(stub)

	t.Run("returns entries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tournaments/1/leaderboard", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Leaderboard, 1)
		assert.Equal(t, 1, body.Leaderboard[0].Position)
		require.NotNil(t, body.Leaderboard[0].Username)
		assert.Equal(t, "alpha", *body.Leaderboard[0].Username)
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tournaments/abc/leaderboard", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty leaderboard is 200 with empty list", func(t *testing.T) {
		emptyRouter := newLeaderboardRouter(&stubLeaderboardService{entries: []models.LeaderboardEntry{}})
		req := httptest.NewRequest(http.MethodGet, "/tournaments/99/leaderboard", nil)
		rec := httptest.NewRecorder()
		emptyRouter.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"leaderboard": []}`, rec.Body.String())
	})
}

func TestGlobalLeaderboardHandler(t *testing.T) {
	stub := &stubLeaderboardService{
		standings: []models.GlobalStanding{
			{UserID: 1, Username: "alpha", TotalWins: 1, TotalPoints: 110},
			{UserID: 2, Username: "bravo", TotalWins: 0, TotalPoints: 50},
		},
	}
	router := newLeaderboardRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/global", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leaderboard []models.GlobalStanding `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Leaderboard, 2)
	assert.Equal(t, "alpha", body.Leaderboard[0].Username)
	assert.Equal(t, 110, body.Leaderboard[0].TotalPoints)
}

func TestRecordPlacementHandler(t *testing.T) {
	t.Run("creates entry", func(t *testing.T) {
		stub := &stubLeaderboardService{}
		router := newLeaderboardRouter(stub)

		payload := `{"user_id": 1, "tournament_id": 2, "position": 1, "points": 100}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leaderboard", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, stub.recorded)
		assert.Equal(t, 100, stub.recorded.Points)
	})

	t.Run("validation error is a bad request", func(t *testing.T) {
		stub := &stubLeaderboardService{err: services.ErrInvalidPosition}
		router := newLeaderboardRouter(stub)

		payload := `{"user_id": 1, "tournament_id": 2, "position": 0}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leaderboard", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		stub := &stubLeaderboardService{err: services.ErrUserNotFound}
		router := newLeaderboardRouter(stub)

		payload := `{"user_id": 999, "tournament_id": 2, "position": 1}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leaderboard", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown json key is rejected", func(t *testing.T) {
		stub := &stubLeaderboardService{}
		router := newLeaderboardRouter(stub)

		payload := `{"user_id": 1, "tournament_id": 2, "position": 1, "bogus": true}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leaderboard", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
