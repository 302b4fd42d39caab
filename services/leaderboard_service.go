package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
)

// unknownUsername is reported when a placement entry references a user row
// that no longer resolves. The entry itself is never dropped.
const unknownUsername = "unknown"

type RecordPlacementInput struct {
	UserID       int  `json:"user_id"`
	TournamentID int  `json:"tournament_id"`
	Position     int  `json:"position"`
	Points       *int `json:"points"`
}

// LeaderboardService exposes the derived leaderboard views and the single
// write path for placement entries. Every read is a full recomputation from
// the store; nothing is cached in process.
type LeaderboardService interface {
	TournamentLeaderboard(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error)
	GlobalLeaderboard(ctx context.Context) ([]models.GlobalStanding, error)
	RecordPlacement(ctx context.Context, input RecordPlacementInput) (*models.LeaderboardEntry, error)
}

type leaderboardService struct {
	leaderboardRepo repositories.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repositories.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{leaderboardRepo: leaderboardRepo}
}

// TournamentLeaderboard returns the tournament's placement entries ordered
// ascending by position. Two entries with the same position (a data anomaly,
// positions should be unique per tournament) keep creation order, so the
// result is deterministic. An unknown tournament yields an empty slice.
func (s *leaderboardService) TournamentLeaderboard(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error) {
	entries, err := s.leaderboardRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard entries for tournament %d: %w", tournamentID, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Position != entries[j].Position {
			return entries[i].Position < entries[j].Position
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// GlobalLeaderboard aggregates every placement entry into cross-tournament
// standings: TotalPoints sums points over all of a user's entries,
// TotalWins counts the entries with position 1. Duplicate entries for the
// same (user, tournament) pair simply count twice; the table is append-only
// and no dedup is applied.
//
// Ordering is descending by TotalPoints with ascending UserID as the
// tie-break, so repeated calls over the same data return the same order.
func (s *leaderboardService) GlobalLeaderboard(ctx context.Context) ([]models.GlobalStanding, error) {
	entries, err := s.leaderboardRepo.ListAllWithUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard entries: %w", err)
	}

	byUser := make(map[int]*models.GlobalStanding)
	order := make([]int, 0)

	for _, entry := range entries {
		standing, ok := byUser[entry.UserID]
		if !ok {
			standing = &models.GlobalStanding{
				UserID:   entry.UserID,
				Username: unknownUsername,
			}
			byUser[entry.UserID] = standing
			order = append(order, entry.UserID)
		}
		if entry.Username != nil {
			standing.Username = *entry.Username
		}
		standing.TotalPoints += entry.Points
		if entry.Position == 1 {
			standing.TotalWins++
		}
	}

	standings := make([]models.GlobalStanding, 0, len(order))
	for _, userID := range order {
		standings = append(standings, *byUser[userID])
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].UserID < standings[j].UserID
	})

	return standings, nil
}

// RecordPlacement appends one immutable placement entry. Points default to
// zero when omitted. Referential checks are left to the store's foreign
// keys; a violation comes back as the matching not-found error.
func (s *leaderboardService) RecordPlacement(ctx context.Context, input RecordPlacementInput) (*models.LeaderboardEntry, error) {
	if input.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if input.TournamentID <= 0 {
		return nil, ErrInvalidTournamentID
	}
	if input.Position < 1 {
		return nil, ErrInvalidPosition
	}

	points := 0
	if input.Points != nil {
		if *input.Points < 0 {
			return nil, ErrInvalidPoints
		}
		points = *input.Points
	}

	entry := &models.LeaderboardEntry{
		UserID:       input.UserID,
		TournamentID: input.TournamentID,
		Position:     input.Position,
		Points:       points,
	}

	if err := s.leaderboardRepo.Create(ctx, entry); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeaderboardUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrLeaderboardTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create leaderboard entry: %w", err)
	}

	return entry, nil
}
