package models

import "time"

// LeaderboardEntry is one recorded placement of a user in one tournament.
// Entries are append-only: they are written once when results are finalized
// and never updated or deleted.
type LeaderboardEntry struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	TournamentID int       `json:"tournament_id"`
	Position     int       `json:"position"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`

	// Username is joined from users when the entry is read together with
	// player identity. Nil when the referenced user row is gone.
	Username *string `json:"username,omitempty"`
}

// GlobalStanding is one row of the derived cross-tournament ranking.
// Never stored; recomputed from leaderboard entries on every read.
type GlobalStanding struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	TotalWins   int    `json:"total_wins"`
	TotalPoints int    `json:"total_points"`
}
