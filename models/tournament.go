package models

import "time"

// TournamentStatus mirrors the status ENUM in the database.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament is a single scheduled event players can register for.
type Tournament struct {
	ID         int              `json:"id"`
	Name       string           `json:"name"`
	Game       string           `json:"game"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    *time.Time       `json:"end_time,omitempty"`
	EntryFee   float64          `json:"entry_fee"`
	MaxPlayers int              `json:"max_players"`
	Status     TournamentStatus `json:"status"`
	WinnerID   *int             `json:"winner_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`

	// Derived, not stored: number of registrations, populated by the service.
	PlayerCount int `json:"player_count"`
}
