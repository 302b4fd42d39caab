package models

import "time"

// PostTournamentSubmission is a number a player submits after a tournament
// ends, accepted only within a fixed window after the end time.
type PostTournamentSubmission struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	TournamentID int       `json:"tournament_id"`
	RandomNumber int       `json:"random_number"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
