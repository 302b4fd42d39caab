package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/lib/pq"
)

var (
	ErrSubmissionUserInvalid       = errors.New("submission user reference invalid")
	ErrSubmissionTournamentInvalid = errors.New("submission tournament reference invalid")
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.PostTournamentSubmission) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PostTournamentSubmission, error)
}

type postgresSubmissionRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &postgresSubmissionRepository{db: db}
}

func (r *postgresSubmissionRepository) Create(ctx context.Context, submission *models.PostTournamentSubmission) error {
	query := `
		INSERT INTO post_tournament_submissions (user_id, tournament_id, random_number)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at`

	err := r.db.QueryRowContext(ctx, query,
		submission.UserID,
		submission.TournamentID,
		submission.RandomNumber,
	).Scan(&submission.ID, &submission.SubmittedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "post_tournament_submissions_user_id_fkey":
				return ErrSubmissionUserInvalid
			case "post_tournament_submissions_tournament_id_fkey":
				return ErrSubmissionTournamentInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresSubmissionRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.PostTournamentSubmission, error) {
	query := `
		SELECT id, user_id, tournament_id, random_number, submitted_at
		FROM post_tournament_submissions
		WHERE tournament_id = $1
		ORDER BY submitted_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]models.PostTournamentSubmission, 0)
	for rows.Next() {
		var s models.PostTournamentSubmission
		scanErr := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.TournamentID,
			&s.RandomNumber,
			&s.SubmittedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}
