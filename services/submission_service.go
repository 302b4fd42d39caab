package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
)

// Submissions are only accepted this long after a tournament's end time.
const submissionWindow = 48 * time.Hour

type CreateSubmissionInput struct {
	UserID       int `json:"user_id"`
	TournamentID int `json:"tournament_id"`
	RandomNumber int `json:"random_number"`
}

type SubmissionService interface {
	Create(ctx context.Context, input CreateSubmissionInput) (*models.PostTournamentSubmission, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PostTournamentSubmission, error)
}

type submissionService struct {
	submissionRepo repositories.SubmissionRepository
	tournamentRepo repositories.TournamentRepository
	now            func() time.Time
}

func NewSubmissionService(
	submissionRepo repositories.SubmissionRepository,
	tournamentRepo repositories.TournamentRepository,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, input CreateSubmissionInput) (*models.PostTournamentSubmission, error) {
	if input.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if input.TournamentID <= 0 {
		return nil, ErrInvalidTournamentID
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", input.TournamentID, err)
	}
	if tournament.EndTime == nil {
		return nil, ErrTournamentNotEnded
	}
	if s.now().Sub(*tournament.EndTime) > submissionWindow {
		return nil, ErrSubmissionWindowClosed
	}

	submission := &models.PostTournamentSubmission{
		UserID:       input.UserID,
		TournamentID: input.TournamentID,
		RandomNumber: input.RandomNumber,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSubmissionUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrSubmissionTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}

func (s *submissionService) ListByTournament(ctx context.Context, tournamentID int) ([]models.PostTournamentSubmission, error) {
	submissions, err := s.submissionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions for tournament %d: %w", tournamentID, err)
	}
	return submissions, nil
}
