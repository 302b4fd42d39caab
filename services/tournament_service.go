package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name       string     `json:"name"`
	Game       string     `json:"game"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	EntryFee   *float64   `json:"entry_fee"`
	MaxPlayers *int       `json:"max_players"`
	Status     *string    `json:"status"`
}

// UpdateTournamentInput carries a partial update; nil fields keep their
// current value.
type UpdateTournamentInput struct {
	Name       *string    `json:"name"`
	Game       *string    `json:"game"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	EntryFee   *float64   `json:"entry_fee"`
	MaxPlayers *int       `json:"max_players"`
	Status     *string    `json:"status"`
	WinnerID   *int       `json:"winner_id"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListWithPlayerCounts(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
	}
}

const (
	defaultEntryFee   = 10.0
	defaultMaxPlayers = 100
)

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start_time is required", ErrValidationFailed)
	}
	if input.EndTime != nil && !input.EndTime.After(input.StartTime) {
		return nil, ErrTournamentInvalidDateRange
	}

	game := input.Game
	if game == "" {
		game = defaultPreferredGame
	}

	entryFee := defaultEntryFee
	if input.EntryFee != nil {
		entryFee = *input.EntryFee
	}

	maxPlayers := defaultMaxPlayers
	if input.MaxPlayers != nil {
		if *input.MaxPlayers <= 0 {
			return nil, ErrTournamentInvalidCapacity
		}
		maxPlayers = *input.MaxPlayers
	}

	status := models.StatusUpcoming
	if input.Status != nil {
		status = models.TournamentStatus(*input.Status)
		if !isValidTournamentStatus(status) {
			return nil, ErrTournamentInvalidStatus
		}
	}

	tournament := &models.Tournament{
		Name:       input.Name,
		Game:       game,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		EntryFee:   entryFee,
		MaxPlayers: maxPlayers,
		Status:     status,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	count, err := s.registrationRepo.CountByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations for tournament %d: %w", id, err)
	}
	tournament.PlayerCount = count

	return tournament, nil
}

// ListWithPlayerCounts returns all tournaments with their registration
// counts. Counts are fetched concurrently, one goroutine per tournament.
func (s *tournamentService) ListWithPlayerCounts(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range tournaments {
		i := i
		g.Go(func() error {
			count, countErr := s.registrationRepo.CountByTournament(gctx, tournaments[i].ID)
			if countErr != nil {
				return fmt.Errorf("failed to count registrations for tournament %d: %w", tournaments[i].ID, countErr)
			}
			tournaments[i].PlayerCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = *input.Name
	}
	if input.Game != nil {
		tournament.Game = *input.Game
	}
	if input.StartTime != nil {
		tournament.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		tournament.EndTime = input.EndTime
	}
	if input.EntryFee != nil {
		tournament.EntryFee = *input.EntryFee
	}
	if input.MaxPlayers != nil {
		if *input.MaxPlayers <= 0 {
			return nil, ErrTournamentInvalidCapacity
		}
		tournament.MaxPlayers = *input.MaxPlayers
	}
	if input.Status != nil {
		status := models.TournamentStatus(*input.Status)
		if !isValidTournamentStatus(status) {
			return nil, ErrTournamentInvalidStatus
		}
		tournament.Status = status
	}
	if input.WinnerID != nil {
		tournament.WinnerID = input.WinnerID
	}
	if tournament.EndTime != nil && !tournament.EndTime.After(tournament.StartTime) {
		return nil, ErrTournamentInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentWinnerInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}

	return tournament, nil
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.StatusUpcoming, models.StatusActive, models.StatusCompleted:
		return true
	}
	return false
}
