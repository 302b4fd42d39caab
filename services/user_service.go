package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
)

const defaultPreferredGame = "freefire"

type RegisterUserInput struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PreferredGame string  `json:"preferred_game"`
	Experience    *string `json:"experience"`
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if input.Phone == "" {
		return nil, ErrPhoneRequired
	}
	if input.PreferredGame == "" {
		input.PreferredGame = defaultPreferredGame
	}

	// Early duplicate check for a friendlier error; the unique constraint
	// still catches the race.
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserEmailConflict
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	user := &models.User{
		Username:      input.Username,
		Email:         input.Email,
		Phone:         input.Phone,
		PreferredGame: input.PreferredGame,
		Experience:    input.Experience,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}
