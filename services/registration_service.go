package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
	"github.com/grk-gaming/tournament-hub/storage"
)

type CreateRegistrationInput struct {
	UserID       int `json:"user_id"`
	TournamentID int `json:"tournament_id"`
}

type SubmitPaymentInput struct {
	RegistrationID int
	TransactionID  string

	// Optional proof file; all three are set together or not at all.
	ProofFilename    string
	ProofContentType string
	Proof            io.Reader
}

type RegistrationService interface {
	Create(ctx context.Context, input CreateRegistrationInput) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
	SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	userRepo         repositories.UserRepository
	tournamentRepo   repositories.TournamentRepository
	uploader         storage.FileUploader
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	userRepo repositories.UserRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		tournamentRepo:   tournamentRepo,
		uploader:         uploader,
	}
}

func (s *registrationService) Create(ctx context.Context, input CreateRegistrationInput) (*models.Registration, error) {
	if input.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if input.TournamentID <= 0 {
		return nil, ErrInvalidTournamentID
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user %d: %w", input.UserID, err)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament %d: %w", input.TournamentID, err)
	}

	existing, err := s.registrationRepo.FindByUserAndTournament(ctx, input.UserID, input.TournamentID)
	if err != nil && !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}
	if existing != nil {
		return nil, ErrRegistrationConflict
	}

	registration := &models.Registration{
		UserID:        input.UserID,
		TournamentID:  input.TournamentID,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrRegistrationTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}
	for i := range registrations {
		s.resolveProofURL(&registrations[i])
	}
	return registrations, nil
}

// SubmitPayment records the transaction id for a registration and moves it
// to paid. When a proof file is attached it is uploaded first; the stored
// key is only replaced after the upload succeeds. The proof content is
// opaque here, nothing validates or verifies it.
func (s *registrationService) SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*models.Registration, error) {
	if input.TransactionID == "" {
		return nil, ErrTransactionIDRequired
	}

	registration, err := s.registrationRepo.GetByID(ctx, input.RegistrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", input.RegistrationID, err)
	}

	if input.Proof != nil {
		if s.uploader == nil {
			return nil, errors.New("payment proof uploads are not configured")
		}
		key := paymentProofKey(input.ProofFilename)
		result, uploadErr := s.uploader.Upload(ctx, key, input.ProofContentType, input.Proof)
		if uploadErr != nil {
			return nil, fmt.Errorf("failed to upload payment proof: %w", uploadErr)
		}
		if registration.ProofKey != nil && *registration.ProofKey != result.Key {
			// Best effort: a stale proof is not worth failing the payment.
			_ = s.uploader.Delete(ctx, *registration.ProofKey)
		}
		registration.ProofKey = &result.Key
	}

	registration.TransactionID = &input.TransactionID
	registration.PaymentStatus = models.PaymentPaid

	if err := s.registrationRepo.UpdatePayment(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to update payment for registration %d: %w", input.RegistrationID, err)
	}

	s.resolveProofURL(registration)
	return registration, nil
}

func (s *registrationService) resolveProofURL(registration *models.Registration) {
	if registration.ProofKey == nil || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*registration.ProofKey); url != "" {
		registration.ProofURL = &url
	}
}

func paymentProofKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "payment-proofs/" + uuid.NewString() + ext
}
