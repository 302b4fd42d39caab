package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors.
	ErrValidationFailed       = errors.New("validation failed")
	ErrUsernameRequired       = errors.New("username is required")
	ErrEmailRequired          = errors.New("email is required")
	ErrPhoneRequired          = errors.New("phone is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidUserID          = errors.New("user id must be a positive integer")
	ErrInvalidTournamentID    = errors.New("tournament id must be a positive integer")
	ErrInvalidPosition        = errors.New("position must be a positive integer")
	ErrInvalidPoints          = errors.New("points must not be negative")
	ErrTransactionIDRequired  = errors.New("transaction id is required")
	ErrSubmissionWindowClosed = errors.New("submission window has expired")
	ErrTournamentNotEnded     = errors.New("tournament has not ended")

	// Conflicts.
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrRegistrationConflict = errors.New("user is already registered for this tournament")

	// Authentication and authorization.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors.
	ErrUserNotFound         = errors.New("user not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")

	// Tournament field errors.
	ErrTournamentInvalidDateRange = errors.New("tournament end time must be after start time")
	ErrTournamentInvalidCapacity  = errors.New("tournament max players must be positive")
	ErrTournamentInvalidStatus    = errors.New("invalid tournament status provided")
)
