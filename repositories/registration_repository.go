package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationUserInvalid       = errors.New("registration user reference invalid")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament reference invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	UpdatePayment(ctx context.Context, registration *models.Registration) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO registrations (user_id, tournament_id, payment_status, transaction_id, payment_proof_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at`

	err := r.db.QueryRowContext(ctx, query,
		registration.UserID,
		registration.TournamentID,
		registration.PaymentStatus,
		registration.TransactionID,
		registration.ProofKey,
	).Scan(&registration.ID, &registration.RegisteredAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "registrations_user_id_fkey":
				return ErrRegistrationUserInvalid
			case "registrations_tournament_id_fkey":
				return ErrRegistrationTournamentInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	query := `
		SELECT id, user_id, tournament_id, payment_status, transaction_id, payment_proof_key, registered_at
		FROM registrations
		WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanRegistration(row)
}

func (r *postgresRegistrationRepository) FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Registration, error) {
	query := `
		SELECT id, user_id, tournament_id, payment_status, transaction_id, payment_proof_key, registered_at
		FROM registrations
		WHERE user_id = $1 AND tournament_id = $2`
	row := r.db.QueryRowContext(ctx, query, userID, tournamentID)
	return scanRegistration(row)
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	query := `
		SELECT id, user_id, tournament_id, payment_status, transaction_id, payment_proof_key, registered_at
		FROM registrations
		WHERE tournament_id = $1
		ORDER BY registered_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		reg, scanErr := scanRegistration(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		registrations = append(registrations, *reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRegistrationRepository) UpdatePayment(ctx context.Context, registration *models.Registration) error {
	query := `
		UPDATE registrations SET
			payment_status = $1,
			transaction_id = $2,
			payment_proof_key = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		registration.PaymentStatus,
		registration.TransactionID,
		registration.ProofKey,
		registration.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func scanRegistration(rowScanner interface{ Scan(...interface{}) error }) (*models.Registration, error) {
	reg := &models.Registration{}
	err := rowScanner.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.TournamentID,
		&reg.PaymentStatus,
		&reg.TransactionID,
		&reg.ProofKey,
		&reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}
