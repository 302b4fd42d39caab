package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentWinnerInvalid = errors.New("tournament winner reference invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListAll(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, game, start_time, end_time, entry_fee, max_players, status, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Game,
		tournament.StartTime,
		tournament.EndTime,
		tournament.EntryFee,
		tournament.MaxPlayers,
		tournament.Status,
		tournament.WinnerID,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "tournaments_winner_id_fkey" {
				return ErrTournamentWinnerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, game, start_time, end_time, entry_fee, max_players, status, winner_id, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Game,
		&t.StartTime,
		&t.EndTime,
		&t.EntryFee,
		&t.MaxPlayers,
		&t.Status,
		&t.WinnerID,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns tournaments newest start first, matching the public
// tournaments page order.
func (r *postgresTournamentRepository) ListAll(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, game, start_time, end_time, entry_fee, max_players, status, winner_id, created_at
		FROM tournaments
		ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		scanErr := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Game,
			&t.StartTime,
			&t.EndTime,
			&t.EntryFee,
			&t.MaxPlayers,
			&t.Status,
			&t.WinnerID,
			&t.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			game = $2,
			start_time = $3,
			end_time = $4,
			entry_fee = $5,
			max_players = $6,
			status = $7,
			winner_id = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Game,
		tournament.StartTime,
		tournament.EndTime,
		tournament.EntryFee,
		tournament.MaxPlayers,
		tournament.Status,
		tournament.WinnerID,
		tournament.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "tournaments_winner_id_fkey" {
				return ErrTournamentWinnerInvalid
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrTournamentNotFound)
}
