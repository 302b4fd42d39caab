package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/lib/pq"
)

var (
	ErrLeaderboardUserInvalid       = errors.New("leaderboard user reference invalid")
	ErrLeaderboardTournamentInvalid = errors.New("leaderboard tournament reference invalid")
)

// LeaderboardRepository is the data access behind the leaderboard
// aggregator. The table is append-only: no update or delete is exposed.
type LeaderboardRepository interface {
	Create(ctx context.Context, entry *models.LeaderboardEntry) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error)
	ListAllWithUsernames(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type postgresLeaderboardRepository struct {
	db *sql.DB
}

func NewPostgresLeaderboardRepository(db *sql.DB) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

func (r *postgresLeaderboardRepository) Create(ctx context.Context, entry *models.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboard_entries (user_id, tournament_id, position, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.TournamentID,
		entry.Position,
		entry.Points,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "leaderboard_entries_user_id_fkey":
				return ErrLeaderboardUserInvalid
			case "leaderboard_entries_tournament_id_fkey":
				return ErrLeaderboardTournamentInvalid
			}
		}
		return err
	}
	return nil
}

// ListByTournament returns the tournament's entries ordered by position.
// Duplicate positions are a data anomaly; id breaks the tie so the order is
// always creation order and therefore repeatable.
func (r *postgresLeaderboardRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT l.id, l.user_id, l.tournament_id, l.position, l.points, l.created_at, u.username
		FROM leaderboard_entries l
		LEFT JOIN users u ON l.user_id = u.id
		WHERE l.tournament_id = $1
		ORDER BY l.position ASC, l.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListAllWithUsernames returns every placement entry joined with the owning
// user's username. A missing user row yields a nil username rather than
// dropping the entry.
func (r *postgresLeaderboardRepository) ListAllWithUsernames(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT l.id, l.user_id, l.tournament_id, l.position, l.points, l.created_at, u.username
		FROM leaderboard_entries l
		LEFT JOIN users u ON l.user_id = u.id
		ORDER BY l.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		var username sql.NullString
		scanErr := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.TournamentID,
			&e.Position,
			&e.Points,
			&e.CreatedAt,
			&username,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		if username.Valid {
			e.Username = &username.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
