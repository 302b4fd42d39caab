package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grk-gaming/tournament-hub/models"
	"github.com/grk-gaming/tournament-hub/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLeaderboardRepo keeps entries in memory and assigns ids in insertion
// order, like the serial column does.
type fakeLeaderboardRepo struct {
	entries   []models.LeaderboardEntry
	usernames map[int]string
	createErr error
	listErr   error
	nextID    int
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{usernames: make(map[int]string), nextID: 1}
}

func (f *fakeLeaderboardRepo) add(userID, tournamentID, position, points int) models.LeaderboardEntry {
	entry := models.LeaderboardEntry{
		ID:           f.nextID,
		UserID:       userID,
		TournamentID: tournamentID,
		Position:     position,
		Points:       points,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.entries = append(f.entries, entry)
	return entry
}

func (f *fakeLeaderboardRepo) Create(_ context.Context, entry *models.LeaderboardEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	created := f.add(entry.UserID, entry.TournamentID, entry.Position, entry.Points)
	entry.ID = created.ID
	entry.CreatedAt = created.CreatedAt
	return nil
}

func (f *fakeLeaderboardRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.LeaderboardEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]models.LeaderboardEntry, 0)
	for _, e := range f.entries {
		if e.TournamentID == tournamentID {
			f.attachUsername(&e)
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeLeaderboardRepo) ListAllWithUsernames(_ context.Context) ([]models.LeaderboardEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]models.LeaderboardEntry, 0, len(f.entries))
	for _, e := range f.entries {
		f.attachUsername(&e)
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeLeaderboardRepo) attachUsername(e *models.LeaderboardEntry) {
	if name, ok := f.usernames[e.UserID]; ok {
		e.Username = &name
	}
}

func TestTournamentLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("contains only the requested tournament ordered by position", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.add(1, 1, 1, 100)
		repo.add(2, 1, 2, 50)
		repo.add(1, 2, 3, 10)

		svc := NewLeaderboardService(repo)
		entries, err := svc.TournamentLeaderboard(ctx, 1)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].UserID)
		assert.Equal(t, 1, entries[0].Position)
		assert.Equal(t, 2, entries[1].UserID)
		assert.Equal(t, 2, entries[1].Position)
	})

	t.Run("positions are non-decreasing", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.add(5, 7, 4, 5)
		repo.add(6, 7, 1, 60)
		repo.add(7, 7, 3, 20)
		repo.add(8, 7, 2, 40)

		svc := NewLeaderboardService(repo)
		entries, err := svc.TournamentLeaderboard(ctx, 7)

		require.NoError(t, err)
		require.Len(t, entries, 4)
		for i := 1; i < len(entries); i++ {
			assert.LessOrEqual(t, entries[i-1].Position, entries[i].Position)
		}
	})

	t.Run("duplicate positions keep creation order", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		first := repo.add(1, 3, 2, 40)
		second := repo.add(2, 3, 2, 40)
		repo.add(3, 3, 1, 100)

		svc := NewLeaderboardService(repo)
		entries, err := svc.TournamentLeaderboard(ctx, 3)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, 3, entries[0].UserID)
		assert.Equal(t, first.ID, entries[1].ID)
		assert.Equal(t, second.ID, entries[2].ID)
	})

	t.Run("unknown tournament yields empty slice", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.add(1, 1, 1, 100)

		svc := NewLeaderboardService(repo)
		entries, err := svc.TournamentLeaderboard(ctx, 999)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.listErr = errors.New("connection reset")

		svc := NewLeaderboardService(repo)
		_, err := svc.TournamentLeaderboard(ctx, 1)

		assert.Error(t, err)
	})
}

func TestGlobalLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates points and wins per user", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.usernames[1] = "alpha"
		repo.usernames[2] = "bravo"
		repo.add(1, 1, 1, 100)
		repo.add(2, 1, 2, 50)
		repo.add(1, 2, 3, 10)

		svc := NewLeaderboardService(repo)
		standings, err := svc.GlobalLeaderboard(ctx)

		require.NoError(t, err)
		require.Len(t, standings, 2)

		assert.Equal(t, 1, standings[0].UserID)
		assert.Equal(t, "alpha", standings[0].Username)
		assert.Equal(t, 1, standings[0].TotalWins)
		assert.Equal(t, 110, standings[0].TotalPoints)

		assert.Equal(t, 2, standings[1].UserID)
		assert.Equal(t, "bravo", standings[1].Username)
		assert.Equal(t, 0, standings[1].TotalWins)
		assert.Equal(t, 50, standings[1].TotalPoints)
	})

	t.Run("missing user row reports unknown username", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.add(42, 1, 1, 80)

		svc := NewLeaderboardService(repo)
		standings, err := svc.GlobalLeaderboard(ctx)

		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 42, standings[0].UserID)
		assert.Equal(t, "unknown", standings[0].Username)
		assert.Equal(t, 80, standings[0].TotalPoints)
	})

	t.Run("duplicate entries double-count", func(t *testing.T) {
		// Append-only semantics: recording the same placement twice creates
		// two rows and the totals count both.
		repo := newFakeLeaderboardRepo()
		repo.usernames[1] = "alpha"
		repo.add(1, 1, 1, 100)
		repo.add(1, 1, 1, 100)

		svc := NewLeaderboardService(repo)
		standings, err := svc.GlobalLeaderboard(ctx)

		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 2, standings[0].TotalWins)
		assert.Equal(t, 200, standings[0].TotalPoints)
	})

	t.Run("equal points tie breaks by ascending user id, repeatably", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.usernames[9] = "late"
		repo.usernames[3] = "early"
		// Insert the higher user id first to make sure ordering does not
		// depend on insertion order.
		repo.add(9, 1, 2, 50)
		repo.add(3, 2, 2, 50)

		svc := NewLeaderboardService(repo)

		for i := 0; i < 5; i++ {
			standings, err := svc.GlobalLeaderboard(ctx)
			require.NoError(t, err)
			require.Len(t, standings, 2)
			assert.Equal(t, 3, standings[0].UserID)
			assert.Equal(t, 9, standings[1].UserID)
		}
	})

	t.Run("zero points entries still appear", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		repo.usernames[5] = "nopoints"
		repo.add(5, 1, 4, 0)

		svc := NewLeaderboardService(repo)
		standings, err := svc.GlobalLeaderboard(ctx)

		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 0, standings[0].TotalPoints)
		assert.Equal(t, 0, standings[0].TotalWins)
	})

	t.Run("no entries yields empty slice", func(t *testing.T) {
		svc := NewLeaderboardService(newFakeLeaderboardRepo())
		standings, err := svc.GlobalLeaderboard(ctx)

		require.NoError(t, err)
		assert.Empty(t, standings)
	})
}

func TestRecordPlacement(t *testing.T) {
	ctx := context.Background()

	intPtr := func(v int) *int { return &v }

	t.Run("creates entry with assigned id", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		svc := NewLeaderboardService(repo)

		entry, err := svc.RecordPlacement(ctx, RecordPlacementInput{
			UserID:       1,
			TournamentID: 2,
			Position:     1,
			Points:       intPtr(100),
		})

		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.Equal(t, 1, entry.UserID)
		assert.Equal(t, 2, entry.TournamentID)
		assert.Equal(t, 1, entry.Position)
		assert.Equal(t, 100, entry.Points)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("points default to zero", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		svc := NewLeaderboardService(repo)

		entry, err := svc.RecordPlacement(ctx, RecordPlacementInput{
			UserID:       1,
			TournamentID: 2,
			Position:     3,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, entry.Points)
	})

	t.Run("recording twice produces two distinct entries", func(t *testing.T) {
		repo := newFakeLeaderboardRepo()
		svc := NewLeaderboardService(repo)

		input := RecordPlacementInput{UserID: 1, TournamentID: 1, Position: 1, Points: intPtr(10)}
		first, err := svc.RecordPlacement(ctx, input)
		require.NoError(t, err)
		second, err := svc.RecordPlacement(ctx, input)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, repo.entries, 2)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			input   RecordPlacementInput
			wantErr error
		}{
			{
				name:    "missing user id",
				input:   RecordPlacementInput{TournamentID: 1, Position: 1},
				wantErr: ErrInvalidUserID,
			},
			{
				name:    "negative user id",
				input:   RecordPlacementInput{UserID: -1, TournamentID: 1, Position: 1},
				wantErr: ErrInvalidUserID,
			},
			{
				name:    "missing tournament id",
				input:   RecordPlacementInput{UserID: 1, Position: 1},
				wantErr: ErrInvalidTournamentID,
			},
			{
				name:    "zero position",
				input:   RecordPlacementInput{UserID: 1, TournamentID: 1, Position: 0},
				wantErr: ErrInvalidPosition,
			},
			{
				name:    "negative points",
				input:   RecordPlacementInput{UserID: 1, TournamentID: 1, Position: 1, Points: intPtr(-5)},
				wantErr: ErrInvalidPoints,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newFakeLeaderboardRepo()
				svc := NewLeaderboardService(repo)

				_, err := svc.RecordPlacement(ctx, tt.input)

				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.entries, "no write must happen on validation failure")
			})
		}
	})

	t.Run("foreign key violations map to not-found", func(t *testing.T) {
		tests := []struct {
			name    string
			repoErr error
			wantErr error
		}{
			{"unknown user", repositories.ErrLeaderboardUserInvalid, ErrUserNotFound},
			{"unknown tournament", repositories.ErrLeaderboardTournamentInvalid, ErrTournamentNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newFakeLeaderboardRepo()
				repo.createErr = tt.repoErr
				svc := NewLeaderboardService(repo)

				_, err := svc.RecordPlacement(ctx, RecordPlacementInput{UserID: 1, TournamentID: 1, Position: 1})

				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}
