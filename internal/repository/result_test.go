package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository/storage/sqlite"
)

func newResultRepository(t *testing.T) ResultRepository {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = st.Close()
	})

	require.NoError(t, st.Init(context.Background()))

	return NewResultRepository(st.Connection)
}

func TestResultRepository_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty table gives zero stats", func(t *testing.T) {
		resultRepo := newResultRepository(t)

		stats, err := resultRepo.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, Stats{}, stats)
		assert.Zero(t, stats.Total())
	})

	t.Run("Counts wins per player and draws", func(t *testing.T) {
		resultRepo := newResultRepository(t)

		// Given: two X wins, one O win and one draw
		results := []Result{
			{SessionID: "a", Status: entity.StatusWin, Winner: entity.PlayerX, Moves: 5},
			{SessionID: "b", Status: entity.StatusWin, Winner: entity.PlayerX, Moves: 7},
			{SessionID: "c", Status: entity.StatusWin, Winner: entity.PlayerO, Moves: 6},
			{SessionID: "d", Status: entity.StatusDraw, Winner: entity.EmptyCell, Moves: 9},
		}

		for _, result := range results {
			require.NoError(t, resultRepo.Save(ctx, result))
		}

		// When: reading the stats
		stats, err := resultRepo.Stats(ctx)

		// Then: every outcome is tallied
		require.NoError(t, err)
		assert.Equal(t, Stats{XWins: 2, OWins: 1, Draws: 1}, stats)
		assert.Equal(t, 4, stats.Total())
	})
}
