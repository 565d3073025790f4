package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save then GetByID returns the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		// Given: a saved game with one move
		game := entity.NewGame()
		game.Board[4] = entity.PlayerX
		game.Turn = entity.PlayerO

		require.NoError(t, gameRepo.Save(ctx, "s1", game))

		// When: reading it back
		retrievedGame, err := gameRepo.GetByID(ctx, "s1")

		// Then: the same value is returned
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("Stored value is a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		game := entity.NewGame()
		require.NoError(t, gameRepo.Save(ctx, "s1", game))

		// When: the caller keeps mutating its own value
		game.Board[0] = entity.PlayerX

		// Then: the stored game is unaffected
		retrievedGame, err := gameRepo.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, retrievedGame.Board[0])
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		_, err := gameRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.Save(ctx, "s1", entity.NewGame()))

		// When: deleting twice
		err := gameRepo.DeleteByID(ctx, "s1")
		require.NoError(t, err)

		err = gameRepo.DeleteByID(ctx, "s1")

		// Then: the second delete reports not found
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func (that *memoryGame) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.games)
}

type fakeClock struct {
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	return that.now
}

func (that *fakeClock) Advance(d time.Duration) {
	that.now = that.now.Add(d)
}

func TestMemoryGameRepository_Expiry(t *testing.T) {
	ctx := context.Background()

	t.Run("Idle session expires after ttl", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)

		// Given: a saved session left idle for the whole ttl
		require.NoError(t, gameRepo.Save(ctx, "s1", entity.NewGame()))
		clock.Advance(time.Minute)

		// When: reading it
		_, err := gameRepo.GetByID(ctx, "s1")

		// Then: it is gone
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Zero(t, gameRepo.size())
	})

	t.Run("Reads keep the session alive", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)

		require.NoError(t, gameRepo.Save(ctx, "s1", entity.NewGame()))

		// When: reading it every 40 seconds for two minutes
		for i := 0; i < 3; i++ {
			clock.Advance(40 * time.Second)

			_, err := gameRepo.GetByID(ctx, "s1")
			require.NoError(t, err)
		}

		// Then: it only expires after a full idle ttl
		clock.Advance(time.Minute)

		_, err := gameRepo.GetByID(ctx, "s1")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Save sweeps abandoned sessions", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)

		// Given: many sessions that are never read again
		for _, sessionID := range []string{"a", "b", "c", "d"} {
			require.NoError(t, gameRepo.Save(ctx, sessionID, entity.NewGame()))
		}
		require.Equal(t, 4, gameRepo.size())

		// When: a new session is saved after they expired
		clock.Advance(2 * time.Minute)
		require.NoError(t, gameRepo.Save(ctx, "e", entity.NewGame()))

		// Then: only the new one is kept
		assert.Equal(t, 1, gameRepo.size())
	})

	t.Run("Deleting an expired session reports not found", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)

		require.NoError(t, gameRepo.Save(ctx, "s1", entity.NewGame()))
		clock.Advance(time.Hour)

		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "s1"), ErrGameNotFound)
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(0, clock.Now)

		require.NoError(t, gameRepo.Save(ctx, "s1", entity.NewGame()))
		clock.Advance(24 * time.Hour)

		_, err := gameRepo.GetByID(ctx, "s1")
		require.NoError(t, err)
	})
}
