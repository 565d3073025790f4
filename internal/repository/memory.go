package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

type memoryEntry struct {
	game      entity.GameState
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - keeps session games in process memory. Like the
// redis store, an entry expires after ttl without reads or writes; a zero
// ttl keeps it until deleted.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   now,
	}
}

func (that *memoryGame) Save(_ context.Context, sessionID string, game entity.GameState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	that.games[sessionID] = memoryEntry{game: game, expiresAt: that.deadline(now)}

	return nil
}

// GetByID - also pushes the expiry forward, as GETEX does for redis.
func (that *memoryGame) GetByID(_ context.Context, sessionID string) (entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()

	entry, ok := that.games[sessionID]
	if !ok {
		return entity.GameState{}, ErrGameNotFound
	}

	if that.expired(entry, now) {
		delete(that.games, sessionID)
		return entity.GameState{}, ErrGameNotFound
	}

	entry.expiresAt = that.deadline(now)
	that.games[sessionID] = entry

	return entry.game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[sessionID]
	if !ok {
		return ErrGameNotFound
	}

	delete(that.games, sessionID)

	if that.expired(entry, that.now()) {
		return ErrGameNotFound
	}

	return nil
}

func (that *memoryGame) deadline(now time.Time) time.Time {
	if that.ttl <= 0 {
		return time.Time{}
	}

	return now.Add(that.ttl)
}

func (that *memoryGame) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// sweep drops every expired entry. Caller holds mu.
func (that *memoryGame) sweep(now time.Time) {
	for sessionID, entry := range that.games {
		if that.expired(entry, now) {
			delete(that.games, sessionID)
		}
	}
}
