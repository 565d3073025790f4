package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository"
	"github.com/rocketscienceinc/tictactoe-classic/internal/tictactoe"
)

type gameRepo interface {
	Save(ctx context.Context, sessionID string, game entity.GameState) error
	GetByID(ctx context.Context, sessionID string) (entity.GameState, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

type resultRepo interface {
	Save(ctx context.Context, result repository.Result) error
	Stats(ctx context.Context) (repository.Stats, error)
}

// GameManager owns the game state of every UI session. Each call performs
// one complete read-apply-save transition.
type GameManager struct {
	logger *slog.Logger

	mu         sync.Mutex
	gameRepo   gameRepo
	resultRepo resultRepo
}

// NewGameManager - resultRepo may be nil, in which case finished games are
// only logged.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		resultRepo: resultRepo,
	}
}

// StartSession - creates a session holding a fresh game.
func (that *GameManager) StartSession(ctx context.Context) (string, entity.GameState, error) {
	sessionID := pkg.GenerateNewSessionID()
	game := tictactoe.NewGame()

	if err := that.gameRepo.Save(ctx, sessionID, game); err != nil {
		return "", entity.GameState{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session started", "sessionID", sessionID)

	return sessionID, game, nil
}

func (that *GameManager) GetState(ctx context.Context, sessionID string) (entity.GameState, error) {
	if sessionID == "" {
		return entity.GameState{}, apperror.ErrSessionRequired
	}

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.GameState{}, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Click - applies a click on cell. Illegal clicks return the unchanged state.
func (that *GameManager) Click(ctx context.Context, sessionID string, cell int) (entity.GameState, error) {
	return that.dispatch(ctx, sessionID, tictactoe.CellClick{Index: cell})
}

// Restart - replaces the session game with a fresh one.
func (that *GameManager) Restart(ctx context.Context, sessionID string) (entity.GameState, error) {
	return that.dispatch(ctx, sessionID, tictactoe.Restart{})
}

// EndSession - drops the session state.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	if err := that.gameRepo.DeleteByID(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.logger.Debug("session ended", "sessionID", sessionID)

	return nil
}

func (that *GameManager) Stats(ctx context.Context) (repository.Stats, error) {
	if that.resultRepo == nil {
		return repository.Stats{}, apperror.ErrStorageDisabled
	}

	stats, err := that.resultRepo.Stats(ctx)
	if err != nil {
		return repository.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) dispatch(ctx context.Context, sessionID string, action tictactoe.Action) (entity.GameState, error) {
	log := that.logger.With("method", "dispatch", "sessionID", sessionID)

	if sessionID == "" {
		return entity.GameState{}, apperror.ErrSessionRequired
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.GameState{}, fmt.Errorf("failed to get game: %w", err)
	}

	next := tictactoe.Reduce(game, action)
	if next == game {
		return game, nil
	}

	if err = that.gameRepo.Save(ctx, sessionID, next); err != nil {
		return entity.GameState{}, fmt.Errorf("failed to update game: %w", err)
	}

	if !game.IsFinished() && next.IsFinished() {
		log.Info("game finished", "status", next.Status, "winner", next.Winner, "moves", next.Board.Filled())
		that.recordResult(ctx, sessionID, next)
	}

	return next, nil
}

func (that *GameManager) recordResult(ctx context.Context, sessionID string, game entity.GameState) {
	if that.resultRepo == nil {
		return
	}

	result := repository.Result{
		SessionID: sessionID,
		Status:    game.Status,
		Winner:    game.Winner,
		Moves:     game.Board.Filled(),
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		that.logger.Error("failed to record result", "sessionID", sessionID, "error", err)
	}
}
