package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-classic/internal/config"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-classic/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
	"github.com/rocketscienceinc/tictactoe-classic/transport/rest"
	"github.com/rocketscienceinc/tictactoe-classic/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gameRepo, closeGames, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeGames()

	resultRepo, closeResults, err := newResultRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeResults()

	gameManager := usecase.NewGameManager(logger, gameRepo, resultRepo)

	renderer := view.MustNewRenderer()

	httpServer := rest.New(logger, conf.HTTPPort, gameManager, renderer)
	httpServer.Mount("/ws", websocket.New(logger, gameManager, renderer))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := httpServer.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Application stopped")

	return nil
}

// newGameRepository - redis when enabled, process memory otherwise.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("Using in-memory session storage", "ttl", conf.SessionTTL)
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis session storage", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.SessionTTL)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.SessionTTL), closeFn, nil
}

// newResultRepository - nil when no sqlite path is configured.
func newResultRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ResultRepository, func(), error) {
	if conf.SQLiteStoragePath == "" {
		return nil, func() {}, nil
	}

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		_ = sqliteStorage.Close()
		return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	log.Info("Recording results", "path", conf.SQLiteStoragePath)

	closeFn := func() {
		if err := sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}

	return repository.NewResultRepository(sqliteStorage.Connection), closeFn, nil
}
