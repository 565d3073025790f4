package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/repository"
	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
)

type gameManager interface {
	StartSession(ctx context.Context) (string, entity.GameState, error)
	GetState(ctx context.Context, sessionID string) (entity.GameState, error)
	Click(ctx context.Context, sessionID string, cell int) (entity.GameState, error)
	Restart(ctx context.Context, sessionID string) (entity.GameState, error)
	EndSession(ctx context.Context, sessionID string) error
	Stats(ctx context.Context) (repository.Stats, error)
}

type handler struct {
	logger      *slog.Logger
	gameManager gameManager
	renderer    *view.Renderer
}

func newHandler(logger *slog.Logger, gameManager gameManager, renderer *view.Renderer) *handler {
	return &handler{
		logger:      logger.With("component", "rest_handler"),
		gameManager: gameManager,
		renderer:    renderer,
	}
}

func (that *handler) register(engine *gin.Engine) {
	engine.GET("/", that.index)
	engine.GET("/ping", that.ping)

	games := engine.Group("/games/:id")
	games.POST("/cells/:index", that.clickPage)
	games.POST("/restart", that.restartPage)

	api := engine.Group("/api")
	api.GET("/games/:id", that.getGame)
	api.POST("/games/:id/cells/:index", that.clickGame)
	api.POST("/games/:id/restart", that.restartGame)
	api.DELETE("/games/:id", that.endGame)
	api.GET("/stats", that.stats)
}

// index - every page load starts a fresh session.
func (that *handler) index(c *gin.Context) {
	sessionID, game, err := that.gameManager.StartSession(c.Request.Context())
	if err != nil {
		that.logger.Error("failed to start session", "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.HTML(http.StatusOK, "page", view.New(sessionID, game))
}

func (that *handler) clickPage(c *gin.Context) {
	index, err := cellIndex(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	sessionID := c.Param("id")
	game, err := that.gameManager.Click(c.Request.Context(), sessionID, index)
	that.page(c, sessionID, game, err)
}

func (that *handler) restartPage(c *gin.Context) {
	sessionID := c.Param("id")
	game, err := that.gameManager.Restart(c.Request.Context(), sessionID)
	that.page(c, sessionID, game, err)
}

func (that *handler) page(c *gin.Context, sessionID string, game entity.GameState, err error) {
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			that.logger.Error("failed to apply action", "sessionID", sessionID, "error", err)
		}

		c.String(status, http.StatusText(status))
		return
	}

	c.HTML(http.StatusOK, "page", view.New(sessionID, game))
}

func (that *handler) getGame(c *gin.Context) {
	sessionID := c.Param("id")
	game, err := that.gameManager.GetState(c.Request.Context(), sessionID)
	that.json(c, sessionID, game, err)
}

func (that *handler) clickGame(c *gin.Context) {
	index, err := cellIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	game, err := that.gameManager.Click(c.Request.Context(), sessionID, index)
	that.json(c, sessionID, game, err)
}

func (that *handler) restartGame(c *gin.Context) {
	sessionID := c.Param("id")
	game, err := that.gameManager.Restart(c.Request.Context(), sessionID)
	that.json(c, sessionID, game, err)
}

// endGame - drops the session. Deleting an unknown session succeeds.
func (that *handler) endGame(c *gin.Context) {
	sessionID := c.Param("id")

	if err := that.gameManager.EndSession(c.Request.Context(), sessionID); err != nil {
		that.logger.Error("failed to end session", "sessionID", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *handler) json(c *gin.Context, sessionID string, game entity.GameState, err error) {
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			that.logger.Error("failed to apply action", "sessionID", sessionID, "error", err)
			c.JSON(status, gin.H{"error": http.StatusText(status)})
			return
		}

		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view.New(sessionID, game))
}

func (that *handler) stats(c *gin.Context) {
	stats, err := that.gameManager.Stats(c.Request.Context())
	if errors.Is(err, apperror.ErrStorageDisabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		that.logger.Error("failed to get stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"x_wins": stats.XWins,
		"o_wins": stats.OWins,
		"draws":  stats.Draws,
		"total":  stats.Total(),
	})
}

// cellIndex parses the :index param. Out-of-range integers pass through and
// are ignored by the game rules.
func cellIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, c.Param("index"))
	}

	return index, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrSessionRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
