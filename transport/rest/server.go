package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
)

// Server serves the page, the form fallback and the JSON API on one port.
type Server struct {
	logger *slog.Logger
	engine *gin.Engine
	srv    *http.Server
}

func New(logger *slog.Logger, port string, gameManager gameManager, renderer *view.Renderer) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))
	engine.SetHTMLTemplate(renderer.Templates())

	handler := newHandler(logger, gameManager, renderer)
	handler.register(engine)

	return &Server{
		logger: logger.With("component", "rest"),
		engine: engine,
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// Mount - serves a plain handler under path, used for the websocket endpoint.
func (that *Server) Mount(path string, handler http.Handler) {
	that.engine.GET(path, gin.WrapH(handler))
}

// Handler exposes the router for tests.
func (that *Server) Handler() http.Handler {
	return that.engine
}

// Start - blocks until the server stops. A graceful shutdown is not an error.
func (that *Server) Start() error {
	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
