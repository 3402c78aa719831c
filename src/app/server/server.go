// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"diarybook/src/app/http/dto"
	"diarybook/src/app/http/handler"
	"diarybook/src/app/http/response"
	"diarybook/src/app/middleware"
	"diarybook/src/core/ports"
	"diarybook/src/core/usecase"
	"diarybook/src/infra/config"
	"diarybook/src/infra/logger"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	verifier ports.TokenVerifier

	// Handlers
	healthHandler *handler.HealthHandler
	diaryHandler  *handler.DiaryHandler
}

// New creates a new Server with all dependencies wired up.
// health backs /health/detailed; when nil the repository is pinged instead.
func New(cfg *config.Config, log *slog.Logger, repo ports.DiaryRepository, verifier ports.TokenVerifier, health ports.Repository) (*Server, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			return nil, fmt.Errorf("register validations: %w", err)
		}
	}

	router := gin.New()

	if health == nil {
		health = repo
	}
	healthService := usecase.NewHealthService(logger.WithComponent(log, "health"), health)
	diaryService := usecase.NewDiaryService(repo, logger.WithComponent(log, "diary"))

	s := &Server{
		cfg:           cfg,
		log:           log,
		router:        router,
		verifier:      verifier,
		healthHandler: handler.NewHealthHandler(healthService),
		diaryHandler:  handler.NewDiaryHandler(diaryService, cfg.Server.IsDevelopment()),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s, nil
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Recovery first so it catches panics from everything after it.
	s.router.Use(middleware.Recovery(s.log, s.cfg.Server.IsDevelopment()))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.cfg.CORS.FrontendURL))
	s.router.Use(middleware.Logging(logger.WithComponent(s.log, "http")))
	s.router.Use(limitBody(s.cfg.Server.MaxBodyBytes))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	cookie := s.cfg.Auth.CookieName

	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)
	s.router.GET("/", middleware.OptionalAuth(s.verifier, cookie), handler.Welcome(Version))

	diary := s.router.Group("/diary", middleware.Authenticate(s.verifier, cookie))
	{
		diary.GET("", s.diaryHandler.List)
		diary.POST("", s.diaryHandler.Create)
		diary.GET("/:id", s.diaryHandler.Get)
		diary.PUT("/:id", s.diaryHandler.Update)
		diary.DELETE("/:id", s.diaryHandler.Delete)
	}

	s.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, response.MsgEndpointNotFound, middleware.GetRequestID(c))
	})
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
			"env", s.cfg.Server.Env,
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
