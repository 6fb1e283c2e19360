// Package api serves the coach to mobile clients over HTTP with bearer
// JWT authentication.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/logger"
)

// Config configures the HTTP server.
type Config struct {
	Addr        string
	JWTSecret   []byte
	CORSOrigins []string
}

// Server is the HTTP API.
type Server struct {
	coach  *coach.Coach
	cfg    Config
	log    *logger.Logger
	engine *gin.Engine
}

// New builds the router. Call gin.SetMode before New to silence gin's
// debug output.
func New(c *coach.Coach, cfg Config, log *logger.Logger) *Server {
	s := &Server{coach: c, cfg: cfg, log: logger.OrNop(log).With("component", "api")}

	r := gin.New()
	r.Use(recovery(s.log), requestLogger(s.log), corsMiddleware(cfg.CORSOrigins))
	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, NotFound("route"))
	})

	// Public
	r.GET("/healthz", s.health)

	// Protected
	v1 := r.Group("/v1", requireAuth(cfg.JWTSecret))
	{
		v1.GET("/recommendations", s.recommendations)
		v1.POST("/attempts", s.completeAttempt)
		v1.GET("/performance", s.performance)
		v1.DELETE("/performance", s.resetPerformance)
		v1.GET("/insights", s.insights)
		v1.GET("/profile", s.getProfile)
		v1.PUT("/profile", s.putProfile)
		v1.GET("/challenges/:id", s.getChallenge)
		v1.GET("/history", s.history)
	}

	s.engine = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
