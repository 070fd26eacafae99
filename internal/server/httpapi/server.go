// Package httpapi exposes the authentication service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/services"
	"github.com/dmitrijs2005/authgate/internal/token"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg    *config.Config
	logger logging.Logger
	users  *services.UserService
	codec  *token.Codec
	echo   *echo.Echo
}

func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService, codec *token.Codec) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger.With("module", "http_server"),
		users:  users,
		codec:  codec,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
	)
	e.Use(s.logRequests)

	e.POST("/register", s.handleRegister)
	e.POST("/login", s.handleLogin, s.verifyBasicCredential, s.issueToken)
	e.GET("/healthz", s.handleHealthz)
	e.GET("/:id", s.handleGetUser, s.resolveToken)

	s.echo = e
	return s
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.echo.Start(s.cfg.EndpointAddrHTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddrHTTP)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shCtx)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()

		args := []any{
			"method", req.Method,
			"uri", req.RequestURI,
			"status", res.Status,
			"latency", time.Since(start),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		}
		if err != nil {
			args = append(args, "error", err)
		}
		s.logger.Debug(req.Context(), "request handled", args...)
		return err
	}
}
