// Package server wires the HTTP surface over the calendar service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dayfold/dayfold/internal/profile"
	"github.com/dayfold/dayfold/internal/version"
	apiv1 "github.com/dayfold/dayfold/server/router/api/v1"
	"github.com/dayfold/dayfold/server/service/calendar"
	"github.com/dayfold/dayfold/store"
)

type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Secret:  profile.Secret,
		Profile: profile,
		Store:   store,
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())
	echoServer.Use(requestLogger())
	s.echoServer = echoServer

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.GetCurrentVersion(profile.Mode),
		})
	})

	cal := calendar.NewService(store)
	apiV1Service := apiv1.NewAPIV1Service(s.Secret, profile, store, cal)
	apiV1Service.Register(echoServer)

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("addr", addr), slog.String("version", version.GetCurrentVersion(s.Profile.Mode)))
	if err := s.echoServer.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store. It uses its own
// timeout so a cancelled parent context still allows a graceful drain.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", slog.Any("error", err))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.Any("error", err))
	}
	slog.Info("server stopped")
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
				slog.Warn("http request", attrs...)
				return nil
			}
			slog.Debug("http request", attrs...)
			return nil
		},
	})
}
