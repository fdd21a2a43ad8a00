// Package api serves compiled schemas, validation and samples over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cubahno/schematest/internal/catalog"
	"github.com/cubahno/schematest/pkg/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

type RouteRegister func(s *Server) error

// Server exposes the live catalog.
// Every request reads the registry the catalog currently publishes.
type Server struct {
	echo      *echo.Echo
	catalog   *catalog.Catalog
	validator *validation.Validator
	logger    *slog.Logger
}

// NewServer creates the server and registers all routes.
func NewServer(cat *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		catalog: cat,
		validator: validation.New(
			validation.WithDomain(cat.Domain()),
			validation.WithLogger(logger),
		),
		logger: logger,
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(loggingMiddleware(logger))
	e.Use(middleware.Recover())

	bluePrints := []RouteRegister{
		createHealthRoutes,
		createSchemaRoutes,
		createValidationRoutes,
		createSampleRoutes,
		createOpenAPIRoutes,
	}

	for _, bluePrint := range bluePrints {
		if err := bluePrint(s); err != nil {
			logger.Error("Failed to load blueprint", "error", err)
		}
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on the port until the context is cancelled.
func (s *Server) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf("0.0.0.0:%d", port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	s.logger.Info("Server started", "port", port)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func loggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID)
			return nil
		},
	})
}

func (s *Server) fail(c echo.Context, err error) error {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", c.Request().URL.Path, "error", err)
	}
	return c.JSON(status, GetErrorResponse(err))
}
