package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func createHealthRoutes(s *Server) error {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	return nil
}
