package api

import (
	"net/http"

	"github.com/cubahno/schematest/internal/openapi"
	"github.com/labstack/echo/v4"
)

func createOpenAPIRoutes(s *Server) error {
	s.echo.GET("/openapi", func(c echo.Context) error {
		doc, err := openapi.Components(s.catalog.Registry())
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, doc)
	})
	return nil
}
