package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cubahno/schematest/internal/sample"
	"github.com/labstack/echo/v4"
)

func createSampleRoutes(s *Server) error {
	s.echo.GET("/samples/:name", s.sample)
	return nil
}

func (s *Server) sample(c echo.Context) error {
	root, err := s.root(c)
	if err != nil {
		return s.fail(c, err)
	}

	var seed int64
	if value := c.QueryParam("seed"); value != "" {
		seed, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return s.fail(c, fmt.Errorf("%w: %q", ErrInvalidSeed, value))
		}
	}

	payload, err := sample.New(seed).Generate(root)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, payload)
}
