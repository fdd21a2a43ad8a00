package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ValidationResult is the response of the validation endpoint.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func createValidationRoutes(s *Server) error {
	s.echo.POST("/validate/:name", s.validate)
	return nil
}

// validate checks the request body against a root.
// Failed validation is still a 200: the result carries the messages.
func (s *Server) validate(c echo.Context) error {
	root, err := s.root(c)
	if err != nil {
		return s.fail(c, err)
	}

	errs, err := s.validator.Validate(c.Request().Body, root)
	if err != nil {
		return s.fail(c, err)
	}
	if errs == nil {
		errs = []string{}
	}

	return c.JSON(http.StatusOK, &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}
