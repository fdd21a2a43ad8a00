package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cubahno/schematest/pkg/schema"
	"github.com/labstack/echo/v4"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

// SchemaItem describes a registered root in the listing.
type SchemaItem struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Version     int    `json:"version,omitempty"`
	ID          string `json:"id"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

type schemaHandler struct {
	*Server
}

func createSchemaRoutes(s *Server) error {
	h := &schemaHandler{s}

	s.echo.GET("/schemas", h.list)
	s.echo.GET("/:file", h.compiled)
	s.echo.GET("/:version/:file", h.compiledVersion)

	return nil
}

func (h *schemaHandler) list(c echo.Context) error {
	roots := h.catalog.Registry().Roots()
	domain := h.catalog.Domain()

	res := make([]SchemaItem, 0, len(roots))
	for _, root := range roots {
		version, _ := root.Version().Number()
		res = append(res, SchemaItem{
			Name:        root.Name(),
			Kind:        root.Kind().String(),
			Version:     version,
			ID:          schema.ID(domain, root.Name(), root.Version()),
			Location:    root.Location(),
			Description: root.Description(),
		})
	}

	return c.JSON(http.StatusOK, res)
}

// compiled serves unversioned documents at their `$id` path, e.g. /thing.json.
func (h *schemaHandler) compiled(c echo.Context) error {
	return h.sendCompiled(c, schema.Unversioned, c.Param("file"))
}

// compiledVersion serves versioned documents, e.g. /v2/thing.json.
func (h *schemaHandler) compiledVersion(c echo.Context) error {
	segment := c.Param("version")
	if !strings.HasPrefix(segment, "v") {
		return c.JSON(http.StatusNotFound, GetErrorResponse(ErrFileNotFound))
	}

	version, err := schema.ParseVersion(segment)
	if err != nil || !version.IsSet() {
		return c.JSON(http.StatusNotFound, GetErrorResponse(ErrFileNotFound))
	}

	return h.sendCompiled(c, version, c.Param("file"))
}

func (h *schemaHandler) sendCompiled(c echo.Context, version schema.Version, file string) error {
	name, ok := strings.CutSuffix(file, ".json")
	if !ok || name == "" {
		return c.JSON(http.StatusNotFound, GetErrorResponse(ErrFileNotFound))
	}

	root, err := h.catalog.Registry().Get(name, version)
	if err != nil {
		return h.fail(c, err)
	}

	doc, err := root.Compile(h.catalog.Domain())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, doc)
}

// root looks up the root named in the path at the version given in the query.
func (s *Server) root(c echo.Context) (schema.Root, error) {
	version, err := schema.ParseVersion(c.QueryParam("version"))
	if err != nil {
		return nil, err
	}
	return s.catalog.Registry().Get(c.Param("name"), version)
}
