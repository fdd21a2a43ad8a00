// Package catalog keeps the live registry of definitions loaded from disk.
package catalog

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cubahno/schematest/pkg/config"
	"github.com/cubahno/schematest/pkg/loader"
	"github.com/cubahno/schematest/pkg/schema"
)

// Catalog loads definitions into a fresh registry and swaps it in once every root compiles.
// A published registry is never mutated, so it can be read from many goroutines.
type Catalog struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.RWMutex
	registry *schema.Registry
	loadedAt time.Time
}

func New(cfg *config.Config, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		cfg:      cfg,
		logger:   logger,
		registry: schema.NewRegistry(schema.WithLogger(logger)),
	}
}

// Load rebuilds the registry from the configured definition paths.
// On failure the previously loaded registry stays live.
func (c *Catalog) Load() error {
	reg := schema.NewRegistry(schema.WithLogger(c.logger))

	if err := loader.New(reg, loader.WithLogger(c.logger)).Load(c.cfg.DefinitionPaths...); err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}
	if err := Warm(reg, c.cfg.Domain); err != nil {
		return err
	}

	c.mu.Lock()
	c.registry = reg
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("Catalog loaded", "schemas", reg.Len(), "paths", c.cfg.DefinitionPaths)
	return nil
}

// Warm compiles every root of the registry, stopping at the first error.
// Afterwards all inheritance is memoized and compiling only reads.
func Warm(reg *schema.Registry, domain string) error {
	for _, root := range reg.Roots() {
		if _, err := root.Compile(domain); err != nil {
			return fmt.Errorf("%s (%s %s): %w", root.Location(), root.Name(), root.Version(), err)
		}
	}
	return nil
}

// Registry returns the live registry.
func (c *Catalog) Registry() *schema.Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry
}

// LoadedAt returns the time of the last successful load, zero if none.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

func (c *Catalog) Domain() string {
	return c.cfg.Domain
}
