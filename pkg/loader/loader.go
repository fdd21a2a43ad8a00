package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cubahno/schematest/internal/types"
	"github.com/cubahno/schematest/pkg/schema"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLoadConcurrency is the default number of files parsed at once
	DefaultLoadConcurrency = 10
)

var (
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

// Extensions lists the file extensions picked up when walking directories.
var Extensions = []string{".yml", ".yaml"}

// Loader reads YAML definition files into a registry.
// Files are parsed concurrently and registered in lexical order.
type Loader struct {
	registry    *schema.Registry
	concurrency int
	logger      *slog.Logger
}

type Option func(*Loader)

// WithConcurrency limits the number of files parsed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader registering into the given registry.
func New(registry *schema.Registry, opts ...Option) *Loader {
	l := &Loader{
		registry:    registry,
		concurrency: DefaultLoadConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is a convenience function loading paths into the registry with default options.
func Load(registry *schema.Registry, paths ...string) error {
	return New(registry).Load(paths...)
}

// Load registers the definitions of every file found under paths.
// Nothing is registered when any of the files fails to parse or declares an invalid definition.
func (l *Loader) Load(paths ...string) error {
	files, err := Files(paths...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		l.logger.Warn("No definition files found", "paths", paths)
		return nil
	}

	parsed := make([]*fileDecl, len(files))
	errs := make([]error, len(files))

	semaphore := make(chan struct{}, l.concurrency)
	var wg sync.WaitGroup

	for i, path := range files {
		semaphore <- struct{}{} // Acquire
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release
			parsed[i], errs[i] = parseFile(path)
		}(i, path)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	var roots []schema.Root
	for _, f := range parsed {
		declared, err := l.declare(f)
		if err != nil {
			return err
		}
		roots = append(roots, declared...)
	}
	l.register(roots)

	l.logger.Info("Definitions loaded", "files", len(files), "schemas", l.registry.Len())
	return nil
}

// LoadBytes registers the definitions of a single document.
// The name is used in locations and error messages.
// Nothing is registered when any declaration is invalid.
func (l *Loader) LoadBytes(name string, content []byte) error {
	f, err := parse(name, content)
	if err != nil {
		return err
	}
	roots, err := l.declare(f)
	if err != nil {
		return err
	}
	l.register(roots)
	return nil
}

// Files lists the definition files under paths.
// Directories are walked recursively, missing paths are skipped.
// A path naming a file is taken as is.
func Files(paths ...string) ([]string, error) {
	var res []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			res = append(res, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if types.SliceContains(Extensions, strings.ToLower(filepath.Ext(p))) {
				res = append(res, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return types.SliceUnique(res), nil
}

func parseFile(path string) (*fileDecl, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(path, content)
}

func parse(name string, content []byte) (*fileDecl, error) {
	f := &fileDecl{file: name}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidDeclaration, err)
	}
	if len(root.Content) == 0 {
		return f, nil
	}
	if err := root.Decode(f); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidDeclaration, err)
	}
	return f, nil
}

// declare builds the roots of a file without registering them.
func (l *Loader) declare(f *fileDecl) ([]schema.Root, error) {
	var roots []schema.Root
	for i := range f.Definitions {
		declared, err := l.define(f.file, &f.Definitions[i])
		if err != nil {
			return nil, err
		}
		roots = append(roots, declared...)
	}
	for i := range f.Collections {
		c, err := l.collection(f.file, &f.Collections[i])
		if err != nil {
			return nil, err
		}
		roots = append(roots, c)
	}
	return roots, nil
}

func (l *Loader) register(roots []schema.Root) {
	for _, root := range roots {
		l.registry.Register(root)
	}
}

func location(file string, n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", file, n.Line)
}

func invalid(file string, n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", location(file, n), ErrInvalidDeclaration, fmt.Sprintf(format, args...))
}
