package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cubahno/schematest/internal/types"
	"github.com/cubahno/schematest/pkg/loader"
	"github.com/fsnotify/fsnotify"
)

type fileEvent struct {
	Path      string
	Name      string
	IsDir     bool
	Operation fsnotify.Op
}

type eventHandler struct {
	onCreate func(fileEvent)
	onUpdate func(fileEvent)
	onDelete func(fileEvent)
}

type definitionWatcher struct {
	catalog *Catalog

	watcher *fsnotify.Watcher

	// Protects dirs from concurrent access
	mu   sync.RWMutex
	dirs map[string]bool

	// Debouncing for reload
	reloadTimer    *time.Timer
	reloadMu       sync.Mutex
	reloadDebounce time.Duration
	pendingReload  bool
}

// Watch reloads the catalog whenever definition files change.
// Bursts of events are debounced by the configured quiet period.
// It blocks until the context is cancelled.
func (c *Catalog) Watch(ctx context.Context) error {
	dw, err := newDefinitionWatcher(c)
	if err != nil {
		return err
	}
	defer dw.stop()

	dw.watch(ctx)
	return nil
}

func newDefinitionWatcher(c *Catalog) (*definitionWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dw := &definitionWatcher{
		catalog:        c,
		watcher:        watcher,
		dirs:           make(map[string]bool),
		reloadDebounce: c.cfg.Server.Debounce,
	}

	for _, path := range c.cfg.DefinitionPaths {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			// single file: watch its directory, events are filtered by extension
			dw.add(filepath.Dir(path))
			continue
		}

		if err := os.MkdirAll(path, 0755); err != nil {
			c.logger.Warn("Failed to create directory", "dir", path, "error", err)
			continue
		}
		dw.watchSubdirectories(path)
	}

	c.logger.Info("File watcher initialized", "paths", c.cfg.DefinitionPaths, "debounce", dw.reloadDebounce)

	return dw, nil
}

func (dw *definitionWatcher) stop() {
	dw.reloadMu.Lock()
	if dw.reloadTimer != nil {
		dw.reloadTimer.Stop()
		dw.reloadTimer = nil
	}
	dw.pendingReload = false
	dw.reloadMu.Unlock()

	_ = dw.watcher.Close()
}

func (dw *definitionWatcher) add(dir string) {
	if err := dw.watcher.Add(dir); err != nil {
		dw.catalog.logger.Warn("Failed to watch directory", "dir", dir, "error", err)
		return
	}

	dw.mu.Lock()
	dw.dirs[dir] = true
	dw.mu.Unlock()
}

func (dw *definitionWatcher) isWatched(dir string) bool {
	dw.mu.RLock()
	defer dw.mu.RUnlock()
	return dw.dirs[dir]
}

func (dw *definitionWatcher) forget(dir string) {
	dw.mu.Lock()
	delete(dw.dirs, dir)
	dw.mu.Unlock()
}

func (dw *definitionWatcher) watchSubdirectories(dir string) {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dw.add(path)
		}
		return nil
	})

	if err != nil {
		dw.catalog.logger.Warn("Failed to walk directory tree", "dir", dir, "error", err)
	}
}

func (dw *definitionWatcher) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.routeEvent(event)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.catalog.logger.Error("File watcher error", "error", err)
		}
	}
}

func (dw *definitionWatcher) routeEvent(event fsnotify.Event) {
	fe := dw.createFileEvent(event)

	dw.catalog.logger.Debug("Event routing", "path", fe.Path, "op", fe.Operation.String(), "isDir", fe.IsDir)

	dispatchEvent(fe, eventHandler{
		onCreate: dw.onCreate,
		onUpdate: dw.onUpdate,
		onDelete: dw.onDelete,
	})
}

func (dw *definitionWatcher) createFileEvent(event fsnotify.Event) fileEvent {
	fileInfo, err := os.Stat(event.Name)
	isDir := err == nil && fileInfo.IsDir()

	return fileEvent{
		Path:      event.Name,
		Name:      filepath.Base(event.Name),
		IsDir:     isDir,
		Operation: event.Op,
	}
}

func (dw *definitionWatcher) onCreate(event fileEvent) {
	if event.IsDir {
		// files may have landed before the directory was watched
		dw.watchSubdirectories(event.Path)
		dw.catalog.logger.Info("Watching new directory", "dir", event.Path)
		dw.scheduleReload()
		return
	}
	dw.onUpdate(event)
}

func (dw *definitionWatcher) onUpdate(event fileEvent) {
	if event.IsDir || !isDefinitionFile(event.Name) {
		return
	}
	dw.catalog.logger.Info("Definition file changed", "path", event.Path, "op", event.Operation.String())
	dw.scheduleReload()
}

func (dw *definitionWatcher) onDelete(event fileEvent) {
	if dw.isWatched(event.Path) {
		dw.forget(event.Path)
		dw.catalog.logger.Info("Definition directory removed", "dir", event.Path)
		dw.scheduleReload()
		return
	}
	if !isDefinitionFile(event.Name) {
		return
	}
	dw.catalog.logger.Info("Definition file removed", "path", event.Path)
	dw.scheduleReload()
}

// scheduleReload schedules a debounced reload.
// Multiple rapid file changes will only trigger one reload after the quiet period.
func (dw *definitionWatcher) scheduleReload() {
	dw.reloadMu.Lock()
	defer dw.reloadMu.Unlock()

	dw.pendingReload = true

	if dw.reloadTimer != nil {
		dw.reloadTimer.Stop()
	}

	dw.reloadTimer = time.AfterFunc(dw.reloadDebounce, func() {
		dw.reloadMu.Lock()
		if !dw.pendingReload {
			dw.reloadMu.Unlock()
			return
		}
		dw.pendingReload = false
		dw.reloadMu.Unlock()

		dw.catalog.logger.Info("Debounce period elapsed, reloading definitions...")
		if err := dw.catalog.Load(); err != nil {
			dw.catalog.logger.Error("Failed to reload definitions, keeping previous catalog", "error", err)
		}
	})

	dw.catalog.logger.Debug("Reload scheduled", "debounce", dw.reloadDebounce)
}

func dispatchEvent(event fileEvent, h eventHandler) {
	op := event.Operation
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		h.onCreate(event)
	case op&fsnotify.Write == fsnotify.Write:
		h.onUpdate(event)
	case op&fsnotify.Remove == fsnotify.Remove, op&fsnotify.Rename == fsnotify.Rename:
		h.onDelete(event)
	}
}

func isDefinitionFile(name string) bool {
	return types.SliceContains(loader.Extensions, strings.ToLower(filepath.Ext(name)))
}
