package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cubahno/schematest/pkg/schema"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchEvent(t *testing.T) {
	tests := []struct {
		name         string
		operation    fsnotify.Op
		expectCreate bool
		expectUpdate bool
		expectDelete bool
	}{
		{"create event", fsnotify.Create, true, false, false},
		{"write event", fsnotify.Write, false, true, false},
		{"remove event", fsnotify.Remove, false, false, true},
		{"rename event", fsnotify.Rename, false, false, true},
		{"chmod event", fsnotify.Chmod, false, false, false},
		{"create|write combined", fsnotify.Create | fsnotify.Write, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var createCalled, updateCalled, deleteCalled bool

			handler := eventHandler{
				onCreate: func(e fileEvent) { createCalled = true },
				onUpdate: func(e fileEvent) { updateCalled = true },
				onDelete: func(e fileEvent) { deleteCalled = true },
			}

			dispatchEvent(fileEvent{Path: "/test/thing.yml", Name: "thing.yml", Operation: tt.operation}, handler)

			assert.Equal(t, tt.expectCreate, createCalled, "onCreate")
			assert.Equal(t, tt.expectUpdate, updateCalled, "onUpdate")
			assert.Equal(t, tt.expectDelete, deleteCalled, "onDelete")
		})
	}
}

func TestIsDefinitionFile(t *testing.T) {
	assert.True(t, isDefinitionFile("thing.yml"))
	assert.True(t, isDefinitionFile("thing.YAML"))
	assert.False(t, isDefinitionFile("thing.json"))
	assert.False(t, isDefinitionFile(".thing.yml.swp"))
	assert.False(t, isDefinitionFile("4913"))
}

func TestDefinitionWatcher(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		cfg := newTestConfig(t)
		dw, err := newDefinitionWatcher(New(cfg, nil))
		require.NoError(t, err)
		defer dw.stop()

		info, err := os.Stat(cfg.Paths.Definitions)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.True(t, dw.isWatched(cfg.Paths.Definitions))
	})

	t.Run("ignores unrelated files", func(t *testing.T) {
		cfg := newTestConfig(t)
		dw, err := newDefinitionWatcher(New(cfg, nil))
		require.NoError(t, err)
		defer dw.stop()

		dw.onUpdate(fileEvent{Path: "/tmp/notes.txt", Name: "notes.txt", Operation: fsnotify.Write})

		dw.reloadMu.Lock()
		pending := dw.pendingReload
		dw.reloadMu.Unlock()
		assert.False(t, pending)
	})

	t.Run("stop clears pending reload", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Server.Debounce = time.Hour
		dw, err := newDefinitionWatcher(New(cfg, nil))
		require.NoError(t, err)

		dw.onUpdate(fileEvent{Path: "/tmp/thing.yml", Name: "thing.yml", Operation: fsnotify.Write})
		dw.stop()

		dw.reloadMu.Lock()
		defer dw.reloadMu.Unlock()
		assert.Nil(t, dw.reloadTimer)
		assert.False(t, dw.pendingReload)
	})

	t.Run("reloads on change", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Server.Debounce = 20 * time.Millisecond
		c := New(cfg, nil)

		dw, err := newDefinitionWatcher(c)
		require.NoError(t, err)
		defer dw.stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go dw.watch(ctx)

		writeFile(t, filepath.Join(cfg.Paths.Definitions, "thing.yml"), thingYAML)

		assert.Eventually(t, func() bool {
			_, err := c.Registry().Definition("thing", schema.V(1))
			return err == nil
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("watches new subdirectories", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Server.Debounce = 20 * time.Millisecond
		c := New(cfg, nil)

		dw, err := newDefinitionWatcher(c)
		require.NoError(t, err)
		defer dw.stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go dw.watch(ctx)

		sub := filepath.Join(cfg.Paths.Definitions, "nested")
		require.NoError(t, os.Mkdir(sub, 0755))

		assert.Eventually(t, func() bool {
			return dw.isWatched(sub)
		}, 5*time.Second, 10*time.Millisecond)

		writeFile(t, filepath.Join(sub, "thing.yml"), thingYAML)

		assert.Eventually(t, func() bool {
			return c.Registry().Len() == 1
		}, 5*time.Second, 20*time.Millisecond)
	})
}

func TestCatalog_Watch(t *testing.T) {
	cfg := newTestConfig(t)
	c := New(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
