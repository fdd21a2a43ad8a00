package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	assert := assert2.New(t)

	t.Run("creates default config with correct values", func(t *testing.T) {
		cfg := NewDefaultConfig("/test/base")

		assert.Equal("example.com", cfg.Domain)
		assert.Equal([]string{filepath.Join("/test/base", "schemas")}, cfg.DefinitionPaths)
		assert.Equal(2300, cfg.Server.Port)
		assert.False(cfg.Server.Watch)
		assert.Equal(500*time.Millisecond, cfg.Server.Debounce)
		assert.Equal("info", cfg.Log.Level)
		assert.Equal("text", cfg.Log.Format)
		assert.Equal("/test/base", cfg.Paths.Base)
	})
}

func TestNewPaths(t *testing.T) {
	assert := assert2.New(t)

	t.Run("creates paths with correct structure", func(t *testing.T) {
		paths := NewPaths("/test/base")
		assert.Equal("/test/base", paths.Base)
		assert.Equal(filepath.Join("/test/base", "schematest.yml"), paths.ConfigFile)
		assert.Equal(filepath.Join("/test/base", ".env"), paths.EnvFile)
		assert.Equal(filepath.Join("/test/base", "schemas"), paths.Definitions)
	})

	t.Run("handles empty base dir", func(t *testing.T) {
		paths := NewPaths("")
		assert.Equal("schemas", paths.Definitions)
	})
}

func TestEnvName(t *testing.T) {
	assert := assert2.New(t)

	assert.Equal("SCHEMATEST_DOMAIN", EnvName("domain"))
	assert.Equal("SCHEMATEST_DEFINITION_PATHS", EnvName("definitionPaths"))
	assert.Equal("SCHEMATEST_SERVER_PORT", EnvName("server.port"))
	assert.Equal("SCHEMATEST_LOG_LEVEL", EnvName("log.level"))
}

func TestNewConfigFromContent(t *testing.T) {
	assert := assert2.New(t)

	t.Run("full file", func(t *testing.T) {
		content := []byte(`
domain: api.example.org
definitionPaths:
  - ./schemas
  - ./more
server:
  port: 8080
  watch: true
  debounce: 250ms
log:
  level: debug
  format: json
`)
		cfg, err := NewConfigFromContent(content)
		require.NoError(t, err)

		assert.Equal("api.example.org", cfg.Domain)
		assert.Equal([]string{"./schemas", "./more"}, cfg.DefinitionPaths)
		assert.Equal(8080, cfg.Server.Port)
		assert.True(cfg.Server.Watch)
		assert.Equal(250*time.Millisecond, cfg.Server.Debounce)
		assert.Equal("debug", cfg.Log.Level)
		assert.Equal("json", cfg.Log.Format)
	})

	t.Run("partial file gets defaults", func(t *testing.T) {
		cfg, err := NewConfigFromContent([]byte("domain: mydomain.com\n"))
		require.NoError(t, err)

		assert.Equal("mydomain.com", cfg.Domain)
		assert.Equal(2300, cfg.Server.Port)
		assert.Equal([]string{"schemas"}, cfg.DefinitionPaths)
		assert.Equal("info", cfg.Log.Level)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := NewConfigFromContent([]byte("domain: [unclosed"))
		assert.Error(err)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SCHEMATEST_SERVER_PORT", "9090")
		t.Setenv("SCHEMATEST_DOMAIN", "env.example.com")
		t.Setenv("SCHEMATEST_DEFINITION_PATHS", "a,b")
		t.Setenv("SCHEMATEST_UNKNOWN", "ignored")

		cfg, err := NewConfigFromContent([]byte("domain: file.example.com\nserver:\n  port: 8080\n"))
		require.NoError(t, err)

		assert.Equal("env.example.com", cfg.Domain)
		assert.Equal(9090, cfg.Server.Port)
		assert.Equal([]string{"a", "b"}, cfg.DefinitionPaths)
	})
}

func TestLoad(t *testing.T) {
	assert := assert2.New(t)

	t.Run("missing file uses defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(dir, filepath.Join(dir, "missing.yml"))
		require.NoError(t, err)
		assert.Equal("example.com", cfg.Domain)
		assert.Equal([]string{filepath.Join(dir, "schemas")}, cfg.DefinitionPaths)
	})

	t.Run("reads file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("domain: file.example.com\n"), 0o644))

		cfg, err := Load(dir, path)
		require.NoError(t, err)
		assert.Equal("file.example.com", cfg.Domain)
		assert.Equal(dir, cfg.Paths.Base)
	})

	t.Run("broken file is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("domain: [unclosed"), 0o644))

		_, err := Load(dir, path)
		assert.Error(err)
	})
}

func TestMustConfig(t *testing.T) {
	assert := assert2.New(t)

	t.Run("falls back on broken file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("domain: [unclosed"), 0o644))

		cfg := MustConfig(dir)
		assert.Equal("example.com", cfg.Domain)
	})

	t.Run("reads file from the base dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("server:\n  port: 1234\n"), 0o644))

		cfg := MustConfig(dir)
		assert.Equal(1234, cfg.Server.Port)
	})
}

func TestLogConfig(t *testing.T) {
	assert := assert2.New(t)

	t.Run("levels", func(t *testing.T) {
		assert.Equal("DEBUG", LogConfig{Level: "debug"}.SlogLevel().String())
		assert.Equal("WARN", LogConfig{Level: "warning"}.SlogLevel().String())
		assert.Equal("ERROR", LogConfig{Level: "ERROR"}.SlogLevel().String())
		assert.Equal("INFO", LogConfig{Level: "nonsense"}.SlogLevel().String())
	})

	t.Run("logger", func(t *testing.T) {
		assert.NotNil(LogConfig{Format: "json"}.NewLogger(os.Stderr))
		assert.NotNil(LogConfig{}.NewLogger(os.Stderr))
	})
}
